package models

// FuseStatus tracks a fuse through purchase and installation.
type FuseStatus string

const (
	FuseTBD       FuseStatus = "tbd"
	FuseNeeded    FuseStatus = "needed"
	FuseOrdered   FuseStatus = "ordered"
	FuseOwned     FuseStatus = "owned"
	FuseInstalled FuseStatus = "installed"
)

// FuseStatuses lists every fuse status in display order.
var FuseStatuses = []FuseStatus{FuseTBD, FuseNeeded, FuseOrdered, FuseOwned, FuseInstalled}

// Valid reports whether s is a known fuse status.
func (s FuseStatus) Valid() bool {
	switch s {
	case FuseTBD, FuseNeeded, FuseOrdered, FuseOwned, FuseInstalled:
		return true
	}
	return false
}

// DefaultFuseLabel is assigned to fuses created without a label.
const DefaultFuseLabel = "New Fuse"

// Fuse is a protective device, optionally tied to a circuit.
// Amp stays a string so values like "7.5A" survive untouched.
type Fuse struct {
	ID        string     `json:"id"`
	CircuitID string     `json:"circuitId"`
	Label     string     `json:"label"`
	Location  string     `json:"location"`
	FuseType  string     `json:"fuseType"`
	Amp       string     `json:"amp"`
	QtyOwned  float64    `json:"qtyOwned"`
	QtyNeed   float64    `json:"qtyNeed"`
	Status    FuseStatus `json:"status"`
	Notes     string     `json:"notes"`
}
