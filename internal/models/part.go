package models

import "slices"

// PartStatus tracks where a part is in the buy/install pipeline.
type PartStatus string

const (
	PartTBD       PartStatus = "tbd"
	PartOrdered   PartStatus = "ordered"
	PartOwned     PartStatus = "owned"
	PartInstalled PartStatus = "installed"
)

// PartStatuses lists every part status in display order.
var PartStatuses = []PartStatus{PartTBD, PartOrdered, PartOwned, PartInstalled}

// Valid reports whether s is a known part status.
func (s PartStatus) Valid() bool {
	switch s {
	case PartTBD, PartOrdered, PartOwned, PartInstalled:
		return true
	}
	return false
}

// PartCategories are the suggested inventory categories.
var PartCategories = []string{
	"Batteries",
	"Charge/Invert",
	"Solar",
	"Distribution",
	"Fusing",
	"Wire",
	"Connectors/Lugs",
	"Heatshrink/Loom",
	"Switches/Controls",
	"Monitoring",
	"Mounting/Hardware",
	"Tools",
	"Other",
}

// DefaultPartCategory is assigned when a part has no category.
const DefaultPartCategory = "Other"

// WireUse records a length of wire cut from a spool for one circuit.
type WireUse struct {
	CircuitID string  `json:"circuitId"`
	Feet      float64 `json:"feet"`
	Note      string  `json:"note"`
}

// Part is an inventory line item. UsedInCircuits is a free-form list of
// circuit IDs such as "HC-001, HC-002". The feet and termination fields only
// matter for wire parts. Optional fields are omitted from JSON when unset.
type Part struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Vendor   string     `json:"vendor"`
	QtyOwned float64    `json:"qtyOwned"`
	QtyNeed  float64    `json:"qtyNeed"`
	Status   PartStatus `json:"status"`
	Notes    string     `json:"notes"`

	QtyInstalled   float64 `json:"qtyInstalled,omitempty"`
	UsedInCircuits string  `json:"usedInCircuits,omitempty"`
	Source         string  `json:"source,omitempty"`

	PurchasedFeet float64   `json:"purchasedFeet,omitempty"`
	UsedFeet      float64   `json:"usedFeet,omitempty"`
	WireUses      []WireUse `json:"wireUses,omitempty"`
	HasLugs       bool      `json:"hasLugs,omitempty"`
	HasHeatShrink bool      `json:"hasHeatShrink,omitempty"`
	HasConnectors bool      `json:"hasConnectors,omitempty"`
}

// Clone returns a deep copy of p.
func (p Part) Clone() Part {
	p.WireUses = slices.Clone(p.WireUses)
	return p
}
