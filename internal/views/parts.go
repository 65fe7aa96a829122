package views

import (
	"slices"
	"strings"

	"github.com/zulandar/vanops/internal/models"
)

// IsMissing reports whether fewer units are owned than needed.
func IsMissing(p models.Part) bool {
	return p.QtyOwned < p.QtyNeed
}

// IsWire reports whether p is tracked by length.
func IsWire(p models.Part) bool {
	return strings.EqualFold(p.Category, "Wire") || p.PurchasedFeet > 0
}

// UsedFeet is the sum of recorded wire uses, or the manual UsedFeet figure
// when no uses are recorded.
func UsedFeet(p models.Part) float64 {
	if len(p.WireUses) == 0 {
		return p.UsedFeet
	}
	var sum float64
	for _, u := range p.WireUses {
		sum += u.Feet
	}
	return sum
}

// RemainingFeet is purchased minus used length.
func RemainingFeet(p models.Part) float64 {
	return p.PurchasedFeet - UsedFeet(p)
}

// IsLowStock reports whether a wire part has less than threshold feet left.
func IsLowStock(p models.Part, threshold float64) bool {
	return IsWire(p) && RemainingFeet(p) < threshold
}

// IsTerminationReady reports whether a wire part has lugs, heat-shrink and
// connectors on hand.
func IsTerminationReady(p models.Part) bool {
	return IsWire(p) && p.HasLugs && p.HasHeatShrink && p.HasConnectors
}

// PartQuery selects and orders parts. Zero-valued filters match everything.
type PartQuery struct {
	Search           string
	Category         string
	Status           models.PartStatus
	MissingOnly      bool
	LowStockOnly     bool
	TerminationReady bool
	LowStockFeet     float64
	// SortKey is one of PartSortKeys. Empty sorts missing parts first, then
	// by name.
	SortKey string
	Desc    bool
}

// PartSortKeys lists the columns parts can be sorted by.
var PartSortKeys = []string{"name", "id", "category", "vendor", "status", "qtyOwned", "qtyNeed", "remainingFeet"}

func comparePart(a, b models.Part, key string) int {
	switch key {
	case "id":
		return compareFold(a.ID, b.ID)
	case "category":
		return compareFold(a.Category, b.Category)
	case "vendor":
		return compareFold(a.Vendor, b.Vendor)
	case "status":
		return compareFold(string(a.Status), string(b.Status))
	case "qtyOwned":
		return compareFloat(a.QtyOwned, b.QtyOwned)
	case "qtyNeed":
		return compareFloat(a.QtyNeed, b.QtyNeed)
	case "remainingFeet":
		return compareFloat(RemainingFeet(a), RemainingFeet(b))
	default:
		return compareFold(a.Name, b.Name)
	}
}

// FilterParts returns the parts matching q. Search covers id, name,
// category, vendor, source, notes, the used-in circuit list and the circuit
// ids of recorded wire uses.
func FilterParts(parts []models.Part, q PartQuery) []models.Part {
	search := normQuery(q.Search)

	out := make([]models.Part, 0, len(parts))
	for _, p := range parts {
		if q.Category != "" && !strings.EqualFold(p.Category, q.Category) {
			continue
		}
		if q.Status != "" && p.Status != q.Status {
			continue
		}
		if q.MissingOnly && !IsMissing(p) {
			continue
		}
		if q.LowStockOnly && !IsLowStock(p, q.LowStockFeet) {
			continue
		}
		if q.TerminationReady && !IsTerminationReady(p) {
			continue
		}
		fields := []string{p.ID, p.Name, p.Category, p.Vendor, p.Source, p.Notes, p.UsedInCircuits}
		for _, u := range p.WireUses {
			fields = append(fields, u.CircuitID)
		}
		if !matches(search, fields...) {
			continue
		}
		out = append(out, p)
	}

	if q.SortKey == "" {
		slices.SortStableFunc(out, func(a, b models.Part) int {
			am, bm := IsMissing(a), IsMissing(b)
			if am != bm {
				if am {
					return -1
				}
				return 1
			}
			return compareFold(a.Name, b.Name)
		})
		return out
	}
	slices.SortStableFunc(out, func(a, b models.Part) int {
		c := comparePart(a, b, q.SortKey)
		if q.Desc {
			c = -c
		}
		if c == 0 && q.SortKey != "name" {
			c = compareFold(a.Name, b.Name)
		}
		return c
	})
	return out
}

// PartStats counts parts by status and derived state.
type PartStats struct {
	Total     int
	TBD       int
	Ordered   int
	Owned     int
	Installed int
	Missing   int
	Wire      int
	LowStock  int
}

// PartStatsOf summarizes parts; threshold is the low-stock length in feet.
func PartStatsOf(parts []models.Part, threshold float64) PartStats {
	s := PartStats{Total: len(parts)}
	for _, p := range parts {
		switch p.Status {
		case models.PartTBD:
			s.TBD++
		case models.PartOrdered:
			s.Ordered++
		case models.PartOwned:
			s.Owned++
		case models.PartInstalled:
			s.Installed++
		}
		if IsMissing(p) {
			s.Missing++
		}
		if IsWire(p) {
			s.Wire++
			if IsLowStock(p, threshold) {
				s.LowStock++
			}
		}
	}
	return s
}
