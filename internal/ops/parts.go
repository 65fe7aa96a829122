package ops

import (
	"slices"
	"strings"

	"github.com/zulandar/vanops/internal/ident"
	"github.com/zulandar/vanops/internal/models"
)

// PartPatch changes the non-nil fields of a part.
type PartPatch struct {
	Name           *string
	Category       *string
	Vendor         *string
	QtyOwned       *float64
	QtyNeed        *float64
	QtyInstalled   *float64
	Status         *models.PartStatus
	Notes          *string
	UsedInCircuits *string
	Source         *string
	PurchasedFeet  *float64
	UsedFeet       *float64
	WireUses       *[]models.WireUse
	HasLugs        *bool
	HasHeatShrink  *bool
	HasConnectors  *bool
}

func (p PartPatch) validate() error {
	if p.Status != nil && !p.Status.Valid() {
		return invalid("status", *p.Status)
	}
	for _, f := range []struct {
		name string
		v    *float64
	}{
		{"qtyOwned", p.QtyOwned},
		{"qtyNeed", p.QtyNeed},
		{"qtyInstalled", p.QtyInstalled},
		{"purchasedFeet", p.PurchasedFeet},
		{"usedFeet", p.UsedFeet},
	} {
		if err := nonNegative(f.name, f.v); err != nil {
			return err
		}
	}
	if p.WireUses != nil {
		for _, u := range *p.WireUses {
			if !validQty(u.Feet) {
				return invalid("wireUses.feet", u.Feet)
			}
		}
	}
	return nil
}

func findPart(parts []models.Part, id string) int {
	return slices.IndexFunc(parts, func(p models.Part) bool { return p.ID == id })
}

// AddPart inserts p at the top of the inventory with a fresh ID when p has
// none. Blank category and status take their defaults.
func (s *Session) AddPart(p models.Part) (models.Part, error) {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		p.ID = s.newID(ident.PrefixPart)
	}
	if strings.TrimSpace(p.Category) == "" {
		p.Category = models.DefaultPartCategory
	}
	if p.Status == "" {
		p.Status = models.PartTBD
	}
	check := PartPatch{Status: &p.Status, QtyOwned: &p.QtyOwned, QtyNeed: &p.QtyNeed, QtyInstalled: &p.QtyInstalled,
		PurchasedFeet: &p.PurchasedFeet, UsedFeet: &p.UsedFeet, WireUses: &p.WireUses}
	if err := check.validate(); err != nil {
		return models.Part{}, err
	}
	p = p.Clone()
	if len(p.WireUses) == 0 {
		p.WireUses = nil
	}
	err := s.apply("add part", func(next *models.Ops) error {
		if findPart(next.Parts, p.ID) >= 0 {
			return duplicate("part", p.ID)
		}
		next.Parts = prepend(next.Parts, p)
		return nil
	})
	if err != nil {
		return models.Part{}, err
	}
	return p.Clone(), nil
}

// UpdatePart applies patch to the part with id.
func (s *Session) UpdatePart(id string, patch PartPatch) (models.Part, error) {
	if err := patch.validate(); err != nil {
		return models.Part{}, err
	}
	var out models.Part
	err := s.apply("update part", func(next *models.Ops) error {
		i := findPart(next.Parts, id)
		if i < 0 {
			return notFound("part", id)
		}
		p := next.Parts[i]
		setString(&p.Name, patch.Name)
		if patch.Category != nil {
			p.Category = strings.TrimSpace(*patch.Category)
			if p.Category == "" {
				p.Category = models.DefaultPartCategory
			}
		}
		setString(&p.Vendor, patch.Vendor)
		setFloat(&p.QtyOwned, patch.QtyOwned)
		setFloat(&p.QtyNeed, patch.QtyNeed)
		setFloat(&p.QtyInstalled, patch.QtyInstalled)
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		setString(&p.Notes, patch.Notes)
		setString(&p.UsedInCircuits, patch.UsedInCircuits)
		setString(&p.Source, patch.Source)
		setFloat(&p.PurchasedFeet, patch.PurchasedFeet)
		setFloat(&p.UsedFeet, patch.UsedFeet)
		if patch.WireUses != nil {
			p.WireUses = nil
			if len(*patch.WireUses) > 0 {
				p.WireUses = slices.Clone(*patch.WireUses)
			}
		}
		setBool(&p.HasLugs, patch.HasLugs)
		setBool(&p.HasHeatShrink, patch.HasHeatShrink)
		setBool(&p.HasConnectors, patch.HasConnectors)
		next.Parts[i] = p
		out = p.Clone()
		return nil
	})
	return out, err
}

// DuplicatePart copies a part under a fresh ID and inserts it at the top.
func (s *Session) DuplicatePart(id string) (models.Part, error) {
	var out models.Part
	err := s.apply("duplicate part", func(next *models.Ops) error {
		i := findPart(next.Parts, id)
		if i < 0 {
			return notFound("part", id)
		}
		out = next.Parts[i].Clone()
		out.ID = s.newID(ident.PrefixPart)
		next.Parts = prepend(next.Parts, out.Clone())
		return nil
	})
	return out, err
}

// DeletePart removes the part with id.
func (s *Session) DeletePart(id string) error {
	return s.apply("delete part", func(next *models.Ops) error {
		n := len(next.Parts)
		next.Parts = slices.DeleteFunc(next.Parts, func(p models.Part) bool { return p.ID == id })
		if len(next.Parts) == n {
			return notFound("part", id)
		}
		return nil
	})
}
