package ops

import (
	"slices"
	"strings"

	"github.com/zulandar/vanops/internal/ident"
	"github.com/zulandar/vanops/internal/models"
)

// FusePatch changes the non-nil fields of a fuse.
type FusePatch struct {
	CircuitID *string
	Label     *string
	Location  *string
	FuseType  *string
	Amp       *string
	QtyOwned  *float64
	QtyNeed   *float64
	Status    *models.FuseStatus
	Notes     *string
}

func (p FusePatch) validate() error {
	if p.Status != nil && !p.Status.Valid() {
		return invalid("status", *p.Status)
	}
	if err := nonNegative("qtyOwned", p.QtyOwned); err != nil {
		return err
	}
	return nonNegative("qtyNeed", p.QtyNeed)
}

func findFuse(fuses []models.Fuse, id string) int {
	return slices.IndexFunc(fuses, func(f models.Fuse) bool { return f.ID == id })
}

// AddFuse inserts f at the top of the fuse list. A new fuse defaults to the
// "New Fuse" label, one needed, status tbd.
func (s *Session) AddFuse(f models.Fuse) (models.Fuse, error) {
	f.ID = strings.TrimSpace(f.ID)
	if f.ID == "" {
		f.ID = s.newID(ident.PrefixFuse)
	}
	if f.Label == "" {
		f.Label = models.DefaultFuseLabel
	}
	if f.QtyNeed == 0 {
		f.QtyNeed = 1
	}
	if f.Status == "" {
		f.Status = models.FuseTBD
	}
	if err := (FusePatch{Status: &f.Status, QtyOwned: &f.QtyOwned, QtyNeed: &f.QtyNeed}).validate(); err != nil {
		return models.Fuse{}, err
	}
	err := s.apply("add fuse", func(next *models.Ops) error {
		if findFuse(next.Fuses, f.ID) >= 0 {
			return duplicate("fuse", f.ID)
		}
		next.Fuses = prepend(next.Fuses, f)
		return nil
	})
	if err != nil {
		return models.Fuse{}, err
	}
	return f, nil
}

// UpdateFuse applies p to the fuse with id.
func (s *Session) UpdateFuse(id string, p FusePatch) (models.Fuse, error) {
	if err := p.validate(); err != nil {
		return models.Fuse{}, err
	}
	var out models.Fuse
	err := s.apply("update fuse", func(next *models.Ops) error {
		i := findFuse(next.Fuses, id)
		if i < 0 {
			return notFound("fuse", id)
		}
		f := next.Fuses[i]
		setString(&f.CircuitID, p.CircuitID)
		setString(&f.Label, p.Label)
		setString(&f.Location, p.Location)
		setString(&f.FuseType, p.FuseType)
		setString(&f.Amp, p.Amp)
		setFloat(&f.QtyOwned, p.QtyOwned)
		setFloat(&f.QtyNeed, p.QtyNeed)
		if p.Status != nil {
			f.Status = *p.Status
		}
		setString(&f.Notes, p.Notes)
		next.Fuses[i] = f
		out = f
		return nil
	})
	return out, err
}

// DeleteFuse removes the fuse with id. Wiring runs that referenced it keep
// their now dangling fuse ID.
func (s *Session) DeleteFuse(id string) error {
	return s.apply("delete fuse", func(next *models.Ops) error {
		n := len(next.Fuses)
		next.Fuses = slices.DeleteFunc(next.Fuses, func(f models.Fuse) bool { return f.ID == id })
		if len(next.Fuses) == n {
			return notFound("fuse", id)
		}
		return nil
	})
}
