package ops

import (
	"slices"
	"strings"

	"github.com/zulandar/vanops/internal/ident"
	"github.com/zulandar/vanops/internal/models"
)

// WiringPatch changes the non-nil fields of a wiring run.
type WiringPatch struct {
	CircuitID       *string
	FromTo          *string
	WireType        *string
	GaugeOwned      *string
	ProtectionShown *string
	FuseID          *string
	Confidence      *models.Confidence
	Status          *models.RunStatus
	Notes           *string
}

func findRun(runs []models.WiringRun, id string) int {
	return slices.IndexFunc(runs, func(r models.WiringRun) bool { return r.CircuitID == id })
}

// AddWiringRun inserts r at the top of the list. A blank circuit ID is
// generated; blank enums take their defaults.
func (s *Session) AddWiringRun(r models.WiringRun) (models.WiringRun, error) {
	r.CircuitID = strings.TrimSpace(r.CircuitID)
	if r.CircuitID == "" {
		r.CircuitID = s.newID(ident.PrefixWiringRun)
	}
	if r.Confidence == "" {
		r.Confidence = models.ConfidenceTBD
	}
	if r.Status == "" {
		r.Status = models.RunPlanned
	}
	if !r.Confidence.Valid() {
		return models.WiringRun{}, invalid("confidence", r.Confidence)
	}
	if !r.Status.Valid() {
		return models.WiringRun{}, invalid("status", r.Status)
	}
	err := s.apply("add wiring run", func(next *models.Ops) error {
		if findRun(next.WiringRuns, r.CircuitID) >= 0 {
			return duplicate("wiring run", r.CircuitID)
		}
		next.WiringRuns = prepend(next.WiringRuns, r)
		return nil
	})
	if err != nil {
		return models.WiringRun{}, err
	}
	return r, nil
}

// UpdateWiringRun applies p to the run with circuit ID id.
func (s *Session) UpdateWiringRun(id string, p WiringPatch) (models.WiringRun, error) {
	if p.Confidence != nil && !p.Confidence.Valid() {
		return models.WiringRun{}, invalid("confidence", *p.Confidence)
	}
	if p.Status != nil && !p.Status.Valid() {
		return models.WiringRun{}, invalid("status", *p.Status)
	}
	var out models.WiringRun
	err := s.apply("update wiring run", func(next *models.Ops) error {
		i := findRun(next.WiringRuns, id)
		if i < 0 {
			return notFound("wiring run", id)
		}
		r := next.WiringRuns[i]
		if p.CircuitID != nil {
			newID := strings.TrimSpace(*p.CircuitID)
			if newID == "" {
				return invalid("circuitId", `""`)
			}
			if newID != r.CircuitID && findRun(next.WiringRuns, newID) >= 0 {
				return duplicate("wiring run", newID)
			}
			r.CircuitID = newID
		}
		setString(&r.FromTo, p.FromTo)
		setString(&r.WireType, p.WireType)
		setString(&r.GaugeOwned, p.GaugeOwned)
		setString(&r.ProtectionShown, p.ProtectionShown)
		setString(&r.FuseID, p.FuseID)
		setString(&r.Notes, p.Notes)
		if p.Confidence != nil {
			r.Confidence = *p.Confidence
		}
		if p.Status != nil {
			r.Status = *p.Status
		}
		next.WiringRuns[i] = r
		out = r
		return nil
	})
	return out, err
}

// SetWiringDone checks or unchecks a run. Checking forces the done status;
// unchecking a done run returns it to planned and leaves other statuses
// alone.
func (s *Session) SetWiringDone(id string, done bool) (models.WiringRun, error) {
	var out models.WiringRun
	err := s.apply("set wiring done", func(next *models.Ops) error {
		i := findRun(next.WiringRuns, id)
		if i < 0 {
			return notFound("wiring run", id)
		}
		r := &next.WiringRuns[i]
		switch {
		case done:
			r.Status = models.RunDone
		case r.Status == models.RunDone:
			r.Status = models.RunPlanned
		}
		out = *r
		return nil
	})
	return out, err
}

// DuplicateWiringRun copies a run under a fresh ID, resets it to planned
// and inserts it at the top.
func (s *Session) DuplicateWiringRun(id string) (models.WiringRun, error) {
	var out models.WiringRun
	err := s.apply("duplicate wiring run", func(next *models.Ops) error {
		i := findRun(next.WiringRuns, id)
		if i < 0 {
			return notFound("wiring run", id)
		}
		out = next.WiringRuns[i]
		out.CircuitID = s.newID(ident.PrefixWiringRun)
		out.Status = models.RunPlanned
		next.WiringRuns = prepend(next.WiringRuns, out)
		return nil
	})
	return out, err
}

// DeleteWiringRun removes every run with circuit ID id.
func (s *Session) DeleteWiringRun(id string) error {
	return s.apply("delete wiring run", func(next *models.Ops) error {
		n := len(next.WiringRuns)
		next.WiringRuns = slices.DeleteFunc(next.WiringRuns, func(r models.WiringRun) bool { return r.CircuitID == id })
		if len(next.WiringRuns) == n {
			return notFound("wiring run", id)
		}
		return nil
	})
}

// ImportWiringRuns merges incoming runs ahead of the existing ones. When a
// circuit ID appears more than once the first occurrence wins, so incoming
// rows replace existing rows with the same ID.
func (s *Session) ImportWiringRuns(incoming []models.WiringRun) (added, replaced int, err error) {
	err = s.apply("import wiring runs", func(next *models.Ops) error {
		existing := make(map[string]bool, len(next.WiringRuns))
		for _, r := range next.WiringRuns {
			existing[r.CircuitID] = true
		}
		merged := dedupe(append(slices.Clone(incoming), next.WiringRuns...),
			func(r models.WiringRun) string { return r.CircuitID })
		seen := map[string]bool{}
		for _, r := range incoming {
			if seen[r.CircuitID] {
				continue
			}
			seen[r.CircuitID] = true
			if existing[r.CircuitID] {
				replaced++
			} else {
				added++
			}
		}
		next.WiringRuns = merged
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return added, replaced, nil
}

// dedupe keeps the first element for each key.
func dedupe[T any](items []T, key func(T) string) []T {
	seen := make(map[string]bool, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		k := key(it)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, it)
	}
	return out
}

func duplicate(kind, id string) error {
	return wrapf(ErrDuplicate, "%s %q", kind, id)
}
