package views

import (
	"slices"

	"github.com/zulandar/vanops/internal/models"
)

// WiringQuery selects and orders wiring runs. Zero-valued filters match
// everything.
type WiringQuery struct {
	Search     string
	Confidence models.Confidence
	Status     models.RunStatus
	OnlyOpen   bool
	SortKey    string // one of WiringSortKeys; empty means circuitId
	Desc       bool
}

// WiringSortKeys lists the columns wiring runs can be sorted by.
var WiringSortKeys = []string{
	"circuitId", "fromTo", "wireType", "gaugeOwned", "protectionShown",
	"fuseId", "confidence", "status", "notes",
}

func wiringField(r models.WiringRun, key string) string {
	switch key {
	case "fromTo":
		return r.FromTo
	case "wireType":
		return r.WireType
	case "gaugeOwned":
		return r.GaugeOwned
	case "protectionShown":
		return r.ProtectionShown
	case "fuseId":
		return r.FuseID
	case "confidence":
		return string(r.Confidence)
	case "status":
		return string(r.Status)
	case "notes":
		return r.Notes
	default:
		return r.CircuitID
	}
}

// FilterWiring returns the runs matching q in q's order. The search also
// covers the label, amp, type and location of each run's linked fuse.
// Runs that compare equal keep their original relative order.
func FilterWiring(runs []models.WiringRun, fuses []models.Fuse, q WiringQuery) []models.WiringRun {
	fuseByID := make(map[string]models.Fuse, len(fuses))
	for _, f := range fuses {
		if f.ID != "" {
			fuseByID[f.ID] = f
		}
	}
	search := normQuery(q.Search)

	out := make([]models.WiringRun, 0, len(runs))
	for _, r := range runs {
		if q.OnlyOpen && r.Done() {
			continue
		}
		if q.Confidence != "" && r.Confidence != q.Confidence {
			continue
		}
		if q.Status != "" && r.Status != q.Status {
			continue
		}
		f := fuseByID[r.FuseID]
		if !matches(search,
			r.CircuitID, r.FromTo, r.WireType, r.GaugeOwned, r.ProtectionShown, r.Notes,
			r.FuseID, f.Label, f.Amp, f.FuseType, f.Location) {
			continue
		}
		out = append(out, r)
	}

	slices.SortStableFunc(out, func(a, b models.WiringRun) int {
		c := compareFold(wiringField(a, q.SortKey), wiringField(b, q.SortKey))
		if q.Desc {
			return -c
		}
		return c
	})
	return out
}

// WiringStats summarizes progress across all runs.
type WiringStats struct {
	Total             int
	Done              int
	Percent           int
	Issues            int
	NeedsConfirmation int
	TBD               int
}

// WiringStatsOf counts done runs, issues and unconfirmed runs.
func WiringStatsOf(runs []models.WiringRun) WiringStats {
	s := WiringStats{Total: len(runs)}
	for _, r := range runs {
		if r.Done() {
			s.Done++
		}
		if r.Status == models.RunIssue {
			s.Issues++
		}
		switch r.Confidence {
		case models.ConfidenceNeedsConfirmation:
			s.NeedsConfirmation++
		case models.ConfidenceTBD:
			s.TBD++
		}
	}
	s.Percent = percent(s.Done, s.Total)
	return s
}

// FuseFor returns the fuse a run links to, if any.
func FuseFor(r models.WiringRun, fuses []models.Fuse) (models.Fuse, bool) {
	if r.FuseID == "" {
		return models.Fuse{}, false
	}
	for _, f := range fuses {
		if f.ID == r.FuseID {
			return f, true
		}
	}
	return models.Fuse{}, false
}
