package views

import (
	"strings"

	"github.com/zulandar/vanops/internal/models"
)

// FuseQuery selects fuses.
type FuseQuery struct {
	Search string
	Status models.FuseStatus
}

// FilterFuses returns the fuses matching q in their original order. Search
// covers label, location, fuse type, amp and notes.
func FilterFuses(fuses []models.Fuse, q FuseQuery) []models.Fuse {
	search := normQuery(q.Search)
	out := make([]models.Fuse, 0, len(fuses))
	for _, f := range fuses {
		if q.Status != "" && f.Status != q.Status {
			continue
		}
		if !matches(search, f.Label, f.Location, f.FuseType, f.Amp, f.Notes) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// FuseStats counts fuses on hand and still needed.
type FuseStats struct {
	Total  int
	Owned  int
	Needed int
}

// FuseStatsOf summarizes fuses. A fuse is owned when at least one is on
// hand and needed when fewer are owned than required.
func FuseStatsOf(fuses []models.Fuse) FuseStats {
	s := FuseStats{Total: len(fuses)}
	for _, f := range fuses {
		if f.QtyOwned > 0 {
			s.Owned++
		}
		if f.QtyNeed > f.QtyOwned {
			s.Needed++
		}
	}
	return s
}

// FuseLabel is the display string for a fuse, e.g. "Main (350A) - Class-T".
func FuseLabel(f models.Fuse) string {
	label := f.Label
	if label == "" {
		label = "Fuse"
	}
	bits := []string{label}
	if f.Amp != "" {
		bits = append(bits, "("+f.Amp+")")
	}
	if f.FuseType != "" {
		bits = append(bits, "- "+f.FuseType)
	}
	return strings.Join(bits, " ")
}
