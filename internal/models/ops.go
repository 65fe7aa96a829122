package models

import (
	"maps"
	"slices"
)

// Ops is the single persisted aggregate holding every collection.
type Ops struct {
	WiringRuns  []WiringRun      `json:"wiringRuns"`
	Parts       []Part           `json:"parts"`
	Fuses       []Fuse           `json:"fuses"`
	Phases      []Phase          `json:"phases"`
	GuidesByID  map[string]Guide `json:"guidesById"`
	GuideTree   []GuideNode      `json:"guideTree"`
	ImagesIndex map[string]any   `json:"imagesIndex"`
}

// Empty returns an aggregate with every collection present and empty.
func Empty() *Ops {
	return &Ops{
		WiringRuns:  []WiringRun{},
		Parts:       []Part{},
		Fuses:       []Fuse{},
		Phases:      []Phase{},
		GuidesByID:  map[string]Guide{},
		GuideTree:   []GuideNode{},
		ImagesIndex: map[string]any{},
	}
}

// Clone returns a deep copy of o. ImagesIndex values are opaque and shared.
func (o *Ops) Clone() *Ops {
	c := &Ops{
		WiringRuns:  slices.Clone(o.WiringRuns),
		Fuses:       slices.Clone(o.Fuses),
		Parts:       make([]Part, len(o.Parts)),
		Phases:      make([]Phase, len(o.Phases)),
		GuidesByID:  make(map[string]Guide, len(o.GuidesByID)),
		GuideTree:   cloneNodes(o.GuideTree),
		ImagesIndex: maps.Clone(o.ImagesIndex),
	}
	if c.WiringRuns == nil {
		c.WiringRuns = []WiringRun{}
	}
	if c.Fuses == nil {
		c.Fuses = []Fuse{}
	}
	if c.ImagesIndex == nil {
		c.ImagesIndex = map[string]any{}
	}
	for i, p := range o.Parts {
		c.Parts[i] = p.Clone()
	}
	for i, p := range o.Phases {
		c.Phases[i] = p.Clone()
	}
	for id, g := range o.GuidesByID {
		c.GuidesByID[id] = g.Clone()
	}
	return c
}

func cloneNodes(nodes []GuideNode) []GuideNode {
	out := make([]GuideNode, len(nodes))
	for i, n := range nodes {
		if n.Children != nil {
			n.Children = cloneNodes(n.Children)
		}
		out[i] = n
	}
	return out
}
