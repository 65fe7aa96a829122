package models

import "slices"

// NodeType distinguishes folders from guide references in the guide tree.
type NodeType string

const (
	NodeFolder NodeType = "folder"
	NodeGuide  NodeType = "guide"
)

// Default titles for newly created guide library entries.
const (
	DefaultGuideTitle  = "New Guide"
	DefaultFolderTitle = "New Folder"
	DefaultStepTitle   = "New Step"
)

// GuideStep is one step of an installation guide.
type GuideStep struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Detail    string   `json:"detail"`
	Checklist []string `json:"checklist"`
}

// Guide is the body of an installation guide, stored in Ops.GuidesByID.
type Guide struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Category  string      `json:"category"`
	Tools     []string    `json:"tools"`
	Materials []string    `json:"materials"`
	Specs     []string    `json:"specs"`
	Warnings  []string    `json:"warnings"`
	Steps     []GuideStep `json:"steps"`
	Notes     string      `json:"notes"`
}

// NewGuide returns an empty guide body with the given id.
func NewGuide(id string) Guide {
	return Guide{
		ID:        id,
		Title:     DefaultGuideTitle,
		Tools:     []string{},
		Materials: []string{},
		Specs:     []string{},
		Warnings:  []string{},
		Steps:     []GuideStep{},
	}
}

// Clone returns a deep copy of g.
func (g Guide) Clone() Guide {
	g.Tools = slices.Clone(g.Tools)
	g.Materials = slices.Clone(g.Materials)
	g.Specs = slices.Clone(g.Specs)
	g.Warnings = slices.Clone(g.Warnings)
	steps := make([]GuideStep, len(g.Steps))
	for i, s := range g.Steps {
		s.Checklist = slices.Clone(s.Checklist)
		steps[i] = s
	}
	g.Steps = steps
	return g
}

// GuideNode is one entry in the guide library tree. Folders carry Children;
// guide nodes carry GuideID.
type GuideNode struct {
	ID       string      `json:"id"`
	Type     NodeType    `json:"type"`
	Title    string      `json:"title"`
	Children []GuideNode `json:"children,omitempty"`
	GuideID  string      `json:"guideId,omitempty"`
}
