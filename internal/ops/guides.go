package ops

import (
	"slices"

	"github.com/zulandar/vanops/internal/guidetree"
	"github.com/zulandar/vanops/internal/ident"
	"github.com/zulandar/vanops/internal/models"
)

// GuidePatch changes the non-nil fields of a guide body.
type GuidePatch struct {
	Title     *string
	Category  *string
	Tools     *[]string
	Materials *[]string
	Specs     *[]string
	Warnings  *[]string
	Notes     *string
}

// StepPatch changes the non-nil fields of a guide step.
type StepPatch struct {
	Title     *string
	Detail    *string
	Checklist *[]string
}

func (s *Session) tree(ops *models.Ops) *guidetree.Tree {
	t := guidetree.FromNodes(ops.GuideTree)
	t.NewID = s.newID
	return t
}

// AddFolder creates a folder under parentID, or at the root when parentID
// is empty.
func (s *Session) AddFolder(parentID, title string) (models.GuideNode, error) {
	var out models.GuideNode
	err := s.apply("add folder", func(next *models.Ops) error {
		t := s.tree(next)
		n, err := t.AddFolder(parentID, title)
		if err != nil {
			return err
		}
		next.GuideTree = t.Nodes()
		out = n
		return nil
	})
	return out, err
}

// AddGuide creates an empty guide body and a tree node referencing it under
// parentID.
func (s *Session) AddGuide(parentID, title string) (models.GuideNode, models.Guide, error) {
	var node models.GuideNode
	var guide models.Guide
	err := s.apply("add guide", func(next *models.Ops) error {
		guide = models.NewGuide(s.newID(ident.PrefixGuide))
		if title != "" {
			guide.Title = title
		}
		t := s.tree(next)
		n, err := t.AddGuide(parentID, guide.Title, guide.ID)
		if err != nil {
			return err
		}
		next.GuideTree = t.Nodes()
		next.GuidesByID[guide.ID] = guide
		node = n
		return nil
	})
	if err != nil {
		return models.GuideNode{}, models.Guide{}, err
	}
	return node, guide.Clone(), nil
}

// RenameNode retitles every tree node with nodeID.
func (s *Session) RenameNode(nodeID, title string) error {
	return s.apply("rename node", func(next *models.Ops) error {
		t := s.tree(next)
		if !t.Update(nodeID, func(n *models.GuideNode) { n.Title = title }) {
			return notFound("guide node", nodeID)
		}
		next.GuideTree = t.Nodes()
		return nil
	})
}

// DeleteNode removes a node and its subtree along with every guide body
// the removed nodes referenced. It returns the deleted guide IDs.
func (s *Session) DeleteNode(nodeID string) ([]string, error) {
	var removed []string
	err := s.apply("delete node", func(next *models.Ops) error {
		t := s.tree(next)
		if _, ok := t.Find(nodeID); !ok {
			return notFound("guide node", nodeID)
		}
		removed = t.Remove(nodeID)
		for _, id := range removed {
			delete(next.GuidesByID, id)
		}
		next.GuideTree = t.Nodes()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

func (s *Session) updateGuide(action, guideID string, fn func(g *models.Guide) error) error {
	return s.apply(action, func(next *models.Ops) error {
		g, ok := next.GuidesByID[guideID]
		if !ok {
			return notFound("guide", guideID)
		}
		if err := fn(&g); err != nil {
			return err
		}
		next.GuidesByID[guideID] = g
		return nil
	})
}

// UpdateGuide applies p to the guide body guideID.
func (s *Session) UpdateGuide(guideID string, p GuidePatch) (models.Guide, error) {
	var out models.Guide
	err := s.updateGuide("update guide", guideID, func(g *models.Guide) error {
		setString(&g.Title, p.Title)
		setString(&g.Category, p.Category)
		setStrings(&g.Tools, p.Tools)
		setStrings(&g.Materials, p.Materials)
		setStrings(&g.Specs, p.Specs)
		setStrings(&g.Warnings, p.Warnings)
		setString(&g.Notes, p.Notes)
		out = g.Clone()
		return nil
	})
	return out, err
}

func findStep(steps []models.GuideStep, id string) int {
	return slices.IndexFunc(steps, func(st models.GuideStep) bool { return st.ID == id })
}

// AddStep appends a step to guide guideID.
func (s *Session) AddStep(guideID, title string) (models.GuideStep, error) {
	if title == "" {
		title = models.DefaultStepTitle
	}
	var out models.GuideStep
	err := s.updateGuide("add step", guideID, func(g *models.Guide) error {
		out = models.GuideStep{ID: s.newID(ident.PrefixStep), Title: title, Checklist: []string{}}
		g.Steps = append(g.Steps, out)
		return nil
	})
	return out, err
}

// UpdateStep applies p to step stepID of guide guideID.
func (s *Session) UpdateStep(guideID, stepID string, p StepPatch) (models.GuideStep, error) {
	var out models.GuideStep
	err := s.updateGuide("update step", guideID, func(g *models.Guide) error {
		i := findStep(g.Steps, stepID)
		if i < 0 {
			return notFound("step", stepID)
		}
		st := g.Steps[i]
		setString(&st.Title, p.Title)
		setString(&st.Detail, p.Detail)
		setStrings(&st.Checklist, p.Checklist)
		g.Steps[i] = st
		out = st
		return nil
	})
	return out, err
}

// DeleteStep removes step stepID from guide guideID.
func (s *Session) DeleteStep(guideID, stepID string) error {
	return s.updateGuide("delete step", guideID, func(g *models.Guide) error {
		i := findStep(g.Steps, stepID)
		if i < 0 {
			return notFound("step", stepID)
		}
		g.Steps = slices.Delete(g.Steps, i, i+1)
		return nil
	})
}
