// Package guidetree manages the guide library tree. Nodes live in a flat
// arena and reference each other by index; the nested shape is rebuilt only
// when the tree is persisted.
package guidetree

import (
	"errors"
	"fmt"
	"slices"

	"github.com/zulandar/vanops/internal/ident"
	"github.com/zulandar/vanops/internal/models"
)

// Errors returned by the Add operations.
var (
	ErrParentNotFound  = errors.New("guidetree: parent not found")
	ErrParentNotFolder = errors.New("guidetree: parent is not a folder")
)

const noParent = -1

type entry struct {
	node     models.GuideNode // Children is always nil here
	parent   int
	children []int
	dead     bool
}

// Tree is an arena of guide-tree nodes. The zero value is an empty tree.
type Tree struct {
	entries []entry
	roots   []int
	byID    map[string][]int

	// NewID mints node IDs for AddFolder and AddGuide. Nil uses ident.New.
	NewID func(prefix string) string
}

// FromNodes builds a tree from the nested persisted shape.
func FromNodes(nodes []models.GuideNode) *Tree {
	t := &Tree{}
	for _, n := range nodes {
		t.roots = append(t.roots, t.insert(n, noParent))
	}
	return t
}

func (t *Tree) insert(n models.GuideNode, parent int) int {
	children := n.Children
	n.Children = nil
	idx := len(t.entries)
	t.entries = append(t.entries, entry{node: n, parent: parent})
	if t.byID == nil {
		t.byID = map[string][]int{}
	}
	t.byID[n.ID] = append(t.byID[n.ID], idx)
	for _, c := range children {
		child := t.insert(c, idx)
		t.entries[idx].children = append(t.entries[idx].children, child)
	}
	return idx
}

// Nodes materializes the nested shape. Folders always carry a non-nil
// Children slice; guide nodes never do.
func (t *Tree) Nodes() []models.GuideNode {
	return t.build(t.roots)
}

func (t *Tree) build(idxs []int) []models.GuideNode {
	out := make([]models.GuideNode, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, t.materialize(i))
	}
	return out
}

func (t *Tree) materialize(i int) models.GuideNode {
	e := t.entries[i]
	n := e.node
	if n.Type == models.NodeFolder {
		n.Children = t.build(e.children)
	}
	return n
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	n := 0
	t.walk(t.roots, 0, func(int, int) bool { n++; return true })
	return n
}

// walk visits idxs and their descendants in pre-order. fn returning false
// stops the walk.
func (t *Tree) walk(idxs []int, depth int, fn func(idx, depth int) bool) bool {
	for _, i := range idxs {
		if !fn(i, depth) {
			return false
		}
		if !t.walk(t.entries[i].children, depth+1, fn) {
			return false
		}
	}
	return true
}

// matches returns the live entries with id, in pre-order.
func (t *Tree) matches(id string) []int {
	var out []int
	for _, i := range t.byID[id] {
		if !t.entries[i].dead {
			out = append(out, i)
		}
	}
	slices.SortFunc(out, t.order)
	return out
}

// order compares two live entries by pre-order position.
func (t *Tree) order(a, b int) int {
	pa, pb := t.path(a), t.path(b)
	for k := 0; k < len(pa) && k < len(pb); k++ {
		if pa[k] != pb[k] {
			return pa[k] - pb[k]
		}
	}
	return len(pa) - len(pb)
}

// path returns the sibling positions from the root down to i.
func (t *Tree) path(i int) []int {
	var rev []int
	for i != noParent {
		p := t.entries[i].parent
		siblings := t.roots
		if p != noParent {
			siblings = t.entries[p].children
		}
		rev = append(rev, slices.Index(siblings, i))
		i = p
	}
	slices.Reverse(rev)
	return rev
}

// Find returns the first node with id in pre-order, including its subtree.
func (t *Tree) Find(id string) (models.GuideNode, bool) {
	m := t.matches(id)
	if len(m) == 0 {
		return models.GuideNode{}, false
	}
	return t.materialize(m[0]), true
}

// Parent returns the ID of the folder holding the first node with id. Root
// nodes report an empty parent.
func (t *Tree) Parent(id string) (string, bool) {
	m := t.matches(id)
	if len(m) == 0 {
		return "", false
	}
	p := t.entries[m[0]].parent
	if p == noParent {
		return "", true
	}
	return t.entries[p].node.ID, true
}

// NodeForGuide returns the first guide node in pre-order that references
// guideID.
func (t *Tree) NodeForGuide(guideID string) (models.GuideNode, bool) {
	var found models.GuideNode
	ok := false
	t.walk(t.roots, 0, func(i, _ int) bool {
		n := t.entries[i].node
		if n.Type == models.NodeGuide && n.GuideID == guideID {
			found, ok = n, true
			return false
		}
		return true
	})
	return found, ok
}

// Update applies fn to every node with id and reports whether any matched.
// fn may change Title and GuideID; ID, Type and Children are kept.
func (t *Tree) Update(id string, fn func(*models.GuideNode)) bool {
	m := t.matches(id)
	for _, i := range m {
		n := t.entries[i].node
		fn(&n)
		n.ID = t.entries[i].node.ID
		n.Type = t.entries[i].node.Type
		n.Children = nil
		t.entries[i].node = n
	}
	return len(m) > 0
}

// Remove deletes every node with id together with its subtree and returns
// the guide IDs referenced by the removed guide nodes, deduplicated in
// pre-order.
func (t *Tree) Remove(id string) []string {
	var removed []string
	seen := map[string]bool{}
	for _, i := range t.matches(id) {
		if t.entries[i].dead {
			continue
		}
		t.walk([]int{i}, 0, func(j, _ int) bool {
			n := t.entries[j].node
			if n.Type == models.NodeGuide && n.GuideID != "" && !seen[n.GuideID] {
				seen[n.GuideID] = true
				removed = append(removed, n.GuideID)
			}
			t.entries[j].dead = true
			return true
		})
		t.detach(i)
	}
	return removed
}

func (t *Tree) detach(i int) {
	p := t.entries[i].parent
	if p == noParent {
		t.roots = slices.DeleteFunc(t.roots, func(x int) bool { return x == i })
		return
	}
	t.entries[p].children = slices.DeleteFunc(t.entries[p].children, func(x int) bool { return x == i })
}

// CollectGuideIDs returns the guide IDs referenced by the first node with
// id and its descendants, in pre-order.
func (t *Tree) CollectGuideIDs(id string) []string {
	m := t.matches(id)
	if len(m) == 0 {
		return nil
	}
	return collect(t.materialize(m[0]))
}

func collect(n models.GuideNode) []string {
	var out []string
	if n.Type == models.NodeGuide && n.GuideID != "" {
		out = append(out, n.GuideID)
	}
	for _, c := range n.Children {
		out = append(out, collect(c)...)
	}
	return out
}

// Flatten returns every node in pre-order, without children.
func (t *Tree) Flatten() []models.GuideNode {
	var out []models.GuideNode
	t.walk(t.roots, 0, func(i, _ int) bool {
		out = append(out, t.entries[i].node)
		return true
	})
	return out
}

// Walk calls fn for every node in pre-order with its depth (roots are 0).
func (t *Tree) Walk(fn func(n models.GuideNode, depth int)) {
	t.walk(t.roots, 0, func(i, depth int) bool {
		fn(t.entries[i].node, depth)
		return true
	})
}

// AddFolder appends a folder under the first node with parentID, or at the
// root when parentID is empty.
func (t *Tree) AddFolder(parentID, title string) (models.GuideNode, error) {
	if title == "" {
		title = models.DefaultFolderTitle
	}
	return t.add(parentID, models.GuideNode{
		ID:    t.newID(ident.PrefixFolder),
		Type:  models.NodeFolder,
		Title: title,
	})
}

// AddGuide appends a node referencing guideID under parentID.
func (t *Tree) AddGuide(parentID, title, guideID string) (models.GuideNode, error) {
	if title == "" {
		title = models.DefaultGuideTitle
	}
	return t.add(parentID, models.GuideNode{
		ID:      t.newID(ident.PrefixNode),
		Type:    models.NodeGuide,
		Title:   title,
		GuideID: guideID,
	})
}

func (t *Tree) add(parentID string, n models.GuideNode) (models.GuideNode, error) {
	if parentID == "" {
		t.roots = append(t.roots, t.insert(n, noParent))
		return t.materialize(t.roots[len(t.roots)-1]), nil
	}
	m := t.matches(parentID)
	if len(m) == 0 {
		return models.GuideNode{}, fmt.Errorf("%w: %s", ErrParentNotFound, parentID)
	}
	p := m[0]
	if t.entries[p].node.Type != models.NodeFolder {
		return models.GuideNode{}, fmt.Errorf("%w: %s", ErrParentNotFolder, parentID)
	}
	idx := t.insert(n, p)
	t.entries[p].children = append(t.entries[p].children, idx)
	return t.materialize(idx), nil
}

func (t *Tree) newID(prefix string) string {
	if t.NewID != nil {
		return t.NewID(prefix)
	}
	return ident.New(prefix)
}
