package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/zulandar/vanops/internal/models"
	"github.com/zulandar/vanops/internal/normalize"
)

// RequiredKeys must all be present in a full backup.
var RequiredKeys = []string{"wiringRuns", "parts", "phases", "guidesById", "guideTree"}

// ParseBackup decodes a full backup. Text that is not JSON, is not an
// object, or fails ValidateShape is rejected; nothing else is inspected.
// The returned aggregate is normalized and ready to replace current state.
func ParseBackup(text []byte) (*models.Ops, error) {
	raw, err := decode(text)
	if err != nil {
		return nil, err
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level is not an object", ErrInvalidShape)
	}
	if err := ValidateShape(m); err != nil {
		return nil, err
	}
	return normalize.Ops(m), nil
}

// ValidateShape checks the top-level shape of a backup object.
func ValidateShape(m map[string]any) error {
	var missing []string
	for _, k := range RequiredKeys {
		if _, ok := m[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidShape, strings.Join(missing, ", "))
	}
	if v, ok := m["fuses"]; ok {
		if _, isArray := v.([]any); !isArray {
			return fmt.Errorf("%w: fuses must be an array", ErrInvalidShape)
		}
	}
	if v, ok := m["imagesIndex"]; ok {
		if _, isObject := v.(map[string]any); !isObject {
			return fmt.Errorf("%w: imagesIndex must be an object", ErrInvalidShape)
		}
	}
	return nil
}

// Counts summarizes an aggregate for import confirmation.
type Counts struct {
	WiringRuns int
	Parts      int
	Fuses      int
	Phases     int
	Tasks      int
	Guides     int
	TreeNodes  int
	Images     int
}

// Preview counts the records in ops.
func Preview(ops *models.Ops) Counts {
	c := Counts{
		WiringRuns: len(ops.WiringRuns),
		Parts:      len(ops.Parts),
		Fuses:      len(ops.Fuses),
		Phases:     len(ops.Phases),
		Guides:     len(ops.GuidesByID),
		TreeNodes:  countNodes(ops.GuideTree),
		Images:     len(ops.ImagesIndex),
	}
	for _, p := range ops.Phases {
		c.Tasks += len(p.Tasks)
	}
	return c
}

func (c Counts) String() string {
	return fmt.Sprintf("%d wiring runs, %d parts, %d fuses, %d phases (%d tasks), %d guides, %d tree nodes, %d images",
		c.WiringRuns, c.Parts, c.Fuses, c.Phases, c.Tasks, c.Guides, c.TreeNodes, c.Images)
}

func countNodes(nodes []models.GuideNode) int {
	n := len(nodes)
	for _, node := range nodes {
		n += countNodes(node.Children)
	}
	return n
}

func decode(text []byte) (any, error) {
	var raw any
	if err := json.Unmarshal(text, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return raw, nil
}
