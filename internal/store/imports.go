package store

import (
	"fmt"

	"github.com/zulandar/vanops/internal/models"
	"github.com/zulandar/vanops/internal/normalize"
)

// ParsePhasesImport reads a phases file: either a bare array of phases or
// an object with a "phases" array.
func ParsePhasesImport(text []byte) ([]models.Phase, error) {
	raw, err := decode(text)
	if err != nil {
		return nil, err
	}
	switch v := raw.(type) {
	case []any:
		return normalize.Phases(v), nil
	case map[string]any:
		if arr, ok := v["phases"].([]any); ok {
			return normalize.Phases(arr), nil
		}
	}
	return nil, fmt.Errorf("%w: expected an array of phases or an object with a phases array", ErrInvalidShape)
}

// wiringPaths lists where a wiring import may keep its rows, in lookup order.
var wiringPaths = [][]string{
	{"rows"},
	{"wiringRuns"},
	{"runs"},
	{"data", "rows"},
	{"data", "wiringRuns"},
	{"ops", "wiringRuns"},
}

// ParseWiringImport reads a wiring file: a bare array of runs, or an object
// holding the array under one of the known paths.
func ParseWiringImport(text []byte) ([]models.WiringRun, error) {
	raw, err := decode(text)
	if err != nil {
		return nil, err
	}
	if arr, ok := raw.([]any); ok {
		return normalize.WiringRuns(arr), nil
	}
	if m, ok := raw.(map[string]any); ok {
		for _, path := range wiringPaths {
			if arr, ok := lookup(m, path).([]any); ok {
				return normalize.WiringRuns(arr), nil
			}
		}
	}
	return nil, fmt.Errorf("%w: no wiring rows found", ErrInvalidShape)
}

func lookup(m map[string]any, path []string) any {
	var cur any = m
	for _, k := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = obj[k]
	}
	return cur
}
