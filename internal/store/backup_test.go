package store

import (
	"errors"
	"strings"
	"testing"

	"github.com/zulandar/vanops/internal/models"
)

const minimalBackup = `{"wiringRuns":[],"parts":[],"phases":[],"guidesById":{},"guideTree":[]}`

func TestParseBackup_Minimal(t *testing.T) {
	ops, err := ParseBackup([]byte(minimalBackup))
	if err != nil {
		t.Fatalf("ParseBackup: %v", err)
	}
	if ops.Fuses == nil || ops.ImagesIndex == nil {
		t.Error("optional collections not defaulted")
	}
}

func TestParseBackup_RejectsNonJSON(t *testing.T) {
	_, err := ParseBackup([]byte("not json"))
	if !errors.Is(err, ErrInvalidJSON) {
		t.Fatalf("error = %v, want ErrInvalidJSON", err)
	}
}

func TestParseBackup_RejectsNonObject(t *testing.T) {
	for _, text := range []string{`[]`, `null`, `"x"`, `3`} {
		_, err := ParseBackup([]byte(text))
		if !errors.Is(err, ErrInvalidShape) {
			t.Errorf("ParseBackup(%s) error = %v, want ErrInvalidShape", text, err)
		}
	}
}

func TestParseBackup_EachRequiredKeyMissing(t *testing.T) {
	for _, key := range RequiredKeys {
		t.Run(key, func(t *testing.T) {
			text := strings.Replace(minimalBackup, `"`+key+`":`, `"_`+key+`":`, 1)
			_, err := ParseBackup([]byte(text))
			if !errors.Is(err, ErrInvalidShape) {
				t.Fatalf("error = %v, want ErrInvalidShape", err)
			}
			if !strings.Contains(err.Error(), key) {
				t.Errorf("error = %q, want to name %q", err.Error(), key)
			}
		})
	}
}

func TestValidateShape_OptionalKeys(t *testing.T) {
	base := func() map[string]any {
		return map[string]any{
			"wiringRuns": []any{}, "parts": []any{}, "phases": []any{},
			"guidesById": map[string]any{}, "guideTree": []any{},
		}
	}
	tests := []struct {
		name    string
		key     string
		value   any
		wantErr string
	}{
		{"fuses array", "fuses", []any{}, ""},
		{"fuses object", "fuses", map[string]any{}, "fuses must be an array"},
		{"fuses null", "fuses", nil, "fuses must be an array"},
		{"images object", "imagesIndex", map[string]any{}, ""},
		{"images array", "imagesIndex", []any{}, "imagesIndex must be an object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := base()
			m[tt.key] = tt.value
			err := ValidateShape(m)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateShape_RequiredValuesNotTypeChecked(t *testing.T) {
	m := map[string]any{
		"wiringRuns": "oops", "parts": nil, "phases": 4,
		"guidesById": []any{}, "guideTree": map[string]any{},
	}
	if err := ValidateShape(m); err != nil {
		t.Fatalf("ValidateShape = %v, want nil", err)
	}
	ops, err := ParseBackup([]byte(`{"wiringRuns":"oops","parts":null,"phases":4,"guidesById":[],"guideTree":{}}`))
	if err != nil {
		t.Fatalf("ParseBackup: %v", err)
	}
	if len(ops.WiringRuns) != 0 || ops.GuidesByID == nil {
		t.Errorf("ops = %+v", ops)
	}
}

func TestPreview(t *testing.T) {
	got := Preview(sampleOps())
	want := Counts{WiringRuns: 2, Parts: 2, Fuses: 1, Phases: 1, Tasks: 1, Guides: 1, TreeNodes: 3, Images: 1}
	if got != want {
		t.Errorf("Preview = %+v, want %+v", got, want)
	}
	if !strings.Contains(got.String(), "2 wiring runs") {
		t.Errorf("String() = %q", got.String())
	}
}

func TestParsePhasesImport(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"bare array", `[{"title":"Rough-in"},{"title":"Finish"}]`, 2},
		{"object", `{"phases":[{"title":"Rough-in","tasks":[{"title":"Drill"}]}]}`, 1},
		{"empty array", `[]`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePhasesImport([]byte(tt.text))
			if err != nil {
				t.Fatalf("ParsePhasesImport: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
			for _, p := range got {
				if p.ID == "" || p.Tasks == nil {
					t.Errorf("phase not normalized: %+v", p)
				}
			}
		})
	}
}

func TestParsePhasesImport_Rejects(t *testing.T) {
	if _, err := ParsePhasesImport([]byte("{")); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("bad JSON error = %v", err)
	}
	for _, text := range []string{`{"phases":{}}`, `{}`, `"phases"`} {
		if _, err := ParsePhasesImport([]byte(text)); !errors.Is(err, ErrInvalidShape) {
			t.Errorf("ParsePhasesImport(%s) error = %v, want ErrInvalidShape", text, err)
		}
	}
}

func TestParseWiringImport_Locations(t *testing.T) {
	row := `{"circuitId":"DC-001","fromTo":"Battery -> Lynx"}`
	tests := []struct {
		name string
		text string
	}{
		{"bare array", `[` + row + `]`},
		{"rows", `{"rows":[` + row + `]}`},
		{"wiringRuns", `{"wiringRuns":[` + row + `]}`},
		{"runs", `{"runs":[` + row + `]}`},
		{"data.rows", `{"data":{"rows":[` + row + `]}}`},
		{"data.wiringRuns", `{"data":{"wiringRuns":[` + row + `]}}`},
		{"ops.wiringRuns", `{"ops":{"wiringRuns":[` + row + `]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWiringImport([]byte(tt.text))
			if err != nil {
				t.Fatalf("ParseWiringImport: %v", err)
			}
			if len(got) != 1 || got[0].CircuitID != "DC-001" || got[0].Status != models.RunPlanned {
				t.Errorf("got %+v", got)
			}
		})
	}
}

func TestParseWiringImport_FirstPathWins(t *testing.T) {
	got, err := ParseWiringImport([]byte(`{"runs":[{"circuitId":"B"}],"rows":[{"circuitId":"A"}]}`))
	if err != nil {
		t.Fatalf("ParseWiringImport: %v", err)
	}
	if len(got) != 1 || got[0].CircuitID != "A" {
		t.Errorf("got %+v, want rows to win", got)
	}
}

func TestParseWiringImport_Rejects(t *testing.T) {
	if _, err := ParseWiringImport([]byte("not json")); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("bad JSON error = %v", err)
	}
	for _, text := range []string{`{}`, `{"rows":"x"}`, `{"data":[1]}`, `12`} {
		if _, err := ParseWiringImport([]byte(text)); !errors.Is(err, ErrInvalidShape) {
			t.Errorf("ParseWiringImport(%s) error = %v, want ErrInvalidShape", text, err)
		}
	}
}
