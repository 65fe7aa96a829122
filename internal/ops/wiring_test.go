package ops

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/zulandar/vanops/internal/models"
)

func runIDs(s *Session) []string {
	var out []string
	for _, r := range s.Ops().WiringRuns {
		out = append(out, r.CircuitID)
	}
	return out
}

func TestAddWiringRun_DefaultsAndPrepends(t *testing.T) {
	s, st := newTestSession(t, nil)
	first, err := s.AddWiringRun(models.WiringRun{})
	if err != nil {
		t.Fatalf("AddWiringRun: %v", err)
	}
	want := models.WiringRun{CircuitID: "HC-1", Confidence: models.ConfidenceTBD, Status: models.RunPlanned}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	s.AddWiringRun(models.WiringRun{CircuitID: " DC-001 ", FromTo: "Battery -> Lynx"})
	if diff := cmp.Diff([]string{"DC-001", "HC-1"}, runIDs(s)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if len(st.saved) != 2 {
		t.Errorf("saves = %d, want 2", len(st.saved))
	}
}

func TestAddWiringRun_Rejects(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.AddWiringRun(models.WiringRun{CircuitID: "DC-001"})

	if _, err := s.AddWiringRun(models.WiringRun{CircuitID: "DC-001"}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate error = %v", err)
	}
	if _, err := s.AddWiringRun(models.WiringRun{Status: "finished"}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("bad status error = %v", err)
	}
	if _, err := s.AddWiringRun(models.WiringRun{Confidence: "maybe"}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("bad confidence error = %v", err)
	}
}

func TestUpdateWiringRun(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.AddWiringRun(models.WiringRun{CircuitID: "DC-001", Notes: "old"})
	s.AddWiringRun(models.WiringRun{CircuitID: "DC-002"})

	conf := models.ConfidenceConfirmed
	got, err := s.UpdateWiringRun("DC-001", WiringPatch{
		GaugeOwned: str("2/0"),
		FuseID:     str("FZ-1"),
		Confidence: &conf,
	})
	if err != nil {
		t.Fatalf("UpdateWiringRun: %v", err)
	}
	want := models.WiringRun{CircuitID: "DC-001", GaugeOwned: "2/0", FuseID: "FZ-1",
		Confidence: models.ConfidenceConfirmed, Status: models.RunPlanned, Notes: "old"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.UpdateWiringRun("DC-001", WiringPatch{CircuitID: str("DC-002")}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("rename onto existing error = %v", err)
	}
	if _, err := s.UpdateWiringRun("DC-001", WiringPatch{CircuitID: str("  ")}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("blank rename error = %v", err)
	}
	bad := models.RunStatus("nope")
	if _, err := s.UpdateWiringRun("DC-001", WiringPatch{Status: &bad}); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("bad status error = %v", err)
	}
	if _, err := s.UpdateWiringRun("DC-001", WiringPatch{CircuitID: str("DC-100")}); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if diff := cmp.Diff([]string{"DC-002", "DC-100"}, runIDs(s)); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestSetWiringDone(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.AddWiringRun(models.WiringRun{CircuitID: "A", Status: models.RunIssue})

	got, err := s.SetWiringDone("A", true)
	if err != nil || got.Status != models.RunDone {
		t.Fatalf("check = %+v, %v", got, err)
	}
	got, _ = s.SetWiringDone("A", false)
	if got.Status != models.RunPlanned {
		t.Errorf("uncheck done run: status = %q, want planned", got.Status)
	}

	inProgress := models.RunInProgress
	s.UpdateWiringRun("A", WiringPatch{Status: &inProgress})
	got, _ = s.SetWiringDone("A", false)
	if got.Status != models.RunInProgress {
		t.Errorf("uncheck open run: status = %q, want unchanged in_progress", got.Status)
	}
	if _, err := s.SetWiringDone("missing", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing error = %v", err)
	}
}

func TestDuplicateWiringRun(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.AddWiringRun(models.WiringRun{CircuitID: "DC-001", FromTo: "Battery -> Lynx", Status: models.RunDone,
		Confidence: models.ConfidenceConfirmed})

	dup, err := s.DuplicateWiringRun("DC-001")
	if err != nil {
		t.Fatalf("DuplicateWiringRun: %v", err)
	}
	if dup.CircuitID != "HC-1" || dup.Status != models.RunPlanned || dup.FromTo != "Battery -> Lynx" ||
		dup.Confidence != models.ConfidenceConfirmed {
		t.Errorf("dup = %+v", dup)
	}
	if diff := cmp.Diff([]string{"HC-1", "DC-001"}, runIDs(s)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteWiringRun(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.AddWiringRun(models.WiringRun{CircuitID: "A"})
	s.AddWiringRun(models.WiringRun{CircuitID: "B"})
	if err := s.DeleteWiringRun("A"); err != nil {
		t.Fatalf("DeleteWiringRun: %v", err)
	}
	if diff := cmp.Diff([]string{"B"}, runIDs(s)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if err := s.DeleteWiringRun("A"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v", err)
	}
}

func TestImportWiringRuns_IncomingFirstDedupe(t *testing.T) {
	s, _ := newTestSession(t, nil)
	s.AddWiringRun(models.WiringRun{CircuitID: "B", Notes: "existing"})
	s.AddWiringRun(models.WiringRun{CircuitID: "A", Notes: "existing"})

	incoming := []models.WiringRun{
		{CircuitID: "B", Notes: "incoming", Confidence: models.ConfidenceTBD, Status: models.RunPlanned},
		{CircuitID: "C", Notes: "incoming", Confidence: models.ConfidenceTBD, Status: models.RunPlanned},
		{CircuitID: "C", Notes: "repeat", Confidence: models.ConfidenceTBD, Status: models.RunPlanned},
	}
	added, replaced, err := s.ImportWiringRuns(incoming)
	if err != nil {
		t.Fatalf("ImportWiringRuns: %v", err)
	}
	if added != 1 || replaced != 1 {
		t.Errorf("added, replaced = %d, %d; want 1, 1", added, replaced)
	}
	runs := s.Ops().WiringRuns
	if diff := cmp.Diff([]string{"B", "C", "A"}, runIDs(s)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if runs[0].Notes != "incoming" || runs[1].Notes != "incoming" {
		t.Errorf("incoming rows did not win: %+v", runs)
	}
}
