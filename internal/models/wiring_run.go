package models

import "encoding/json"

// Confidence captures whether a wiring run's specification has been verified.
type Confidence string

const (
	ConfidenceConfirmed         Confidence = "confirmed"
	ConfidenceNeedsConfirmation Confidence = "needs_confirmation"
	ConfidenceTBD               Confidence = "tbd"
)

// Confidences lists every confidence value in display order.
var Confidences = []Confidence{ConfidenceConfirmed, ConfidenceNeedsConfirmation, ConfidenceTBD}

// Valid reports whether c is a known confidence value.
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceConfirmed, ConfidenceNeedsConfirmation, ConfidenceTBD:
		return true
	}
	return false
}

// RunStatus is the lifecycle of a wiring run. RunDone replaces the separate
// done flag older backups carry.
type RunStatus string

const (
	RunPlanned    RunStatus = "planned"
	RunInProgress RunStatus = "in_progress"
	RunDone       RunStatus = "done"
	RunIssue      RunStatus = "issue"
)

// RunStatuses lists every run status in display order.
var RunStatuses = []RunStatus{RunPlanned, RunInProgress, RunDone, RunIssue}

// Valid reports whether s is a known run status.
func (s RunStatus) Valid() bool {
	switch s {
	case RunPlanned, RunInProgress, RunDone, RunIssue:
		return true
	}
	return false
}

// WiringRun is a single circuit between two electrical points.
type WiringRun struct {
	CircuitID       string     `json:"circuitId"`
	FromTo          string     `json:"fromTo"`
	WireType        string     `json:"wireType"`
	GaugeOwned      string     `json:"gaugeOwned"`
	ProtectionShown string     `json:"protectionShown"`
	FuseID          string     `json:"fuseId"`
	Confidence      Confidence `json:"confidence"`
	Status          RunStatus  `json:"status"`
	Notes           string     `json:"notes"`
}

// Done reports whether the run is finished.
func (r WiringRun) Done() bool {
	return r.Status == RunDone
}

// wiringRunJSON mirrors WiringRun plus the derived done flag that backups
// written by earlier versions expect to find.
type wiringRunJSON struct {
	CircuitID       string     `json:"circuitId"`
	FromTo          string     `json:"fromTo"`
	WireType        string     `json:"wireType"`
	GaugeOwned      string     `json:"gaugeOwned"`
	ProtectionShown string     `json:"protectionShown"`
	FuseID          string     `json:"fuseId"`
	Confidence      Confidence `json:"confidence"`
	Status          RunStatus  `json:"status"`
	Done            bool       `json:"done"`
	Notes           string     `json:"notes"`
}

// MarshalJSON writes the run with a done flag derived from Status.
func (r WiringRun) MarshalJSON() ([]byte, error) {
	return json.Marshal(wiringRunJSON{
		CircuitID:       r.CircuitID,
		FromTo:          r.FromTo,
		WireType:        r.WireType,
		GaugeOwned:      r.GaugeOwned,
		ProtectionShown: r.ProtectionShown,
		FuseID:          r.FuseID,
		Confidence:      r.Confidence,
		Status:          r.Status,
		Done:            r.Done(),
		Notes:           r.Notes,
	})
}

// UnmarshalJSON reads a run, folding a true done flag into Status.
func (r *WiringRun) UnmarshalJSON(data []byte) error {
	var w wiringRunJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = WiringRun{
		CircuitID:       w.CircuitID,
		FromTo:          w.FromTo,
		WireType:        w.WireType,
		GaugeOwned:      w.GaugeOwned,
		ProtectionShown: w.ProtectionShown,
		FuseID:          w.FuseID,
		Confidence:      w.Confidence,
		Status:          w.Status,
		Notes:           w.Notes,
	}
	if w.Done {
		r.Status = RunDone
	}
	return nil
}
