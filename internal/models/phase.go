package models

import "slices"

// TaskStatus is the lifecycle of a build task.
type TaskStatus string

const (
	TaskNotStarted TaskStatus = "not_started"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
	TaskIssue      TaskStatus = "issue"
)

// TaskStatuses lists every task status in display order.
var TaskStatuses = []TaskStatus{TaskNotStarted, TaskInProgress, TaskDone, TaskIssue}

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskNotStarted, TaskInProgress, TaskDone, TaskIssue:
		return true
	}
	return false
}

// Default titles for phases and tasks. The Untitled forms repair records
// that arrive without a title; the New forms name freshly added ones.
const (
	DefaultPhaseTitle = "Untitled Phase"
	DefaultTaskTitle  = "Untitled Task"
	NewPhaseTitle     = "New Phase"
	NewTaskTitle      = "New Task"
)

// Task is a unit of build work inside a phase.
type Task struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Status     TaskStatus `json:"status"`
	TargetDate string     `json:"targetDate"`
	DoneDate   string     `json:"doneDate"`
	Notes      string     `json:"notes"`
	ImageIDs   []string   `json:"imageIds"`
}

// Phase groups tasks under a target date range.
type Phase struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	TargetStart  string `json:"targetStart"`
	TargetFinish string `json:"targetFinish"`
	Notes        string `json:"notes"`
	Tasks        []Task `json:"tasks"`
}

// Clone returns a deep copy of p.
func (p Phase) Clone() Phase {
	tasks := make([]Task, len(p.Tasks))
	for i, t := range p.Tasks {
		t.ImageIDs = slices.Clone(t.ImageIDs)
		tasks[i] = t
	}
	p.Tasks = tasks
	return p
}
