package views

import "github.com/zulandar/vanops/internal/models"

// Progress counts completed tasks.
type Progress struct {
	Done    int
	Total   int
	Percent int
}

// PhaseProgress reports how many of a phase's tasks are done.
func PhaseProgress(p models.Phase) Progress {
	pr := Progress{Total: len(p.Tasks)}
	for _, t := range p.Tasks {
		if t.Status == models.TaskDone {
			pr.Done++
		}
	}
	pr.Percent = percent(pr.Done, pr.Total)
	return pr
}

// Summary aggregates task progress across the whole build.
type Summary struct {
	Phases   int
	Progress Progress
	Issues   int
}

// BuildSummary totals task progress across phases.
func BuildSummary(phases []models.Phase) Summary {
	s := Summary{Phases: len(phases)}
	for _, p := range phases {
		pr := PhaseProgress(p)
		s.Progress.Done += pr.Done
		s.Progress.Total += pr.Total
		for _, t := range p.Tasks {
			if t.Status == models.TaskIssue {
				s.Issues++
			}
		}
	}
	s.Progress.Percent = percent(s.Progress.Done, s.Progress.Total)
	return s
}

// TaskQuery selects tasks within a phase.
type TaskQuery struct {
	Search string
	Status models.TaskStatus
}

// FilterTasks returns the tasks matching q in their original order. Search
// covers title, notes and dates.
func FilterTasks(tasks []models.Task, q TaskQuery) []models.Task {
	search := normQuery(q.Search)
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if q.Status != "" && t.Status != q.Status {
			continue
		}
		if !matches(search, t.Title, t.Notes, t.TargetDate, t.DoneDate) {
			continue
		}
		out = append(out, t)
	}
	return out
}
