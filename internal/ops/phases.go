package ops

import (
	"slices"

	"github.com/zulandar/vanops/internal/ident"
	"github.com/zulandar/vanops/internal/models"
)

// PhasePatch changes the non-nil fields of a phase.
type PhasePatch struct {
	Title        *string
	TargetStart  *string
	TargetFinish *string
	Notes        *string
}

// TaskPatch changes the non-nil fields of a task.
type TaskPatch struct {
	Title      *string
	Status     *models.TaskStatus
	TargetDate *string
	DoneDate   *string
	Notes      *string
	ImageIDs   *[]string
}

func findPhase(phases []models.Phase, id string) int {
	return slices.IndexFunc(phases, func(p models.Phase) bool { return p.ID == id })
}

func findTask(tasks []models.Task, id string) int {
	return slices.IndexFunc(tasks, func(t models.Task) bool { return t.ID == id })
}

// AddPhase inserts an empty phase at the top of the list.
func (s *Session) AddPhase(title string) (models.Phase, error) {
	if title == "" {
		title = models.NewPhaseTitle
	}
	p := models.Phase{ID: s.newID(ident.PrefixPhase), Title: title, Tasks: []models.Task{}}
	err := s.apply("add phase", func(next *models.Ops) error {
		next.Phases = prepend(next.Phases, p)
		return nil
	})
	if err != nil {
		return models.Phase{}, err
	}
	return p.Clone(), nil
}

// UpdatePhase applies patch to the phase with id.
func (s *Session) UpdatePhase(id string, patch PhasePatch) (models.Phase, error) {
	var out models.Phase
	err := s.apply("update phase", func(next *models.Ops) error {
		i := findPhase(next.Phases, id)
		if i < 0 {
			return notFound("phase", id)
		}
		p := &next.Phases[i]
		setString(&p.Title, patch.Title)
		setString(&p.TargetStart, patch.TargetStart)
		setString(&p.TargetFinish, patch.TargetFinish)
		setString(&p.Notes, patch.Notes)
		out = p.Clone()
		return nil
	})
	return out, err
}

// DeletePhase removes the phase with id and its tasks.
func (s *Session) DeletePhase(id string) error {
	return s.apply("delete phase", func(next *models.Ops) error {
		n := len(next.Phases)
		next.Phases = slices.DeleteFunc(next.Phases, func(p models.Phase) bool { return p.ID == id })
		if len(next.Phases) == n {
			return notFound("phase", id)
		}
		return nil
	})
}

// AddTask inserts a not-started task at the top of phase phaseID.
func (s *Session) AddTask(phaseID, title string) (models.Task, error) {
	if title == "" {
		title = models.NewTaskTitle
	}
	t := models.Task{ID: s.newID(ident.PrefixTask), Title: title, Status: models.TaskNotStarted, ImageIDs: []string{}}
	err := s.apply("add task", func(next *models.Ops) error {
		i := findPhase(next.Phases, phaseID)
		if i < 0 {
			return notFound("phase", phaseID)
		}
		next.Phases[i].Tasks = prepend(next.Phases[i].Tasks, t)
		return nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// UpdateTask applies patch to task taskID of phase phaseID.
func (s *Session) UpdateTask(phaseID, taskID string, patch TaskPatch) (models.Task, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return models.Task{}, invalid("status", *patch.Status)
	}
	var out models.Task
	err := s.apply("update task", func(next *models.Ops) error {
		i := findPhase(next.Phases, phaseID)
		if i < 0 {
			return notFound("phase", phaseID)
		}
		tasks := next.Phases[i].Tasks
		j := findTask(tasks, taskID)
		if j < 0 {
			return notFound("task", taskID)
		}
		t := tasks[j]
		setString(&t.Title, patch.Title)
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		setString(&t.TargetDate, patch.TargetDate)
		setString(&t.DoneDate, patch.DoneDate)
		setString(&t.Notes, patch.Notes)
		setStrings(&t.ImageIDs, patch.ImageIDs)
		tasks[j] = t
		out = t
		out.ImageIDs = slices.Clone(t.ImageIDs)
		return nil
	})
	return out, err
}

// DeleteTask removes task taskID from phase phaseID.
func (s *Session) DeleteTask(phaseID, taskID string) error {
	return s.apply("delete task", func(next *models.Ops) error {
		i := findPhase(next.Phases, phaseID)
		if i < 0 {
			return notFound("phase", phaseID)
		}
		j := findTask(next.Phases[i].Tasks, taskID)
		if j < 0 {
			return notFound("task", taskID)
		}
		next.Phases[i].Tasks = slices.Delete(next.Phases[i].Tasks, j, j+1)
		return nil
	})
}

// ImportPhases merges incoming phases ahead of the existing ones, keeping
// the first phase for each ID.
func (s *Session) ImportPhases(incoming []models.Phase) (added, replaced int, err error) {
	err = s.apply("import phases", func(next *models.Ops) error {
		existing := make(map[string]bool, len(next.Phases))
		for _, p := range next.Phases {
			existing[p.ID] = true
		}
		in := make([]models.Phase, len(incoming))
		for i, p := range incoming {
			in[i] = p.Clone()
		}
		seen := map[string]bool{}
		for _, p := range in {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			if existing[p.ID] {
				replaced++
			} else {
				added++
			}
		}
		next.Phases = dedupe(append(in, next.Phases...), func(p models.Phase) string { return p.ID })
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return added, replaced, nil
}
