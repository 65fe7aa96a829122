package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zulandar/vanops/internal/models"
	"github.com/zulandar/vanops/internal/ops"
	"github.com/zulandar/vanops/internal/store"
	"github.com/zulandar/vanops/internal/views"
)

func newPhasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phases",
		Short: "Build phase and task commands",
	}

	cmd.AddCommand(newPhasesListCmd())
	cmd.AddCommand(newPhasesShowCmd())
	cmd.AddCommand(newPhasesAddCmd())
	cmd.AddCommand(newPhasesUpdateCmd())
	cmd.AddCommand(newPhasesDeleteCmd())
	cmd.AddCommand(newPhasesImportCmd())
	cmd.AddCommand(newPhasesTaskAddCmd())
	cmd.AddCommand(newPhasesTaskUpdateCmd())
	cmd.AddCommand(newPhasesTaskDeleteCmd())
	return cmd
}

func newPhasesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List build phases with progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				return runPhasesList(cmd, a)
			})
		},
	}
}

func runPhasesList(cmd *cobra.Command, a *app) error {
	phases := a.session.Ops().Phases
	out := cmd.OutOrStdout()
	if len(phases) == 0 {
		fmt.Fprintln(out, "No phases found.")
		return nil
	}

	w := newTable(out)
	fmt.Fprintln(w, "ID\tTITLE\tSTART\tFINISH\tTASKS\tDONE")
	for _, p := range phases {
		pr := views.PhaseProgress(p)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d\t%d%%\n",
			p.ID, truncate(p.Title, 40), dash(p.TargetStart), dash(p.TargetFinish), pr.Done, pr.Total, pr.Percent)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	s := views.BuildSummary(phases)
	fmt.Fprintf(out, "\nOverall: %d/%d tasks done (%d%%), %d issues.\n",
		s.Progress.Done, s.Progress.Total, s.Progress.Percent, s.Issues)
	return nil
}

func newPhasesShowCmd() *cobra.Command {
	var q views.TaskQuery
	var status string

	cmd := &cobra.Command{
		Use:   "show <phase-id>",
		Short: "Show a phase and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Status = models.TaskStatus(status)
			return withApp(cmd, func(a *app) error {
				return runPhasesShow(cmd, a, args[0], q)
			})
		},
	}

	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "case-insensitive text search over tasks")
	cmd.Flags().StringVar(&status, "status", "", "filter tasks by status ("+oneOf(models.TaskStatuses)+")")
	return cmd
}

func runPhasesShow(cmd *cobra.Command, a *app, id string, q views.TaskQuery) error {
	var phase *models.Phase
	o := a.session.Ops()
	for i := range o.Phases {
		if o.Phases[i].ID == id {
			phase = &o.Phases[i]
			break
		}
	}
	if phase == nil {
		return fmt.Errorf("%w: phase %q", ops.ErrNotFound, id)
	}

	out := cmd.OutOrStdout()
	pr := views.PhaseProgress(*phase)
	fmt.Fprintf(out, "ID:       %s\n", phase.ID)
	fmt.Fprintf(out, "Title:    %s\n", phase.Title)
	fmt.Fprintf(out, "Target:   %s to %s\n", dash(phase.TargetStart), dash(phase.TargetFinish))
	fmt.Fprintf(out, "Progress: %d/%d (%d%%)\n", pr.Done, pr.Total, pr.Percent)
	if phase.Notes != "" {
		fmt.Fprintf(out, "\nNotes:\n%s\n", phase.Notes)
	}

	tasks := views.FilterTasks(phase.Tasks, q)
	if len(tasks) == 0 {
		fmt.Fprintln(out, "\nNo tasks found.")
		return nil
	}
	fmt.Fprintln(out)
	w := newTable(out)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tTARGET\tDONE\tIMAGES")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			t.ID, truncate(t.Title, 40), t.Status, dash(t.TargetDate), dash(t.DoneDate), len(t.ImageIDs))
	}
	return w.Flush()
}

func newPhasesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [title]",
		Short: "Add a build phase",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				p, err := a.session.AddPhase(firstArg(args))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added phase %s (%s)\n", p.ID, p.Title)
				return nil
			})
		},
	}
}

func newPhasesUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <phase-id>",
		Short: "Update a build phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				p, err := a.session.UpdatePhase(args[0], ops.PhasePatch{
					Title:        changedString(cmd, "title"),
					TargetStart:  changedString(cmd, "start"),
					TargetFinish: changedString(cmd, "finish"),
					Notes:        changedString(cmd, "notes"),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated phase %s\n", p.ID)
				return nil
			})
		},
	}

	cmd.Flags().String("title", "", "phase title")
	cmd.Flags().String("start", "", "target start date (YYYY-MM-DD)")
	cmd.Flags().String("finish", "", "target finish date (YYYY-MM-DD)")
	cmd.Flags().String("notes", "", "notes")
	return cmd
}

func newPhasesDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <phase-id>",
		Short: "Delete a build phase and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				ok, err := confirmOrAbort(cmd, yes, fmt.Sprintf("This will delete phase %q and all its tasks.", args[0]))
				if err != nil || !ok {
					return err
				}
				if err := a.session.DeletePhase(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted phase %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func newPhasesImportCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Merge phases from a JSON file",
		Long:  "Reads phases from a JSON array, or an object with a phases array, and merges them ahead of the existing phases. Incoming phases replace existing phases with the same ID.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				return runPhasesImport(cmd, a, args[0], yes)
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runPhasesImport(cmd *cobra.Command, a *app, path string, yes bool) error {
	out := cmd.OutOrStdout()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read phases import: %w", err)
	}
	phases, err := store.ParsePhasesImport(data)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	tasks := 0
	for _, p := range phases {
		tasks += len(p.Tasks)
	}
	fmt.Fprintf(out, "File contains %d phases (%d tasks)\n", len(phases), tasks)

	ok, err := confirmOrAbort(cmd, yes, "Existing phases with matching IDs will be overwritten.")
	if err != nil || !ok {
		return err
	}
	added, replaced, err := a.session.ImportPhases(phases)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Imported phases: %d added, %d replaced\n", added, replaced)
	return nil
}

func newPhasesTaskAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "task-add <phase-id> [title]",
		Short: "Add a task to a phase",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				t, err := a.session.AddTask(args[0], firstArg(args[1:]))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added task %s to %s\n", t.ID, args[0])
				return nil
			})
		},
	}
}

func newPhasesTaskUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task-update <phase-id> <task-id>",
		Short: "Update a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				t, err := a.session.UpdateTask(args[0], args[1], ops.TaskPatch{
					Title:      changedString(cmd, "title"),
					Status:     changedEnum[models.TaskStatus](cmd, "status"),
					TargetDate: changedString(cmd, "target"),
					DoneDate:   changedString(cmd, "done-date"),
					Notes:      changedString(cmd, "notes"),
					ImageIDs:   changedStrings(cmd, "images"),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s (%s)\n", t.ID, t.Status)
				return nil
			})
		},
	}

	cmd.Flags().String("title", "", "task title")
	cmd.Flags().String("status", "", "status ("+oneOf(models.TaskStatuses)+")")
	cmd.Flags().String("target", "", "target date (YYYY-MM-DD)")
	cmd.Flags().String("done-date", "", "completion date (YYYY-MM-DD)")
	cmd.Flags().String("notes", "", "notes")
	cmd.Flags().StringSlice("images", nil, "image IDs (comma separated)")
	return cmd
}

func newPhasesTaskDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "task-delete <phase-id> <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				ok, err := confirmOrAbort(cmd, yes, fmt.Sprintf("This will delete task %q from %q.", args[1], args[0]))
				if err != nil || !ok {
					return err
				}
				if err := a.session.DeleteTask(args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", args[1])
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}
