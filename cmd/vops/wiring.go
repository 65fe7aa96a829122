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

func newWiringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wiring",
		Short: "Wiring run commands",
	}

	cmd.AddCommand(newWiringListCmd())
	cmd.AddCommand(newWiringAddCmd())
	cmd.AddCommand(newWiringUpdateCmd())
	cmd.AddCommand(newWiringDoneCmd("done", true))
	cmd.AddCommand(newWiringDoneCmd("undone", false))
	cmd.AddCommand(newWiringDuplicateCmd())
	cmd.AddCommand(newWiringDeleteCmd())
	cmd.AddCommand(newWiringImportCmd())
	return cmd
}

func newWiringListCmd() *cobra.Command {
	var q views.WiringQuery
	var confidence, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List wiring runs",
		Long:  "Lists wiring runs as a table. Search matches every text field and the linked fuse.",
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Confidence = models.Confidence(confidence)
			q.Status = models.RunStatus(status)
			return withApp(cmd, func(a *app) error {
				return runWiringList(cmd, a, q)
			})
		},
	}

	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "case-insensitive text search")
	cmd.Flags().StringVar(&confidence, "confidence", "", "filter by confidence ("+oneOf(models.Confidences)+")")
	cmd.Flags().StringVar(&status, "status", "", "filter by status ("+oneOf(models.RunStatuses)+")")
	cmd.Flags().BoolVar(&q.OnlyOpen, "open", false, "hide finished runs")
	cmd.Flags().StringVar(&q.SortKey, "sort", "circuitId", "sort column ("+oneOf(views.WiringSortKeys)+")")
	cmd.Flags().BoolVar(&q.Desc, "desc", false, "sort descending")
	return cmd
}

func runWiringList(cmd *cobra.Command, a *app, q views.WiringQuery) error {
	o := a.session.Ops()
	runs := views.FilterWiring(o.WiringRuns, o.Fuses, q)

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No wiring runs found.")
		return nil
	}

	w := newTable(out)
	fmt.Fprintln(w, "DONE\tCIRCUIT\tFROM/TO\tWIRE\tGAUGE\tPROTECTION\tFUSE\tCONFIDENCE\tSTATUS")
	for _, r := range runs {
		mark := " "
		if r.Done() {
			mark = "x"
		}
		fuse := "-"
		if f, ok := views.FuseFor(r, o.Fuses); ok {
			fuse = views.FuseLabel(f)
		} else if r.FuseID != "" {
			fuse = r.FuseID + " (missing)"
		}
		fmt.Fprintf(w, "[%s]\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			mark, r.CircuitID, truncate(dash(r.FromTo), 36), dash(r.WireType), dash(r.GaugeOwned),
			dash(r.ProtectionShown), truncate(fuse, 30), r.Confidence, r.Status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	s := views.WiringStatsOf(o.WiringRuns)
	fmt.Fprintf(out, "\n%d of %d runs shown. %d/%d done (%d%%), %d issues, %d need confirmation.\n",
		len(runs), s.Total, s.Done, s.Total, s.Percent, s.Issues, s.NeedsConfirmation)
	return nil
}

func addWiringFlags(cmd *cobra.Command) {
	cmd.Flags().String("from-to", "", "endpoints, e.g. \"Battery + -> Lynx\"")
	cmd.Flags().String("wire-type", "", "wire type")
	cmd.Flags().String("gauge", "", "gauge owned")
	cmd.Flags().String("protection", "", "protection shown on the diagram")
	cmd.Flags().String("fuse", "", "linked fuse ID")
	cmd.Flags().String("confidence", "", "confidence ("+oneOf(models.Confidences)+")")
	cmd.Flags().String("status", "", "status ("+oneOf(models.RunStatuses)+")")
	cmd.Flags().String("notes", "", "notes")
}

func wiringPatch(cmd *cobra.Command) ops.WiringPatch {
	return ops.WiringPatch{
		CircuitID:       changedString(cmd, "id"),
		FromTo:          changedString(cmd, "from-to"),
		WireType:        changedString(cmd, "wire-type"),
		GaugeOwned:      changedString(cmd, "gauge"),
		ProtectionShown: changedString(cmd, "protection"),
		FuseID:          changedString(cmd, "fuse"),
		Confidence:      changedEnum[models.Confidence](cmd, "confidence"),
		Status:          changedEnum[models.RunStatus](cmd, "status"),
		Notes:           changedString(cmd, "notes"),
	}
}

func newWiringAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a wiring run",
		Long:  "Adds a wiring run at the top of the list. Without --id a circuit ID is generated.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				return runWiringAdd(cmd, a)
			})
		},
	}

	cmd.Flags().String("id", "", "circuit ID, e.g. DC-001")
	addWiringFlags(cmd)
	return cmd
}

func runWiringAdd(cmd *cobra.Command, a *app) error {
	added, err := a.session.AddWiringRun(models.WiringRun{
		CircuitID:       flagString(cmd, "id"),
		FromTo:          flagString(cmd, "from-to"),
		WireType:        flagString(cmd, "wire-type"),
		GaugeOwned:      flagString(cmd, "gauge"),
		ProtectionShown: flagString(cmd, "protection"),
		FuseID:          flagString(cmd, "fuse"),
		Confidence:      models.Confidence(flagString(cmd, "confidence")),
		Status:          models.RunStatus(flagString(cmd, "status")),
		Notes:           flagString(cmd, "notes"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added wiring run %s\n", added.CircuitID)
	return nil
}

func newWiringUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <circuit-id>",
		Short: "Update a wiring run",
		Long:  "Changes only the fields whose flags are given. --id renames the circuit.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				r, err := a.session.UpdateWiringRun(args[0], wiringPatch(cmd))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated wiring run %s (%s, %s)\n", r.CircuitID, r.Confidence, r.Status)
				return nil
			})
		},
	}

	cmd.Flags().String("id", "", "new circuit ID")
	addWiringFlags(cmd)
	return cmd
}

func newWiringDoneCmd(use string, done bool) *cobra.Command {
	short := "Mark a wiring run done"
	if !done {
		short = "Clear the done mark on a wiring run"
	}
	return &cobra.Command{
		Use:   use + " <circuit-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				r, err := a.session.SetWiringDone(args[0], done)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wiring run %s is %s\n", r.CircuitID, r.Status)
				return nil
			})
		},
	}
}

func newWiringDuplicateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <circuit-id>",
		Short: "Copy a wiring run under a new circuit ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				r, err := a.session.DuplicateWiringRun(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Duplicated %s as %s\n", args[0], r.CircuitID)
				return nil
			})
		},
	}
}

func newWiringDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <circuit-id>",
		Short: "Delete a wiring run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				ok, err := confirmOrAbort(cmd, yes, fmt.Sprintf("This will delete wiring run %q.", args[0]))
				if err != nil || !ok {
					return err
				}
				if err := a.session.DeleteWiringRun(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted wiring run %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func newWiringImportCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Merge wiring runs from a JSON file",
		Long: `Reads wiring runs from a JSON file and merges them ahead of the existing
runs. Incoming rows replace existing rows with the same circuit ID.

The file may be a bare array of runs, or an object holding the array under
rows, wiringRuns, runs, data.rows, data.wiringRuns or ops.wiringRuns.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				return runWiringImport(cmd, a, args[0], yes)
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runWiringImport(cmd *cobra.Command, a *app, path string, yes bool) error {
	out := cmd.OutOrStdout()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read wiring import: %w", err)
	}
	runs, err := store.ParseWiringImport(data)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	printCount(out, len(runs), "wiring run")

	ok, err := confirmOrAbort(cmd, yes, "Existing runs with matching circuit IDs will be overwritten.")
	if err != nil || !ok {
		return err
	}
	added, replaced, err := a.session.ImportWiringRuns(runs)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Imported wiring runs: %d added, %d replaced\n", added, replaced)
	return nil
}
