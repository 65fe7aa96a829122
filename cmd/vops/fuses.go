package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/vanops/internal/models"
	"github.com/zulandar/vanops/internal/ops"
	"github.com/zulandar/vanops/internal/views"
)

func newFusesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fuses",
		Short: "Fuse commands",
	}

	cmd.AddCommand(newFusesListCmd())
	cmd.AddCommand(newFusesAddCmd())
	cmd.AddCommand(newFusesUpdateCmd())
	cmd.AddCommand(newFusesDeleteCmd())
	return cmd
}

func newFusesListCmd() *cobra.Command {
	var q views.FuseQuery
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List fuses",
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Status = models.FuseStatus(status)
			return withApp(cmd, func(a *app) error {
				return runFusesList(cmd, a, q)
			})
		},
	}

	cmd.Flags().StringVarP(&q.Search, "search", "s", "", "case-insensitive text search")
	cmd.Flags().StringVar(&status, "status", "", "filter by status ("+oneOf(models.FuseStatuses)+")")
	return cmd
}

func runFusesList(cmd *cobra.Command, a *app, q views.FuseQuery) error {
	all := a.session.Ops().Fuses
	fuses := views.FilterFuses(all, q)

	out := cmd.OutOrStdout()
	if len(fuses) == 0 {
		fmt.Fprintln(out, "No fuses found.")
		return nil
	}

	w := newTable(out)
	fmt.Fprintln(w, "ID\tFUSE\tCIRCUIT\tLOCATION\tOWNED\tNEED\tSTATUS")
	for _, f := range fuses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			f.ID, truncate(views.FuseLabel(f), 40), dash(f.CircuitID), dash(f.Location),
			formatQty(f.QtyOwned), formatQty(f.QtyNeed), f.Status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	s := views.FuseStatsOf(all)
	fmt.Fprintf(out, "\n%d of %d fuses shown. %d owned, %d still needed.\n", len(fuses), s.Total, s.Owned, s.Needed)
	return nil
}

func addFuseFlags(cmd *cobra.Command) {
	cmd.Flags().String("circuit", "", "circuit ID the fuse protects")
	cmd.Flags().String("label", "", "label")
	cmd.Flags().String("location", "", "mounting location")
	cmd.Flags().String("type", "", "fuse type, e.g. Class-T, MRBF, ANL")
	cmd.Flags().String("amp", "", "rating, e.g. 7.5A")
	cmd.Flags().Float64("owned", 0, "quantity owned")
	cmd.Flags().Float64("need", 0, "quantity needed (add defaults to 1)")
	cmd.Flags().String("status", "", "status ("+oneOf(models.FuseStatuses)+")")
	cmd.Flags().String("notes", "", "notes")
}

func newFusesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a fuse",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				f, err := a.session.AddFuse(models.Fuse{
					ID:        flagString(cmd, "id"),
					CircuitID: flagString(cmd, "circuit"),
					Label:     flagString(cmd, "label"),
					Location:  flagString(cmd, "location"),
					FuseType:  flagString(cmd, "type"),
					Amp:       flagString(cmd, "amp"),
					QtyOwned:  flagFloat(cmd, "owned"),
					QtyNeed:   flagFloat(cmd, "need"),
					Status:    models.FuseStatus(flagString(cmd, "status")),
					Notes:     flagString(cmd, "notes"),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added fuse %s: %s\n", f.ID, views.FuseLabel(f))
				return nil
			})
		},
	}

	cmd.Flags().String("id", "", "fuse ID (generated when empty)")
	addFuseFlags(cmd)
	return cmd
}

func newFusesUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a fuse",
		Long:  "Changes only the fields whose flags are given.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				f, err := a.session.UpdateFuse(args[0], ops.FusePatch{
					CircuitID: changedString(cmd, "circuit"),
					Label:     changedString(cmd, "label"),
					Location:  changedString(cmd, "location"),
					FuseType:  changedString(cmd, "type"),
					Amp:       changedString(cmd, "amp"),
					QtyOwned:  changedFloat(cmd, "owned"),
					QtyNeed:   changedFloat(cmd, "need"),
					Status:    changedEnum[models.FuseStatus](cmd, "status"),
					Notes:     changedString(cmd, "notes"),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated fuse %s: %s\n", f.ID, views.FuseLabel(f))
				return nil
			})
		},
	}

	addFuseFlags(cmd)
	return cmd
}

func newFusesDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a fuse",
		Long:  "Deletes a fuse. Wiring runs linked to it keep the fuse ID and show it as missing.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				ok, err := confirmOrAbort(cmd, yes, fmt.Sprintf("This will delete fuse %q.", args[0]))
				if err != nil || !ok {
					return err
				}
				if err := a.session.DeleteFuse(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted fuse %s\n", args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}
