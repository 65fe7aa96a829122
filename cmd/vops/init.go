package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/zulandar/vanops/internal/config"
	"github.com/zulandar/vanops/internal/db"
	"github.com/zulandar/vanops/internal/store"
	"github.com/zulandar/vanops/internal/views"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the config file and storage",
		Long:  "Writes a default config file if none exists, connects to the configured database and migrates the storage table.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd)
		},
	}
}

func runInit(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	path, err := configPath(cmd)
	if err != nil {
		return err
	}
	cfg, created, err := config.LoadOrCreate(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if created {
		fmt.Fprintf(out, "Wrote default config to %s\n", path)
	} else {
		fmt.Fprintf(out, "Loaded config from %s\n", path)
	}

	gormDB, err := db.Connect(cfg.Storage)
	if err != nil {
		return err
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer sqlDB.Close()
	}
	fmt.Fprintf(out, "Connected to %s storage\n", cfg.Storage.Driver)

	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))
	fmt.Fprintf(out, "Storage key: %s\n", cfg.Storage.Key)

	fmt.Fprintln(out, "\nvops initialized successfully.")
	return nil
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show a summary of the build",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				return runStatus(cmd, a)
			})
		},
	}
}

func runStatus(cmd *cobra.Command, a *app) error {
	out := cmd.OutOrStdout()
	o := a.session.Ops()

	fmt.Fprintf(out, "Storage:  %s (key %s)\n", a.cfg.Storage.Driver, a.gateway.Key())
	saved, ok, err := a.slots.UpdatedAt(a.gateway.Key())
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(out, "Saved:    %s\n", saved.Local().Format(time.DateTime))
	} else {
		fmt.Fprintln(out, "Saved:    never")
	}
	fmt.Fprintf(out, "Records:  %s\n", store.Preview(o))
	fmt.Fprintln(out)

	ws := views.WiringStatsOf(o.WiringRuns)
	ps := views.PartStatsOf(o.Parts, a.cfg.Inventory.LowStockFeet)
	fs := views.FuseStatsOf(o.Fuses)
	bs := views.BuildSummary(o.Phases)

	w := newTable(out)
	fmt.Fprintln(w, "AREA\tPROGRESS\tATTENTION")
	fmt.Fprintf(w, "wiring\t%d/%d done (%d%%)\t%d issues, %d need confirmation, %d tbd\n",
		ws.Done, ws.Total, ws.Percent, ws.Issues, ws.NeedsConfirmation, ws.TBD)
	fmt.Fprintf(w, "parts\t%d owned, %d installed of %d\t%d missing, %d low-stock wire\n",
		ps.Owned, ps.Installed, ps.Total, ps.Missing, ps.LowStock)
	fmt.Fprintf(w, "fuses\t%d owned of %d\t%d needed\n", fs.Owned, fs.Total, fs.Needed)
	fmt.Fprintf(w, "tasks\t%d/%d done (%d%%) across %d phases\t%d issues\n",
		bs.Progress.Done, bs.Progress.Total, bs.Progress.Percent, bs.Phases, bs.Issues)
	return w.Flush()
}

func newResetCmd() *cobra.Command {
	var yes, purge bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all stored build data",
		Long:  "Replaces the stored state with an empty one. Export a backup first if you may want the data back.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				return runReset(cmd, a, yes, purge)
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	cmd.Flags().BoolVar(&purge, "purge", false, "remove the storage slot instead of saving an empty state")
	return cmd
}

func runReset(cmd *cobra.Command, a *app, yes, purge bool) error {
	c := store.Preview(a.session.Ops())
	ok, err := confirmOrAbort(cmd, yes, fmt.Sprintf("This will erase %s.", c))
	if err != nil || !ok {
		return err
	}
	if purge {
		if err := a.slots.Delete(a.gateway.Key()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Storage slot %s removed.\n", a.gateway.Key())
		return nil
	}
	if err := a.session.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "All data erased.")
	return nil
}
