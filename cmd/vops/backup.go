package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/zulandar/vanops/internal/store"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export and import full JSON backups",
	}

	cmd.AddCommand(newBackupExportCmd())
	cmd.AddCommand(newBackupImportCmd())
	return cmd
}

func newBackupExportCmd() *cobra.Command {
	var (
		dir    string
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole state to a dated JSON backup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				return runBackupExport(cmd, a, dir, stdout)
			})
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory for the backup file (default: backup.dir from config)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "write the backup to stdout instead of a file")
	return cmd
}

func runBackupExport(cmd *cobra.Command, a *app, dir string, stdout bool) error {
	o := a.session.Ops()
	if stdout {
		return store.WriteBackup(cmd.OutOrStdout(), o)
	}
	if dir == "" {
		dir = a.cfg.Backup.Dir
	}
	path, err := a.gateway.Export(o, dir, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", store.Preview(o), path)
	return nil
}

func newBackupImportCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the whole state with a JSON backup",
		Long:  "Validates a backup file, shows what it contains and, once confirmed, replaces all current data with it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(a *app) error {
				return runBackupImport(cmd, a, args[0], yes)
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runBackupImport(cmd *cobra.Command, a *app, path string, yes bool) error {
	out := cmd.OutOrStdout()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read backup: %w", err)
	}
	incoming, err := store.ParseBackup(data)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	fmt.Fprintf(out, "Backup contains %s\n", store.Preview(incoming))

	ok, err := confirmOrAbort(cmd, yes,
		fmt.Sprintf("This will replace the current %s.", store.Preview(a.session.Ops())))
	if err != nil || !ok {
		return err
	}
	if err := a.session.Replace(incoming); err != nil {
		return err
	}
	fmt.Fprintln(out, "Backup imported.")
	return nil
}
