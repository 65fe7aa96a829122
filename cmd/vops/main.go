package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "vops",
		Short:        "Van build ops: wiring, parts, fuses, guides and build phases",
		Long:         "vops tracks an off-grid van electrical build offline: wiring runs, parts inventory, fuses, installation guides and build phases.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "", "path to vops config file (default: user config dir)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newResetCmd())
	cmd.AddCommand(newBackupCmd())
	cmd.AddCommand(newWiringCmd())
	cmd.AddCommand(newPartsCmd())
	cmd.AddCommand(newFusesCmd())
	cmd.AddCommand(newGuidesCmd())
	cmd.AddCommand(newPhasesCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vops %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
