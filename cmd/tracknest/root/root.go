// Package root wires the tracknest CLI: the interactive session plus a few
// direct subcommands over the same data file.
package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tracknest/internal/ui"
)

const Version = "0.1.0"

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "tracknest",
	Short:         "TrackNest — personal goal, habit and task tracker",
	Long:          "TrackNest is a local-first tracker for goals, habits and tasks with streaks, points and badges.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.tracknest/config.yaml)")

	rootCmd.AddCommand(
		newRunCmd(),
		newDashboardCmd(),
		newStatsCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		pal := ui.Light()
		fmt.Fprintln(os.Stderr, pal.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
