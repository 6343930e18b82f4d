package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Write the CSV summary report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			path := a.cfg.ExportFile
			if len(args) == 1 {
				path = args[0]
			}
			if err := a.st.ExportSummary(ctx, path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Exported to", path)
			return nil
		},
	}
}
