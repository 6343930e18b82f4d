package root

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"tracknest/internal/menu"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the interactive tracker session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sess := &menu.Session{
				St:  a.st,
				Act: a.act,
				Log: a.log,
				In:  menu.NewPrompt(os.Stdin, cmd.OutOrStdout()),
				Out: cmd.OutOrStdout(),
				Cfg: a.cfg,
			}
			return sess.Run(ctx)
		},
	}
}
