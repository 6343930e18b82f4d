package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tracknest/internal/ui"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print system-wide totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			users := a.st.Users()
			goals, habits, tasks, points := 0, 0, 0, 0
			for _, u := range users {
				goals += len(u.Goals)
				habits += len(u.Habits)
				tasks += len(u.Tasks)
				points += u.Points
			}

			pal := ui.Light()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, pal.Heading("", "System Stats"))
			fmt.Fprintln(out, pal.LabelValue("Users", len(users)))
			fmt.Fprintln(out, pal.LabelValue("Goals", goals))
			fmt.Fprintln(out, pal.LabelValue("Habits", habits))
			fmt.Fprintln(out, pal.LabelValue("Tasks", tasks))
			fmt.Fprintln(out, pal.LabelValue("Total Points", points))
			return nil
		},
	}
}
