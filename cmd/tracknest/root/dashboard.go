package root

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tracknest/internal/auth"
	"tracknest/internal/menu"
	"tracknest/internal/store"
	"tracknest/internal/tui"
	"tracknest/internal/ui"
)

func newDashboardCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the TUI dashboard for one account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			u, ok := a.st.FindByEmail(email)
			if !ok {
				return fmt.Errorf("%w: %s", store.ErrUserNotFound, email)
			}
			if !u.Active {
				return errors.New("account is deactivated")
			}

			in := menu.NewPrompt(os.Stdin, cmd.OutOrStdout())
			password, err := in.Password("Password: ")
			if err != nil {
				return err
			}
			if !auth.VerifyPassword(u.PasswordHash, password) {
				return errors.New("incorrect password")
			}

			pal := ui.ForUser(u.Theme, u.AccessibilityMode)
			return tui.RunDashboard(ctx, a.st, email, pal, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&email, "user", "u", "", "account email")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
