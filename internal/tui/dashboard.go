// Package tui renders the interactive dashboard: points, badges, streaks,
// overdue counts, and a habit list with in-place logging.
package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"tracknest/internal/store"
	"tracknest/internal/ui"
)

// RunDashboard runs the dashboard for the user under email until they quit.
func RunDashboard(ctx context.Context, st *store.Store, email string, pal ui.Palette, out io.Writer) error {
	m := newDashModel(ctx, st, email, pal)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
