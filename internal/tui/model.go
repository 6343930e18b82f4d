package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tracknest/internal/engine"
	"tracknest/internal/model"
	"tracknest/internal/store"
	"tracknest/internal/ui"
)

type dashModel struct {
	ctx   context.Context
	st    *store.Store
	email string
	pal   ui.Palette

	width  int
	height int

	snap     *snapshot
	selected int

	lastLog string
	loading bool
	err     error
}

// snapshot is the slice of user state the dashboard renders. It is copied
// out of the store so the view never holds live pointers.
type snapshot struct {
	name          string
	points        int
	badges        []string
	longestStreak int
	overdue       int
	pinned        int
	habits        []habitLine
}

type habitLine struct {
	name     string
	freq     model.Frequency
	streak   int
	dueToday bool
}

type loadedMsg struct {
	snap *snapshot
	err  error
}

type loggedMsg struct {
	note string
	err  error
}

func newDashModel(ctx context.Context, st *store.Store, email string, pal ui.Palette) dashModel {
	return dashModel{
		ctx:     ctx,
		st:      st,
		email:   email,
		pal:     pal,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m dashModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m dashModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		u, ok := m.st.FindByEmail(m.email)
		if !ok {
			return loadedMsg{err: fmt.Errorf("%w: %s", store.ErrUserNotFound, m.email)}
		}
		return loadedMsg{snap: takeSnapshot(u)}
	}
}

func takeSnapshot(u *model.User) *snapshot {
	today := model.Today()
	s := &snapshot{
		name:          u.Name,
		points:        u.Points,
		badges:        append([]string(nil), u.Badges...),
		longestStreak: u.LongestStreak(),
		overdue:       len(engine.OverdueTasks(u, today)),
	}
	for i := range u.Goals {
		if u.Goals[i].Pinned {
			s.pinned++
		}
	}
	for i := range u.Tasks {
		if u.Tasks[i].Pinned {
			s.pinned++
		}
	}
	for i := range u.Habits {
		h := &u.Habits[i]
		if h.Archived {
			continue
		}
		if h.Pinned {
			s.pinned++
		}
		due := h.LastLogged == nil || !h.LastLogged.Equal(today)
		s.habits = append(s.habits, habitLine{
			name:     h.Name,
			freq:     h.Frequency,
			streak:   h.Streak,
			dueToday: due,
		})
	}
	return s
}

func (m dashModel) logCmd(name string) tea.Cmd {
	return func() tea.Msg {
		var note string
		err := m.st.Mutate(m.ctx, m.email, func(u *model.User) error {
			for i := range u.Habits {
				h := &u.Habits[i]
				if h.Name != name {
					continue
				}
				res := engine.LogHabit(h, model.Today())
				if !res.Logged {
					note = fmt.Sprintf("%s already logged today.", name)
					return nil
				}
				award := engine.ApplyHabitRewards(u, h, res)
				note = fmt.Sprintf("%s logged: streak %d, +%d points", name, res.Streak, award.Points)
				if len(award.Badges) > 0 {
					note += ", badge " + strings.Join(award.Badges, ", ")
				}
				return nil
			}
			return fmt.Errorf("habit %q not found", name)
		})
		return loggedMsg{note: note, err: err}
	}
}

func (m dashModel) quickLogCmd() tea.Cmd {
	return func() tea.Msg {
		var n int
		err := m.st.Mutate(m.ctx, m.email, func(u *model.User) error {
			n = engine.QuickLogDaily(u, model.Today())
			return nil
		})
		return loggedMsg{note: fmt.Sprintf("Quick-logged %d daily habits.", n), err: err}
	}
}

func (m dashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.snap = msg.snap
		if m.selected >= len(m.snap.habits) {
			m.selected = len(m.snap.habits) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case loggedMsg:
		if msg.err != nil {
			m.lastLog = "Log failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = msg.note
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.snap != nil && m.selected < len(m.snap.habits)-1 {
				m.selected++
			}
			return m, nil
		case "l", " ", "enter":
			if m.snap == nil || m.selected < 0 || m.selected >= len(m.snap.habits) {
				return m, nil
			}
			h := m.snap.habits[m.selected]
			m.lastLog = fmt.Sprintf("Logging %s…", h.name)
			return m, m.logCmd(h.name)
		case "a":
			m.lastLog = "Quick-logging daily habits…"
			return m, m.quickLogCmd()
		}
	}
	return m, nil
}

func (m dashModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}
	if m.loading || m.snap == nil {
		return "TrackNest — loading…\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderHabits()
	footer := m.renderFooter()

	leftW := 28
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m dashModel) renderHeader() string {
	return fmt.Sprintf("TrackNest | %s | %s %d points | %s %d badges",
		m.snap.name, ui.IconPoints, m.snap.points, ui.IconBadge, len(m.snap.badges))
}

func (m dashModel) renderSidebar() string {
	s := m.snap
	lines := []string{m.pal.H2.Render("Today")}
	lines = append(lines, m.pal.LabelValue("Longest streak", fmt.Sprintf("%s %d", ui.IconStreak, s.longestStreak)))
	if s.overdue > 0 {
		lines = append(lines, m.pal.LabelValue("Overdue tasks", m.pal.Bad.Render(fmt.Sprintf("%d", s.overdue))))
	} else {
		lines = append(lines, m.pal.LabelValue("Overdue tasks", "0"))
	}
	lines = append(lines, m.pal.LabelValue("Pinned items", fmt.Sprintf("%s %d", ui.IconPin, s.pinned)))
	lines = append(lines, "")
	lines = append(lines, m.pal.H2.Render("Badges"))
	if len(s.badges) == 0 {
		lines = append(lines, m.pal.Muted.Render("none yet"))
	}
	for _, b := range s.badges {
		lines = append(lines, ui.IconBadge+" "+b)
	}
	return strings.Join(lines, "\n")
}

func (m dashModel) renderHabits() string {
	s := m.snap
	lines := []string{m.pal.H2.Render("Habits")}
	if len(s.habits) == 0 {
		lines = append(lines, m.pal.Muted.Render("no habits yet"))
	}
	for i, h := range s.habits {
		mark := " "
		if !h.dueToday {
			mark = ui.IconDone
		}
		row := fmt.Sprintf("%s %s %s (%s) streak %d", mark, ui.IconHabit, h.name, h.freq, h.streak)
		if i == m.selected {
			row = m.pal.SelectedRow.Render("> " + row)
		} else {
			row = "  " + row
		}
		lines = append(lines, row)
	}
	return strings.Join(lines, "\n")
}

func (m dashModel) renderFooter() string {
	return m.pal.Muted.Render("↑/↓ select · l log habit · a quick-log daily · r refresh · q quit") + "\n" +
		m.lastLog + "\n"
}

func padRight(s string, w int) string {
	if len(s) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(s))
}
