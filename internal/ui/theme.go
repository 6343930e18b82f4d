// Package ui holds the tracker's terminal styling: reusable lipgloss styles
// and a few icons, bundled per theme so each user sees their chosen one.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	IconGoal   = "🎯"
	IconHabit  = "🔁"
	IconTask   = "📝"
	IconDone   = "✅"
	IconBadge  = "🏆"
	IconStreak = "🔥"
	IconPin    = "📌"
	IconInfo   = "ℹ️"
	IconWarn   = "⚠️"
	IconError  = "❌"
	IconPoints = "⭐"
)

// Palette is one theme's set of styles.
type Palette struct {
	Name string

	Title Style
	H2    Style
	Key   Style
	Good  Style
	Warn  Style
	Bad   Style
	Gold  Style
	Muted Style

	Panel       lipgloss.Style
	SelectedRow lipgloss.Style
}

// Style is the subset of lipgloss.Style the menus need; keeping it an
// interface lets the accessibility palette render plain text.
type Style interface {
	Render(...string) string
}

type plain struct{}

func (plain) Render(s ...string) string { return strings.Join(s, " ") }

// Light is the default palette, tuned for light terminal backgrounds.
func Light() Palette {
	return colorPalette("Light",
		lipgloss.Color("26"),  // blue
		lipgloss.Color("127"), // magenta
	)
}

// Dark uses brighter foregrounds for dark backgrounds.
func Dark() Palette {
	return colorPalette("Dark",
		lipgloss.Color("63"),  // light blue
		lipgloss.Color("205"), // pink
	)
}

// NoColor renders everything unstyled for the accessibility mode.
func NoColor() Palette {
	return Palette{
		Name:        "NoColor",
		Title:       plain{},
		H2:          plain{},
		Key:         plain{},
		Good:        plain{},
		Warn:        plain{},
		Bad:         plain{},
		Gold:        plain{},
		Muted:       plain{},
		Panel:       lipgloss.NewStyle().Padding(0, 1),
		SelectedRow: lipgloss.NewStyle(),
	}
}

func colorPalette(name string, primary, accent lipgloss.Color) Palette {
	good := lipgloss.Color("42")
	warn := lipgloss.Color("214")
	bad := lipgloss.Color("196")
	muted := lipgloss.Color("244")
	gold := lipgloss.Color("220")
	return Palette{
		Name:  name,
		Title: lipgloss.NewStyle().Bold(true).Foreground(accent),
		H2:    lipgloss.NewStyle().Bold(true).Foreground(primary),
		Key:   lipgloss.NewStyle().Bold(true).Foreground(primary),
		Good:  lipgloss.NewStyle().Bold(true).Foreground(good),
		Warn:  lipgloss.NewStyle().Bold(true).Foreground(warn),
		Bad:   lipgloss.NewStyle().Bold(true).Foreground(bad),
		Gold:  lipgloss.NewStyle().Bold(true).Foreground(gold),
		Muted: lipgloss.NewStyle().Foreground(muted),

		Panel:       lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
		SelectedRow: lipgloss.NewStyle().Bold(true).Foreground(gold).Background(primary),
	}
}

// ForUser resolves a palette from a stored theme name and accessibility
// flag. Accessibility wins over the theme.
func ForUser(theme string, accessibility bool) Palette {
	if accessibility {
		return NoColor()
	}
	if strings.EqualFold(theme, "Dark") {
		return Dark()
	}
	return Light()
}

func (p Palette) Heading(icon, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return p.Title.Render(icon + title)
}

func (p Palette) LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", p.Key.Render(label+":"), value)
}

// GoalStatusText colors a goal status.
func (p Palette) GoalStatusText(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "complete":
		return p.Good.Render(status)
	case "active":
		return p.H2.Render(status)
	case "failed":
		return p.Bad.Render(status)
	default:
		return p.Muted.Render(status)
	}
}

// PriorityText colors a task priority.
func (p Palette) PriorityText(prio string) string {
	switch strings.ToLower(strings.TrimSpace(prio)) {
	case "high":
		return p.Bad.Render(prio)
	case "medium":
		return p.Warn.Render(prio)
	case "low":
		return p.Muted.Render(prio)
	default:
		return p.Muted.Render(prio)
	}
}
