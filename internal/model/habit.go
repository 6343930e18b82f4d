package model

import (
	"fmt"
	"strings"
	"time"
)

type Frequency string

const (
	FrequencyDaily  Frequency = "Daily"
	FrequencyWeekly Frequency = "Weekly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly:
		return true
	default:
		return false
	}
}

func ParseFrequency(input string) (Frequency, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "daily":
		return FrequencyDaily, nil
	case "weekly":
		return FrequencyWeekly, nil
	default:
		return "", fmt.Errorf("invalid frequency: %q", input)
	}
}

// Habit tracks consecutive qualifying log periods. Invariant: Streak is 0
// iff LastLogged is absent.
type Habit struct {
	Name         string
	Frequency    Frequency
	Streak       int
	LastLogged   *time.Time
	Pinned       bool
	Note         *string
	ReminderDate *time.Time
	Archived     bool
}

func NewHabit(name string, freq Frequency) Habit {
	return Habit{Name: name, Frequency: freq}
}
