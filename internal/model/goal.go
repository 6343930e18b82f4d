package model

import (
	"fmt"
	"strings"
	"time"
)

type GoalStatus string

const (
	GoalActive   GoalStatus = "Active"
	GoalComplete GoalStatus = "Complete"
	GoalFailed   GoalStatus = "Failed"
)

func (s GoalStatus) IsValid() bool {
	switch s {
	case GoalActive, GoalComplete, GoalFailed:
		return true
	default:
		return false
	}
}

func ParseGoalStatus(input string) (GoalStatus, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "active":
		return GoalActive, nil
	case "complete":
		return GoalComplete, nil
	case "failed":
		return GoalFailed, nil
	default:
		return "", fmt.Errorf("invalid goal status: %q", input)
	}
}

// Goal has exactly two transitions out of Active: an explicit completion and
// the automatic failure check. Terminal states never revert automatically.
type Goal struct {
	Title        string
	Description  string
	Deadline     time.Time
	Status       GoalStatus
	Pinned       bool
	Note         *string
	ReminderDate *time.Time
	Archived     bool
}

func NewGoal(title, description string, deadline time.Time) Goal {
	return Goal{
		Title:       title,
		Description: description,
		Deadline:    Midnight(deadline),
		Status:      GoalActive,
	}
}

// MarkComplete performs the explicit Active→Complete transition. It reports
// whether the transition happened; goals in a terminal state are untouched.
func (g *Goal) MarkComplete() bool {
	if g.Status != GoalActive {
		return false
	}
	g.Status = GoalComplete
	return true
}
