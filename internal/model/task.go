package model

import (
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

func ParsePriority(input string) (Priority, error) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	default:
		return "", fmt.Errorf("invalid priority: %q", input)
	}
}

// Rank orders priorities for sorting: High < Medium < Low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Task marks completion with a one-way Done flag. Overdue is derived at read
// time and never stored.
type Task struct {
	Name         string
	Due          time.Time
	Priority     Priority
	Done         bool
	Pinned       bool
	ReminderDate *time.Time
	Archived     bool
	Comments     []string
}

func NewTask(name string, due time.Time, prio Priority) Task {
	return Task{Name: name, Due: Midnight(due), Priority: prio}
}

// Overdue reports whether the task is past due and still pending as of the
// given day. A done task is never overdue.
func (t *Task) Overdue(today time.Time) bool {
	return Midnight(today).After(t.Due) && !t.Done
}

func (t *Task) AddComment(c string) {
	t.Comments = append(t.Comments, c)
}
