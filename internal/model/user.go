package model

import (
	"fmt"
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleNormal Role = "normal"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleNormal:
		return true
	default:
		return false
	}
}

// ParseRole parses user input to a Role. "user" is accepted as an alias for
// normal, matching the legacy registration prompt.
func ParseRole(input string) (Role, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "admin":
		return RoleAdmin, nil
	case "normal", "user", "":
		return RoleNormal, nil
	default:
		return "", fmt.Errorf("invalid role: %q", input)
	}
}

// maxRecentCompleted bounds the runtime-only recently-completed record.
const maxRecentCompleted = 3

// User is the root entity of the store. A user exclusively owns its goal,
// habit, and task sequences; nothing else references them.
type User struct {
	ID                 int
	Name               string
	Email              string
	PasswordHash       string
	SecurityQuestion   string
	SecurityAnswerHash string
	Role               Role
	Points             int
	// Badges is a set with insertion order preserved; AddBadge dedupes.
	Badges           []string
	Goals            []Goal
	Habits           []Habit
	Tasks            []Task
	Active           bool
	RegistrationDate time.Time
	Theme            string

	// Optional profile fields; nil means unset.
	Description       *string
	Avatar            *string
	ReminderFrequency *string
	Language          *string
	FriendEmail       *string
	AccessibilityMode bool

	// Runtime-only state, never persisted.
	RecentCompleted []string
	HabitHistory    []string
	DailyTaskTarget int
	LastLogin       *time.Time
}

func (u *User) AddPoints(n int) {
	u.Points += n
	if u.Points < 0 {
		u.Points = 0
	}
}

// AddBadge adds a badge name to the user's set. It reports whether the badge
// was newly awarded; re-awarding an existing badge is a no-op.
func (u *User) AddBadge(name string) bool {
	if u.HasBadge(name) {
		return false
	}
	u.Badges = append(u.Badges, name)
	return true
}

func (u *User) HasBadge(name string) bool {
	for _, b := range u.Badges {
		if b == name {
			return true
		}
	}
	return false
}

// AddRecentCompleted pushes an entry onto the recently-completed record,
// most recent first, keeping at most the 3 latest entries.
func (u *User) AddRecentCompleted(entry string) {
	u.RecentCompleted = append([]string{entry}, u.RecentCompleted...)
	if len(u.RecentCompleted) > maxRecentCompleted {
		u.RecentCompleted = u.RecentCompleted[:maxRecentCompleted]
	}
}

// CompletedTaskCount counts the user's done tasks.
func (u *User) CompletedTaskCount() int {
	n := 0
	for i := range u.Tasks {
		if u.Tasks[i].Done {
			n++
		}
	}
	return n
}

// LongestStreak returns the highest current streak across habits.
func (u *User) LongestStreak() int {
	best := 0
	for i := range u.Habits {
		if u.Habits[i].Streak > best {
			best = u.Habits[i].Streak
		}
	}
	return best
}
