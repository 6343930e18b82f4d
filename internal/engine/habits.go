// Package engine holds the pure consistency rules of the tracker: habit
// streak transitions, reward point and badge accrual, task completion, and
// goal auto-failure. Every function takes the current calendar day explicitly
// so the rules stay deterministic and testable.
package engine

import (
	"time"

	"tracknest/internal/model"
)

// HabitLogResult describes the outcome of logging a habit on a given day.
type HabitLogResult struct {
	// Logged is false when the habit was already logged that day; nothing
	// changed in that case.
	Logged bool
	Streak int
	// Continued means the streak was extended by one qualifying period.
	Continued bool
	// Reset means the gap since the last log was too large (or the date moved
	// backward) and the streak restarted at 1.
	Reset bool
}

// LogHabit applies one log action to h for the given day.
//
// Rules, with L = last-logged date and T = today:
//   - L absent: streak := 1.
//   - Daily and L+1d == T, or Weekly and L+7d == T: streak += 1.
//   - L == T: no-op, already logged today.
//   - anything else: streak := 1.
//
// L := T afterward except on the no-op path.
func LogHabit(h *model.Habit, today time.Time) HabitLogResult {
	day := model.Midnight(today)

	if h.LastLogged == nil {
		h.Streak = 1
		h.LastLogged = &day
		return HabitLogResult{Logged: true, Streak: 1}
	}

	last := model.Midnight(*h.LastLogged)
	res := HabitLogResult{Logged: true}
	switch {
	case last.Equal(day):
		return HabitLogResult{Logged: false, Streak: h.Streak}
	case h.Frequency == model.FrequencyDaily && last.AddDate(0, 0, 1).Equal(day):
		h.Streak++
		res.Continued = true
	case h.Frequency == model.FrequencyWeekly && last.AddDate(0, 0, 7).Equal(day):
		h.Streak++
		res.Continued = true
	default:
		h.Streak = 1
		res.Reset = true
	}
	h.LastLogged = &day
	res.Streak = h.Streak
	return res
}

// QuickLogDaily logs every daily habit of u for the given day, awarding the
// quick-log point per habit actually logged and recording history entries.
// It returns the number of habits logged.
func QuickLogDaily(u *model.User, today time.Time) int {
	n := 0
	for i := range u.Habits {
		h := &u.Habits[i]
		if h.Frequency != model.FrequencyDaily {
			continue
		}
		res := LogHabit(h, today)
		if !res.Logged {
			continue
		}
		u.AddPoints(PointsQuickLog)
		u.HabitHistory = append(u.HabitHistory, "Quick-log "+h.Name+" on "+model.FormatDate(today))
		n++
	}
	return n
}
