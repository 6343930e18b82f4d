package engine

import (
	"fmt"

	"tracknest/internal/model"
)

// Reward points per action and the streak bonus.
const (
	PointsHabitLog    = 5
	PointsQuickLog    = 1
	PointsTaskDone    = 10
	PointsStreakBonus = 50
)

// Badge names. Persisted verbatim, so changing one orphans it in old files.
const (
	BadgeFirstHabit   = "First Habit Logged!"
	BadgeStreakMaster = "Weekly Streak Master"
	BadgeFirstTask    = "First Task Complete"
)

// streakBonusEvery: the streak bonus fires when the streak becomes a positive
// multiple of this many periods.
const streakBonusEvery = 7

// Award lists the side effects a transition had on the owning user: points
// added, badges newly unlocked, and human-readable notifications for the
// caller to display.
type Award struct {
	Points int
	Badges []string
	Events []string
}

func (a *Award) badge(u *model.User, name string) {
	if u.AddBadge(name) {
		a.Badges = append(a.Badges, name)
		a.Events = append(a.Events, "Achievement unlocked: "+name)
	}
}

// ApplyHabitRewards applies the point and badge consequences of a habit log
// to the owning user. A no-op log (already logged today) awards nothing.
//
// The streak bonus fires exactly once per qualifying transition: at the log
// that makes the streak a positive multiple of 7, never when the streak is
// merely observed.
func ApplyHabitRewards(u *model.User, h *model.Habit, res HabitLogResult) Award {
	var award Award
	if !res.Logged {
		return award
	}

	award.Points += PointsHabitLog
	if res.Streak == 1 {
		award.badge(u, BadgeFirstHabit)
	}
	if res.Streak > 0 && res.Streak%streakBonusEvery == 0 {
		award.Points += PointsStreakBonus
		award.badge(u, BadgeStreakMaster)
		award.Events = append(award.Events, fmt.Sprintf("%d-period streak on %q: +%d pts", res.Streak, h.Name, PointsStreakBonus))
	}

	u.AddPoints(award.Points)
	return award
}
