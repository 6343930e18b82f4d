package engine

import (
	"time"

	"tracknest/internal/model"
)

// autoFailGraceDays: an active goal fails once its deadline is more than this
// many days in the past.
const autoFailGraceDays = 3

// AutoFailGoals transitions every Active goal whose deadline is more than 3
// days past to Failed and returns the titles transitioned, in order. The scan
// keeps no last-checked marker: re-running it is idempotent because only
// Active goals transition.
func AutoFailGoals(u *model.User, today time.Time) []string {
	day := model.Midnight(today)
	var failed []string
	for i := range u.Goals {
		g := &u.Goals[i]
		if g.Status != model.GoalActive {
			continue
		}
		if g.Deadline.AddDate(0, 0, autoFailGraceDays).Before(day) {
			g.Status = model.GoalFailed
			failed = append(failed, g.Title)
		}
	}
	return failed
}

// OverdueTasks returns the indexes of u's tasks that are overdue as of the
// given day. Overdue is derived, never stored.
func OverdueTasks(u *model.User, today time.Time) []int {
	var idx []int
	for i := range u.Tasks {
		if u.Tasks[i].Overdue(today) {
			idx = append(idx, i)
		}
	}
	return idx
}
