package engine

import (
	"errors"

	"tracknest/internal/model"
)

// ErrTaskAlreadyDone is returned when completing a task that is already done;
// the done flag is one-way.
var ErrTaskAlreadyDone = errors.New("task already done")

// CompleteTask marks t done and applies the completion rewards to u: the
// completion points, the first-completion badge when the user's done count
// becomes 1, and a push onto the bounded recently-completed record.
func CompleteTask(u *model.User, t *model.Task) (Award, error) {
	if t.Done {
		return Award{}, ErrTaskAlreadyDone
	}
	t.Done = true

	var award Award
	award.Points = PointsTaskDone
	if u.CompletedTaskCount() == 1 {
		award.badge(u, BadgeFirstTask)
	}
	u.AddPoints(award.Points)
	u.AddRecentCompleted("Task: " + t.Name)
	return award, nil
}
