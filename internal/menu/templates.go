package menu

import (
	"context"
	"fmt"

	"tracknest/internal/model"
)

// GoalTemplate is an admin-authored goal blueprint. Instantiating it sets
// the deadline relative to the day of instantiation.
type GoalTemplate struct {
	Title        string
	Description  string
	DurationDays int
}

// Templates live on the session like tips and announcements: in-memory,
// admin-authored, shared with every user until the process exits.

func (s *Session) createHabitTemplate() error {
	name, err := s.In.NonEmpty("Habit template name: ")
	if err != nil {
		return err
	}
	s.habitTemplates = append(s.habitTemplates, name)
	fmt.Fprintln(s.Out, "Habit template added.")
	return nil
}

func (s *Session) createGoalTemplate() error {
	title, err := s.In.NonEmpty("Goal template title: ")
	if err != nil {
		return err
	}
	desc, err := s.In.Line("Description: ")
	if err != nil {
		return err
	}
	days, err := s.In.Int("Recommended duration in days: ", 1, 3650)
	if err != nil {
		return err
	}
	s.goalTemplates = append(s.goalTemplates, GoalTemplate{Title: title, Description: desc, DurationDays: days})
	fmt.Fprintln(s.Out, "Goal template created.")
	return nil
}

func (s *Session) instantiateHabitTemplate(ctx context.Context, email string) error {
	if len(s.habitTemplates) == 0 {
		fmt.Fprintln(s.Out, "No habit templates available.")
		return nil
	}
	for i, name := range s.habitTemplates {
		fmt.Fprintf(s.Out, "%d. %s\n", i+1, name)
	}
	idx, err := s.In.Int("Pick template number: ", 1, len(s.habitTemplates))
	if err != nil {
		return err
	}
	freqInput, err := s.In.NonEmpty("Frequency (Daily/Weekly): ")
	if err != nil {
		return err
	}
	freq, err := model.ParseFrequency(freqInput)
	if err != nil {
		return err
	}
	if err := s.St.Mutate(ctx, email, func(u *model.User) error {
		u.Habits = append(u.Habits, model.NewHabit(s.habitTemplates[idx-1], freq))
		return nil
	}); err != nil {
		return err
	}
	fmt.Fprintln(s.Out, "Habit added from template.")
	return nil
}

func (s *Session) instantiateGoalTemplate(ctx context.Context, email string) error {
	if len(s.goalTemplates) == 0 {
		fmt.Fprintln(s.Out, "No goal templates.")
		return nil
	}
	for i, gt := range s.goalTemplates {
		fmt.Fprintf(s.Out, "%d. %s (%s, %d days)\n", i+1, gt.Title, gt.Description, gt.DurationDays)
	}
	idx, err := s.In.Int("Pick template number: ", 1, len(s.goalTemplates))
	if err != nil {
		return err
	}
	gt := s.goalTemplates[idx-1]
	deadline := model.Today().AddDate(0, 0, gt.DurationDays)
	if err := s.St.Mutate(ctx, email, func(u *model.User) error {
		u.Goals = append(u.Goals, model.NewGoal(gt.Title, gt.Description, deadline))
		return nil
	}); err != nil {
		return err
	}
	fmt.Fprintf(s.Out, "Goal added from template (deadline %s).\n", model.FormatDate(deadline))
	return nil
}
