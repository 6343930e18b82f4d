package menu

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"tracknest/internal/engine"
	"tracknest/internal/model"
	"tracknest/internal/tui"
	"tracknest/internal/ui"
)

var userOptions = []string{
	"Add New Goal",
	"Track Daily Habit",
	"View Streaks",
	"Log Task Completion",
	"View Progress Report",
	"Add Task",
	"Add Habit",
	"Edit/Delete Goal",
	"Edit/Delete Task",
	"Edit/Delete Habit",
	"Search/Filter Goals",
	"Sort Tasks",
	"View Calendar Deadlines",
	"View Habit History",
	"View Productivity Tips",
	"Instantiate Habit Template",
	"Instantiate Goal Template",
	"Quick Log All Daily Habits",
	"Pin/Unpin Task, Goal or Habit",
	"Show Achievement Badges",
	"Add Note to Goal or Habit",
	"Task Comments",
	"View Recently Completed Items",
	"Set/View Daily Task Target",
	"Open Dashboard",
	"Profile Settings",
	"Switch Theme",
	"Preview Theme",
	"Change Password",
	"View My Email & Registration Date",
	"Delete Account",
	"Help",
	"Back/Logout",
}

func (s *Session) userMenu(ctx context.Context, email string) error {
	for {
		u, ok := s.St.FindByEmail(email)
		if !ok {
			return nil // account deleted during the session
		}
		pal := ui.ForUser(u.Theme, u.AccessibilityMode)

		ch, err := s.In.Select("User Menu", userOptions)
		if err != nil {
			if err == ErrBack {
				continue
			}
			return err
		}

		var actErr error
		switch ch {
		case 1:
			actErr = s.addGoal(ctx, email)
		case 2:
			actErr = s.trackHabit(ctx, email, pal)
		case 3:
			s.showStreaks(u, pal)
		case 4:
			actErr = s.logTaskCompletion(ctx, email, pal)
		case 5:
			s.progressReport(u, pal)
		case 6:
			actErr = s.addTask(ctx, email)
		case 7:
			actErr = s.addHabit(ctx, email)
		case 8:
			actErr = s.editDeleteGoal(ctx, email, pal)
		case 9:
			actErr = s.editDeleteTask(ctx, email, pal)
		case 10:
			actErr = s.editDeleteHabit(ctx, email, pal)
		case 11:
			actErr = s.searchFilterGoals(u, pal)
		case 12:
			actErr = s.sortTasks(u, pal)
		case 13:
			actErr = s.viewCalendar(u)
		case 14:
			s.showHabitHistory(u)
		case 15:
			s.viewTips()
		case 16:
			actErr = s.instantiateHabitTemplate(ctx, email)
		case 17:
			actErr = s.instantiateGoalTemplate(ctx, email)
		case 18:
			actErr = s.quickLogHabits(ctx, email)
		case 19:
			actErr = s.pinUnpin(ctx, email)
		case 20:
			s.showBadges(u, pal)
		case 21:
			actErr = s.addNote(ctx, email)
		case 22:
			actErr = s.taskComments(ctx, email)
		case 23:
			s.showRecentCompleted(u)
		case 24:
			actErr = s.dailyTaskTarget(ctx, email)
		case 25:
			actErr = tui.RunDashboard(ctx, s.St, email, pal, s.Out)
		case 26:
			actErr = s.profileSettings(ctx, email)
		case 27:
			actErr = s.switchTheme(ctx, email)
		case 28:
			actErr = s.previewTheme()
		case 29:
			actErr = s.changePassword(ctx, email)
		case 30:
			fmt.Fprintln(s.Out, "Email:", u.Email)
			fmt.Fprintln(s.Out, "Registration Date:", model.FormatDate(u.RegistrationDate))
		case 31:
			deleted, err := s.deleteAccount(ctx, email)
			if deleted {
				return nil
			}
			actErr = err
		case 32:
			fmt.Fprintln(s.Out, "- Use the menu numbers to navigate.")
			fmt.Fprintln(s.Out, "- 'Back/Logout' returns to the main menu.")
			fmt.Fprintln(s.Out, "- Most actions can be cancelled by typing 'back' at a prompt.")
		case 33:
			return nil
		}
		if actErr != nil && actErr != ErrBack {
			fmt.Fprintln(s.Out, "Error:", actErr)
		}
	}
}

func (s *Session) addGoal(ctx context.Context, email string) error {
	title, err := s.In.NonEmpty("Goal title: ")
	if err != nil {
		return err
	}
	desc, err := s.In.Line("Description: ")
	if err != nil {
		return err
	}
	deadline, err := s.In.Date("Deadline (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	if err := s.St.Mutate(ctx, email, func(u *model.User) error {
		u.Goals = append(u.Goals, model.NewGoal(title, desc, deadline))
		return nil
	}); err != nil {
		return err
	}
	fmt.Fprintln(s.Out, "Goal added.")
	return nil
}

func (s *Session) addTask(ctx context.Context, email string) error {
	name, err := s.In.NonEmpty("Task name: ")
	if err != nil {
		return err
	}
	due, err := s.In.Date("Due date (YYYY-MM-DD): ")
	if err != nil {
		return err
	}
	prioInput, err := s.In.NonEmpty("Priority (High/Medium/Low): ")
	if err != nil {
		return err
	}
	prio, err := model.ParsePriority(prioInput)
	if err != nil {
		return err
	}
	if err := s.St.Mutate(ctx, email, func(u *model.User) error {
		u.Tasks = append(u.Tasks, model.NewTask(name, due, prio))
		return nil
	}); err != nil {
		return err
	}
	fmt.Fprintln(s.Out, "Task added.")
	return nil
}

func (s *Session) addHabit(ctx context.Context, email string) error {
	name, err := s.In.NonEmpty("Habit name: ")
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
		u.Habits = append(u.Habits, model.NewHabit(name, freq))
		return nil
	}); err != nil {
		return err
	}
	fmt.Fprintln(s.Out, "Habit added.")
	return nil
}

func (s *Session) trackHabit(ctx context.Context, email string, pal ui.Palette) error {
	u, _ := s.St.FindByEmail(email)
	if len(u.Habits) == 0 {
		fmt.Fprintln(s.Out, "No habits!")
		return nil
	}
	s.printHabits(u, pal)
	idx, err := s.In.Int("Pick habit number to log: ", 1, len(u.Habits))
	if err != nil {
		return err
	}

	return s.St.Mutate(ctx, email, func(u *model.User) error {
		h := &u.Habits[idx-1]
		res := engine.LogHabit(h, model.Today())
		if !res.Logged {
			fmt.Fprintln(s.Out, "Already logged today.")
			return nil
		}
		award := engine.ApplyHabitRewards(u, h, res)
		u.HabitHistory = append(u.HabitHistory,
			fmt.Sprintf("Logged %s on %s", h.Name, model.FormatDate(model.Today())))

		switch {
		case res.Reset:
			fmt.Fprintf(s.Out, "Streak reset, back to %d. +%d pts\n", res.Streak, award.Points)
		default:
			fmt.Fprintf(s.Out, "%s streak: %d. +%d pts\n", h.Name, res.Streak, award.Points)
		}
		for _, ev := range award.Events {
			fmt.Fprintln(s.Out, pal.Gold.Render(ui.IconBadge+" "+ev))
		}
		return nil
	})
}

func (s *Session) quickLogHabits(ctx context.Context, email string) error {
	return s.St.Mutate(ctx, email, func(u *model.User) error {
		n := engine.QuickLogDaily(u, model.Today())
		fmt.Fprintf(s.Out, "Quick-logged %d daily habits for today.\n", n)
		return nil
	})
}

func (s *Session) showStreaks(u *model.User, pal ui.Palette) {
	fmt.Fprintln(s.Out, pal.Heading(ui.IconStreak, "Habit Streaks"))
	if len(u.Habits) == 0 {
		fmt.Fprintln(s.Out, "No habits yet.")
		return
	}
	for i := range u.Habits {
		h := &u.Habits[i]
		last := "never"
		if h.LastLogged != nil {
			last = model.FormatDate(*h.LastLogged)
		}
		fmt.Fprintf(s.Out, "%s: %d (last: %s)\n", h.Name, h.Streak, last)
	}
}

func (s *Session) logTaskCompletion(ctx context.Context, email string, pal ui.Palette) error {
	u, _ := s.St.FindByEmail(email)
	var pending []int
	for i := range u.Tasks {
		if !u.Tasks[i].Done {
			pending = append(pending, i)
		}
	}
	if len(pending) == 0 {
		fmt.Fprintln(s.Out, "No pending tasks.")
		return nil
	}
	for n, i := range pending {
		t := &u.Tasks[i]
		fmt.Fprintf(s.Out, "%d. %s (due %s, %s)\n", n+1, t.Name, model.FormatDate(t.Due), pal.PriorityText(string(t.Priority)))
	}
	pick, err := s.In.Int("Pick number to mark task complete: ", 1, len(pending))
	if err != nil {
		return err
	}
	idx := pending[pick-1]

	return s.St.Mutate(ctx, email, func(u *model.User) error {
		award, err := engine.CompleteTask(u, &u.Tasks[idx])
		if err != nil {
			return err
		}
		fmt.Fprintf(s.Out, "Task complete! +%d pts\n", award.Points)
		for _, b := range award.Badges {
			fmt.Fprintln(s.Out, pal.Gold.Render(ui.IconBadge+" Badge unlocked: "+b))
		}
		return nil
	})
}

func (s *Session) progressReport(u *model.User, pal ui.Palette) {
	fmt.Fprintln(s.Out, pal.Heading(ui.IconPoints, "Progress Report for "+u.Name))
	fmt.Fprintln(s.Out, pal.LabelValue("Reward Points", u.Points))
	target := "none"
	if u.DailyTaskTarget > 0 {
		target = fmt.Sprintf("%d tasks/day", u.DailyTaskTarget)
	}
	fmt.Fprintln(s.Out, pal.LabelValue("Daily Target", target))
	fmt.Fprintln(s.Out, "Goals:")
	s.printGoals(u, pal)
	fmt.Fprintln(s.Out, "Habits:")
	s.printHabits(u, pal)
	fmt.Fprintln(s.Out, "Tasks:")
	s.printTasks(u, pal)
}

func (s *Session) printGoals(u *model.User, pal ui.Palette) {
	for i := range u.Goals {
		g := &u.Goals[i]
		pin := ""
		if g.Pinned {
			pin = " " + ui.IconPin
		}
		fmt.Fprintf(s.Out, "%d. %s (deadline %s, %s)%s\n",
			i+1, g.Title, model.FormatDate(g.Deadline), pal.GoalStatusText(string(g.Status)), pin)
	}
}

func (s *Session) printHabits(u *model.User, pal ui.Palette) {
	for i := range u.Habits {
		h := &u.Habits[i]
		pin := ""
		if h.Pinned {
			pin = " " + ui.IconPin
		}
		fmt.Fprintf(s.Out, "%d. %s (%s, streak %d)%s\n", i+1, h.Name, h.Frequency, h.Streak, pin)
	}
}

func (s *Session) printTasks(u *model.User, pal ui.Palette) {
	today := model.Today()
	for i := range u.Tasks {
		t := &u.Tasks[i]
		mark := " "
		if t.Done {
			mark = ui.IconDone
		} else if t.Overdue(today) {
			mark = pal.Bad.Render("!")
		}
		pin := ""
		if t.Pinned {
			pin = " " + ui.IconPin
		}
		fmt.Fprintf(s.Out, "%d. %s %s (due %s, %s)%s\n",
			i+1, mark, t.Name, model.FormatDate(t.Due), pal.PriorityText(string(t.Priority)), pin)
	}
}

func (s *Session) editDeleteGoal(ctx context.Context, email string, pal ui.Palette) error {
	u, _ := s.St.FindByEmail(email)
	if len(u.Goals) == 0 {
		fmt.Fprintln(s.Out, "No goals.")
		return nil
	}
	s.printGoals(u, pal)
	op, err := s.In.NonEmpty("Edit or Delete? (E/D): ")
	if err != nil {
		return err
	}
	idx, err := s.In.Int("Pick goal number: ", 1, len(u.Goals))
	if err != nil {
		return err
	}
	idx--

	if strings.EqualFold(op, "D") {
		ok, err := s.In.Confirm("Delete this goal?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(s.Out, "Delete cancelled.")
			return nil
		}
		return s.St.Mutate(ctx, email, func(u *model.User) error {
			u.Goals = append(u.Goals[:idx], u.Goals[idx+1:]...)
			fmt.Fprintln(s.Out, "Goal deleted.")
			return nil
		})
	}

	field, err := s.In.NonEmpty("Edit fields: 1.Title 2.Description 3.Deadline 4.Status\nField: ")
	if err != nil {
		return err
	}
	return s.St.Mutate(ctx, email, func(u *model.User) error {
		g := &u.Goals[idx]
		switch field {
		case "1":
			v, err := s.In.NonEmpty("New title: ")
			if err != nil {
				return err
			}
			g.Title = v
		case "2":
			v, err := s.In.NonEmpty("New description: ")
			if err != nil {
				return err
			}
			g.Description = v
		case "3":
			d, err := s.In.Date("New deadline (YYYY-MM-DD): ")
			if err != nil {
				return err
			}
			g.Deadline = model.Midnight(d)
		case "4":
			v, err := s.In.NonEmpty("Set status (Active/Complete): ")
			if err != nil {
				return err
			}
			st, err := model.ParseGoalStatus(v)
			if err != nil {
				return err
			}
			g.Status = st
		default:
			return fmt.Errorf("unknown field %q", field)
		}
		fmt.Fprintln(s.Out, "Goal edited.")
		return nil
	})
}

func (s *Session) editDeleteTask(ctx context.Context, email string, pal ui.Palette) error {
	u, _ := s.St.FindByEmail(email)
	if len(u.Tasks) == 0 {
		fmt.Fprintln(s.Out, "No tasks.")
		return nil
	}
	s.printTasks(u, pal)
	op, err := s.In.NonEmpty("Edit or Delete? (E/D): ")
	if err != nil {
		return err
	}
	idx, err := s.In.Int("Pick task number: ", 1, len(u.Tasks))
	if err != nil {
		return err
	}
	idx--

	if strings.EqualFold(op, "D") {
		ok, err := s.In.Confirm("Delete this task?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(s.Out, "Delete cancelled.")
			return nil
		}
		return s.St.Mutate(ctx, email, func(u *model.User) error {
			u.Tasks = append(u.Tasks[:idx], u.Tasks[idx+1:]...)
			fmt.Fprintln(s.Out, "Task deleted.")
			return nil
		})
	}

	field, err := s.In.NonEmpty("Edit fields: 1.Name 2.DueDate 3.Priority\nField: ")
	if err != nil {
		return err
	}
	return s.St.Mutate(ctx, email, func(u *model.User) error {
		t := &u.Tasks[idx]
		switch field {
		case "1":
			v, err := s.In.NonEmpty("New name: ")
			if err != nil {
				return err
			}
			t.Name = v
		case "2":
			d, err := s.In.Date("New due date (YYYY-MM-DD): ")
			if err != nil {
				return err
			}
			t.Due = model.Midnight(d)
		case "3":
			v, err := s.In.NonEmpty("New priority (High/Medium/Low): ")
			if err != nil {
				return err
			}
			p, err := model.ParsePriority(v)
			if err != nil {
				return err
			}
			t.Priority = p
		default:
			return fmt.Errorf("unknown field %q", field)
		}
		fmt.Fprintln(s.Out, "Task edited.")
		return nil
	})
}

func (s *Session) editDeleteHabit(ctx context.Context, email string, pal ui.Palette) error {
	u, _ := s.St.FindByEmail(email)
	if len(u.Habits) == 0 {
		fmt.Fprintln(s.Out, "No habits.")
		return nil
	}
	s.printHabits(u, pal)
	op, err := s.In.NonEmpty("Edit or Delete? (E/D): ")
	if err != nil {
		return err
	}
	idx, err := s.In.Int("Pick habit number: ", 1, len(u.Habits))
	if err != nil {
		return err
	}
	idx--

	if strings.EqualFold(op, "D") {
		ok, err := s.In.Confirm("Delete this habit?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(s.Out, "Delete cancelled.")
			return nil
		}
		return s.St.Mutate(ctx, email, func(u *model.User) error {
			u.Habits = append(u.Habits[:idx], u.Habits[idx+1:]...)
			fmt.Fprintln(s.Out, "Habit deleted.")
			return nil
		})
	}

	field, err := s.In.NonEmpty("Edit fields: 1.Name 2.Frequency\nField: ")
	if err != nil {
		return err
	}
	return s.St.Mutate(ctx, email, func(u *model.User) error {
		h := &u.Habits[idx]
		switch field {
		case "1":
			v, err := s.In.NonEmpty("New name: ")
			if err != nil {
				return err
			}
			h.Name = v
		case "2":
			v, err := s.In.NonEmpty("New frequency (Daily/Weekly): ")
			if err != nil {
				return err
			}
			f, err := model.ParseFrequency(v)
			if err != nil {
				return err
			}
			h.Frequency = f
		default:
			return fmt.Errorf("unknown field %q", field)
		}
		fmt.Fprintln(s.Out, "Habit edited.")
		return nil
	})
}

func (s *Session) searchFilterGoals(u *model.User, pal ui.Palette) error {
	opt, err := s.In.NonEmpty("Search by: 1.Status 2.Deadline before date\nChoice: ")
	if err != nil {
		return err
	}
	var filtered []*model.Goal
	switch opt {
	case "1":
		v, err := s.In.NonEmpty("Enter status (Active/Complete/Failed): ")
		if err != nil {
			return err
		}
		st, err := model.ParseGoalStatus(v)
		if err != nil {
			return err
		}
		for i := range u.Goals {
			if u.Goals[i].Status == st {
				filtered = append(filtered, &u.Goals[i])
			}
		}
	case "2":
		d, err := s.In.Date("Enter deadline date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		for i := range u.Goals {
			if u.Goals[i].Deadline.Before(model.Midnight(d)) {
				filtered = append(filtered, &u.Goals[i])
			}
		}
	default:
		return fmt.Errorf("unknown option %q", opt)
	}
	fmt.Fprintln(s.Out, "Filtered goals:")
	for _, g := range filtered {
		fmt.Fprintf(s.Out, "- %s (deadline %s, %s)\n", g.Title, model.FormatDate(g.Deadline), pal.GoalStatusText(string(g.Status)))
	}
	return nil
}

func (s *Session) sortTasks(u *model.User, pal ui.Palette) error {
	op, err := s.In.NonEmpty("Sort by: 1.Due Date 2.Priority\nChoice: ")
	if err != nil {
		return err
	}
	sorted := append([]model.Task(nil), u.Tasks...)
	switch op {
	case "1":
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Due.Before(sorted[j].Due) })
	case "2":
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority.Rank() < sorted[j].Priority.Rank() })
	default:
		return fmt.Errorf("unknown option %q", op)
	}
	fmt.Fprintln(s.Out, "--- Sorted Tasks ---")
	for i := range sorted {
		t := &sorted[i]
		fmt.Fprintf(s.Out, "- %s (due %s, %s)\n", t.Name, model.FormatDate(t.Due), pal.PriorityText(string(t.Priority)))
	}
	return nil
}

func (s *Session) viewCalendar(u *model.User) error {
	ym, err := s.In.NonEmpty("Enter year and month (YYYY-MM): ")
	if err != nil {
		return err
	}
	month, err := model.ParseDate(ym + "-01")
	if err != nil {
		return fmt.Errorf("invalid month %q", ym)
	}
	fmt.Fprintln(s.Out, "====== Calendar deadlines for", month.Format("January 2006"), "======")
	for i := range u.Goals {
		g := &u.Goals[i]
		if g.Deadline.Year() == month.Year() && g.Deadline.Month() == month.Month() {
			fmt.Fprintf(s.Out, "Goal: %s - %s\n", g.Title, model.FormatDate(g.Deadline))
		}
	}
	for i := range u.Tasks {
		t := &u.Tasks[i]
		if t.Due.Year() == month.Year() && t.Due.Month() == month.Month() {
			fmt.Fprintf(s.Out, "Task: %s - %s\n", t.Name, model.FormatDate(t.Due))
		}
	}
	return nil
}

func (s *Session) showHabitHistory(u *model.User) {
	if len(u.HabitHistory) == 0 {
		fmt.Fprintln(s.Out, "No habit logs yet.")
		return
	}
	for _, entry := range u.HabitHistory {
		fmt.Fprintln(s.Out, "-", entry)
	}
}

func (s *Session) viewTips() {
	fmt.Fprintln(s.Out, "--- Productivity Tips ---")
	if len(s.tips) == 0 {
		fmt.Fprintln(s.Out, "No tips broadcast yet.")
	}
	for _, t := range s.tips {
		fmt.Fprintln(s.Out, "-", t)
	}
}

func (s *Session) pinUnpin(ctx context.Context, email string) error {
	what, err := s.In.NonEmpty("Pin (1) Task, (2) Goal or (3) Habit? ")
	if err != nil {
		return err
	}
	return s.St.Mutate(ctx, email, func(u *model.User) error {
		switch what {
		case "1":
			if len(u.Tasks) == 0 {
				fmt.Fprintln(s.Out, "No tasks.")
				return nil
			}
			for i := range u.Tasks {
				fmt.Fprintf(s.Out, "%d. %s\n", i+1, u.Tasks[i].Name)
			}
			idx, err := s.In.Int("Pick task: ", 1, len(u.Tasks))
			if err != nil {
				return err
			}
			t := &u.Tasks[idx-1]
			t.Pinned = !t.Pinned
			fmt.Fprintln(s.Out, "Pinned:", t.Pinned)
		case "2":
			if len(u.Goals) == 0 {
				fmt.Fprintln(s.Out, "No goals.")
				return nil
			}
			for i := range u.Goals {
				fmt.Fprintf(s.Out, "%d. %s\n", i+1, u.Goals[i].Title)
			}
			idx, err := s.In.Int("Pick goal: ", 1, len(u.Goals))
			if err != nil {
				return err
			}
			g := &u.Goals[idx-1]
			g.Pinned = !g.Pinned
			fmt.Fprintln(s.Out, "Pinned:", g.Pinned)
		case "3":
			if len(u.Habits) == 0 {
				fmt.Fprintln(s.Out, "No habits.")
				return nil
			}
			for i := range u.Habits {
				fmt.Fprintf(s.Out, "%d. %s\n", i+1, u.Habits[i].Name)
			}
			idx, err := s.In.Int("Pick habit: ", 1, len(u.Habits))
			if err != nil {
				return err
			}
			h := &u.Habits[idx-1]
			h.Pinned = !h.Pinned
			fmt.Fprintln(s.Out, "Pinned:", h.Pinned)
		default:
			return fmt.Errorf("unknown option %q", what)
		}
		return nil
	})
}

func (s *Session) showBadges(u *model.User, pal ui.Palette) {
	fmt.Fprintln(s.Out, pal.Heading(ui.IconBadge, "Achievement Badges"))
	if len(u.Badges) == 0 {
		fmt.Fprintln(s.Out, "None yet. Keep going!")
		return
	}
	for _, b := range u.Badges {
		fmt.Fprintln(s.Out, ui.IconBadge, b)
	}
}

func (s *Session) addNote(ctx context.Context, email string) error {
	what, err := s.In.NonEmpty("Add note for (1) Goal or (2) Habit? ")
	if err != nil {
		return err
	}
	return s.St.Mutate(ctx, email, func(u *model.User) error {
		switch what {
		case "1":
			if len(u.Goals) == 0 {
				fmt.Fprintln(s.Out, "No goals.")
				return nil
			}
			for i := range u.Goals {
				fmt.Fprintf(s.Out, "%d. %s\n", i+1, u.Goals[i].Title)
			}
			idx, err := s.In.Int("Pick goal: ", 1, len(u.Goals))
			if err != nil {
				return err
			}
			note, err := s.In.NonEmpty("Note text: ")
			if err != nil {
				return err
			}
			u.Goals[idx-1].Note = &note
		case "2":
			if len(u.Habits) == 0 {
				fmt.Fprintln(s.Out, "No habits.")
				return nil
			}
			for i := range u.Habits {
				fmt.Fprintf(s.Out, "%d. %s\n", i+1, u.Habits[i].Name)
			}
			idx, err := s.In.Int("Pick habit: ", 1, len(u.Habits))
			if err != nil {
				return err
			}
			note, err := s.In.NonEmpty("Note text: ")
			if err != nil {
				return err
			}
			u.Habits[idx-1].Note = &note
		default:
			return fmt.Errorf("unknown option %q", what)
		}
		fmt.Fprintln(s.Out, "Note added.")
		return nil
	})
}

func (s *Session) taskComments(ctx context.Context, email string) error {
	u, _ := s.St.FindByEmail(email)
	if len(u.Tasks) == 0 {
		fmt.Fprintln(s.Out, "No tasks.")
		return nil
	}
	for i := range u.Tasks {
		fmt.Fprintf(s.Out, "%d. %s (%d comments)\n", i+1, u.Tasks[i].Name, len(u.Tasks[i].Comments))
	}
	idx, err := s.In.Int("Pick task: ", 1, len(u.Tasks))
	if err != nil {
		return err
	}
	for _, c := range u.Tasks[idx-1].Comments {
		fmt.Fprintln(s.Out, "-", c)
	}
	comment, err := s.In.Line("New comment (blank to skip): ")
	if err != nil {
		return err
	}
	if comment == "" {
		return nil
	}
	return s.St.Mutate(ctx, email, func(u *model.User) error {
		u.Tasks[idx-1].AddComment(comment)
		fmt.Fprintln(s.Out, "Comment added.")
		return nil
	})
}

func (s *Session) showRecentCompleted(u *model.User) {
	fmt.Fprintln(s.Out, "--- Recently Completed ---")
	if len(u.RecentCompleted) == 0 {
		fmt.Fprintln(s.Out, "Nothing completed yet.")
	}
	for _, e := range u.RecentCompleted {
		fmt.Fprintln(s.Out, "-", e)
	}
}

func (s *Session) dailyTaskTarget(ctx context.Context, email string) error {
	n, err := s.In.Int("Enter new daily task target (0 to view only): ", 0, 100)
	if err != nil {
		return err
	}
	return s.St.Mutate(ctx, email, func(u *model.User) error {
		if n > 0 {
			u.DailyTaskTarget = n
			fmt.Fprintf(s.Out, "Target set: %d tasks/day\n", n)
			return nil
		}
		today := model.Today()
		count := 0
		for i := range u.Tasks {
			if u.Tasks[i].Done && u.Tasks[i].Due.Equal(today) {
				count++
			}
		}
		fmt.Fprintf(s.Out, "Today's completed tasks: %d / %d\n", count, u.DailyTaskTarget)
		return nil
	})
}

func (s *Session) profileSettings(ctx context.Context, email string) error {
	options := []string{
		"Profile Description",
		"Avatar",
		"Reminder Preference",
		"Language",
		"Accountability Partner Email",
		"Toggle Accessibility Mode",
		"Back",
	}
	ch, err := s.In.Select("Profile Settings", options)
	if err != nil {
		return err
	}

	setOpt := func(label string, get func(*model.User) *string, set func(*model.User, *string)) error {
		v, err := s.In.Line(label + " (leave blank to view): ")
		if err != nil {
			return err
		}
		return s.St.Mutate(ctx, email, func(u *model.User) error {
			if v != "" {
				set(u, &v)
			}
			cur := get(u)
			if cur == nil {
				fmt.Fprintln(s.Out, "Currently: none")
			} else {
				fmt.Fprintln(s.Out, "Currently:", *cur)
			}
			return nil
		})
	}

	switch ch {
	case 1:
		return setOpt("Profile description",
			func(u *model.User) *string { return u.Description },
			func(u *model.User, v *string) { u.Description = v })
	case 2:
		return setOpt("Avatar (emoji or text)",
			func(u *model.User) *string { return u.Avatar },
			func(u *model.User, v *string) { u.Avatar = v })
	case 3:
		return setOpt("Reminder preference (None/Daily/Weekly)",
			func(u *model.User) *string { return u.ReminderFrequency },
			func(u *model.User, v *string) { u.ReminderFrequency = v })
	case 4:
		return setOpt("Language (EN/ES)",
			func(u *model.User) *string { return u.Language },
			func(u *model.User, v *string) { u.Language = v })
	case 5:
		return setOpt("Accountability partner email",
			func(u *model.User) *string { return u.FriendEmail },
			func(u *model.User, v *string) { u.FriendEmail = v })
	case 6:
		return s.toggleAccessibility(ctx, email)
	case 7:
		return nil
	}
	return nil
}

func (s *Session) switchTheme(ctx context.Context, email string) error {
	v, err := s.In.NonEmpty("Theme (Light/Dark): ")
	if err != nil {
		return err
	}
	if !strings.EqualFold(v, "Light") && !strings.EqualFold(v, "Dark") {
		return fmt.Errorf("unknown theme %q", v)
	}
	theme := "Light"
	if strings.EqualFold(v, "Dark") {
		theme = "Dark"
	}
	if err := s.St.Mutate(ctx, email, func(u *model.User) error {
		u.Theme = theme
		return nil
	}); err != nil {
		return err
	}
	fmt.Fprintln(s.Out, "Theme set to", theme+".")
	return nil
}

// previewTheme shows a theme's rendering without persisting it.
func (s *Session) previewTheme() error {
	v, err := s.In.NonEmpty("Preview theme (Light/Dark): ")
	if err != nil {
		return err
	}
	theme := "Light"
	if strings.EqualFold(v, "Dark") {
		theme = "Dark"
	} else if !strings.EqualFold(v, "Light") {
		return fmt.Errorf("unknown theme %q", v)
	}
	fmt.Fprintln(s.Out, "Previewing theme:", theme)
	if theme == "Dark" {
		fmt.Fprintln(s.Out, "[Dark background, light text]")
	} else {
		fmt.Fprintln(s.Out, "[Light background, dark text]")
	}
	pal := ui.ForUser(theme, false)
	fmt.Fprintln(s.Out, pal.Heading(ui.IconPoints, "Sample Dashboard"))
	fmt.Fprintln(s.Out, pal.LabelValue("Points", 120))
	fmt.Fprintln(s.Out, pal.Gold.Render(ui.IconBadge+" Sample badge"))
	return nil
}

func (s *Session) deleteAccount(ctx context.Context, email string) (bool, error) {
	ok, err := s.In.Confirm("Are you sure you want to delete your account?")
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(s.Out, "Account deletion cancelled.")
		return false, nil
	}
	if err := s.St.DeleteUser(ctx, email); err != nil {
		return false, err
	}
	s.recordActivity(ctx, email, "account deleted")
	fmt.Fprintln(s.Out, "Account deleted.")
	return true, nil
}
