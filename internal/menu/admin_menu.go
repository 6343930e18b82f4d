package menu

import (
	"context"
	"fmt"

	"tracknest/internal/model"
	"tracknest/internal/ui"
)

var adminOptions = []string{
	"View All Users",
	"System Stats",
	"Deactivate/Reactivate User",
	"Broadcast Productivity Tip",
	"View All Productivity Tips Sent",
	"Broadcast Announcement",
	"Create Habit Template",
	"Create Goal Template",
	"User Activity Log",
	"Export All Data (CSV)",
	"Change Password",
	"Set Language",
	"Toggle Accessibility Mode",
	"Help",
	"Back/Logout",
}

func (s *Session) adminMenu(ctx context.Context, email string) error {
	for {
		u, ok := s.St.FindByEmail(email)
		if !ok {
			return nil
		}
		pal := ui.ForUser(u.Theme, u.AccessibilityMode)

		ch, err := s.In.Select("Admin Menu", adminOptions)
		if err != nil {
			if err == ErrBack {
				continue
			}
			return err
		}

		var actErr error
		switch ch {
		case 1:
			s.viewAllUsers(pal)
		case 2:
			s.systemStats(pal)
		case 3:
			actErr = s.toggleUserActive(ctx)
		case 4:
			actErr = s.broadcastTip(ctx, email)
		case 5:
			s.viewTips()
		case 6:
			actErr = s.broadcastAnnouncement(ctx, email)
		case 7:
			actErr = s.createHabitTemplate()
		case 8:
			actErr = s.createGoalTemplate()
		case 9:
			actErr = s.viewActivityLog(ctx)
		case 10:
			actErr = s.exportCSV(ctx)
		case 11:
			actErr = s.changePassword(ctx, email)
		case 12:
			actErr = s.setLanguage(ctx, email)
		case 13:
			actErr = s.toggleAccessibility(ctx, email)
		case 14:
			fmt.Fprintln(s.Out, "- View users, broadcast tips and announcements, export data.")
			fmt.Fprintln(s.Out, "- Templates you create can be instantiated by any user.")
			fmt.Fprintln(s.Out, "- 'Back/Logout' returns to the main menu.")
		case 15:
			return nil
		}
		if actErr != nil && actErr != ErrBack {
			fmt.Fprintln(s.Out, "Error:", actErr)
		}
	}
}

func (s *Session) viewAllUsers(pal ui.Palette) {
	fmt.Fprintln(s.Out, pal.Heading("", "All Users"))
	for _, u := range s.St.Users() {
		state := ""
		if !u.Active {
			state = " " + pal.Bad.Render("[deactivated]")
		}
		fmt.Fprintf(s.Out, "%d. %s (%s, %s)%s\n", u.ID, u.Name, u.Email, u.Role, state)
	}
}

func (s *Session) systemStats(pal ui.Palette) {
	users := s.St.Users()
	goals, habits, tasks, points := 0, 0, 0, 0
	for _, u := range users {
		goals += len(u.Goals)
		habits += len(u.Habits)
		tasks += len(u.Tasks)
		points += u.Points
	}
	fmt.Fprintln(s.Out, pal.Heading("", "System Stats"))
	fmt.Fprintln(s.Out, pal.LabelValue("Users", len(users)))
	fmt.Fprintln(s.Out, pal.LabelValue("Goals", goals))
	fmt.Fprintln(s.Out, pal.LabelValue("Habits", habits))
	fmt.Fprintln(s.Out, pal.LabelValue("Tasks", tasks))
	fmt.Fprintln(s.Out, pal.LabelValue("Total Points", points))
}

func (s *Session) toggleUserActive(ctx context.Context) error {
	target, err := s.In.NonEmpty("User email to deactivate/reactivate: ")
	if err != nil {
		return err
	}
	if err := s.St.Mutate(ctx, target, func(u *model.User) error {
		if u.Role == model.RoleAdmin {
			return fmt.Errorf("cannot deactivate the administrator")
		}
		u.Active = !u.Active
		if u.Active {
			fmt.Fprintln(s.Out, "User reactivated.")
		} else {
			fmt.Fprintln(s.Out, "User deactivated.")
		}
		return nil
	}); err != nil {
		return err
	}
	s.recordActivity(ctx, target, "active flag toggled by admin")
	return nil
}

func (s *Session) broadcastTip(ctx context.Context, admin string) error {
	tip, err := s.In.NonEmpty("Enter productivity tip: ")
	if err != nil {
		return err
	}
	s.tips = append(s.tips, tip)
	s.recordActivity(ctx, admin, "broadcast tip")
	fmt.Fprintln(s.Out, "BROADCASTING:", tip)
	return nil
}

func (s *Session) broadcastAnnouncement(ctx context.Context, admin string) error {
	msg, err := s.In.NonEmpty("Enter announcement: ")
	if err != nil {
		return err
	}
	s.announcement = msg
	s.recordActivity(ctx, admin, "broadcast announcement")
	fmt.Fprintln(s.Out, "Announcement will be shown on the next login.")
	return nil
}

func (s *Session) setLanguage(ctx context.Context, email string) error {
	v, err := s.In.NonEmpty("Language (EN/ES): ")
	if err != nil {
		return err
	}
	return s.St.Mutate(ctx, email, func(u *model.User) error {
		u.Language = &v
		fmt.Fprintln(s.Out, "Language set to", v+".")
		return nil
	})
}

func (s *Session) toggleAccessibility(ctx context.Context, email string) error {
	return s.St.Mutate(ctx, email, func(u *model.User) error {
		u.AccessibilityMode = !u.AccessibilityMode
		state := "OFF"
		if u.AccessibilityMode {
			state = "ON"
		}
		fmt.Fprintln(s.Out, "Accessibility mode:", state)
		return nil
	})
}

func (s *Session) viewActivityLog(ctx context.Context) error {
	if s.Act == nil {
		fmt.Fprintln(s.Out, "Activity log disabled.")
		return nil
	}
	entries, err := s.Act.Recent(ctx, 50)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.Out, "--- Activity Log ---")
	if len(entries) == 0 {
		fmt.Fprintln(s.Out, "No activity recorded yet.")
	}
	for _, e := range entries {
		fmt.Fprintf(s.Out, "%s  %s  %s\n", e.At.Format("2006-01-02 15:04"), e.Email, e.Event)
	}
	return nil
}

func (s *Session) exportCSV(ctx context.Context) error {
	path, err := s.In.Line(fmt.Sprintf("Export path [%s]: ", s.Cfg.ExportFile))
	if err != nil {
		return err
	}
	if path == "" {
		path = s.Cfg.ExportFile
	}
	if err := s.St.ExportSummary(ctx, path); err != nil {
		return err
	}
	fmt.Fprintln(s.Out, "Exported to", path)
	return nil
}
