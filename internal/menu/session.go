// Package menu drives the interactive terminal session: registration,
// login, password reset, and the per-role menus. It orchestrates the store,
// engine, auth, and activity packages; no business rule lives here.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"tracknest/internal/activity"
	"tracknest/internal/auth"
	"tracknest/internal/config"
	"tracknest/internal/engine"
	"tracknest/internal/logging"
	"tracknest/internal/model"
	"tracknest/internal/store"
	"tracknest/internal/ui"
)

// DefaultAdminEmail is the account bootstrapped on first run when no
// administrator exists yet.
const DefaultAdminEmail = "admin@nest.com"

var quotes = []string{
	"Success is the sum of small efforts repeated day in and day out.",
	"The secret of getting ahead is getting started.",
	"Don't watch the clock; do what it does. Keep going.",
	"Action is the foundational key to all success.",
	"One day or day one. You decide.",
}

// Session is one interactive run of the tracker.
type Session struct {
	St  *store.Store
	Act *activity.Log
	Log logging.Logger
	In  *Prompt
	Out io.Writer
	Cfg config.Config

	tips           []string
	announcement   string
	habitTemplates []string
	goalTemplates  []GoalTemplate
}

// Run drives the main menu until the user exits.
func (s *Session) Run(ctx context.Context) error {
	if err := s.bootstrapAdmin(ctx); err != nil {
		return err
	}

	options := []string{"Register", "Login", "Forgot Password", "Help", "Exit"}
	for {
		ch, err := s.In.Select("TrackNest", options)
		if errors.Is(err, ErrBack) {
			continue
		}
		if err != nil {
			return err
		}

		var actErr error
		switch ch {
		case 1:
			actErr = s.register(ctx)
		case 2:
			actErr = s.login(ctx)
		case 3:
			actErr = s.forgotPassword(ctx)
		case 4:
			fmt.Fprintln(s.Out, "- Register: create a new account (admin or user)")
			fmt.Fprintln(s.Out, "- Login: access your account")
			fmt.Fprintln(s.Out, "- Forgot Password: reset via your security question")
			fmt.Fprintln(s.Out, "- Exit: quit")
			fmt.Fprintln(s.Out, "Navigate menus by number; type 'back' at most prompts to cancel.")
		case 5:
			fmt.Fprintln(s.Out, "Goodbye!")
			return nil
		}
		if errors.Is(actErr, ErrBack) {
			continue
		}
		if actErr != nil {
			fmt.Fprintln(s.Out, "Error:", actErr)
		}
	}
}

// bootstrapAdmin creates the default administrator on first run.
func (s *Session) bootstrapAdmin(ctx context.Context) error {
	if s.St.AdminExists() {
		return nil
	}
	fmt.Fprintln(s.Out, "First run: set up the administrator account ("+DefaultAdminEmail+").")

	var password string
	for {
		var err error
		password, err = s.In.Password("Set admin password: ")
		if err != nil {
			return err
		}
		if err := auth.ValidatePassword(password); err != nil {
			fmt.Fprintln(s.Out, err)
			continue
		}
		break
	}
	question, err := s.In.NonEmpty("Set admin security question: ")
	if err != nil {
		return err
	}
	answer, err := s.In.NonEmpty("Set admin security answer: ")
	if err != nil {
		return err
	}

	passHash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	answerHash, err := auth.HashAnswer(answer)
	if err != nil {
		return err
	}
	if _, err := s.St.Register(ctx, model.RoleAdmin, "Admin", DefaultAdminEmail, passHash, question, answerHash); err != nil {
		return err
	}
	s.recordActivity(ctx, DefaultAdminEmail, "admin account created")
	fmt.Fprintln(s.Out, "Administrator created.")
	return nil
}

func (s *Session) register(ctx context.Context) error {
	name, err := s.In.NonEmpty("Name: ")
	if err != nil {
		return err
	}
	email, err := s.In.NonEmpty("Email: ")
	if err != nil {
		return err
	}
	roleInput, err := s.In.NonEmpty("Role (admin/user): ")
	if err != nil {
		return err
	}
	role, err := model.ParseRole(roleInput)
	if err != nil {
		return err
	}

	var password string
	for {
		password, err = s.In.Password("Password: ")
		if err != nil {
			return err
		}
		if err := auth.ValidatePassword(password); err != nil {
			fmt.Fprintln(s.Out, err)
			continue
		}
		break
	}
	question, err := s.In.NonEmpty("Security question: ")
	if err != nil {
		return err
	}
	answer, err := s.In.NonEmpty("Security answer: ")
	if err != nil {
		return err
	}

	passHash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	answerHash, err := auth.HashAnswer(answer)
	if err != nil {
		return err
	}
	if _, err := s.St.Register(ctx, role, name, email, passHash, question, answerHash); err != nil {
		return err
	}
	s.recordActivity(ctx, email, "registered")
	fmt.Fprintln(s.Out, "Registered! You can now login.")
	return nil
}

func (s *Session) login(ctx context.Context) error {
	email, err := s.In.NonEmpty("Email: ")
	if err != nil {
		return err
	}
	password, err := s.In.Password("Password: ")
	if err != nil {
		return err
	}

	u, ok := s.St.FindByEmail(email)
	if !ok {
		return fmt.Errorf("%w: %s", store.ErrUserNotFound, email)
	}
	if !u.Active {
		return errors.New("account is deactivated, contact the administrator")
	}
	if !auth.VerifyPassword(u.PasswordHash, password) {
		return errors.New("incorrect password")
	}
	s.recordActivity(ctx, email, "login")
	s.Log.Info(ctx, "login", "email", email, "role", u.Role)

	if s.announcement != "" {
		fmt.Fprintln(s.Out, "\n=== Announcement ===")
		fmt.Fprintln(s.Out, s.announcement)
		s.announcement = ""
	}
	fmt.Fprintf(s.Out, "Quote of the Day: %q\n", quotes[rand.Intn(len(quotes))])
	if u.LastLogin != nil {
		fmt.Fprintln(s.Out, "Welcome back! Last login:", model.FormatDate(*u.LastLogin))
	}
	now := model.Today()
	u.LastLogin = &now
	fmt.Fprintf(s.Out, "Welcome, %s (%d pts)!\n", u.Name, u.Points)

	// Housekeeping on login: stale goals fail, overdue tasks get a reminder.
	if err := s.St.Mutate(ctx, email, func(u *model.User) error {
		for _, title := range engine.AutoFailGoals(u, now) {
			fmt.Fprintln(s.Out, "Goal auto-set as Failed (overdue 3+ days):", title)
		}
		return nil
	}); err != nil {
		s.Log.Warn(ctx, "login housekeeping save failed", "err", err)
	}

	pal := ui.ForUser(u.Theme, u.AccessibilityMode)
	s.printSummary(u, pal)

	if u.Role == model.RoleAdmin {
		return s.adminMenu(ctx, email)
	}
	return s.userMenu(ctx, email)
}

// printSummary is the login dashboard: the at-a-glance numbers before the
// menu takes over.
func (s *Session) printSummary(u *model.User, pal ui.Palette) {
	today := model.Today()
	fmt.Fprintln(s.Out, pal.Heading(ui.IconPoints, "Your Dashboard"))
	fmt.Fprintln(s.Out, pal.LabelValue("Points", u.Points))
	if len(u.Badges) == 0 {
		fmt.Fprintln(s.Out, pal.LabelValue("Badges", "None yet."))
	} else {
		fmt.Fprintln(s.Out, pal.LabelValue("Badges", strings.Join(u.Badges, ", ")))
	}
	fmt.Fprintln(s.Out, pal.LabelValue("Longest Habit Streak", u.LongestStreak()))

	overdue := engine.OverdueTasks(u, today)
	fmt.Fprintln(s.Out, pal.LabelValue("Overdue Tasks", len(overdue)))
	for _, i := range overdue {
		t := &u.Tasks[i]
		fmt.Fprintf(s.Out, "  - %s (due %s)\n", t.Name, model.FormatDate(t.Due))
	}

	pinnedGoals, pinnedTasks := 0, 0
	for i := range u.Goals {
		if u.Goals[i].Pinned {
			pinnedGoals++
		}
	}
	for i := range u.Tasks {
		if u.Tasks[i].Pinned {
			pinnedTasks++
		}
	}
	fmt.Fprintln(s.Out, pal.LabelValue("Pinned Goals", pinnedGoals))
	fmt.Fprintln(s.Out, pal.LabelValue("Pinned Tasks", pinnedTasks))
}

func (s *Session) forgotPassword(ctx context.Context) error {
	email, err := s.In.NonEmpty("Email: ")
	if err != nil {
		return err
	}
	u, ok := s.St.FindByEmail(email)
	if !ok {
		return fmt.Errorf("%w: %s", store.ErrUserNotFound, email)
	}

	fmt.Fprintln(s.Out, "Security question:", u.SecurityQuestion)
	answer, err := s.In.NonEmpty("Answer: ")
	if err != nil {
		return err
	}
	if !auth.VerifyAnswer(u.SecurityAnswerHash, answer) {
		return errors.New("incorrect answer")
	}

	var password string
	for {
		password, err = s.In.Password("New password: ")
		if err != nil {
			return err
		}
		if err := auth.ValidatePassword(password); err != nil {
			fmt.Fprintln(s.Out, err)
			continue
		}
		break
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.St.Mutate(ctx, email, func(u *model.User) error {
		u.PasswordHash = hash
		return nil
	}); err != nil {
		return err
	}
	s.recordActivity(ctx, email, "password reset")
	fmt.Fprintln(s.Out, "Password reset. You can now login.")
	return nil
}

// changePassword verifies the current password before setting a new one.
// Shared by both menus.
func (s *Session) changePassword(ctx context.Context, email string) error {
	u, ok := s.St.FindByEmail(email)
	if !ok {
		return fmt.Errorf("%w: %s", store.ErrUserNotFound, email)
	}
	current, err := s.In.Password("Current password: ")
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(u.PasswordHash, current) {
		return errors.New("incorrect password")
	}

	var password string
	for {
		password, err = s.In.Password("New password: ")
		if err != nil {
			return err
		}
		if err := auth.ValidatePassword(password); err != nil {
			fmt.Fprintln(s.Out, err)
			continue
		}
		break
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := s.St.Mutate(ctx, email, func(u *model.User) error {
		u.PasswordHash = hash
		return nil
	}); err != nil {
		return err
	}
	s.recordActivity(ctx, email, "password changed")
	fmt.Fprintln(s.Out, "Password changed.")
	return nil
}

// recordActivity appends to the audit log; failures are logged, never fatal.
func (s *Session) recordActivity(ctx context.Context, email, event string) {
	if s.Act == nil {
		return
	}
	if err := s.Act.Record(ctx, email, event); err != nil {
		s.Log.Warn(ctx, "activity record failed", "email", email, "event", event, "err", err)
	}
}
