package menu

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracknest/internal/config"
	"tracknest/internal/logging"
	"tracknest/internal/model"
	"tracknest/internal/store"
)

func TestPromptLine(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompt(strings.NewReader("  hello  \n"), &out)

	s, err := p.Line("Say: ")
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
	assert.Contains(t, out.String(), "Say: ")
}

func TestPromptLineBack(t *testing.T) {
	p := NewPrompt(strings.NewReader("back\n"), &bytes.Buffer{})
	_, err := p.Line("Say: ")
	assert.ErrorIs(t, err, ErrBack)
}

func TestPromptNonEmptyReprompts(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompt(strings.NewReader("\n\nfinally\n"), &out)

	s, err := p.NonEmpty("Name: ")
	require.NoError(t, err)
	assert.Equal(t, "finally", s)
	assert.Contains(t, out.String(), "Input cannot be empty.")
}

func TestPromptIntRange(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompt(strings.NewReader("zero\n99\n3\n"), &out)

	n, err := p.Int("Pick: ", 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Contains(t, out.String(), "between 1 and 5")
}

func TestPromptDate(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompt(strings.NewReader("yesterday\n2024-03-01\n"), &out)

	d, err := p.Date("When: ")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", d.Format("2006-01-02"))
	assert.Contains(t, out.String(), "Invalid date")
}

func TestPromptConfirm(t *testing.T) {
	p := NewPrompt(strings.NewReader("YES\nno\n"), &bytes.Buffer{})

	ok, err := p.Confirm("Delete?")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Confirm("Delete?")
	require.NoError(t, err)
	assert.False(t, ok)
}

func newTestSession(t *testing.T, script string) (*Session, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(context.Background(), filepath.Join(dir, "tracknest.txt"), logging.Nop{})
	require.NoError(t, err)

	var out bytes.Buffer
	return &Session{
		St:  st,
		Log: logging.Nop{},
		In:  NewPrompt(strings.NewReader(script), &out),
		Out: &out,
		Cfg: config.Default(dir),
	}, &out
}

func TestSessionBootstrapRegisterLogin(t *testing.T) {
	// First run sets up the admin, then a user registers, logs in, checks
	// the menu, logs out, and the session exits.
	script := strings.Join([]string{
		// admin bootstrap
		"admin-pass-1", "First pet?", "rex",
		// register
		"1", "Ada", "ada@nest.com", "user", "password1", "Color?", "blue",
		// login
		"2", "ada@nest.com", "password1",
		// user menu: logout
		"33",
		// main menu: exit
		"5",
	}, "\n") + "\n"

	sess, out := newTestSession(t, script)
	require.NoError(t, sess.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Administrator created.")
	assert.Contains(t, text, "Registered! You can now login.")
	assert.Contains(t, text, "Welcome, Ada (0 pts)!")
	assert.Contains(t, text, "Goodbye!")

	u, ok := sess.St.FindByEmail("ada@nest.com")
	require.True(t, ok)
	assert.NotEqual(t, "password1", u.PasswordHash)
	assert.True(t, sess.St.AdminExists())
}

func TestSessionTemplates(t *testing.T) {
	// The admin creates a habit template and a goal template; a user then
	// instantiates both from their own menu.
	script := strings.Join([]string{
		// admin bootstrap and login
		"admin-pass-1", "First pet?", "rex",
		"2", "admin@nest.com", "admin-pass-1",
		// create habit template
		"7", "Morning Run",
		// create goal template
		"8", "Read 5 Books", "One book a month", "14",
		// admin menu: logout
		"15",
		// register a user and login
		"1", "Ada", "ada@nest.com", "user", "password1", "Color?", "blue",
		"2", "ada@nest.com", "password1",
		// instantiate habit template: pick 1, frequency
		"16", "1", "Daily",
		// instantiate goal template: pick 1
		"17", "1",
		// user menu: logout
		"33",
		"5",
	}, "\n") + "\n"

	sess, out := newTestSession(t, script)
	require.NoError(t, sess.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Habit template added.")
	assert.Contains(t, text, "Goal template created.")
	assert.Contains(t, text, "Habit added from template.")
	assert.Contains(t, text, "Goal added from template")

	u, ok := sess.St.FindByEmail("ada@nest.com")
	require.True(t, ok)
	require.Len(t, u.Habits, 1)
	assert.Equal(t, "Morning Run", u.Habits[0].Name)
	assert.Equal(t, model.FrequencyDaily, u.Habits[0].Frequency)
	require.Len(t, u.Goals, 1)
	assert.Equal(t, "Read 5 Books", u.Goals[0].Title)
	assert.Equal(t, "One book a month", u.Goals[0].Description)
	assert.Equal(t, model.Today().AddDate(0, 0, 14), u.Goals[0].Deadline)
	assert.Equal(t, model.GoalActive, u.Goals[0].Status)
}

func TestSessionTemplatesEmptyLists(t *testing.T) {
	sess, out := newTestSession(t, "")

	require.NoError(t, sess.instantiateHabitTemplate(context.Background(), "nobody@nest.com"))
	require.NoError(t, sess.instantiateGoalTemplate(context.Background(), "nobody@nest.com"))
	assert.Contains(t, out.String(), "No habit templates available.")
	assert.Contains(t, out.String(), "No goal templates.")
}

func TestPreviewThemeDoesNotPersist(t *testing.T) {
	script := strings.Join([]string{
		"admin-pass-1", "First pet?", "rex",
		"1", "Ada", "ada@nest.com", "user", "password1", "Color?", "blue",
		"2", "ada@nest.com", "password1",
		// preview Dark, then logout without switching
		"28", "Dark",
		"33",
		"5",
	}, "\n") + "\n"

	sess, out := newTestSession(t, script)
	require.NoError(t, sess.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Previewing theme: Dark")
	assert.Contains(t, text, "[Dark background, light text]")

	u, ok := sess.St.FindByEmail("ada@nest.com")
	require.True(t, ok)
	assert.Equal(t, "Light", u.Theme)
}

func TestAdminSetLanguageAndAccessibility(t *testing.T) {
	script := strings.Join([]string{
		"admin-pass-1", "First pet?", "rex",
		"2", "admin@nest.com", "admin-pass-1",
		// set language, toggle accessibility on
		"12", "ES",
		"13",
		"15",
		"5",
	}, "\n") + "\n"

	sess, out := newTestSession(t, script)
	require.NoError(t, sess.Run(context.Background()))

	assert.Contains(t, out.String(), "Language set to ES.")
	assert.Contains(t, out.String(), "Accessibility mode: ON")

	u, ok := sess.St.FindByEmail(DefaultAdminEmail)
	require.True(t, ok)
	require.NotNil(t, u.Language)
	assert.Equal(t, "ES", *u.Language)
	assert.True(t, u.AccessibilityMode)
}

func TestSessionLoginRejectsWrongPassword(t *testing.T) {
	script := strings.Join([]string{
		"admin-pass-1", "First pet?", "rex",
		"2", "admin@nest.com", "wrong-password",
		"5",
	}, "\n") + "\n"

	sess, out := newTestSession(t, script)
	require.NoError(t, sess.Run(context.Background()))
	assert.Contains(t, out.String(), "incorrect password")
}

func TestSessionForgotPassword(t *testing.T) {
	script := strings.Join([]string{
		"admin-pass-1", "First pet?", "rex",
		// reset via security question, then login with the new password
		"3", "admin@nest.com", "REX", "fresh-pass-9",
		"2", "admin@nest.com", "fresh-pass-9",
		// admin menu: logout
		"15",
		"5",
	}, "\n") + "\n"

	sess, out := newTestSession(t, script)
	require.NoError(t, sess.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Password reset.")
	assert.Contains(t, text, "Welcome, Admin")
}
