package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracknest/internal/logging"
	"tracknest/internal/model"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracknest.txt")
	s, err := Open(context.Background(), path, logging.Nop{})
	require.NoError(t, err)
	return s, path
}

func TestRegisterAssignsMonotonicIDs(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	a, err := s.Register(ctx, model.RoleNormal, "Ada", "ada@nest.com", "hash", "q", "a")
	require.NoError(t, err)
	b, err := s.Register(ctx, model.RoleNormal, "Bob", "bob@nest.com", "hash", "q", "a")
	require.NoError(t, err)

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.True(t, a.Active)
	assert.Equal(t, "Light", a.Theme)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	_, err := s.Register(ctx, model.RoleNormal, "Ada", "ada@nest.com", "hash", "q", "a")
	require.NoError(t, err)

	_, err = s.Register(ctx, model.RoleNormal, "Imposter", "ada@nest.com", "hash", "q", "a")
	assert.ErrorIs(t, err, ErrDuplicateUser)
	assert.Equal(t, 1, s.Count())
}

func TestRegisterRejectsSecondAdmin(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	_, err := s.Register(ctx, model.RoleAdmin, "Root", "admin@nest.com", "hash", "q", "a")
	require.NoError(t, err)
	assert.True(t, s.AdminExists())

	_, err = s.Register(ctx, model.RoleAdmin, "Root2", "admin2@nest.com", "hash", "q", "a")
	assert.ErrorIs(t, err, ErrRoleConflict)
}

func TestPersistenceAcrossOpen(t *testing.T) {
	s, path := openTemp(t)
	ctx := context.Background()

	_, err := s.Register(ctx, model.RoleNormal, "Ada", "ada@nest.com", "hash", "q", "a")
	require.NoError(t, err)
	require.NoError(t, s.Mutate(ctx, "ada@nest.com", func(u *model.User) error {
		u.Habits = append(u.Habits, model.NewHabit("Stretch", model.FrequencyDaily))
		u.AddPoints(25)
		return nil
	}))

	reopened, err := Open(ctx, path, logging.Nop{})
	require.NoError(t, err)

	u, ok := reopened.FindByEmail("ada@nest.com")
	require.True(t, ok)
	assert.Equal(t, 25, u.Points)
	require.Len(t, u.Habits, 1)
	assert.Equal(t, "Stretch", u.Habits[0].Name)

	// IDs keep climbing from the highest persisted one.
	b, err := reopened.Register(ctx, model.RoleNormal, "Bob", "bob@nest.com", "hash", "q", "a")
	require.NoError(t, err)
	assert.Equal(t, 2, b.ID)
}

func TestMutateUnknownUser(t *testing.T) {
	s, _ := openTemp(t)
	err := s.Mutate(context.Background(), "ghost@nest.com", func(*model.User) error { return nil })
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMutationStandsWhenSaveFails(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	_, err := s.Register(ctx, model.RoleNormal, "Ada", "ada@nest.com", "hash", "q", "a")
	require.NoError(t, err)

	// Point the store at an unwritable location to force the save to fail.
	s.path = filepath.Join(t.TempDir(), "missing", "nested", "data.txt")

	err = s.Mutate(ctx, "ada@nest.com", func(u *model.User) error {
		u.AddPoints(10)
		return nil
	})
	assert.ErrorIs(t, err, ErrPersistenceWrite)

	u, ok := s.FindByEmail("ada@nest.com")
	require.True(t, ok)
	assert.Equal(t, 10, u.Points, "in-memory mutation must survive a failed save")
}

func TestDeleteUser(t *testing.T) {
	s, path := openTemp(t)
	ctx := context.Background()

	_, err := s.Register(ctx, model.RoleNormal, "Ada", "ada@nest.com", "hash", "q", "a")
	require.NoError(t, err)
	require.NoError(t, s.DeleteUser(ctx, "ada@nest.com"))

	_, ok := s.FindByEmail("ada@nest.com")
	assert.False(t, ok)
	assert.ErrorIs(t, s.DeleteUser(ctx, "ada@nest.com"), ErrUserNotFound)

	reopened, err := Open(ctx, path, logging.Nop{})
	require.NoError(t, err)
	assert.Equal(t, 0, reopened.Count())
}

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "dir", "tracknest.txt")
	s, err := Open(context.Background(), path, logging.Nop{})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Count())
}

func TestOpenSkipsMalformedRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tracknest.txt")
	content := "[\n" +
		`  {"id":1,"email":"good@nest.com","name":"Good"},` + "\n" +
		`  {"id":oops,"email":"bad@nest.com"}` + "\n" +
		"]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Open(context.Background(), path, logging.Nop{})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Count())

	_, ok := s.FindByEmail("good@nest.com")
	assert.True(t, ok)
}

func TestExportSummary(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	_, err := s.Register(ctx, model.RoleAdmin, "Root", "admin@nest.com", "hash", "q", "a")
	require.NoError(t, err)
	_, err = s.Register(ctx, model.RoleNormal, "Ada, Jr.", "ada@nest.com", "hash", "q", "a")
	require.NoError(t, err)
	require.NoError(t, s.Mutate(ctx, "ada@nest.com", func(u *model.User) error {
		u.Tasks = append(u.Tasks, model.NewTask("Ship", model.Today(), model.PriorityHigh))
		u.AddPoints(15)
		return nil
	}))

	out := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, s.ExportSummary(ctx, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Email,Name,Role,Active,Goals,Habits,Tasks,Points,RegistrationDate", lines[0])
	assert.Contains(t, lines[1], "admin@nest.com")
	// The comma in the name must be quoted, not split.
	assert.Contains(t, lines[2], `"Ada, Jr."`)
	assert.Contains(t, lines[2], ",15,")
}
