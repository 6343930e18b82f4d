// Package store owns the in-memory user mapping and its flat-file
// persistence. Every mutation saves the whole file; writes go through a
// temp-file rename so a crash mid-write never truncates existing data.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"tracknest/internal/codec"
	"tracknest/internal/logging"
	"tracknest/internal/model"
)

// Store holds all users keyed by email. A single mutex serializes access;
// the tracker is an interactive single-session program and needs no finer
// concurrency.
type Store struct {
	mu     sync.Mutex
	path   string
	log    logging.Logger
	users  map[string]*model.User
	nextID int
}

// Open loads the data file at path, creating parent directories as needed.
// A missing file yields an empty store. Individually malformed user records
// are skipped with a warning; only whole-file corruption is an error.
func Open(ctx context.Context, path string, log logging.Logger) (*Store, error) {
	if log == nil {
		log = logging.Nop{}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceWrite, err)
	}

	s := &Store{
		path:   path,
		log:    log,
		users:  make(map[string]*model.User),
		nextID: 1,
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Info(ctx, "data file absent, starting empty", "path", path)
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceRead, err)
	}

	users, skipped, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceRead, err)
	}
	for _, diag := range skipped {
		log.Warn(ctx, "skipped malformed user record", "err", diag)
	}
	s.users = users
	for _, u := range users {
		if u.ID >= s.nextID {
			s.nextID = u.ID + 1
		}
	}
	log.Info(ctx, "store opened", "path", path, "users", len(users), "skipped", len(skipped))
	return s, nil
}

// Register creates a new user with the given credentials and saves. The
// email must be unused and at most one administrator may exist. On a save
// failure the user is still registered in memory and the error is returned
// alongside.
func (s *Store) Register(ctx context.Context, role model.Role, name, email, passwordHash, secQuestion, secAnswerHash string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[email]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateUser, email)
	}
	if role == model.RoleAdmin && s.adminExists() {
		return nil, ErrRoleConflict
	}

	u := &model.User{
		ID:                 s.nextID,
		Name:               name,
		Email:              email,
		PasswordHash:       passwordHash,
		SecurityQuestion:   secQuestion,
		SecurityAnswerHash: secAnswerHash,
		Role:               role,
		Active:             true,
		RegistrationDate:   model.Today(),
		Theme:              "Light",
	}
	s.nextID++
	s.users[email] = u

	s.log.Info(ctx, "user registered", "email", email, "role", role, "id", u.ID)
	return u, s.save(ctx)
}

// FindByEmail looks a user up by email.
func (s *Store) FindByEmail(email string) (*model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	return u, ok
}

// Mutate applies fn to the user under email, then saves. An error from fn
// aborts without saving. A save failure is returned but the in-memory
// mutation stands; the next successful save persists it.
func (s *Store) Mutate(ctx context.Context, email string, fn func(*model.User) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUserNotFound, email)
	}
	if err := fn(u); err != nil {
		return err
	}
	return s.save(ctx)
}

// DeleteUser removes the user under email and saves.
func (s *Store) DeleteUser(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[email]; !ok {
		return fmt.Errorf("%w: %s", ErrUserNotFound, email)
	}
	delete(s.users, email)
	s.log.Info(ctx, "user deleted", "email", email)
	return s.save(ctx)
}

// Users returns all users ordered by ID.
func (s *Store) Users() []*model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of registered users.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// AdminExists reports whether any administrator is registered.
func (s *Store) AdminExists() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adminExists()
}

func (s *Store) adminExists() bool {
	for _, u := range s.users {
		if u.Role == model.RoleAdmin {
			return true
		}
	}
	return false
}

// save writes the whole mapping atomically: encode, write a temp file in the
// data directory, then rename over the data file. Callers hold s.mu.
func (s *Store) save(ctx context.Context) error {
	data := codec.Encode(s.users)

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".tracknest-*.tmp")
	if err != nil {
		s.log.Error(ctx, "save failed", "err", err)
		return fmt.Errorf("%w: %v", ErrPersistenceWrite, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		s.log.Error(ctx, "save failed", "err", err)
		return fmt.Errorf("%w: %v", ErrPersistenceWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		s.log.Error(ctx, "save failed", "err", err)
		return fmt.Errorf("%w: %v", ErrPersistenceWrite, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		s.log.Error(ctx, "save failed", "err", err)
		return fmt.Errorf("%w: %v", ErrPersistenceWrite, err)
	}
	return nil
}
