package store

import "errors"

// Sentinel errors of the user store. Callers match them with errors.Is and
// map them to user-facing messages.
var (
	// ErrDuplicateUser means the email is already registered.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrRoleConflict means a second administrator registration was refused.
	ErrRoleConflict = errors.New("an administrator already exists")

	// ErrUserNotFound means no user is registered under the given email.
	ErrUserNotFound = errors.New("user not found")

	// ErrPersistenceWrite wraps failures while writing the data file. The
	// in-memory state is still current when it is returned.
	ErrPersistenceWrite = errors.New("persistence write failed")

	// ErrPersistenceRead wraps unrecoverable corruption of the data file.
	ErrPersistenceRead = errors.New("persistence read failed")
)
