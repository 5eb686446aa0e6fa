package store

import (
	"errors"
	"fmt"
)

// Errors shared by every UserStore backend. Callers match them with errors.Is.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("unique value already taken")

	// ErrInvalidEntity wraps the *domain.ValidationError of a record that
	// failed validation before it was written.
	ErrInvalidEntity = errors.New("invalid record")

	// ErrConcurrentModification is returned when an optimistic write keeps losing
	// races against other writers.
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrWalletExists indicates that another user already holds the wallet address.
	ErrWalletExists = fmt.Errorf("%w: wallet address", ErrDuplicate)
)

// IsNotFoundError reports whether err means the record is absent.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err means a unique value is already taken.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// BackendError records which storage backend and operation produced an
// infrastructure failure (a lost connection, an undecodable document).
// Not-found and duplicate outcomes are never wrapped in it.
type BackendError struct {
	Backend string
	Op      string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// NewBackendError wraps err, or returns nil when err is nil.
func NewBackendError(backend, op string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Backend: backend, Op: op, Err: err}
}
