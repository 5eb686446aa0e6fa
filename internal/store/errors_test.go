package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrUserNotFound", err: ErrUserNotFound, expected: true},
		{
			name:     "wrapped ErrUserNotFound",
			err:      fmt.Errorf("failed to find user: %w", ErrUserNotFound),
			expected: true,
		},
		{
			name:     "backend failure",
			err:      NewBackendError("redis", "read user document", errors.New("timeout")),
			expected: false,
		},
		{name: "duplicate is not not-found", err: ErrEmailExists, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "ErrDuplicate", err: ErrDuplicate, expected: true},
		{name: "ErrEmailExists", err: ErrEmailExists, expected: true},
		{name: "ErrWalletExists", err: ErrWalletExists, expected: true},
		{
			name:     "wrapped ErrWalletExists",
			err:      fmt.Errorf("update: %w", ErrWalletExists),
			expected: true,
		},
		{name: "not found", err: ErrUserNotFound, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDuplicateError(tt.err))
		})
	}
}

func TestDuplicateErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrEmailExists, ErrWalletExists))
	assert.False(t, errors.Is(ErrWalletExists, ErrEmailExists))
}

func TestBackendError(t *testing.T) {
	inner := errors.New("connection reset")

	err := NewBackendError("redis", "read user index", inner)
	assert.EqualError(t, err, "redis: read user index: connection reset")
	assert.ErrorIs(t, err, inner)
	assert.False(t, IsNotFoundError(err))

	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "redis", be.Backend)

	assert.NoError(t, NewBackendError("redis", "noop", nil))
}
