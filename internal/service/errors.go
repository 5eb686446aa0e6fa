package service

import "errors"

// Service errors - sentinel errors callers check with errors.Is().
//
// Error handling principles:
// 1. Expected conditions are returned as sentinels from this package, domain, store or auth
// 2. Unexpected errors are wrapped with context and treated as internal by the API layer
// 3. The API layer maps errors to HTTP status codes and message codes
var (
	// ErrInvalidCredentials indicates a login whose password or wallet address
	// does not match the stored account.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotOwned indicates a caller acting on a user record other than its own
	// without admin rights.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrUpdateConflict wraps a duplicate email or wallet address detected while
	// updating an existing user.
	// API layer should map this to HTTP 400 rather than 409.
	ErrUpdateConflict = errors.New("update conflicts with another user")
)
