package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/wallet-user-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
// Implementations must be safe for concurrent use and must enforce email
// uniqueness (and wallet address uniqueness for non-empty addresses) themselves;
// callers' pre-checks are advisory only.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrEmailExists or ErrWalletExists if a unique field is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their (normalized) email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByWalletAddress retrieves a user by wallet address.
	// Returns ErrUserNotFound if no user holds the address.
	GetByWalletAddress(ctx context.Context, walletAddress string) (*domain.User, error)

	// List returns every user ordered by creation time, oldest first.
	List(ctx context.Context) ([]*domain.User, error)

	// Update replaces the stored record for user.ID with the complete user object,
	// including HashedPassword.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists or ErrWalletExists if the new values are taken.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
