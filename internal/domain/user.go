package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
// HashedPassword is never serialized; handlers respond with PublicUser instead.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	WalletAddress  string    `json:"wallet_address,omitempty"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// PublicUser is the projection of a User that is safe to return to clients.
type PublicUser struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	WalletAddress string    `json:"wallet_address"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewUser creates a new User with a fresh ID and timestamps.
// The email is normalized and all fields are validated; the password hash is
// attached by the caller after hashing.
func NewUser(name, email, walletAddress string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(name),
		Email:         NormalizeEmail(email),
		WalletAddress: strings.TrimSpace(walletAddress),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns a *ValidationError naming the first field that fails.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if !ValidateEmail(u.Email) {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}
	if !ValidateName(u.Name) {
		return NewValidationError("name", "must be between 1 and 100 characters", ErrInvalidName)
	}
	if u.WalletAddress != "" && !ValidateWalletAddress(u.WalletAddress) {
		return NewValidationError("wallet_address", "has invalid format", ErrInvalidWalletAddress)
	}
	return nil
}

// HasPassword reports whether a password hash has been set for the user.
func (u *User) HasPassword() bool {
	return u.HashedPassword != ""
}

// Public projects the user down to its client-safe fields.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		WalletAddress: u.WalletAddress,
		CreatedAt:     u.CreatedAt,
	}
}

// PublicUsers projects every user in users.
func PublicUsers(users []*User) []PublicUser {
	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}
