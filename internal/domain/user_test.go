package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("  Alice ", "Alice@Example.com", " 0xabc ")

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email, "email should be normalized")
	assert.Equal(t, "0xabc", user.WalletAddress)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
	assert.False(t, user.HasPassword())
}

func TestNewUserValidation(t *testing.T) {
	tests := []struct {
		name      string
		userName  string
		email     string
		wallet    string
		wantField string
		wantErr   error
	}{
		{"invalid email", "Alice", "not-an-email", "", "email", ErrInvalidEmail},
		{"empty name", "", "a@b.com", "", "name", ErrInvalidName},
		{"bad wallet", "Alice", "a@b.com", "0x 1", "wallet_address", ErrInvalidWalletAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUser(tt.userName, tt.email, tt.wallet)

			require.Error(t, err)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrValidation)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestUserValidateRejectsNilID(t *testing.T) {
	u := &User{Name: "Alice", Email: "a@b.com"}
	assert.ErrorIs(t, u.Validate(), ErrInvalidID)
}

func TestPublicNeverContainsPassword(t *testing.T) {
	users := []*User{
		{ID: uuid.New(), Name: "A", Email: "a@b.com", HashedPassword: "$2a$10$secrethash"},
		{ID: uuid.New(), Name: "B", Email: "b@b.com", WalletAddress: "0x1", HashedPassword: "x"},
		{},
	}

	for _, u := range users {
		raw, err := json.Marshal(u.Public())
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(raw, &fields))
		assert.NotContains(t, fields, "password")
		assert.NotContains(t, fields, "hashed_password")
		assert.NotContains(t, string(raw), "$2a$")
		assert.ElementsMatch(t,
			[]string{"id", "name", "email", "wallet_address", "created_at"},
			keys(fields))
	}
}

func TestUserJSONOmitsHash(t *testing.T) {
	u := &User{ID: uuid.New(), Name: "A", Email: "a@b.com", HashedPassword: "secret-hash"}
	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-hash")
}

func TestPublicUsers(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	users := []*User{
		{ID: uuid.New(), Name: "A", Email: "a@b.com", CreatedAt: created},
		{ID: uuid.New(), Name: "B", Email: "b@b.com", CreatedAt: created},
	}

	views := PublicUsers(users)

	require.Len(t, views, 2)
	assert.Equal(t, users[0].ID, views[0].ID)
	assert.Equal(t, "b@b.com", views[1].Email)
	assert.Equal(t, created, views[1].CreatedAt)
	assert.NotNil(t, PublicUsers(nil), "empty input should still serialize as []")
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
