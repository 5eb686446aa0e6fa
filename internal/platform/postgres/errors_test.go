package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/wallet-user-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		TableName:      "users",
		ColumnName:     "email",
		ConstraintName: constraint,
	}
}

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) { return 0, m.err }
func (m mockResult) RowsAffected() (int64, error) { return m.rowsAffected, m.err }

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("generic error")))
	assert.True(t, IsUniqueViolation(newPgError(uniqueViolationCode, emailUniqueIndex)))
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrapped: %w", newPgError(uniqueViolationCode, ""))))
	assert.False(t, IsUniqueViolation(newPgError(notNullViolationCode, "")))
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "no rows", err: sql.ErrNoRows, wantErr: store.ErrNotFound},
		{name: "unique", err: newPgError(uniqueViolationCode, "x"), wantErr: store.ErrDuplicate},
		{name: "check", err: newPgError(checkViolationCode, "x"), wantErr: store.ErrInvalidEntity},
		{name: "not null", err: newPgError(notNullViolationCode, ""), wantErr: store.ErrInvalidEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, MapError(tt.err), tt.wantErr)
		})
	}

	assert.NoError(t, MapError(nil))
	generic := errors.New("boom")
	assert.Equal(t, generic, MapError(generic))
}

func TestMapUserError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, mapUserError(nil))
	assert.Equal(t, store.ErrUserNotFound, mapUserError(sql.ErrNoRows))
	assert.ErrorIs(t, mapUserError(newPgError(uniqueViolationCode, emailUniqueIndex)), store.ErrEmailExists)
	assert.ErrorIs(t, mapUserError(newPgError(uniqueViolationCode, walletUniqueIndex)), store.ErrWalletExists)

	unknown := mapUserError(newPgError(uniqueViolationCode, "other_key"))
	assert.ErrorIs(t, unknown, store.ErrDuplicate)
	assert.NotErrorIs(t, unknown, store.ErrEmailExists)
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	require.NoError(t, CheckRowsAffected(mockResult{rowsAffected: 1}, store.ErrUserNotFound))
	assert.Equal(t, store.ErrUserNotFound, CheckRowsAffected(mockResult{}, store.ErrUserNotFound))
	assert.Error(t, CheckRowsAffected(nil, store.ErrUserNotFound))

	resultErr := errors.New("driver does not support rows affected")
	assert.ErrorIs(t, CheckRowsAffected(mockResult{err: resultErr}, store.ErrUserNotFound), resultErr)
}
