//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/wallet-user-api/internal/domain"
	"github.com/phrazzld/wallet-user-api/internal/platform/postgres"
	"github.com/phrazzld/wallet-user-api/internal/store"
	"github.com/phrazzld/wallet-user-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueUser(t *testing.T) *domain.User {
	t.Helper()
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	wallet := "0x" + id + id[:8]
	u, err := domain.NewUser("Integration", id[:12]+"@example.com", wallet)
	require.NoError(t, err)
	u.HashedPassword = "$2a$10$integrationhashintegrationhashintegrationhashxxxxxx"
	return u
}

func TestPostgresUserStoreIntegration(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := postgres.NewPostgresUserStore(tx, nil)
			u := uniqueUser(t)
			require.NoError(t, users.Create(ctx, u))

			byID, err := users.GetByID(ctx, u.ID)
			require.NoError(t, err)
			assert.Equal(t, u.Email, byID.Email)
			assert.WithinDuration(t, u.CreatedAt, byID.CreatedAt, time.Millisecond)

			byEmail, err := users.GetByEmail(ctx, u.Email)
			require.NoError(t, err)
			assert.Equal(t, u.ID, byEmail.ID)

			byWallet, err := users.GetByWalletAddress(ctx, u.WalletAddress)
			require.NoError(t, err)
			assert.Equal(t, u.ID, byWallet.ID)

			u.Name = "Renamed"
			u.UpdatedAt = time.Now().UTC()
			require.NoError(t, users.Update(ctx, u))
			updated, err := users.GetByID(ctx, u.ID)
			require.NoError(t, err)
			assert.Equal(t, "Renamed", updated.Name)

			require.NoError(t, users.Delete(ctx, u.ID))
			_, err = users.GetByID(ctx, u.ID)
			assert.ErrorIs(t, err, store.ErrUserNotFound)
		})
	})

	t.Run("list is ordered by creation", func(t *testing.T) {
		t.Parallel()
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := postgres.NewPostgresUserStore(tx, nil)
			first, second := uniqueUser(t), uniqueUser(t)
			second.CreatedAt = first.CreatedAt.Add(time.Second)
			second.UpdatedAt = second.CreatedAt
			require.NoError(t, users.Create(ctx, first))
			require.NoError(t, users.Create(ctx, second))

			all, err := users.List(ctx)
			require.NoError(t, err)
			pos := map[uuid.UUID]int{}
			for i, u := range all {
				pos[u.ID] = i
			}
			require.Contains(t, pos, first.ID)
			require.Contains(t, pos, second.ID)
			assert.Less(t, pos[first.ID], pos[second.ID])
		})
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := postgres.NewPostgresUserStore(tx, nil)
			u := uniqueUser(t)
			require.NoError(t, users.Create(ctx, u))

			dup := uniqueUser(t)
			dup.Email = u.Email
			assert.ErrorIs(t, users.Create(ctx, dup), store.ErrEmailExists)
		})
	})

	t.Run("duplicate wallet", func(t *testing.T) {
		t.Parallel()
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := postgres.NewPostgresUserStore(tx, nil)
			u := uniqueUser(t)
			require.NoError(t, users.Create(ctx, u))

			dup := uniqueUser(t)
			dup.WalletAddress = u.WalletAddress
			assert.ErrorIs(t, users.Create(ctx, dup), store.ErrWalletExists)
		})
	})

	t.Run("missing user", func(t *testing.T) {
		t.Parallel()
		testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
			users := postgres.NewPostgresUserStore(tx, nil)
			assert.ErrorIs(t, users.Delete(ctx, uuid.New()), store.ErrUserNotFound)
			assert.ErrorIs(t, users.Update(ctx, uniqueUser(t)), store.ErrUserNotFound)
		})
	})
}
