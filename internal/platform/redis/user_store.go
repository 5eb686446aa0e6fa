package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/wallet-user-api/internal/domain"
	"github.com/phrazzld/wallet-user-api/internal/platform/logger"
	"github.com/phrazzld/wallet-user-api/internal/redact"
	"github.com/phrazzld/wallet-user-api/internal/store"
	"github.com/redis/go-redis/v9"
)

const (
	backendName = "redis"

	// maxTxAttempts bounds how often a write is retried after losing a WATCH race.
	maxTxAttempts = 5
)

// userDocument is the stored representation of a user. Unlike domain.User it
// serializes the password hash.
type userDocument struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	WalletAddress  string    `json:"wallet_address,omitempty"`
	HashedPassword string    `json:"hashed_password,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toDocument(u *domain.User) userDocument {
	return userDocument{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		WalletAddress:  u.WalletAddress,
		HashedPassword: u.HashedPassword,
		CreatedAt:      u.CreatedAt.UTC(),
		UpdatedAt:      u.UpdatedAt.UTC(),
	}
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:             d.ID,
		Name:           d.Name,
		Email:          d.Email,
		WalletAddress:  d.WalletAddress,
		HashedPassword: d.HashedPassword,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// RedisUserStore implements store.UserStore using Redis as a document store.
type RedisUserStore struct {
	client redis.UniversalClient
	prefix string
	logger *slog.Logger
}

// NewRedisUserStore creates a store that keeps its keys under prefix.
// The client is owned by the caller.
func NewRedisUserStore(client redis.UniversalClient, prefix string, logger *slog.Logger) *RedisUserStore {
	if logger == nil {
		logger = slog.Default()
	}
	if prefix == "" {
		prefix = "walletuser"
	}

	return &RedisUserStore{
		client: client,
		prefix: prefix,
		logger: logger.With(slog.String("component", "redis_user_store")),
	}
}

// Ensure RedisUserStore implements store.UserStore interface
var _ store.UserStore = (*RedisUserStore)(nil)

func (s *RedisUserStore) docKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:user:%s", s.prefix, id)
}

func (s *RedisUserStore) emailKey(email string) string {
	return fmt.Sprintf("%s:user:email:%s", s.prefix, email)
}

func (s *RedisUserStore) walletKey(wallet string) string {
	return fmt.Sprintf("%s:user:wallet:%s", s.prefix, wallet)
}

func (s *RedisUserStore) indexKey() string {
	return s.prefix + ":users"
}

// creationScore orders the users ZSET. Microseconds stay exact in a float64
// score for any realistic date; nanoseconds do not.
func creationScore(t time.Time) float64 {
	return float64(t.UnixMicro())
}

// Create implements store.UserStore.Create
func (s *RedisUserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	payload, err := json.Marshal(toDocument(user))
	if err != nil {
		return store.NewBackendError(backendName, "encode user document", err)
	}

	docKey := s.docKey(user.ID)
	emailKey := s.emailKey(user.Email)
	watched := []string{docKey, emailKey}
	var walletKey string
	if user.WalletAddress != "" {
		walletKey = s.walletKey(user.WalletAddress)
		watched = append(watched, walletKey)
	}

	err = s.withRetry(ctx, "create", func(tx *redis.Tx) error {
		if taken, err := exists(ctx, tx, emailKey); err != nil {
			return err
		} else if taken {
			return store.ErrEmailExists
		}
		if walletKey != "" {
			if taken, err := exists(ctx, tx, walletKey); err != nil {
				return err
			} else if taken {
				return store.ErrWalletExists
			}
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			id := user.ID.String()
			pipe.Set(ctx, docKey, payload, 0)
			pipe.Set(ctx, emailKey, id, 0)
			if walletKey != "" {
				pipe.Set(ctx, walletKey, id, 0)
			}
			pipe.ZAdd(ctx, s.indexKey(), redis.Z{
				Score:  creationScore(user.CreatedAt),
				Member: id,
			})
			return nil
		})
		return err
	}, watched...)
	if err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("user created",
		slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *RedisUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	doc, err := s.load(ctx, s.client, id)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

// GetByEmail implements store.UserStore.GetByEmail
func (s *RedisUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getByIndex(ctx, s.emailKey(domain.NormalizeEmail(email)))
}

// GetByWalletAddress implements store.UserStore.GetByWalletAddress
func (s *RedisUserStore) GetByWalletAddress(
	ctx context.Context,
	walletAddress string,
) (*domain.User, error) {
	if walletAddress == "" {
		return nil, store.ErrUserNotFound
	}
	return s.getByIndex(ctx, s.walletKey(walletAddress))
}

// List implements store.UserStore.List
func (s *RedisUserStore) List(ctx context.Context) ([]*domain.User, error) {
	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, store.NewBackendError(backendName, "read user index", err)
	}

	users := make([]*domain.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, fmt.Sprintf("%s:user:%s", s.prefix, id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, store.NewBackendError(backendName, "read user documents", err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Index entry outlived its document; skip it.
			continue
		}
		var doc userDocument
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			return nil, store.NewBackendError(backendName, "decode user document "+ids[i], err)
		}
		users = append(users, doc.toDomain())
	}

	return users, nil
}

// Update implements store.UserStore.Update
func (s *RedisUserStore) Update(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	docKey := s.docKey(user.ID)
	newEmailKey := s.emailKey(user.Email)
	watched := []string{docKey, newEmailKey}
	var newWalletKey string
	if user.WalletAddress != "" {
		newWalletKey = s.walletKey(user.WalletAddress)
		watched = append(watched, newWalletKey)
	}

	return s.withRetry(ctx, "update", func(tx *redis.Tx) error {
		current, err := s.load(ctx, tx, user.ID)
		if err != nil {
			return err
		}

		id := user.ID.String()
		emailChanged := current.Email != user.Email
		walletChanged := current.WalletAddress != user.WalletAddress

		if emailChanged {
			if err := checkOwner(ctx, tx, newEmailKey, id, store.ErrEmailExists); err != nil {
				return err
			}
		}
		if walletChanged && newWalletKey != "" {
			if err := checkOwner(ctx, tx, newWalletKey, id, store.ErrWalletExists); err != nil {
				return err
			}
		}

		doc := toDocument(user)
		// Creation time is owned by the store.
		doc.CreatedAt = current.CreatedAt
		payload, err := json.Marshal(doc)
		if err != nil {
			return store.NewBackendError(backendName, "encode user document", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, docKey, payload, 0)
			if emailChanged {
				pipe.Del(ctx, s.emailKey(current.Email))
				pipe.Set(ctx, newEmailKey, id, 0)
			}
			if walletChanged {
				if current.WalletAddress != "" {
					pipe.Del(ctx, s.walletKey(current.WalletAddress))
				}
				if newWalletKey != "" {
					pipe.Set(ctx, newWalletKey, id, 0)
				}
			}
			return nil
		})
		return err
	}, watched...)
}

// Delete implements store.UserStore.Delete
func (s *RedisUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	docKey := s.docKey(id)

	return s.withRetry(ctx, "delete", func(tx *redis.Tx) error {
		current, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, docKey, s.emailKey(current.Email))
			if current.WalletAddress != "" {
				pipe.Del(ctx, s.walletKey(current.WalletAddress))
			}
			pipe.ZRem(ctx, s.indexKey(), id.String())
			return nil
		})
		return err
	}, docKey)
}

// withRetry runs fn inside WATCH on keys, retrying when the transaction is
// aborted by a concurrent writer.
func (s *RedisUserStore) withRetry(
	ctx context.Context,
	op string,
	fn func(tx *redis.Tx) error,
	keys ...string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err := s.client.Watch(ctx, fn, keys...)
		if err == nil {
			return nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			if !store.IsNotFoundError(err) && !store.IsDuplicateError(err) {
				log.Error("redis user store operation failed",
					slog.String("operation", op),
					slog.String("error", redact.Error(err)))
			}
			return err
		}
		log.Debug("redis transaction lost a race, retrying",
			slog.String("operation", op),
			slog.Int("attempt", attempt))
	}

	return fmt.Errorf("%s user: %w", op, store.ErrConcurrentModification)
}

// reader is the subset of commands shared by *redis.Client and *redis.Tx.
type reader interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisUserStore) load(ctx context.Context, r reader, id uuid.UUID) (*userDocument, error) {
	raw, err := r.Get(ctx, s.docKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrUserNotFound
		}
		return nil, store.NewBackendError(backendName, "read user document", err)
	}

	var doc userDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, store.NewBackendError(backendName, "decode user document", err)
	}
	return &doc, nil
}

func (s *RedisUserStore) getByIndex(ctx context.Context, key string) (*domain.User, error) {
	rawID, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrUserNotFound
		}
		return nil, store.NewBackendError(backendName, "read user index", err)
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, store.NewBackendError(backendName, "parse user index "+key, err)
	}

	return s.GetByID(ctx, id)
}

func exists(ctx context.Context, tx *redis.Tx, key string) (bool, error) {
	n, err := tx.Exists(ctx, key).Result()
	if err != nil {
		return false, store.NewBackendError(backendName, "check "+key, err)
	}
	return n > 0, nil
}

// checkOwner fails with taken when key points at a user other than ownerID.
func checkOwner(ctx context.Context, tx *redis.Tx, key, ownerID string, taken error) error {
	holder, err := tx.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return store.NewBackendError(backendName, "check "+key, err)
	}
	if holder != ownerID {
		return taken
	}
	return nil
}
