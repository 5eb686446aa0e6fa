package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/wallet-user-api/internal/domain"
	"github.com/phrazzld/wallet-user-api/internal/mail"
	"github.com/phrazzld/wallet-user-api/internal/platform/logger"
	"github.com/phrazzld/wallet-user-api/internal/service/auth"
	"github.com/phrazzld/wallet-user-api/internal/store"
)

// CreateUserInput carries a registration request. Password and WalletAddress are optional.
type CreateUserInput struct {
	Name          string
	Email         string
	WalletAddress string
	Password      string
}

// LoginInput carries a login request. At least one of Password and WalletAddress is required;
// the password wins when both are given.
type LoginInput struct {
	Email         string
	Password      string
	WalletAddress string
}

// UpdateUserInput carries a partial update. Nil fields are left untouched; an empty
// WalletAddress clears the wallet.
type UpdateUserInput struct {
	Name          *string
	Email         *string
	WalletAddress *string
}

// AuthResult is a user view paired with a freshly signed access token.
type AuthResult struct {
	User  domain.PublicUser
	Token string
}

// UserService provides the user account operations.
type UserService interface {
	// Create registers a new user and signs them in.
	Create(ctx context.Context, input CreateUserInput) (*AuthResult, error)

	// Login authenticates by password or wallet address.
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)

	// List returns every user ordered by creation time.
	List(ctx context.Context) ([]domain.PublicUser, error)

	// Get returns a single user.
	Get(ctx context.Context, id uuid.UUID) (*domain.PublicUser, error)

	// GetByWalletAddress returns the owner of walletAddress together with a token for them.
	GetByWalletAddress(ctx context.Context, walletAddress string) (*AuthResult, error)

	// Update applies a partial update. The stored record is unchanged on any error.
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.PublicUser, error)

	// Delete removes a user.
	Delete(ctx context.Context, id uuid.UUID) error

	// ForgotPassword mails a password reset token to the owner of email.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword replaces the password of the user named by a reset token.
	ResetPassword(ctx context.Context, token, password string) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	tokens auth.TokenService
	mailer mail.Sender
	logger *slog.Logger
	now    func() time.Time
}

// Ensure UserServiceImpl implements UserService interface
var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	tokens auth.TokenService,
	mailer mail.Sender,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		mailer: mailer,
		logger: logger.With("component", "user_service"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *UserServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// Create implements UserService.Create
func (s *UserServiceImpl) Create(ctx context.Context, input CreateUserInput) (*AuthResult, error) {
	user, err := domain.NewUser(input.Name, input.Email, input.WalletAddress)
	if err != nil {
		return nil, err
	}
	if input.Password != "" && !domain.ValidatePassword(input.Password) {
		return nil, passwordPolicyError()
	}

	if _, err := s.users.GetByEmail(ctx, user.Email); err == nil {
		return nil, store.ErrEmailExists
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email availability: %w", err)
	}

	if input.Password != "" {
		hashed, err := s.hasher.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = hashed
	}

	if err := s.users.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Sign(ctx, user.ID, auth.AudienceUser)
	if err != nil {
		return nil, err
	}

	s.log(ctx).Info("user created", "user_id", user.ID)
	return &AuthResult{User: user.Public(), Token: token}, nil
}

// Login implements UserService.Login
func (s *UserServiceImpl) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := domain.NormalizeEmail(input.Email)
	if !domain.ValidateEmail(email) {
		return nil, domain.NewValidationError("email", "has invalid format", domain.ErrInvalidEmail)
	}
	wallet := strings.TrimSpace(input.WalletAddress)
	if input.Password == "" && wallet == "" {
		return nil, domain.NewValidationError("password",
			"or wallet address is required", domain.ErrMissingCredential)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, s.lookupError(ctx, err, "email")
	}

	if input.Password != "" {
		if !user.HasPassword() {
			return nil, ErrInvalidCredentials
		}
		if err := s.hasher.Compare(user.HashedPassword, input.Password); err != nil {
			if errors.Is(err, auth.ErrPasswordMismatch) {
				s.log(ctx).Debug("login rejected: password mismatch", "user_id", user.ID)
				return nil, ErrInvalidCredentials
			}
			return nil, err
		}
	} else if user.WalletAddress == "" || user.WalletAddress != wallet {
		s.log(ctx).Debug("login rejected: wallet mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(ctx, user.ID, auth.AudienceUser)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user.Public(), Token: token}, nil
}

// List implements UserService.List
func (s *UserServiceImpl) List(ctx context.Context) ([]domain.PublicUser, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return domain.PublicUsers(users), nil
}

// Get implements UserService.Get
func (s *UserServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.PublicUser, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(ctx, err, "id")
	}
	view := user.Public()
	return &view, nil
}

// GetByWalletAddress implements UserService.GetByWalletAddress
func (s *UserServiceImpl) GetByWalletAddress(ctx context.Context, walletAddress string) (*AuthResult, error) {
	user, err := s.users.GetByWalletAddress(ctx, strings.TrimSpace(walletAddress))
	if err != nil {
		return nil, s.lookupError(ctx, err, "wallet_address")
	}

	token, err := s.tokens.Sign(ctx, user.ID, auth.AudienceUser)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user.Public(), Token: token}, nil
}

// Update implements UserService.Update
// The stored user is retrieved first, changes are applied to a copy, and the
// complete object is passed back to the store.
func (s *UserServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateUserInput,
) (*domain.PublicUser, error) {
	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(ctx, err, "id")
	}

	updated := *current

	if input.Name != nil {
		updated.Name = strings.TrimSpace(*input.Name)
		if !domain.ValidateName(updated.Name) {
			return nil, domain.NewValidationError("name",
				"must be between 1 and 100 characters", domain.ErrInvalidName)
		}
	}

	if input.Email != nil {
		updated.Email = domain.NormalizeEmail(*input.Email)
		if !domain.ValidateEmail(updated.Email) {
			return nil, domain.NewValidationError("email", "has invalid format", domain.ErrInvalidEmail)
		}
		if updated.Email != current.Email {
			if err := s.ensureFree(ctx, id, s.users.GetByEmail, updated.Email, store.ErrEmailExists); err != nil {
				return nil, err
			}
		}
	}

	if input.WalletAddress != nil {
		updated.WalletAddress = strings.TrimSpace(*input.WalletAddress)
		if updated.WalletAddress != "" && !domain.ValidateWalletAddress(updated.WalletAddress) {
			return nil, domain.NewValidationError("wallet_address",
				"has invalid format", domain.ErrInvalidWalletAddress)
		}
		if updated.WalletAddress != "" && updated.WalletAddress != current.WalletAddress {
			if err := s.ensureFree(ctx, id, s.users.GetByWalletAddress,
				updated.WalletAddress, store.ErrWalletExists); err != nil {
				return nil, err
			}
		}
	}

	updated.UpdatedAt = s.now()

	if err := s.users.Update(ctx, &updated); err != nil {
		switch {
		case store.IsDuplicateError(err):
			return nil, fmt.Errorf("%w: %w", ErrUpdateConflict, err)
		case errors.Is(err, store.ErrUserNotFound):
			return nil, err
		default:
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	s.log(ctx).Info("user updated", "user_id", id)
	view := updated.Public()
	return &view, nil
}

// Delete implements UserService.Delete
func (s *UserServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.log(ctx).Info("user deleted", "user_id", id)
	return nil
}

// ForgotPassword implements UserService.ForgotPassword
func (s *UserServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	if !domain.ValidateEmail(email) {
		return domain.NewValidationError("email", "has invalid format", domain.ErrInvalidEmail)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return s.lookupError(ctx, err, "email")
	}

	token, err := s.tokens.SignReset(ctx, user.ID)
	if err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(ctx, user, token); err != nil {
		return fmt.Errorf("failed to dispatch reset token: %w", err)
	}
	return nil
}

// ResetPassword implements UserService.ResetPassword
func (s *UserServiceImpl) ResetPassword(ctx context.Context, token, password string) error {
	claims, err := s.tokens.VerifyReset(ctx, token)
	if err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return s.lookupError(ctx, err, "id")
	}

	if !domain.ValidatePassword(password) {
		return passwordPolicyError()
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}

	updated := *user
	updated.HashedPassword = hashed
	updated.UpdatedAt = s.now()

	if err := s.users.Update(ctx, &updated); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to store new password: %w", err)
	}

	s.log(ctx).Info("password reset", "user_id", user.ID)
	return nil
}

// ensureFree fails with taken when lookup finds value owned by a user other than id.
func (s *UserServiceImpl) ensureFree(
	ctx context.Context,
	id uuid.UUID,
	lookup func(context.Context, string) (*domain.User, error),
	value string,
	taken error,
) error {
	owner, err := lookup(ctx, value)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check availability: %w", err)
	case owner.ID != id:
		return fmt.Errorf("%w: %w", ErrUpdateConflict, taken)
	default:
		return nil
	}
}

// lookupError passes not-found through and wraps anything else.
func (s *UserServiceImpl) lookupError(ctx context.Context, err error, by string) error {
	if errors.Is(err, store.ErrUserNotFound) {
		s.log(ctx).Debug("user not found", "by", by)
		return err
	}
	return fmt.Errorf("failed to look up user by %s: %w", by, err)
}

func passwordPolicyError() error {
	return domain.NewValidationError("password",
		fmt.Sprintf("must be %d-%d characters with at least one letter and one digit",
			domain.MinPasswordLength, domain.MaxPasswordLength),
		domain.ErrInvalidPassword)
}
