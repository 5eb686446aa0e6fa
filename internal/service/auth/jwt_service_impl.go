package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/wallet-user-api/internal/config"
	"github.com/phrazzld/wallet-user-api/internal/platform/logger"
)

const minSecretLength = 32

// hmacTokenService is an implementation of TokenService using HMAC-SHA256 signing.
type hmacTokenService struct {
	userKey       []byte
	adminKey      []byte
	tokenLifetime time.Duration
	resetLifetime time.Duration
	timeFunc      func() time.Time // Injectable for testing
	clockSkew     time.Duration
}

// jwtCustomClaims defines the structure of JWT claims we use
type jwtCustomClaims struct {
	UserID  uuid.UUID `json:"uid"`
	Purpose string    `json:"typ"`
	jwt.RegisteredClaims
}

// Ensure hmacTokenService implements TokenService interface
var _ TokenService = (*hmacTokenService)(nil)

// NewTokenService creates a TokenService from the auth configuration.
func NewTokenService(cfg config.AuthConfig) (TokenService, error) {
	if len(cfg.UserJWTSecret) < minSecretLength || len(cfg.AdminJWTSecret) < minSecretLength {
		return nil, fmt.Errorf("jwt secrets must be at least %d characters", minSecretLength)
	}
	if cfg.UserJWTSecret == cfg.AdminJWTSecret {
		return nil, fmt.Errorf("user and admin jwt secrets must differ")
	}
	if cfg.TokenLifetimeMinutes <= 0 || cfg.ResetTokenLifetimeMinutes <= 0 {
		return nil, fmt.Errorf("token lifetimes must be positive")
	}

	return &hmacTokenService{
		userKey:       []byte(cfg.UserJWTSecret),
		adminKey:      []byte(cfg.AdminJWTSecret),
		tokenLifetime: time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		resetLifetime: time.Duration(cfg.ResetTokenLifetimeMinutes) * time.Minute,
		timeFunc:      time.Now,
		clockSkew:     time.Minute,
	}, nil
}

func (s *hmacTokenService) keyFor(audience Audience) ([]byte, error) {
	switch audience {
	case AudienceUser:
		return s.userKey, nil
	case AudienceAdmin:
		return s.adminKey, nil
	default:
		return nil, fmt.Errorf("unknown audience %q", audience)
	}
}

// Sign implements TokenService.Sign
func (s *hmacTokenService) Sign(
	ctx context.Context,
	userID uuid.UUID,
	audience Audience,
) (string, error) {
	return s.sign(ctx, userID, audience, PurposeAccess, s.tokenLifetime)
}

// SignReset implements TokenService.SignReset
func (s *hmacTokenService) SignReset(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.sign(ctx, userID, AudienceUser, PurposeReset, s.resetLifetime)
}

// Verify implements TokenService.Verify
func (s *hmacTokenService) Verify(
	ctx context.Context,
	tokenString string,
	audience Audience,
) (*Claims, error) {
	return s.verify(ctx, tokenString, audience, PurposeAccess)
}

// VerifyReset implements TokenService.VerifyReset
func (s *hmacTokenService) VerifyReset(ctx context.Context, tokenString string) (*Claims, error) {
	return s.verify(ctx, tokenString, AudienceUser, PurposeReset)
}

func (s *hmacTokenService) sign(
	ctx context.Context,
	userID uuid.UUID,
	audience Audience,
	purpose string,
	lifetime time.Duration,
) (string, error) {
	log := logger.FromContext(ctx)

	key, err := s.keyFor(audience)
	if err != nil {
		return "", err
	}

	now := s.timeFunc()
	claims := jwtCustomClaims{
		UserID:  userID,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{string(audience)},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		log.Error("failed to sign token",
			"error", err,
			"user_id", userID,
			"audience", audience,
			"purpose", purpose)
		return "", fmt.Errorf("failed to sign %s token: %w", purpose, err)
	}

	return signed, nil
}

func (s *hmacTokenService) verify(
	ctx context.Context,
	tokenString string,
	audience Audience,
	purpose string,
) (*Claims, error) {
	log := logger.FromContext(ctx)
	op := "verify " + purpose + " token"

	key, err := s.keyFor(audience)
	if err != nil {
		return nil, &AuthError{Op: op, Err: ErrInvalidToken}
	}

	now := s.timeFunc()
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithAudience(string(audience)),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug("token validation failed: expired", "purpose", purpose)
			return nil, &AuthError{Op: op, Err: ErrExpiredToken}
		}
		log.Debug("token validation failed",
			"error", err,
			"audience", audience,
			"purpose", purpose)
		return nil, &AuthError{Op: op, Err: ErrInvalidToken}
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		return nil, &AuthError{Op: op, Err: ErrInvalidToken}
	}
	if claims.Purpose != purpose {
		log.Debug("token validation failed: wrong purpose",
			"expected", purpose,
			"actual", claims.Purpose)
		return nil, &AuthError{Op: op, Err: ErrInvalidToken}
	}
	if claims.UserID == uuid.Nil || claims.Subject != claims.UserID.String() {
		return nil, &AuthError{Op: op, Err: ErrInvalidToken}
	}

	result := &Claims{
		UserID:   claims.UserID,
		Subject:  claims.Subject,
		Audience: audience,
		Purpose:  claims.Purpose,
		ID:       claims.ID,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}

	return result, nil
}
