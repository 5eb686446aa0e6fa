package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Audience selects which secret signs a token and who may present it.
type Audience string

const (
	AudienceUser  Audience = "user"
	AudienceAdmin Audience = "admin"
)

// Valid reports whether a is a known audience.
func (a Audience) Valid() bool {
	return a == AudienceUser || a == AudienceAdmin
}

// Token purposes, carried in the "typ" claim.
const (
	PurposeAccess = "access"
	PurposeReset  = "reset"
)

// TokenService defines operations for issuing and verifying JWTs.
type TokenService interface {
	// Sign creates an access token for userID in the given audience.
	Sign(ctx context.Context, userID uuid.UUID, audience Audience) (string, error)

	// Verify validates an access token issued for audience and returns its claims.
	// Reset tokens never verify here.
	Verify(ctx context.Context, tokenString string, audience Audience) (*Claims, error)

	// SignReset creates a short-lived password reset token for userID.
	SignReset(ctx context.Context, userID uuid.UUID) (string, error)

	// VerifyReset validates a password reset token. Access tokens never verify here.
	VerifyReset(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of a token.
type Claims struct {
	UserID    uuid.UUID
	Subject   string
	Audience  Audience
	Purpose   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
