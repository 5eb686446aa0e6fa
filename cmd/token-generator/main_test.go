package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/wallet-user-api/internal/config"
	"github.com/phrazzld/wallet-user-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		UserJWTSecret:             "user-secret-that-is-long-enough-for-testing",
		AdminJWTSecret:            "admin-secret-that-is-long-enough-for-testing",
		TokenLifetimeMinutes:      60,
		ResetTokenLifetimeMinutes: 15,
		BCryptCost:                4,
	}
}

func TestRun_AdminToken(t *testing.T) {
	cfg := testAuthConfig()
	id := uuid.New()
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), cfg, []string{"-user", id.String()}, &out))

	tokens, err := auth.NewTokenService(cfg)
	require.NoError(t, err)
	claims, err := tokens.Verify(context.Background(), strings.TrimSpace(out.String()), auth.AudienceAdmin)
	require.NoError(t, err)
	assert.Equal(t, id, claims.UserID)
}

func TestRun_UserToken(t *testing.T) {
	cfg := testAuthConfig()
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), cfg, []string{"-audience", "user"}, &out))

	tokens, err := auth.NewTokenService(cfg)
	require.NoError(t, err)
	_, err = tokens.Verify(context.Background(), strings.TrimSpace(out.String()), auth.AudienceUser)
	assert.NoError(t, err)
}

func TestRun_HashPassword(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), testAuthConfig(), []string{"-hash-password", "password1"}, &out))

	hash := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("password1")))
}

func TestRun_Errors(t *testing.T) {
	cfg := testAuthConfig()

	assert.Error(t, run(context.Background(), cfg, []string{"-audience", "root"}, &bytes.Buffer{}))
	assert.Error(t, run(context.Background(), cfg, []string{"-user", "nope"}, &bytes.Buffer{}))
	assert.Error(t, run(context.Background(), cfg, []string{"-bogus"}, &bytes.Buffer{}))
}
