package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/wallet-user-api/internal/api/middleware"
	"github.com/phrazzld/wallet-user-api/internal/api/shared"
	"github.com/phrazzld/wallet-user-api/internal/config"
	"github.com/phrazzld/wallet-user-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokens(t *testing.T) auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService(config.AuthConfig{
		UserJWTSecret:             "user-secret-that-is-long-enough-for-testing",
		AdminJWTSecret:            "admin-secret-that-is-long-enough-for-testing",
		TokenLifetimeMinutes:      60,
		ResetTokenLifetimeMinutes: 15,
	})
	require.NoError(t, err)
	return tokens
}

func TestAuthenticate(t *testing.T) {
	tokens := newTokens(t)
	ctx := context.Background()
	userID := uuid.New()

	userToken, err := tokens.Sign(ctx, userID, auth.AudienceUser)
	require.NoError(t, err)
	adminToken, err := tokens.Sign(ctx, userID, auth.AudienceAdmin)
	require.NoError(t, err)
	resetToken, err := tokens.SignReset(ctx, userID)
	require.NoError(t, err)

	var seen *auth.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = shared.GetClaims(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := middleware.NewAuthMiddleware(tokens).Authenticate(next)

	tests := []struct {
		name         string
		header       string
		wantStatus   int
		wantMessage  string
		wantAudience auth.Audience
	}{
		{"user token", "Bearer " + userToken, http.StatusNoContent, "", auth.AudienceUser},
		{"admin token", "Bearer " + adminToken, http.StatusNoContent, "", auth.AudienceAdmin},
		{"lower-case scheme", "bearer " + userToken, http.StatusNoContent, "", auth.AudienceUser},
		{"missing header", "", http.StatusUnauthorized, shared.MsgUnauthorized, ""},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, shared.MsgUnauthorized, ""},
		{"empty token", "Bearer ", http.StatusUnauthorized, shared.MsgUnauthorized, ""},
		{"garbage token", "Bearer abc.def.ghi", http.StatusUnauthorized, shared.MsgInvalidToken, ""},
		{"reset token", "Bearer " + resetToken, http.StatusUnauthorized, shared.MsgInvalidToken, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/api/v1/user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusNoContent {
				require.NotNil(t, seen)
				assert.Equal(t, userID, seen.UserID)
				assert.Equal(t, tt.wantAudience, seen.Audience)
				return
			}

			assert.Nil(t, seen)
			var body shared.Envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, shared.StatusFailed, body.Status)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.Nil(t, body.Data)
		})
	}
}
