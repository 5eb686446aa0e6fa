package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/wallet-user-api/internal/api/shared"
	"github.com/phrazzld/wallet-user-api/internal/service/auth"
)

// AuthMiddleware provides JWT authentication for routes.
type AuthMiddleware struct {
	tokens auth.TokenService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(tokens auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate accepts a Bearer access token of either audience and stores the
// verified claims in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondFailed(w, r, http.StatusUnauthorized,
				shared.MsgUnauthorized, "Authorization header required", nil)
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			shared.RespondFailed(w, r, http.StatusUnauthorized,
				shared.MsgUnauthorized, "Invalid authorization format", nil)
			return
		}
		token = strings.TrimSpace(token)

		claims, err := m.tokens.Verify(r.Context(), token, auth.AudienceUser)
		if err != nil {
			var adminErr error
			claims, adminErr = m.tokens.Verify(r.Context(), token, auth.AudienceAdmin)
			if adminErr != nil {
				description := "Invalid token"
				if errors.Is(err, auth.ErrExpiredToken) || errors.Is(adminErr, auth.ErrExpiredToken) {
					description = "Token expired"
				}
				shared.RespondFailed(w, r, http.StatusUnauthorized,
					shared.MsgInvalidToken, description, err)
				return
			}
		}

		next.ServeHTTP(w, r.WithContext(shared.WithClaims(r.Context(), claims)))
	})
}
