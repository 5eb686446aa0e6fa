package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/wallet-user-api/internal/api/shared"
	"github.com/phrazzld/wallet-user-api/internal/service"
	"github.com/phrazzld/wallet-user-api/internal/service/auth"
	"github.com/phrazzld/wallet-user-api/internal/store"
)

// getPathUserID parses the {id} path parameter. A value that is not a UUID
// cannot name any user, so it is reported as not found.
func getPathUserID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, store.ErrUserNotFound
	}
	return id, nil
}

// getPathParam returns a decoded path parameter. chi matches on the escaped
// path whenever r.URL.RawPath is set (for example "ab%2Fcd"), so parameters
// only need unescaping in that case.
func getPathParam(r *http.Request, name string) (string, bool) {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v, true
	}
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return "", false
	}
	return decoded, true
}

// authorizeTarget allows admin-audience callers to act on any user and
// user-audience callers only on themselves.
func authorizeTarget(r *http.Request, target uuid.UUID) error {
	claims, ok := shared.GetClaims(r.Context())
	if !ok {
		return auth.ErrInvalidToken
	}
	if claims.Audience == auth.AudienceAdmin || claims.UserID == target {
		return nil
	}
	return service.ErrNotOwned
}

// decodeAndValidate decodes the JSON body into req and checks its shape.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) error {
	if err := shared.DecodeJSON(w, r, req); err != nil {
		return err
	}
	return shared.ValidateRequest(req)
}
