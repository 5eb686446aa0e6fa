package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/wallet-user-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailedEnvelopeHasNullData(t *testing.T) {
	raw, err := json.Marshal(Failed("USER_NOT_FOUND", "User not found"))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "failed", body["status"])
	assert.Contains(t, body, "data")
	assert.Nil(t, body["data"])
	assert.NotContains(t, body, "token")
}

func TestSuccessEnvelope(t *testing.T) {
	raw, err := json.Marshal(Success("CREATED", "User created", map[string]string{"id": "1"}, "tok"))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"status":"success","message":"CREATED","description":"User created","data":{"id":"1"},"token":"tok"}`,
		string(raw))
}

func TestRespondFailed_LogsRedactedError(t *testing.T) {
	var logs bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user", nil)
	req = req.WithContext(logger.WithLogger(SetTraceID(req.Context()), l))
	rec := httptest.NewRecorder()

	RespondFailed(rec, req, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR",
		"Something went wrong", errors.New("dial postgres://app:pw@db:5432 failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotContains(t, rec.Body.String(), "postgres")

	assert.Contains(t, logs.String(), `"level":"ERROR"`)
	assert.Contains(t, logs.String(), "[REDACTED_CREDENTIAL]")
	assert.NotContains(t, logs.String(), "app:pw")
	assert.Contains(t, logs.String(), GetTraceID(req.Context()))
}
