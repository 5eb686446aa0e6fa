package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/phrazzld/wallet-user-api/internal/platform/logger"
	"github.com/phrazzld/wallet-user-api/internal/redact"
)

// Envelope statuses
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Envelope is the body of every API response.
type Envelope struct {
	Status      string      `json:"status"`
	Message     string      `json:"message"`
	Description string      `json:"description"`
	Data        interface{} `json:"data"`
	Token       string      `json:"token,omitempty"`
}

// Success builds a successful envelope.
func Success(message, description string, data interface{}, token string) Envelope {
	return Envelope{
		Status:      StatusSuccess,
		Message:     message,
		Description: description,
		Data:        data,
		Token:       token,
	}
}

// Failed builds a failure envelope. Failures never carry data or a token.
func Failed(message, description string) Envelope {
	return Envelope{
		Status:      StatusFailed,
		Message:     message,
		Description: description,
	}
}

// RespondWithJSON writes a JSON response with the given status code and body.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", "error", err)
	}
}

// RespondSuccess writes a success envelope.
func RespondSuccess(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message, description string,
	data interface{},
	token string,
) {
	RespondWithJSON(w, r, status, Success(message, description, data, token))
}

// RespondFailed writes a failure envelope and logs the underlying error with
// its sensitive parts redacted. 5xx responses log at ERROR, everything else at DEBUG.
func RespondFailed(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message, description string,
	err error,
) {
	traceID := GetTraceID(r.Context())

	attrs := []slog.Attr{
		slog.String("trace_id", traceID),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("message", message),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", redact.Error(err)))
	}

	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	logger.FromContext(r.Context()).LogAttrs(r.Context(), level, "API error response", attrs...)

	RespondWithJSON(w, r, status, Failed(message, description))
}
