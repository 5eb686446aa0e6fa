package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/wallet-user-api/internal/api/shared"
	"github.com/phrazzld/wallet-user-api/internal/domain"
	"github.com/phrazzld/wallet-user-api/internal/service"
	"github.com/phrazzld/wallet-user-api/internal/service/auth"
	"github.com/phrazzld/wallet-user-api/internal/store"
)

// envelopeForError maps an error to the HTTP status, message code and client-safe
// description of its failure envelope. Unknown errors become a generic 500 so
// internals never reach the client.
func envelopeForError(err error) (int, string, string) {
	var ve *domain.ValidationError
	var fieldErrs validator.ValidationErrors

	switch {
	case errors.Is(err, shared.ErrMalformedBody):
		return http.StatusBadRequest, shared.MsgBadRequest, "Malformed request body"

	case errors.As(err, &ve):
		return http.StatusBadRequest, messageForField(ve.Field), ve.Error()

	case errors.As(err, &fieldErrs) && len(fieldErrs) > 0:
		field := fieldErrs[0].Field()
		return http.StatusBadRequest, messageForField(field), field + " " + tagMessage(fieldErrs[0].Tag())

	case errors.Is(err, service.ErrUpdateConflict):
		return http.StatusBadRequest, shared.MsgConflict, conflictDescription(err)

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict, shared.MsgConflict, conflictDescription(err)

	case errors.Is(err, store.ErrUserNotFound):
		return http.StatusNotFound, shared.MsgUserNotFound, "User not found"

	case errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized, shared.MsgInvalidToken, "Token expired"

	case errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized, shared.MsgInvalidToken, "Invalid token"

	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, shared.MsgUnauthorized, "Invalid credentials"

	case errors.Is(err, service.ErrNotOwned):
		return http.StatusForbidden, shared.MsgForbidden, "You may only modify your own account"

	default:
		return http.StatusInternalServerError, shared.MsgInternalServerError, "Something went wrong"
	}
}

// respondError writes the failure envelope for err.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, message, description := envelopeForError(err)
	shared.RespondFailed(w, r, status, message, description, err)
}

func messageForField(field string) string {
	switch field {
	case "email", "Email":
		return shared.MsgEmailInvalid
	case "name", "Name":
		return shared.MsgNameInvalid
	case "password", "Password":
		return shared.MsgPasswordInvalid
	case "wallet_address", "WalletAddress":
		return shared.MsgWalletInvalid
	default:
		return shared.MsgBadRequest
	}
}

func conflictDescription(err error) string {
	if errors.Is(err, store.ErrWalletExists) {
		return "Wallet address already registered"
	}
	return "Email already registered"
}

// tagMessage maps validation tags to user-friendly error messages
func tagMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "max":
		return "is too long"
	default:
		return "is invalid"
	}
}
