package api

import "github.com/phrazzld/wallet-user-api/internal/domain"

// Request payloads. Validator tags check shape only; the domain validation
// utilities decide whether a value is acceptable.

// CreateUserRequest defines the payload for the registration endpoint.
type CreateUserRequest struct {
	Name          string `json:"name"           validate:"required,max=100"`
	Email         string `json:"email"          validate:"required,max=254"`
	WalletAddress string `json:"wallet_address" validate:"omitempty,max=128"`
	Password      string `json:"password"       validate:"omitempty,max=72"`
}

// LoginRequest defines the payload for the login endpoint.
// Either Password or WalletAddress must be supplied.
type LoginRequest struct {
	Email         string `json:"email"          validate:"required,max=254"`
	Password      string `json:"password"       validate:"omitempty,max=72"`
	WalletAddress string `json:"wallet_address" validate:"omitempty,max=128"`
}

// UpdateUserRequest defines the payload for the update endpoint.
// Omitted fields are left unchanged.
type UpdateUserRequest struct {
	Name          *string `json:"name"           validate:"omitempty,max=100"`
	Email         *string `json:"email"          validate:"omitempty,max=254"`
	WalletAddress *string `json:"wallet_address" validate:"omitempty,max=128"`
}

// ForgotPasswordRequest defines the payload for the forgot-password endpoint.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,max=254"`
}

// ResetPasswordRequest defines the payload for the reset-password endpoint.
type ResetPasswordRequest struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// EmailResponse is the data returned by the forgot-password endpoint.
type EmailResponse struct {
	Email string `json:"email"`
}

// UserResponse is the documented shape of a single user in responses.
type UserResponse = domain.PublicUser

// EnvelopeResponse documents the response wrapper for swagger.
type EnvelopeResponse struct {
	Status      string      `json:"status"      example:"success"`
	Message     string      `json:"message"     example:"SUCCESS"`
	Description string      `json:"description" example:"User retrieved"`
	Data        interface{} `json:"data"`
	Token       string      `json:"token,omitempty"`
}
