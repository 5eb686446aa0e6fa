package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/wallet-user-api/internal/api/shared"
	"github.com/phrazzld/wallet-user-api/internal/platform/logger"
	"github.com/phrazzld/wallet-user-api/internal/service"
	"github.com/phrazzld/wallet-user-api/internal/store"
)

// UserHandler serves the /api/v1/user endpoints.
type UserHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler with the provided dependencies.
func NewUserHandler(users service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		users:  users,
		logger: logger.With("component", "user_handler"),
	}
}

// RegisterRoutes mounts the user endpoints on r. Private routes are wrapped
// with authenticate.
func (h *UserHandler) RegisterRoutes(r chi.Router, authenticate func(http.Handler) http.Handler) {
	r.Route("/api/v1/user", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Post("/login", h.Login)
		r.Post("/forgot-password", h.ForgotPassword)
		r.Post("/reset-password", h.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/logout", h.Logout)
			r.Get("/", h.List)
			r.Get("/wallet/{walletAddress}", h.GetByWalletAddress)
			r.Get("/{id}", h.Get)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// Create registers a new user.
//
//	@Summary	Register a user
//	@Tags		user
//	@Accept		json
//	@Produce	json
//	@Param		body	body		CreateUserRequest	true	"New user"
//	@Success	200		{object}	EnvelopeResponse{data=UserResponse}
//	@Failure	400		{object}	EnvelopeResponse
//	@Failure	409		{object}	EnvelopeResponse
//	@Router		/api/v1/user [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	res, err := h.users.Create(r.Context(), service.CreateUserInput{
		Name:          req.Name,
		Email:         req.Email,
		WalletAddress: req.WalletAddress,
		Password:      req.Password,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, shared.MsgCreated, "User created", res.User, res.Token)
}

// Login authenticates a user by password or wallet address.
//
//	@Summary	Log in
//	@Tags		user
//	@Accept		json
//	@Produce	json
//	@Param		body	body		LoginRequest	true	"Credentials"
//	@Success	200		{object}	EnvelopeResponse{data=UserResponse}
//	@Failure	400		{object}	EnvelopeResponse
//	@Failure	401		{object}	EnvelopeResponse
//	@Failure	404		{object}	EnvelopeResponse
//	@Router		/api/v1/user/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	res, err := h.users.Login(r.Context(), service.LoginInput{
		Email:         req.Email,
		Password:      req.Password,
		WalletAddress: req.WalletAddress,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	shared.RespondSuccess(w, r, http.StatusOK, shared.MsgSuccess, "Logged in", res.User, res.Token)
}

// Logout ends a session. Tokens are stateless, so nothing is revoked server side.
//
//	@Summary	Log out
//	@Tags		user
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	EnvelopeResponse
//	@Failure	401	{object}	EnvelopeResponse
//	@Router		/api/v1/user/logout [post]
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if claims, ok := shared.GetClaims(r.Context()); ok {
		logger.FromContextOrDefault(r.Context(), h.logger).Info("user logged out",
			slog.String("user_id", claims.UserID.String()))
	}
	shared.RespondSuccess(w, r, http.StatusOK, shared.MsgSuccess, "Logged out", nil, "")
}

// List returns every user.
//
//	@Summary	List users
//	@Tags		user
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	EnvelopeResponse{data=[]UserResponse}
//	@Failure	401	{object}	EnvelopeResponse
//	@Router		/api/v1/user [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, shared.MsgSuccess, "Users retrieved", users, "")
}

// Get returns one user.
//
//	@Summary	Get a user
//	@Tags		user
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	EnvelopeResponse{data=UserResponse}
//	@Failure	404	{object}	EnvelopeResponse
//	@Router		/api/v1/user/{id} [get]
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUserID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, shared.MsgSuccess, "User retrieved", user, "")
}

// GetByWalletAddress returns the owner of a wallet address with a token for them.
//
//	@Summary	Get a user by wallet address
//	@Tags		user
//	@Produce	json
//	@Security	BearerAuth
//	@Param		walletAddress	path		string	true	"Wallet address"
//	@Success	200				{object}	EnvelopeResponse{data=UserResponse}
//	@Failure	404				{object}	EnvelopeResponse
//	@Router		/api/v1/user/wallet/{walletAddress} [get]
func (h *UserHandler) GetByWalletAddress(w http.ResponseWriter, r *http.Request) {
	wallet, ok := getPathParam(r, "walletAddress")
	if !ok {
		respondError(w, r, store.ErrUserNotFound)
		return
	}

	res, err := h.users.GetByWalletAddress(r.Context(), wallet)
	if err != nil {
		respondError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, shared.MsgSuccess, "User retrieved", res.User, res.Token)
}

// Update applies a partial update to a user.
//
//	@Summary	Update a user
//	@Tags		user
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"User ID"
//	@Param		body	body		UpdateUserRequest	true	"Fields to change"
//	@Success	200		{object}	EnvelopeResponse{data=UserResponse}
//	@Failure	400		{object}	EnvelopeResponse
//	@Failure	403		{object}	EnvelopeResponse
//	@Failure	404		{object}	EnvelopeResponse
//	@Router		/api/v1/user/{id} [put]
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUserID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := authorizeTarget(r, id); err != nil {
		respondError(w, r, err)
		return
	}

	var req UpdateUserRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.users.Update(r.Context(), id, service.UpdateUserInput{
		Name:          req.Name,
		Email:         req.Email,
		WalletAddress: req.WalletAddress,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, shared.MsgSuccess, "User updated", user, "")
}

// Delete removes a user.
//
//	@Summary	Delete a user
//	@Tags		user
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	EnvelopeResponse
//	@Failure	403	{object}	EnvelopeResponse
//	@Failure	404	{object}	EnvelopeResponse
//	@Router		/api/v1/user/{id} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUserID(r)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := authorizeTarget(r, id); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.users.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, shared.MsgSuccess, "User deleted", nil, "")
}

// ForgotPassword mails a reset token to the account owner.
//
//	@Summary	Request a password reset
//	@Tags		user
//	@Accept		json
//	@Produce	json
//	@Param		body	body		ForgotPasswordRequest	true	"Account email"
//	@Success	200		{object}	EnvelopeResponse{data=EmailResponse}
//	@Failure	400		{object}	EnvelopeResponse
//	@Failure	404		{object}	EnvelopeResponse
//	@Router		/api/v1/user/forgot-password [post]
func (h *UserHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.users.ForgotPassword(r.Context(), req.Email); err != nil {
		respondError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, shared.MsgSuccess,
		"Password reset instructions sent", EmailResponse{Email: req.Email}, "")
}

// ResetPassword sets a new password using a reset token.
//
//	@Summary	Reset a password
//	@Tags		user
//	@Accept		json
//	@Produce	json
//	@Param		body	body		ResetPasswordRequest	true	"Reset token and new password"
//	@Success	200		{object}	EnvelopeResponse
//	@Failure	400		{object}	EnvelopeResponse
//	@Failure	401		{object}	EnvelopeResponse
//	@Failure	404		{object}	EnvelopeResponse
//	@Router		/api/v1/user/reset-password [post]
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.users.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		respondError(w, r, err)
		return
	}
	shared.RespondSuccess(w, r, http.StatusOK, shared.MsgSuccess, "Password updated", nil, "")
}

// NotFound answers unknown routes with a failure envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondFailed(w, r, http.StatusNotFound, shared.MsgNotFound, "Route not found", nil)
}

// MethodNotAllowed answers known routes called with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondFailed(w, r, http.StatusMethodNotAllowed,
		shared.MsgMethodNotAllowed, "Method not allowed", nil)
}

// Health reports liveness.
//
//	@Summary	Liveness probe
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	EnvelopeResponse
//	@Router		/health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondSuccess(w, r, http.StatusOK, shared.MsgSuccess, "OK", nil, "")
}
