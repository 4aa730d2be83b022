package http

import (
	"errors"
	"net/http"

	"github.com/lanternhq/lantern/internal/identity/service"
	"github.com/lanternhq/lantern/pkg/httpx"
	"github.com/lanternhq/lantern/pkg/identitysdk"
	"github.com/lanternhq/lantern/pkg/slogx"
)

type RegisterHandler struct {
	RegistrationService *service.RegistrationService
}

// ServeHTTP godoc
//
//	@Summary		Register Account Endpoint
//	@Description	Create a new account. The account starts disabled and a verification
//	@Description	email with a time-limited token is dispatched to the given address.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identitysdk.RegisterRequest		true	"Registration details"
//	@Success		201		{object}	identitysdk.MessageResponse		"message"
//	@Failure		400		{object}	identitysdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	identitysdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	identitysdk.ErrorResponse		"error, error_description"
//	@Router			/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identitysdk.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	dob, err := identitysdk.ParseDateOfBirth(req.DateOfBirth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "date_of_birth must be YYYY-MM-DD")
		return
	}

	err = h.RegistrationService.Register(ctx, service.RegisterParams{
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.Name,
		Gender:      req.Gender,
		Phone:       req.Phone,
		DateOfBirth: dob,
		Height:      req.Height,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateAccount):
			writeError(w, http.StatusConflict, "duplicate_account", "An account with this email already exists")
		default:
			log.Error("registration failed", "err", err)
			writeError(w, http.StatusInternalServerError, "server_error", "Failed to register account")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, identitysdk.MessageResponse{
		Message: "Account created. Check your email to verify the address.",
	})
}

type VerifyHandler struct {
	RegistrationService *service.RegistrationService
}

// ServeHTTP godoc
//
//	@Summary		Verify Email Endpoint
//	@Description	Consume a verification token from the emailed link and enable the account.
//	@Description	Tokens are single use and expire 15 minutes after being sent.
//	@Tags			Auth
//	@Produce		json
//	@Param			token	query		string						true	"Verification token from the email"
//	@Success		200		{object}	identitysdk.MessageResponse	"message"
//	@Failure		400		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/verify [get].
func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "token is required")
		return
	}

	if err := h.RegistrationService.VerifyEmail(ctx, token); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrExpiredToken):
			writeError(w, http.StatusBadRequest, "invalid_token", "Verification token is invalid or expired")
		default:
			log.Error("email verification failed", "err", err)
			writeError(w, http.StatusInternalServerError, "server_error", "Failed to verify email")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identitysdk.MessageResponse{
		Message: "Email verified. You can now log in.",
	})
}

type ResendHandler struct {
	RegistrationService *service.RegistrationService
}

// ServeHTTP godoc
//
//	@Summary		Resend Verification Endpoint
//	@Description	Send a fresh verification email for an unverified account. Throttled to
//	@Description	one send per five minutes per account.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identitysdk.ResendRequest	true	"Account email"
//	@Success		200		{object}	identitysdk.MessageResponse	"message"
//	@Failure		400		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Failure		429		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/resend [post].
func (h *ResendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identitysdk.ResendRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.RegistrationService.ResendVerification(ctx, req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			writeError(w, http.StatusNotFound, "account_not_found", "No account with this email")
		case errors.Is(err, service.ErrAlreadyVerified):
			writeError(w, http.StatusBadRequest, "already_verified", "Account is already verified")
		case errors.Is(err, service.ErrResendTooSoon):
			writeError(w, http.StatusTooManyRequests, "resend_too_soon", "A verification email was sent recently. Try again later.")
		default:
			log.Error("resend verification failed", "err", err)
			writeError(w, http.StatusInternalServerError, "server_error", "Failed to resend verification email")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identitysdk.MessageResponse{
		Message: "Verification email sent.",
	})
}
