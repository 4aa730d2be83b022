package http

import (
	"errors"
	"net/http"

	"github.com/lanternhq/lantern/internal/identity/domain"
	"github.com/lanternhq/lantern/internal/identity/service"
	"github.com/lanternhq/lantern/pkg/httpx"
	"github.com/lanternhq/lantern/pkg/identitysdk"
	"github.com/lanternhq/lantern/pkg/slogx"
)

type LoginHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Exchange email and password for a token pair. Logging in replaces any
//	@Description	existing refresh token for the account, so at most one session is live.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identitysdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	identitysdk.TokenResponse	"access_token, refresh_token, token_type, expires_in"
//	@Failure		400		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identitysdk.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	pair, err := h.SessionService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "Email or password is incorrect, or the account is not verified")
		default:
			log.Error("login failed", "err", err)
			writeError(w, http.StatusInternalServerError, "server_error", "Failed to log in")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
}

type RefreshHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Refresh Endpoint
//	@Description	Exchange a refresh token for a new access token. The refresh token is
//	@Description	not rotated; an expired one is removed and requires a new login.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identitysdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	identitysdk.TokenResponse	"access_token, refresh_token, token_type, expires_in"
//	@Failure		400		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identitysdk.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	pair, err := h.SessionService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRefreshTokenExpired):
			writeError(w, http.StatusUnauthorized, "refresh_token_expired", "Refresh token has expired. Log in again.")
		case errors.Is(err, service.ErrInvalidRefreshToken):
			writeError(w, http.StatusUnauthorized, "invalid_refresh_token", "Refresh token is unknown")
		default:
			log.Error("token refresh failed", "err", err)
			writeError(w, http.StatusInternalServerError, "server_error", "Failed to refresh token")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
}

type LogoutHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Logout Endpoint
//	@Description	Retire the session: the refresh token is deleted and the bearer access
//	@Description	token is revoked until its natural expiry. The access token must still
//	@Description	verify; garbage tokens are rejected rather than half-logged-out.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identitysdk.LogoutRequest	true	"Refresh token"
//	@Success		200		{object}	identitysdk.MessageResponse	"message"
//	@Failure		400		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accessToken, ok := httpx.BearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_access_token", "Bearer access token is required")
		return
	}

	var req identitysdk.LogoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.SessionService.Logout(ctx, req.RefreshToken, accessToken); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRefreshToken):
			writeError(w, http.StatusUnauthorized, "invalid_refresh_token", "Refresh token is unknown")
		case errors.Is(err, service.ErrInvalidAccessToken):
			writeError(w, http.StatusUnauthorized, "invalid_access_token", "Access token failed verification")
		default:
			log.Error("logout failed", "err", err)
			writeError(w, http.StatusInternalServerError, "server_error", "Failed to log out")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identitysdk.MessageResponse{Message: "Logged out."})
}

func toTokenResponse(pair domain.TokenPair) identitysdk.TokenResponse {
	return identitysdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    int(pair.ExpiresIn.Seconds()),
	}
}
