package http

import (
	"errors"
	"net/http"

	"github.com/lanternhq/lantern/internal/identity/service"
	"github.com/lanternhq/lantern/pkg/httpx"
	"github.com/lanternhq/lantern/pkg/identitysdk"
	"github.com/lanternhq/lantern/pkg/slogx"
)

type ProfileHandler struct {
	ProfileService *service.ProfileService
}

// HandleGet godoc
//
//	@Summary		Get Profile Endpoint
//	@Description	Return the authenticated account's profile.
//	@Tags			Profile
//	@Produce		json
//	@Success		200	{object}	identitysdk.AccountResponse	"account"
//	@Failure		401	{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	identitysdk.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/profile [get].
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	account, err := h.ProfileService.Get(ctx, httpx.SubjectFromContext(ctx))
	if err != nil {
		log.Error("profile lookup failed", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "Failed to load profile")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(account))
}

// HandlePut godoc
//
//	@Summary		Update Profile Endpoint
//	@Description	Update the authenticated account's profile fields. Allowed at most once
//	@Description	per calendar month; admins can edit any profile without the cooldown via
//	@Description	the admin endpoint.
//	@Tags			Profile
//	@Accept			json
//	@Produce		json
//	@Param			request	body		identitysdk.ProfileUpdateRequest	true	"New profile values"
//	@Success		200		{object}	identitysdk.AccountResponse			"account"
//	@Failure		400		{object}	identitysdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	identitysdk.ErrorResponse			"error, error_description"
//	@Failure		429		{object}	identitysdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	identitysdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/profile [put].
func (h *ProfileHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req identitysdk.ProfileUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	account, err := h.ProfileService.UpdateSelf(ctx, httpx.SubjectFromContext(ctx), service.ProfileUpdateParams{
		Name:   req.Name,
		Phone:  req.Phone,
		Gender: req.Gender,
		Height: req.Height,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileUpdateTooSoon):
			writeError(w, http.StatusTooManyRequests, "profile_update_too_soon", "Profile can only be updated once per month")
		default:
			log.Error("profile update failed", "err", err)
			writeError(w, http.StatusInternalServerError, "server_error", "Failed to update profile")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(account))
}
