package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/lanternhq/lantern/internal/identity/service"
	"github.com/lanternhq/lantern/pkg/httpx"
	"github.com/lanternhq/lantern/pkg/identitysdk"
	"github.com/lanternhq/lantern/pkg/slogx"
)

type AdminHandler struct {
	ProfileService *service.ProfileService
	AuditService   *service.AuditService
}

// HandleListAccounts godoc
//
//	@Summary		List Accounts Endpoint
//	@Description	Return every account, newest first. Admin only.
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	identitysdk.AccountListResponse	"accounts"
//	@Failure		401	{object}	identitysdk.ErrorResponse		"error, error_description"
//	@Failure		403	{object}	identitysdk.ErrorResponse		"error, error_description"
//	@Failure		500	{object}	identitysdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/admin/accounts [get].
func (h *AdminHandler) HandleListAccounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	accounts, err := h.ProfileService.ListAccounts(ctx)
	if err != nil {
		log.Error("account listing failed", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "Failed to list accounts")
		return
	}

	out := identitysdk.AccountListResponse{
		Accounts: make([]identitysdk.AccountResponse, 0, len(accounts)),
	}
	for _, a := range accounts {
		out.Accounts = append(out.Accounts, toAccountResponse(a))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdateProfile godoc
//
//	@Summary		Admin Profile Update Endpoint
//	@Description	Update any account's profile, bypassing the monthly cooldown. The acting
//	@Description	admin is recorded in the audit trail.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			email	path		string								true	"Target account email"
//	@Param			request	body		identitysdk.ProfileUpdateRequest	true	"New profile values"
//	@Success		200		{object}	identitysdk.AccountResponse			"account"
//	@Failure		400		{object}	identitysdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	identitysdk.ErrorResponse			"error, error_description"
//	@Failure		403		{object}	identitysdk.ErrorResponse			"error, error_description"
//	@Failure		404		{object}	identitysdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	identitysdk.ErrorResponse			"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/admin/accounts/{email}/profile [put].
func (h *AdminHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	targetEmail := r.PathValue("email")
	if targetEmail == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "email path parameter is required")
		return
	}

	var req identitysdk.ProfileUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	account, err := h.ProfileService.UpdateByAdmin(ctx, httpx.SubjectFromContext(ctx), targetEmail, service.ProfileUpdateParams{
		Name:   req.Name,
		Phone:  req.Phone,
		Gender: req.Gender,
		Height: req.Height,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountNotFound):
			writeError(w, http.StatusNotFound, "account_not_found", "No account with this email")
		default:
			log.Error("admin profile update failed", "err", err)
			writeError(w, http.StatusInternalServerError, "server_error", "Failed to update profile")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAccountResponse(account))
}

// HandleAuditTrail godoc
//
//	@Summary		Audit Trail Endpoint
//	@Description	Return the newest audit entries for one account email. Admin only.
//	@Tags			Admin
//	@Produce		json
//	@Param			email	query		string							true	"Account email"
//	@Param			limit	query		int								false	"Maximum entries to return (default 100)"
//	@Success		200		{object}	identitysdk.AuditListResponse	"entries"
//	@Failure		400		{object}	identitysdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	identitysdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	identitysdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	identitysdk.ErrorResponse		"error, error_description"
//	@Security		BearerAuth
//	@Router			/v1/admin/audit [get].
func (h *AdminHandler) HandleAuditTrail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	email := r.URL.Query().Get("email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "email query parameter is required")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid_request", "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := h.AuditService.ListByEmail(ctx, email, limit)
	if err != nil {
		log.Error("audit listing failed", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "Failed to list audit entries")
		return
	}

	out := identitysdk.AuditListResponse{
		Entries: make([]identitysdk.AuditEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		out.Entries = append(out.Entries, identitysdk.AuditEntryResponse{
			ID:        e.ID,
			Email:     e.Email,
			Action:    string(e.Action),
			Detail:    e.Detail,
			CreatedAt: e.CreatedAt,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}
