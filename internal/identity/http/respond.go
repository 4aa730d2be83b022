// Package http exposes the identity service over a versioned JSON API.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/lanternhq/lantern/internal/identity/domain"
	"github.com/lanternhq/lantern/pkg/httpx"
	"github.com/lanternhq/lantern/pkg/identitysdk"
)

// decodeJSON reads a JSON request body into dst, rejecting bodies over 1 MiB
// and trailing garbage.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Malformed JSON body")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, code int, err, description string) {
	httpx.WriteJSON(w, code, identitysdk.ErrorResponse{
		Error:            err,
		ErrorDescription: description,
	})
}

func toAccountResponse(a domain.Account) identitysdk.AccountResponse {
	return identitysdk.AccountResponse{
		ID:                a.ID,
		Email:             a.Email,
		Name:              a.Name,
		Enabled:           a.Enabled,
		Roles:             a.Roles,
		Gender:            a.Gender,
		Phone:             a.Phone,
		DateOfBirth:       identitysdk.FormatDateOfBirth(a.DateOfBirth),
		Height:            a.Height,
		LastProfileUpdate: a.LastProfileUpdate,
		CreatedAt:         a.CreatedAt,
	}
}
