package httpapi

import (
	"net/http"

	"github.com/eulark/eulark/internal/common"
)

type contactRequest struct {
	Message string `json:"message"`
}

func (a *api) submitContact(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		a.writeError(w, r, common.ErrUnauthenticated)
		return
	}

	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	if _, err := a.Players.SubmitContact(r.Context(), id, req.Message); err != nil {
		a.writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "ticket submitted")
}

func (a *api) checkPermission(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		a.writeError(w, r, common.ErrUnauthenticated)
		return
	}

	res, err := a.Players.CheckPermission(r.Context(), id.UserID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
