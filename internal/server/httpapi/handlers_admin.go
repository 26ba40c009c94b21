package httpapi

import (
	"context"
	"net/http"
)

type grantPermissionRequest struct {
	PlayerID int64 `json:"player_id"`
}

type logoUploadRequest struct {
	FileName string `json:"file_name"`
}

func createHandler[T any](a *api, create func(ctx context.Context, v *T) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var v T
		if err := decodeJSON(w, r, &v); err != nil {
			a.writeError(w, r, err)
			return
		}

		out, err := create(r.Context(), &v)
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, out)
	}
}

// updateHandler takes the id from the path; an id in the body is ignored.
func updateHandler[T any](a *api, update func(ctx context.Context, v *T) error, setID func(v *T, id int64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		var v T
		if err := decodeJSON(w, r, &v); err != nil {
			a.writeError(w, r, err)
			return
		}
		setID(&v, id)

		if err := update(r.Context(), &v); err != nil {
			a.writeError(w, r, err)
			return
		}

		writeMessage(w, http.StatusOK, "updated")
	}
}

func deleteHandler(a *api, del func(ctx context.Context, id int64) error, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		if err := del(r.Context(), id); err != nil {
			a.writeError(w, r, err)
			return
		}

		writeMessage(w, http.StatusOK, msg)
	}
}

func (a *api) grantPermission(w http.ResponseWriter, r *http.Request) {
	var req grantPermissionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	if err := a.Admin.GrantPermission(r.Context(), req.PlayerID); err != nil {
		a.writeError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "permission granted")
}

func (a *api) setOwnerStatus(status, msg string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := a.Admin.SetOwnerStatus(r.Context(), status); err != nil {
			a.writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, msg)
	}
}

func (a *api) logoUploadURL(w http.ResponseWriter, r *http.Request) {
	var req logoUploadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		a.writeError(w, r, err)
		return
	}

	up, err := a.Logos.PresignLogoUpload(r.Context(), req.FileName)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, up)
}
