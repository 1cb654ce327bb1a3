package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"tacops/internal/logs"
	"tacops/internal/middleware"
	"tacops/internal/models"
	"tacops/internal/repo"
)

// Handler serves the asset-tracking API over the entity stores.
type Handler struct {
	squadrons *repo.SquadronStore
	acps      *repo.ACPStore
	missions  *repo.MissionStore
}

func New(squadrons *repo.SquadronStore, acps *repo.ACPStore, missions *repo.MissionStore) *Handler {
	return &Handler{squadrons: squadrons, acps: acps, missions: missions}
}

// pathID parses the id path variable. Anything that is not a plain
// non-negative integer is a client error before any query is issued.
func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// serverError logs the failure with the request id and returns the
// generic envelope; internals never reach the caller.
func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logs.Logger.Errorf("reqid=%s %s %s: %v", middleware.GetRequestID(r), r.Method, r.URL.Path, err)
	models.WriteError(w, http.StatusInternalServerError, "Internal server error")
}

// writeStoreError maps the store taxonomy onto HTTP statuses.
func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, err error, notFound, conflict string) {
	switch {
	case errors.Is(err, repo.ErrNotFound), errors.Is(err, repo.ErrBadReference):
		models.WriteError(w, http.StatusNotFound, notFound)
	case errors.Is(err, repo.ErrConflict):
		models.WriteError(w, http.StatusConflict, conflict)
	default:
		h.serverError(w, r, err)
	}
}
