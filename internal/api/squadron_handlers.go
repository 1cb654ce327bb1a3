package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"tacops/internal/models"
	"tacops/internal/query"
	"tacops/internal/repo"
)

// GET /api/squadrons
func (h *Handler) ListSquadrons(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := repo.ListSquadronsInput{
		Search: q.Get("search"),
		Page:   query.ParsePage(q.Get("page"), q.Get("limit")),
	}
	rows, total, err := h.squadrons.List(r.Context(), in)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	models.WriteList(w, rows, in.Page.Meta(total))
}

// GET /api/squadrons/{id}
func (h *Handler) GetSquadron(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "invalid squadron id")
		return
	}
	sq, err := h.squadrons.GetByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, err, "No squadron found", "")
		return
	}
	models.WriteData(w, http.StatusOK, sq)
}

// POST /api/squadrons
func (h *Handler) CreateSquadron(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code        string `json:"code"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(body.Code) == "" || strings.TrimSpace(body.Name) == "" {
		models.WriteError(w, http.StatusBadRequest, "code and name are required")
		return
	}
	sq := models.Squadron{Code: body.Code, Name: body.Name, Description: body.Description}
	if err := h.squadrons.Create(r.Context(), &sq); err != nil {
		h.writeStoreError(w, r, err, "", "squadron code already exists")
		return
	}
	models.WriteData(w, http.StatusCreated, sq)
}

// DELETE /api/squadrons/{id}. Restricted while ACPs reference it.
func (h *Handler) DeleteSquadron(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "invalid squadron id")
		return
	}
	if err := h.squadrons.Delete(r.Context(), id); err != nil {
		h.writeStoreError(w, r, err, "No squadron found", "squadron still has assigned ACPs")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
