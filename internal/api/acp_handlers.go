package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"tacops/internal/models"
	"tacops/internal/query"
	"tacops/internal/repo"
)

// GET /api/acps
func (h *Handler) ListACPs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters, err := query.ParseFilters(q.Get("filters"))
	if err != nil {
		models.WriteError(w, http.StatusBadRequest, "malformed filters parameter")
		return
	}
	in := repo.ListACPsInput{
		Search:   q.Get("search"),
		Squadron: q.Get("squadron"),
		Filters:  filters,
		Page:     query.ParsePage(q.Get("page"), q.Get("limit")),
	}
	rows, total, err := h.acps.List(r.Context(), in)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	models.WriteList(w, rows, in.Page.Meta(total))
}

// GET /api/acps/{id}
func (h *Handler) GetACP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "invalid ACP id")
		return
	}
	a, err := h.acps.GetByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, err, "No ACP found", "")
		return
	}
	models.WriteData(w, http.StatusOK, a)
}

// POST /api/acps
func (h *Handler) CreateACP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SquadronID   uint           `json:"squadronId"`
		Name         string         `json:"name"`
		Type         models.ACPType `json:"type"`
		SerialNumber string         `json:"serialNumber"`
		Description  string         `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(body.Name) == "" {
		models.WriteError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !body.Type.Valid() {
		models.WriteError(w, http.StatusBadRequest, "invalid ACP type")
		return
	}
	if !models.SerialNumberPattern.MatchString(body.SerialNumber) {
		models.WriteError(w, http.StatusBadRequest, "serialNumber must match ^[A-Z0-9-]+$")
		return
	}
	if body.SquadronID == 0 {
		models.WriteError(w, http.StatusBadRequest, "squadronId is required")
		return
	}
	a, err := h.acps.Create(r.Context(), repo.CreateACPInput{
		SquadronID:   body.SquadronID,
		Name:         body.Name,
		Type:         body.Type,
		SerialNumber: body.SerialNumber,
		Description:  body.Description,
	})
	if err != nil {
		h.writeStoreError(w, r, err, "squadron not found", "serialNumber already exists")
		return
	}
	models.WriteData(w, http.StatusCreated, a)
}

// DELETE /api/acps/{id}. Missions cascade away with the ACP.
func (h *Handler) DeleteACP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "invalid ACP id")
		return
	}
	if err := h.acps.Delete(r.Context(), id); err != nil {
		h.writeStoreError(w, r, err, "No ACP found", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
