package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"tacops/internal/middleware"
	"tacops/internal/models"
	"tacops/internal/query"
	"tacops/internal/repo"
)

// GET /api/missions
func (h *Handler) ListMissions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters, err := query.ParseFilters(q.Get("filters"))
	if err != nil {
		models.WriteError(w, http.StatusBadRequest, "malformed filters parameter")
		return
	}
	in := repo.ListMissionsInput{
		Search:     q.Get("search"),
		Commander:  q.Get("commander"),
		OperatorID: q.Get("operatorId"),
		Filters:    filters,
		Page:       query.ParsePage(q.Get("page"), q.Get("limit")),
	}
	rows, total, err := h.missions.List(r.Context(), in)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	models.WriteList(w, rows, in.Page.Meta(total))
}

// GET /api/missions/{id}
func (h *Handler) GetMission(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "invalid mission id")
		return
	}
	m, err := h.missions.GetByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, err, "No mission found", "")
		return
	}
	models.WriteData(w, http.StatusOK, m)
}

// POST /api/missions. The auth code is generated server-side, and an
// optional operatorId creates the assignment in the same unit of work.
func (h *Handler) CreateMission(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ACPID          uint                  `json:"acpId"`
		CommanderID    string                `json:"commanderId"`
		Name           string                `json:"name"`
		Description    string                `json:"description"`
		Status         models.MissionStatus  `json:"status"`
		MissionWindows models.MissionWindows `json:"missionWindows"`
		OperatorID     string                `json:"operatorId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		models.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.CommanderID == "" {
		// the authenticated caller commands by default
		body.CommanderID = middleware.GetIdentity(r).UserID
	}
	if strings.TrimSpace(body.Name) == "" {
		models.WriteError(w, http.StatusBadRequest, "name is required")
		return
	}
	if body.ACPID == 0 {
		models.WriteError(w, http.StatusBadRequest, "acpId is required")
		return
	}
	if body.CommanderID == "" {
		models.WriteError(w, http.StatusBadRequest, "commanderId is required")
		return
	}
	if body.Status != "" && !body.Status.Valid() {
		models.WriteError(w, http.StatusBadRequest, "invalid mission status")
		return
	}
	m, err := h.missions.Create(r.Context(), repo.CreateMissionInput{
		ACPID:       body.ACPID,
		CommanderID: body.CommanderID,
		Name:        body.Name,
		Description: body.Description,
		Status:      body.Status,
		Windows:     body.MissionWindows,
		OperatorID:  body.OperatorID,
	})
	if err != nil {
		h.writeStoreError(w, r, err,
			"referenced ACP, commander or operator not found",
			"operator already assigned to this mission")
		return
	}
	models.WriteData(w, http.StatusCreated, map[string]any{"id": m.ID})
}

// DELETE /api/missions/{id}. Assignments cascade away with it.
func (h *Handler) DeleteMission(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		models.WriteError(w, http.StatusBadRequest, "invalid mission id")
		return
	}
	if err := h.missions.Delete(r.Context(), id); err != nil {
		h.writeStoreError(w, r, err, "No mission found", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
