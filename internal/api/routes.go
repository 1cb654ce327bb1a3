package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the asset-tracking API under /api. Detail
// routes take any {id} and validate it in the handler so a malformed id
// is a 400, not a router-level 404.
func RegisterRoutes(r *mux.Router, h *Handler) {
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/squadrons", h.ListSquadrons).Methods(http.MethodGet)
	api.HandleFunc("/squadrons", h.CreateSquadron).Methods(http.MethodPost)
	api.HandleFunc("/squadrons/{id}", h.GetSquadron).Methods(http.MethodGet)
	api.HandleFunc("/squadrons/{id}", h.DeleteSquadron).Methods(http.MethodDelete)

	api.HandleFunc("/acps", h.ListACPs).Methods(http.MethodGet)
	api.HandleFunc("/acps", h.CreateACP).Methods(http.MethodPost)
	api.HandleFunc("/acps/{id}", h.GetACP).Methods(http.MethodGet)
	api.HandleFunc("/acps/{id}", h.DeleteACP).Methods(http.MethodDelete)

	api.HandleFunc("/missions", h.ListMissions).Methods(http.MethodGet)
	api.HandleFunc("/missions", h.CreateMission).Methods(http.MethodPost)
	api.HandleFunc("/missions/{id}", h.GetMission).Methods(http.MethodGet)
	api.HandleFunc("/missions/{id}", h.DeleteMission).Methods(http.MethodDelete)
}
