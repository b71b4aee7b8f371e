package gateway

import (
	"net/http"
	"strconv"

	"github.com/openrally/courtside/go/internal/live"
	"github.com/openrally/courtside/go/internal/models"
)

// MutationHandler serves the optimistic-concurrency mutation surface.
// Every endpoint takes the caller's believed entity versions and returns
// either the commit's event envelope or a structured conflict.
type MutationHandler struct {
	store *live.Store
}

// NewMutationHandler creates a new mutation handler
func NewMutationHandler(store *live.Store) *MutationHandler {
	return &MutationHandler{store: store}
}

// HandleReorderQueue handles POST /api/tournaments/{id}/queue/reorder.
// The batch applies atomically: one stale version anywhere rejects the
// whole request and no item moves.
func (h *MutationHandler) HandleReorderQueue(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var items []live.ReorderItem
	if !decodeBody(w, r, &items) {
		return
	}

	ev, err := h.store.ReorderQueue(r.Context(), tournamentID, items)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// HandleQueueAction handles PUT /api/tournaments/{id}/queue/action
func (h *MutationHandler) HandleQueueAction(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req live.QueueActionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ev, err := h.store.ApplyQueueAction(r.Context(), tournamentID, req)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

type scoreRequest struct {
	Game    models.Game `json:"game"`
	Version int64       `json:"version"`
}

// HandleRecordScore handles PUT /api/tournaments/{id}/matches/{match_id}/score
func (h *MutationHandler) HandleRecordScore(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	matchID, ok := pathUUID(w, r, "match_id")
	if !ok {
		return
	}
	var req scoreRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ev, err := h.store.RecordScore(r.Context(), tournamentID, matchID, req.Game, req.Version)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

type versionRequest struct {
	Version int64 `json:"version"`
}

// HandleCancelMatch handles PUT /api/tournaments/{id}/matches/{match_id}/cancel
func (h *MutationHandler) HandleCancelMatch(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	matchID, ok := pathUUID(w, r, "match_id")
	if !ok {
		return
	}
	var req versionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ev, err := h.store.CancelMatch(r.Context(), tournamentID, matchID, req.Version)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// HandleCreateMatch handles POST /api/tournaments/{id}/matches
func (h *MutationHandler) HandleCreateMatch(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req live.CreateMatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ev, err := h.store.CreateMatch(r.Context(), tournamentID, req)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

// HandleAddCourt handles POST /api/tournaments/{id}/courts
func (h *MutationHandler) HandleAddCourt(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req live.CreateCourtRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ev, err := h.store.AddCourt(r.Context(), tournamentID, req)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

// HandleClearCourt handles PUT /api/tournaments/{id}/courts/{court_id}/clear
func (h *MutationHandler) HandleClearCourt(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	courtID, ok := pathUUID(w, r, "court_id")
	if !ok {
		return
	}
	var req versionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ev, err := h.store.ClearCourt(r.Context(), tournamentID, courtID, req.Version)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// HandleUpsertTeam handles PUT /api/tournaments/{id}/teams
func (h *MutationHandler) HandleUpsertTeam(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req live.UpsertTeamRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ev, err := h.store.UpsertTeam(r.Context(), tournamentID, req)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// HandleDeleteTeam handles DELETE /api/tournaments/{id}/teams/{team_id}
func (h *MutationHandler) HandleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	teamID, ok := pathUUID(w, r, "team_id")
	if !ok {
		return
	}

	ev, err := h.store.DeleteTeam(r.Context(), tournamentID, teamID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// HandleRaiseAlert handles POST /api/tournaments/{id}/alerts
func (h *MutationHandler) HandleRaiseAlert(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req live.RaiseAlertRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ev, err := h.store.RaiseAlert(r.Context(), tournamentID, req)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

// HandleDismissAlert handles DELETE /api/tournaments/{id}/alerts/{alert_id}?version=N
func (h *MutationHandler) HandleDismissAlert(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	alertID, ok := pathUUID(w, r, "alert_id")
	if !ok {
		return
	}
	version, err := strconv.ParseInt(r.URL.Query().Get("version"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    "bad_request",
			Message: "version query parameter is required",
		})
		return
	}

	ev, err := h.store.DismissAlert(r.Context(), tournamentID, alertID, version)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

// RegisterMutationRoutes registers the mutation HTTP routes
func (h *MutationHandler) RegisterMutationRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/tournaments/{id}/queue/reorder", h.HandleReorderQueue)
	mux.HandleFunc("PUT /api/tournaments/{id}/queue/action", h.HandleQueueAction)
	mux.HandleFunc("POST /api/tournaments/{id}/matches", h.HandleCreateMatch)
	mux.HandleFunc("PUT /api/tournaments/{id}/matches/{match_id}/score", h.HandleRecordScore)
	mux.HandleFunc("PUT /api/tournaments/{id}/matches/{match_id}/cancel", h.HandleCancelMatch)
	mux.HandleFunc("POST /api/tournaments/{id}/courts", h.HandleAddCourt)
	mux.HandleFunc("PUT /api/tournaments/{id}/courts/{court_id}/clear", h.HandleClearCourt)
	mux.HandleFunc("PUT /api/tournaments/{id}/teams", h.HandleUpsertTeam)
	mux.HandleFunc("DELETE /api/tournaments/{id}/teams/{team_id}", h.HandleDeleteTeam)
	mux.HandleFunc("POST /api/tournaments/{id}/alerts", h.HandleRaiseAlert)
	mux.HandleFunc("DELETE /api/tournaments/{id}/alerts/{alert_id}", h.HandleDismissAlert)
}
