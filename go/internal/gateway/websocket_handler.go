package gateway

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/openrally/courtside/go/internal/events"
	"github.com/openrally/courtside/go/internal/models"
	"github.com/rs/zerolog/log"
)

// SnapshotProvider hands out the current snapshot of a tournament. The
// live store satisfies this.
type SnapshotProvider interface {
	Get(tournamentID uuid.UUID) (*models.Snapshot, error)
}

// WebSocketHandler handles WebSocket upgrade requests for tournament connections
type WebSocketHandler struct {
	connectionManager *ConnectionManager
	snapshots         SnapshotProvider
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(cm *ConnectionManager, snapshots SnapshotProvider) *WebSocketHandler {
	return &WebSocketHandler{
		connectionManager: cm,
		snapshots:         snapshots,
	}
}

// HandleTournamentConnection handles WebSocket connections for a tournament.
// The connection is registered before the initial snapshot is queued, so a
// commit racing the connect is either inside the snapshot or arrives as a
// later frame; the client's merger discards the overlap.
func (h *WebSocketHandler) HandleTournamentConnection(w http.ResponseWriter, r *http.Request) {
	tournamentIDStr := r.URL.Query().Get("tournament_id")
	if tournamentIDStr == "" {
		http.Error(w, "tournament_id is required", http.StatusBadRequest)
		return
	}

	tournamentID, err := uuid.Parse(tournamentIDStr)
	if err != nil {
		http.Error(w, "invalid tournament_id format", http.StatusBadRequest)
		return
	}

	snap, err := h.snapshots.Get(tournamentID)
	if err != nil {
		http.Error(w, "unknown tournament", http.StatusNotFound)
		return
	}

	conn, err := h.connectionManager.UpgradeConnection(w, r, tournamentID)
	if err != nil {
		log.Error().
			Err(err).
			Str("tournament_id", tournamentID.String()).
			Msg("failed to upgrade WebSocket connection")
		return
	}

	if err := conn.SendFrame(events.SnapshotFrame(snap)); err != nil {
		log.Error().
			Err(err).
			Str("connection_id", conn.ID).
			Msg("failed to queue initial snapshot")
	}
}

// HandleConnectionStats returns statistics about active connections
func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.connectionManager.GetConnectionStats())
}

// RegisterRoutes registers WebSocket routes with an HTTP mux
func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws/tournament", h.HandleTournamentConnection)
	mux.HandleFunc("GET /ws/stats", h.HandleConnectionStats)
}
