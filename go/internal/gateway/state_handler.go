package gateway

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/openrally/courtside/go/internal/live"
	"github.com/openrally/courtside/go/internal/models"
)

// StateHandler serves read-only tournament state over HTTP
type StateHandler struct {
	store *live.Store
}

// NewStateHandler creates a new state handler
func NewStateHandler(store *live.Store) *StateHandler {
	return &StateHandler{store: store}
}

// HandleGetSnapshot handles GET /api/tournaments/{id}/snapshot. The body
// is a full consistent snapshot including its sequence number; clients use
// it to prime or resync their merger.
func (h *StateHandler) HandleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	tournamentID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	snap, err := h.store.Get(tournamentID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// HandleListTournaments handles GET /api/tournaments
func (h *StateHandler) HandleListTournaments(w http.ResponseWriter, r *http.Request) {
	ids := h.store.TournamentIDs()

	summaries := make([]tournamentSummary, 0, len(ids))
	for _, id := range ids {
		snap, err := h.store.Get(id)
		if err != nil {
			continue
		}
		summaries = append(summaries, tournamentSummary{
			ID:       id,
			Name:     snap.Tournament.Name,
			Sport:    snap.Tournament.Sport,
			Sequence: snap.Sequence,
			Courts:   len(snap.Courts),
			Matches:  len(snap.Matches),
			Queued:   len(snap.Queue),
		})
	}
	writeJSON(w, http.StatusOK, summaries)
}

type tournamentSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Sport    string    `json:"sport"`
	Sequence uint64    `json:"sequence"`
	Courts   int       `json:"courts"`
	Matches  int       `json:"matches"`
	Queued   int       `json:"queued"`
}

// HandleCreateTournament handles POST /api/tournaments
func (h *StateHandler) HandleCreateTournament(w http.ResponseWriter, r *http.Request) {
	var t models.Tournament
	if !decodeBody(w, r, &t) {
		return
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.BestOf == 0 {
		t.BestOf = 3
	}

	if err := h.store.CreateTournament(r.Context(), t); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// RegisterStateRoutes registers state-related HTTP routes
func (h *StateHandler) RegisterStateRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/tournaments", h.HandleListTournaments)
	mux.HandleFunc("POST /api/tournaments", h.HandleCreateTournament)
	mux.HandleFunc("GET /api/tournaments/{id}/snapshot", h.HandleGetSnapshot)
}
