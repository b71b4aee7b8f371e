package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/openrally/courtside/go/internal/events"
	"github.com/openrally/courtside/go/internal/live"
	"github.com/openrally/courtside/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	store *live.Store
	mux   *http.ServeMux

	tournamentID uuid.UUID
	courtID      uuid.UUID
	matchID      uuid.UUID
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{
		store:        live.NewStore(nil, nil, nil),
		mux:          http.NewServeMux(),
		tournamentID: uuid.New(),
		courtID:      uuid.New(),
		matchID:      uuid.New(),
	}
	NewStateHandler(ts.store).RegisterStateRoutes(ts.mux)
	NewMutationHandler(ts.store).RegisterMutationRoutes(ts.mux)

	ctx := t.Context()
	require.NoError(t, ts.store.CreateTournament(ctx, models.Tournament{
		ID: ts.tournamentID, Name: "City Open", Sport: "volleyball", BestOf: 3,
	}))
	_, err := ts.store.AddCourt(ctx, ts.tournamentID, live.CreateCourtRequest{ID: ts.courtID, Name: "Court 1"})
	require.NoError(t, err)
	_, err = ts.store.CreateMatch(ctx, ts.tournamentID, live.CreateMatchRequest{
		ID: ts.matchID, Number: 1, Round: "R1", TeamAID: uuid.New(), TeamBID: uuid.New(),
	})
	require.NoError(t, err)
	return ts
}

func (ts *testServer) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	ts.mux.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) queueItem(t *testing.T) models.QueueItem {
	t.Helper()
	snap, err := ts.store.Get(ts.tournamentID)
	require.NoError(t, err)
	require.NotEmpty(t, snap.Queue)
	return snap.Queue[0]
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHandleGetSnapshot(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, fmt.Sprintf("/api/tournaments/%s/snapshot", ts.tournamentID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap models.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, ts.tournamentID, snap.TournamentID)
	assert.Len(t, snap.Courts, 1)
	assert.Len(t, snap.Matches, 1)
	assert.Len(t, snap.Queue, 1)
	assert.NotZero(t, snap.Sequence)
}

func TestHandleGetSnapshotUnknownTournament(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodGet, fmt.Sprintf("/api/tournaments/%s/snapshot", uuid.New()), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Code)
}

func TestHandleQueueActionVersionConflict(t *testing.T) {
	ts := newTestServer(t)
	item := ts.queueItem(t)

	rec := ts.request(t, http.MethodPut,
		fmt.Sprintf("/api/tournaments/%s/queue/action", ts.tournamentID),
		live.QueueActionRequest{ItemID: item.ID, Action: models.QueueActionMarkReady, Version: item.Version + 3},
	)

	require.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "version_conflict", resp.Code)
	assert.Equal(t, []uuid.UUID{item.ID}, resp.IDs)
}

func TestHandleQueueActionSendToCourt(t *testing.T) {
	ts := newTestServer(t)
	item := ts.queueItem(t)

	rec := ts.request(t, http.MethodPut,
		fmt.Sprintf("/api/tournaments/%s/queue/action", ts.tournamentID),
		live.QueueActionRequest{
			ItemID:  item.ID,
			Action:  models.QueueActionSendToCourt,
			Version: item.Version,
			CourtID: &ts.courtID,
		},
	)

	require.Equal(t, http.StatusOK, rec.Code)
	var ev events.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ev))
	assert.Equal(t, events.EventTypeMatchUpdated, ev.Type)
	assert.Len(t, ev.Patches, 3)
}

func TestHandleQueueActionMissingCourt(t *testing.T) {
	ts := newTestServer(t)
	item := ts.queueItem(t)

	rec := ts.request(t, http.MethodPut,
		fmt.Sprintf("/api/tournaments/%s/queue/action", ts.tournamentID),
		live.QueueActionRequest{ItemID: item.ID, Action: models.QueueActionSendToCourt, Version: item.Version},
	)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "court_required", decodeError(t, rec).Code)
}

func TestHandleReorderQueueRejectsStaleBatch(t *testing.T) {
	ts := newTestServer(t)
	item := ts.queueItem(t)

	rec := ts.request(t, http.MethodPost,
		fmt.Sprintf("/api/tournaments/%s/queue/reorder", ts.tournamentID),
		[]live.ReorderItem{{ID: item.ID, Position: 1, Version: item.Version + 1}},
	)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "version_conflict", decodeError(t, rec).Code)
}

func TestHandleReorderQueueRejectsDuplicateID(t *testing.T) {
	ts := newTestServer(t)
	item := ts.queueItem(t)

	rec := ts.request(t, http.MethodPost,
		fmt.Sprintf("/api/tournaments/%s/queue/reorder", ts.tournamentID),
		[]live.ReorderItem{
			{ID: item.ID, Position: 1, Version: item.Version},
			{ID: item.ID, Position: 2, Version: item.Version},
		},
	)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "duplicate_item", body.Code)
	assert.Equal(t, []uuid.UUID{item.ID}, body.IDs)
}

func TestHandleRecordScoreInvalidTransition(t *testing.T) {
	ts := newTestServer(t)

	// Match is still PENDING; scoring must be rejected.
	rec := ts.request(t, http.MethodPut,
		fmt.Sprintf("/api/tournaments/%s/matches/%s/score", ts.tournamentID, ts.matchID),
		map[string]any{"game": models.Game{Seq: 1, ScoreA: 1}, "version": 1},
	)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "invalid_transition", decodeError(t, rec).Code)
}

func TestHandleClearCourtUnavailable(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPut,
		fmt.Sprintf("/api/tournaments/%s/courts/%s/clear", ts.tournamentID, ts.courtID),
		map[string]any{"version": 1},
	)

	require.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "court_unavailable", resp.Code)
	assert.Equal(t, []uuid.UUID{ts.courtID}, resp.IDs)
}

func TestHandleAlertsLifecycle(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost,
		fmt.Sprintf("/api/tournaments/%s/alerts", ts.tournamentID),
		live.RaiseAlertRequest{Kind: models.AlertKindWarning, Message: "storm incoming", Dismissible: true},
	)
	require.Equal(t, http.StatusCreated, rec.Code)

	snap, err := ts.store.Get(ts.tournamentID)
	require.NoError(t, err)
	require.Len(t, snap.Alerts, 1)
	alert := snap.Alerts[0]

	rec = ts.request(t, http.MethodDelete,
		fmt.Sprintf("/api/tournaments/%s/alerts/%s?version=%d", ts.tournamentID, alert.ID, alert.Version), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	snap, err = ts.store.Get(ts.tournamentID)
	require.NoError(t, err)
	assert.Empty(t, snap.Alerts)
}

func TestHandleCreateTournament(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.request(t, http.MethodPost, "/api/tournaments",
		models.Tournament{Name: "Beach Cup", Sport: "beach_volleyball"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Tournament
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, 3, created.BestOf, "best-of defaults when omitted")

	rec = ts.request(t, http.MethodGet, "/api/tournaments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summaries []tournamentSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	assert.Len(t, summaries, 2)
}
