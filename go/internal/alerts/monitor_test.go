package alerts

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/openrally/courtside/go/internal/events"
	"github.com/openrally/courtside/go/internal/live"
	"github.com/openrally/courtside/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRaiser struct {
	mu     sync.Mutex
	raised []live.RaiseAlertRequest
}

func (r *recordingRaiser) RaiseAlert(_ context.Context, _ uuid.UUID, req live.RaiseAlertRequest) (*events.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.raised = append(r.raised, req)
	return &events.Event{}, nil
}

func (r *recordingRaiser) all() []live.RaiseAlertRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]live.RaiseAlertRequest(nil), r.raised...)
}

func matchEvent(tournamentID, matchID uuid.UUID, status models.MatchStatus) *events.Event {
	return &events.Event{
		ID:           uuid.New(),
		TournamentID: tournamentID,
		Type:         events.EventTypeMatchUpdated,
		Patches: []models.Patch{{
			Entity:   models.EntityMatch,
			EntityID: matchID,
			Match:    &models.MatchFields{Status: &status},
		}},
	}
}

func newTestMonitor(t *testing.T) (*Monitor, *recordingRaiser, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	raiser := &recordingRaiser{}
	monitor := NewMonitor(nil, clock, Config{DelayThreshold: 45 * time.Minute})
	monitor.SetRaiser(raiser)
	t.Cleanup(monitor.Stop)
	return monitor, raiser, clock
}

func TestMonitorRaisesDelayAlert(t *testing.T) {
	monitor, raiser, clock := newTestMonitor(t)
	ctx := context.Background()
	tournamentID, matchID := uuid.New(), uuid.New()

	require.NoError(t, monitor.Publish(ctx, matchEvent(tournamentID, matchID, models.MatchStatusInProgress)))

	clock.Advance(44 * time.Minute)
	assert.Empty(t, raiser.all(), "no alert before the threshold")

	clock.Advance(2 * time.Minute)
	require.Eventually(t, func() bool {
		return len(raiser.all()) == 1
	}, time.Second, 10*time.Millisecond)

	req := raiser.all()[0]
	assert.Equal(t, models.AlertKindDelay, req.Kind)
	require.NotNil(t, req.MatchID)
	assert.Equal(t, matchID, *req.MatchID)
	assert.True(t, req.Dismissible)
}

func TestMonitorCancelsOnCompletion(t *testing.T) {
	monitor, raiser, clock := newTestMonitor(t)
	ctx := context.Background()
	tournamentID, matchID := uuid.New(), uuid.New()

	require.NoError(t, monitor.Publish(ctx, matchEvent(tournamentID, matchID, models.MatchStatusInProgress)))
	clock.Advance(30 * time.Minute)
	require.NoError(t, monitor.Publish(ctx, matchEvent(tournamentID, matchID, models.MatchStatusCompleted)))

	clock.Advance(time.Hour)
	assert.Empty(t, raiser.all(), "completed match never alerts")
}

func TestMonitorCancelsOnCancellation(t *testing.T) {
	monitor, raiser, clock := newTestMonitor(t)
	ctx := context.Background()
	tournamentID, matchID := uuid.New(), uuid.New()

	require.NoError(t, monitor.Publish(ctx, matchEvent(tournamentID, matchID, models.MatchStatusInProgress)))
	require.NoError(t, monitor.Publish(ctx, matchEvent(tournamentID, matchID, models.MatchStatusCancelled)))

	clock.Advance(time.Hour)
	assert.Empty(t, raiser.all())
}

func TestMonitorForwardsToNextSink(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var forwarded []*events.Event
	next := sinkFunc(func(_ context.Context, ev *events.Event) error {
		forwarded = append(forwarded, ev)
		return nil
	})
	monitor := NewMonitor(next, clock, DefaultConfig())
	t.Cleanup(monitor.Stop)

	ev := matchEvent(uuid.New(), uuid.New(), models.MatchStatusInProgress)
	require.NoError(t, monitor.Publish(context.Background(), ev))
	require.Len(t, forwarded, 1)
	assert.Same(t, ev, forwarded[0])
}

type sinkFunc func(ctx context.Context, ev *events.Event) error

func (f sinkFunc) Publish(ctx context.Context, ev *events.Event) error { return f(ctx, ev) }

func TestMonitorIntegrationWithStore(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 6, 14, 9, 0, 0, 0, time.UTC))
	monitor := NewMonitor(nil, clock, Config{DelayThreshold: 45 * time.Minute})
	t.Cleanup(monitor.Stop)

	store := live.NewStore(nil, monitor, clock)
	monitor.SetRaiser(store)

	ctx := context.Background()
	tournamentID, courtID, matchID := uuid.New(), uuid.New(), uuid.New()
	require.NoError(t, store.CreateTournament(ctx, models.Tournament{ID: tournamentID, Name: "City Open", BestOf: 3}))
	_, err := store.AddCourt(ctx, tournamentID, live.CreateCourtRequest{ID: courtID, Name: "Court 1"})
	require.NoError(t, err)
	_, err = store.CreateMatch(ctx, tournamentID, live.CreateMatchRequest{
		ID: matchID, Number: 1, Round: "R1", TeamAID: uuid.New(), TeamBID: uuid.New(),
	})
	require.NoError(t, err)

	snap, err := store.Get(tournamentID)
	require.NoError(t, err)
	item := snap.Queue[0]
	_, err = store.ApplyQueueAction(ctx, tournamentID, live.QueueActionRequest{
		ItemID: item.ID, Action: models.QueueActionSendToCourt, Version: item.Version, CourtID: &courtID,
	})
	require.NoError(t, err)

	clock.Advance(46 * time.Minute)

	require.Eventually(t, func() bool {
		snap, err := store.Get(tournamentID)
		return err == nil && len(snap.Alerts) == 1
	}, time.Second, 10*time.Millisecond)

	snap, err = store.Get(tournamentID)
	require.NoError(t, err)
	alert := snap.Alerts[0]
	assert.Equal(t, models.AlertKindDelay, alert.Kind)
	require.NotNil(t, alert.MatchID)
	assert.Equal(t, matchID, *alert.MatchID)
}
