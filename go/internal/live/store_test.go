package live

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/openrally/courtside/go/internal/events"
	"github.com/openrally/courtside/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureSink struct {
	published []*events.Event
}

func (c *captureSink) Publish(_ context.Context, ev *events.Event) error {
	c.published = append(c.published, ev)
	return nil
}

type fixture struct {
	store *Store
	sink  *captureSink
	clock *clockwork.FakeClock

	tournamentID uuid.UUID
	courtID      uuid.UUID
	teamA        uuid.UUID
	teamB        uuid.UUID
	matchID      uuid.UUID
}

// newFixture builds an in-memory store holding one tournament with a
// court, two teams and one pending match that sits at the head of the
// queue.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		sink:         &captureSink{},
		clock:        clockwork.NewFakeClockAt(time.Date(2026, 6, 14, 9, 0, 0, 0, time.UTC)),
		tournamentID: uuid.New(),
		courtID:      uuid.New(),
		teamA:        uuid.New(),
		teamB:        uuid.New(),
		matchID:      uuid.New(),
	}
	f.store = NewStore(nil, f.sink, f.clock)

	ctx := context.Background()
	require.NoError(t, f.store.CreateTournament(ctx, models.Tournament{
		ID:     f.tournamentID,
		Name:   "City Open",
		Sport:  "volleyball",
		BestOf: 3,
	}))

	_, err := f.store.AddCourt(ctx, f.tournamentID, CreateCourtRequest{ID: f.courtID, Name: "Court 1"})
	require.NoError(t, err)

	for _, team := range []UpsertTeamRequest{
		{ID: f.teamA, Name: "Harbor Smashers", Code: "HAR"},
		{ID: f.teamB, Name: "Northside Nets", Code: "NOR"},
	} {
		_, err := f.store.UpsertTeam(ctx, f.tournamentID, team)
		require.NoError(t, err)
	}

	_, err = f.store.CreateMatch(ctx, f.tournamentID, CreateMatchRequest{
		ID:      f.matchID,
		Number:  1,
		Round:   "R1",
		TeamAID: f.teamA,
		TeamBID: f.teamB,
	})
	require.NoError(t, err)

	return f
}

func (f *fixture) snapshot(t *testing.T) *models.Snapshot {
	t.Helper()
	snap, err := f.store.Get(f.tournamentID)
	require.NoError(t, err)
	return snap
}

func (f *fixture) queueItem(t *testing.T, matchID uuid.UUID) models.QueueItem {
	t.Helper()
	for _, q := range f.snapshot(t).Queue {
		if q.MatchID == matchID {
			return q
		}
	}
	t.Fatalf("no queue item for match %s", matchID)
	return models.QueueItem{}
}

// addMatch schedules an extra match so the queue has more than one entry.
func (f *fixture) addMatch(t *testing.T, number int) uuid.UUID {
	t.Helper()
	id := uuid.New()
	_, err := f.store.CreateMatch(context.Background(), f.tournamentID, CreateMatchRequest{
		ID:      id,
		Number:  number,
		Round:   "R1",
		TeamAID: f.teamA,
		TeamBID: f.teamB,
	})
	require.NoError(t, err)
	return id
}

// sendFixtureMatchToCourt marks the fixture match ready and dispatches it.
func (f *fixture) sendFixtureMatchToCourt(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	item := f.queueItem(t, f.matchID)
	_, err := f.store.ApplyQueueAction(ctx, f.tournamentID, QueueActionRequest{
		ItemID:  item.ID,
		Action:  models.QueueActionSendToCourt,
		Version: item.Version,
		CourtID: &f.courtID,
	})
	require.NoError(t, err)
}

func TestCreateMatchEnqueues(t *testing.T) {
	f := newFixture(t)
	snap := f.snapshot(t)

	require.Len(t, snap.Matches, 1)
	assert.Equal(t, models.MatchStatusPending, snap.Matches[0].Status)
	assert.Equal(t, int64(1), snap.Matches[0].Version)
	assert.Equal(t, 3, snap.Matches[0].BestOf, "match inherits the tournament best-of")

	require.Len(t, snap.Queue, 1)
	assert.Equal(t, f.matchID, snap.Queue[0].MatchID)
	assert.Equal(t, int64(1), snap.Queue[0].Version)
}

func TestSequenceIncrementsPerCommit(t *testing.T) {
	f := newFixture(t)

	var seqs []uint64
	for _, ev := range f.sink.published {
		seqs = append(seqs, ev.Sequence)
	}
	for i, seq := range seqs {
		assert.Equal(t, uint64(i+1), seq, "commits number densely from 1")
	}
	assert.Equal(t, seqs[len(seqs)-1], f.snapshot(t).Sequence)
}

func TestGetReturnsIsolatedCopy(t *testing.T) {
	f := newFixture(t)

	snap := f.snapshot(t)
	snap.Courts[0].Status = models.CourtStatusHold
	snap.Queue = nil

	fresh := f.snapshot(t)
	assert.Equal(t, models.CourtStatusIdle, fresh.Courts[0].Status)
	assert.Len(t, fresh.Queue, 1)
}

func TestReorderQueue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	second := f.addMatch(t, 2)

	first := f.queueItem(t, f.matchID)
	other := f.queueItem(t, second)

	t.Run("moves item and bumps version", func(t *testing.T) {
		ev, err := f.store.ReorderQueue(ctx, f.tournamentID, []ReorderItem{
			{ID: other.ID, Position: 1, Version: other.Version},
			{ID: first.ID, Position: 2, Version: first.Version},
		})
		require.NoError(t, err)
		assert.Equal(t, events.EventTypeQueueUpdated, ev.Type)
		assert.Equal(t, events.ActionReordered, ev.Action)
		require.Len(t, ev.Patches, 2)

		snap := f.snapshot(t)
		assert.Equal(t, second, snap.Queue[0].MatchID, "queue is sorted by position")
		assert.Equal(t, other.Version+1, snap.Queue[0].Version)
		assert.Equal(t, first.Version+1, snap.Queue[1].Version)
	})

	t.Run("stale version rejects whole batch", func(t *testing.T) {
		before := f.snapshot(t)
		moved := f.queueItem(t, second)

		_, err := f.store.ReorderQueue(ctx, f.tournamentID, []ReorderItem{
			{ID: moved.ID, Position: 5, Version: moved.Version},
			{ID: first.ID, Position: 6, Version: first.Version}, // stale: bumped above
		})

		var conflict *VersionConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, []uuid.UUID{first.ID}, conflict.IDs)

		after := f.snapshot(t)
		assert.Equal(t, before.Sequence, after.Sequence, "rejected batch commits nothing")
		assert.Equal(t, before.Queue, after.Queue, "no item moved, including the fresh one")
	})

	t.Run("duplicate id rejects whole batch", func(t *testing.T) {
		before := f.snapshot(t)
		target := f.queueItem(t, f.matchID)

		_, err := f.store.ReorderQueue(ctx, f.tournamentID, []ReorderItem{
			{ID: target.ID, Position: 1, Version: target.Version},
			{ID: target.ID, Position: 2, Version: target.Version},
		})

		var duplicate *DuplicateItemError
		require.ErrorAs(t, err, &duplicate)
		assert.Equal(t, target.ID, duplicate.ID)

		after := f.snapshot(t)
		assert.Equal(t, before.Sequence, after.Sequence, "rejected batch commits nothing")
		assert.Equal(t, target.Version, f.queueItem(t, f.matchID).Version, "a rejected batch never bumps a version")
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := f.store.ReorderQueue(ctx, f.tournamentID, []ReorderItem{
			{ID: uuid.New(), Position: 1, Version: 1},
		})
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
	})
}

func TestQueueActionMarkReady(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := f.queueItem(t, f.matchID)

	ev, err := f.store.ApplyQueueAction(ctx, f.tournamentID, QueueActionRequest{
		ItemID:  item.ID,
		Action:  models.QueueActionMarkReady,
		Version: item.Version,
	})
	require.NoError(t, err)
	assert.Equal(t, events.ActionUpdated, ev.Action)

	snap := f.snapshot(t)
	assert.Equal(t, models.MatchStatusReady, snap.Matches[0].Status)
	assert.Equal(t, int64(2), snap.Matches[0].Version)
	assert.Equal(t, item.Version+1, snap.Queue[0].Version)

	_, err = f.store.ApplyQueueAction(ctx, f.tournamentID, QueueActionRequest{
		ItemID:  item.ID,
		Action:  models.QueueActionMarkReady,
		Version: item.Version + 1,
	})
	var transition *InvalidTransitionError
	require.ErrorAs(t, err, &transition, "READY match cannot be marked ready again")
}

func TestQueueActionStaleVersion(t *testing.T) {
	f := newFixture(t)
	item := f.queueItem(t, f.matchID)

	_, err := f.store.ApplyQueueAction(context.Background(), f.tournamentID, QueueActionRequest{
		ItemID:  item.ID,
		Action:  models.QueueActionMarkReady,
		Version: item.Version + 7,
	})

	var conflict *VersionConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, item, f.queueItem(t, f.matchID), "item untouched after conflict")
}

func TestQueueActionPull(t *testing.T) {
	f := newFixture(t)
	item := f.queueItem(t, f.matchID)

	_, err := f.store.ApplyQueueAction(context.Background(), f.tournamentID, QueueActionRequest{
		ItemID:  item.ID,
		Action:  models.QueueActionPull,
		Version: item.Version,
	})
	require.NoError(t, err)

	snap := f.snapshot(t)
	assert.Empty(t, snap.Queue)
	assert.Equal(t, models.MatchStatusPending, snap.Matches[0].Status, "pull leaves the match alone")
}

func TestSendToCourt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item := f.queueItem(t, f.matchID)

	ev, err := f.store.ApplyQueueAction(ctx, f.tournamentID, QueueActionRequest{
		ItemID:  item.ID,
		Action:  models.QueueActionSendToCourt,
		Version: item.Version,
		CourtID: &f.courtID,
	})
	require.NoError(t, err)

	// One commit carries the match, court and queue-removal patches in
	// apply order, all under the same sequence.
	require.Len(t, ev.Patches, 3)
	assert.Equal(t, models.EntityMatch, ev.Patches[0].Entity)
	assert.Equal(t, models.EntityCourt, ev.Patches[1].Entity)
	assert.Equal(t, models.EntityQueueItem, ev.Patches[2].Entity)
	assert.True(t, ev.Patches[2].Removed)

	snap := f.snapshot(t)
	assert.Equal(t, models.MatchStatusInProgress, snap.Matches[0].Status)
	require.NotNil(t, snap.Matches[0].CourtID)
	assert.Equal(t, f.courtID, *snap.Matches[0].CourtID)
	assert.Equal(t, models.CourtStatusPlaying, snap.Courts[0].Status)
	assert.Empty(t, snap.Queue)
}

func TestSendToCourtRejections(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(t *testing.T, f *fixture) QueueActionRequest
		check   func(t *testing.T, err error)
	}{
		{
			name: "missing court id",
			prepare: func(t *testing.T, f *fixture) QueueActionRequest {
				item := f.queueItem(t, f.matchID)
				return QueueActionRequest{ItemID: item.ID, Action: models.QueueActionSendToCourt, Version: item.Version}
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrCourtRequired)
			},
		},
		{
			name: "occupied court",
			prepare: func(t *testing.T, f *fixture) QueueActionRequest {
				f.sendFixtureMatchToCourt(t)
				second := f.addMatch(t, 2)
				item := f.queueItem(t, second)
				return QueueActionRequest{ItemID: item.ID, Action: models.QueueActionSendToCourt, Version: item.Version, CourtID: &f.courtID}
			},
			check: func(t *testing.T, err error) {
				var unavailable *CourtUnavailableError
				require.ErrorAs(t, err, &unavailable)
				assert.Equal(t, models.CourtStatusPlaying, unavailable.Status)
			},
		},
		{
			name: "held court",
			prepare: func(t *testing.T, f *fixture) QueueActionRequest {
				snap := f.snapshot(t)
				snap.Courts[0].Status = models.CourtStatusHold
				require.NoError(t, f.store.Restore(snap))
				item := f.queueItem(t, f.matchID)
				return QueueActionRequest{ItemID: item.ID, Action: models.QueueActionSendToCourt, Version: item.Version, CourtID: &f.courtID}
			},
			check: func(t *testing.T, err error) {
				var unavailable *CourtUnavailableError
				require.ErrorAs(t, err, &unavailable)
				assert.Equal(t, models.CourtStatusHold, unavailable.Status)
			},
		},
		{
			name: "unknown court",
			prepare: func(t *testing.T, f *fixture) QueueActionRequest {
				item := f.queueItem(t, f.matchID)
				bogus := uuid.New()
				return QueueActionRequest{ItemID: item.ID, Action: models.QueueActionSendToCourt, Version: item.Version, CourtID: &bogus}
			},
			check: func(t *testing.T, err error) {
				var notFound *NotFoundError
				require.ErrorAs(t, err, &notFound)
				assert.Equal(t, models.EntityCourt, notFound.Entity)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := tt.prepare(t, f)
			before := f.snapshot(t)

			_, err := f.store.ApplyQueueAction(context.Background(), f.tournamentID, req)
			tt.check(t, err)

			after := f.snapshot(t)
			assert.Equal(t, before.Sequence, after.Sequence, "rejection commits nothing")
			assert.Equal(t, before.Queue, after.Queue)
			assert.Equal(t, before.Courts, after.Courts, "court versions untouched")
		})
	}
}

func TestRecordScoreBestOfThree(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.sendFixtureMatchToCourt(t)

	games := []models.Game{
		{Seq: 1, ScoreA: 11, ScoreB: 7, Serving: models.SideA},
		{Seq: 2, ScoreA: 9, ScoreB: 11, Serving: models.SideB},
		{Seq: 3, ScoreA: 11, ScoreB: 5, Serving: models.SideA},
	}

	version := f.snapshot(t).Matches[0].Version
	var last *events.Event
	for _, g := range games {
		ev, err := f.store.RecordScore(ctx, f.tournamentID, f.matchID, g, version)
		require.NoError(t, err)
		version++
		last = ev
	}

	assert.Equal(t, events.EventTypeMatchUpdated, last.Type)
	assert.Equal(t, events.ActionCompleted, last.Action)

	snap := f.snapshot(t)
	match := snap.Matches[0]
	assert.Equal(t, models.MatchStatusCompleted, match.Status)
	winner, won := match.Winner()
	require.True(t, won)
	assert.Equal(t, models.SideA, winner)
	assert.Equal(t, models.CourtStatusCleaning, snap.Courts[0].Status, "court waits for an explicit clear")
}

func TestRecordScoreLiveUpdateInPlace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.sendFixtureMatchToCourt(t)
	version := f.snapshot(t).Matches[0].Version

	_, err := f.store.RecordScore(ctx, f.tournamentID, f.matchID, models.Game{Seq: 1, ScoreA: 3, ScoreB: 2}, version)
	require.NoError(t, err)
	_, err = f.store.RecordScore(ctx, f.tournamentID, f.matchID, models.Game{Seq: 1, ScoreA: 5, ScoreB: 2}, version+1)
	require.NoError(t, err)

	match := f.snapshot(t).Matches[0]
	require.Len(t, match.Games, 1)
	assert.Equal(t, 5, match.Games[0].ScoreA)
	assert.Equal(t, models.MatchStatusInProgress, match.Status)
}

func TestRecordScoreGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.sendFixtureMatchToCourt(t)
	version := f.snapshot(t).Matches[0].Version

	t.Run("stale version", func(t *testing.T) {
		_, err := f.store.RecordScore(ctx, f.tournamentID, f.matchID, models.Game{Seq: 1, ScoreA: 1}, version-1)
		var conflict *VersionConflictError
		require.ErrorAs(t, err, &conflict)
	})

	t.Run("gap in game sequence", func(t *testing.T) {
		_, err := f.store.RecordScore(ctx, f.tournamentID, f.matchID, models.Game{Seq: 3, ScoreA: 1}, version)
		var transition *InvalidTransitionError
		require.ErrorAs(t, err, &transition)
	})

	t.Run("rewriting an earlier game", func(t *testing.T) {
		_, err := f.store.RecordScore(ctx, f.tournamentID, f.matchID, models.Game{Seq: 1, ScoreA: 11, ScoreB: 3}, version)
		require.NoError(t, err)
		_, err = f.store.RecordScore(ctx, f.tournamentID, f.matchID, models.Game{Seq: 2, ScoreA: 2, ScoreB: 1}, version+1)
		require.NoError(t, err)

		_, err = f.store.RecordScore(ctx, f.tournamentID, f.matchID, models.Game{Seq: 1, ScoreA: 0, ScoreB: 11}, version+2)
		var transition *InvalidTransitionError
		require.ErrorAs(t, err, &transition)
	})

	t.Run("match not in progress", func(t *testing.T) {
		g := newFixture(t)
		v := g.snapshot(t).Matches[0].Version
		_, err := g.store.RecordScore(ctx, g.tournamentID, g.matchID, models.Game{Seq: 1, ScoreA: 1}, v)
		var transition *InvalidTransitionError
		require.ErrorAs(t, err, &transition)
	})
}

func TestCancelMatch(t *testing.T) {
	t.Run("queued match loses its queue item", func(t *testing.T) {
		f := newFixture(t)
		version := f.snapshot(t).Matches[0].Version

		ev, err := f.store.CancelMatch(context.Background(), f.tournamentID, f.matchID, version)
		require.NoError(t, err)
		assert.Equal(t, events.ActionCancelled, ev.Action)

		snap := f.snapshot(t)
		assert.Equal(t, models.MatchStatusCancelled, snap.Matches[0].Status)
		assert.Empty(t, snap.Queue)
	})

	t.Run("in-progress match frees its court to cleaning", func(t *testing.T) {
		f := newFixture(t)
		f.sendFixtureMatchToCourt(t)
		version := f.snapshot(t).Matches[0].Version

		ev, err := f.store.CancelMatch(context.Background(), f.tournamentID, f.matchID, version)
		require.NoError(t, err)

		require.Len(t, ev.Patches, 2)
		require.NotNil(t, ev.Patches[0].Match)
		assert.True(t, ev.Patches[0].Match.CourtCleared)

		snap := f.snapshot(t)
		assert.Equal(t, models.CourtStatusCleaning, snap.Courts[0].Status)
		assert.Nil(t, snap.Matches[0].CourtID, "cancellation releases the court reference")
	})

	t.Run("completed match cannot be cancelled", func(t *testing.T) {
		f := newFixture(t)
		f.sendFixtureMatchToCourt(t)
		version := f.snapshot(t).Matches[0].Version
		_, err := f.store.RecordScore(context.Background(), f.tournamentID, f.matchID, models.Game{Seq: 1, ScoreA: 11}, version)
		require.NoError(t, err)
		_, err = f.store.RecordScore(context.Background(), f.tournamentID, f.matchID, models.Game{Seq: 2, ScoreA: 11}, version+1)
		require.NoError(t, err)

		_, err = f.store.CancelMatch(context.Background(), f.tournamentID, f.matchID, version+2)
		var transition *InvalidTransitionError
		require.ErrorAs(t, err, &transition)
	})
}

func TestClearCourt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.sendFixtureMatchToCourt(t)

	t.Run("playing court cannot be cleared", func(t *testing.T) {
		court := f.snapshot(t).Courts[0]
		_, err := f.store.ClearCourt(ctx, f.tournamentID, f.courtID, court.Version)
		var unavailable *CourtUnavailableError
		require.ErrorAs(t, err, &unavailable)
	})

	version := f.snapshot(t).Matches[0].Version
	_, err := f.store.RecordScore(ctx, f.tournamentID, f.matchID, models.Game{Seq: 1, ScoreA: 11}, version)
	require.NoError(t, err)
	_, err = f.store.RecordScore(ctx, f.tournamentID, f.matchID, models.Game{Seq: 2, ScoreA: 11}, version+1)
	require.NoError(t, err)

	t.Run("cleaning court returns to idle", func(t *testing.T) {
		court := f.snapshot(t).Courts[0]
		require.Equal(t, models.CourtStatusCleaning, court.Status)

		ev, err := f.store.ClearCourt(ctx, f.tournamentID, f.courtID, court.Version)
		require.NoError(t, err)
		assert.Equal(t, events.EventTypeCourtUpdated, ev.Type)

		require.Len(t, ev.Patches, 2)
		require.NotNil(t, ev.Patches[1].Match)
		assert.True(t, ev.Patches[1].Match.CourtCleared)

		snap := f.snapshot(t)
		assert.Equal(t, models.CourtStatusIdle, snap.Courts[0].Status)
		assert.Equal(t, court.Version+1, snap.Courts[0].Version)
		assert.Nil(t, snap.Matches[0].CourtID, "clearing releases the finished match's court reference")
	})

	t.Run("stale court version", func(t *testing.T) {
		_, err := f.store.ClearCourt(ctx, f.tournamentID, f.courtID, 1)
		var conflict *VersionConflictError
		require.ErrorAs(t, err, &conflict)
	})
}

func TestTeams(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ev, err := f.store.UpsertTeam(ctx, f.tournamentID, UpsertTeamRequest{
		ID:   f.teamA,
		Name: "Harbor Smashers",
		Code: "HBR",
	})
	require.NoError(t, err)
	assert.Equal(t, events.ActionUpdated, ev.Action)

	snap := f.snapshot(t)
	team := snap.Team(f.teamA)
	require.NotNil(t, team)
	assert.Equal(t, "HBR", team.Code)
	assert.Equal(t, int64(2), team.Version)

	_, err = f.store.DeleteTeam(ctx, f.tournamentID, f.teamB)
	require.NoError(t, err)
	assert.Nil(t, f.snapshot(t).Team(f.teamB))
}

func TestAlerts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ev, err := f.store.RaiseAlert(ctx, f.tournamentID, RaiseAlertRequest{
		Kind:        models.AlertKindMissingReferee,
		Message:     "no referee assigned for match 1",
		MatchID:     &f.matchID,
		Dismissible: true,
	})
	require.NoError(t, err)
	assert.Equal(t, events.ActionRaised, ev.Action)

	snap := f.snapshot(t)
	require.Len(t, snap.Alerts, 1)
	alert := snap.Alerts[0]
	assert.Equal(t, int64(1), alert.Version)

	t.Run("stale dismiss", func(t *testing.T) {
		_, err := f.store.DismissAlert(ctx, f.tournamentID, alert.ID, alert.Version+1)
		var conflict *VersionConflictError
		require.ErrorAs(t, err, &conflict)
	})

	t.Run("dismiss removes", func(t *testing.T) {
		ev, err := f.store.DismissAlert(ctx, f.tournamentID, alert.ID, alert.Version)
		require.NoError(t, err)
		assert.Equal(t, events.ActionDismissed, ev.Action)
		assert.Empty(t, f.snapshot(t).Alerts)
	})
}

func TestUnknownTournament(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.Get(uuid.New())
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, models.EntityTournament, notFound.Entity)
}

func TestEventsCarryCommitSequence(t *testing.T) {
	f := newFixture(t)
	f.sendFixtureMatchToCourt(t)

	ev := f.sink.published[len(f.sink.published)-1]
	for _, p := range ev.Patches {
		assert.NotZero(t, p.Version, "every patch names the entity's post-commit version")
	}
	assert.Equal(t, f.snapshot(t).Sequence, ev.Sequence)
}
