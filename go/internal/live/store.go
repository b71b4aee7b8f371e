package live

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/openrally/courtside/go/internal/events"
	"github.com/openrally/courtside/go/internal/models"
	"github.com/rs/zerolog/log"
)

// EventSink receives the event produced by every accepted commit, in
// sequence order. Delivery failures are logged and dropped; they never
// roll back the commit.
type EventSink interface {
	Publish(ctx context.Context, event *events.Event) error
}

// Store holds the authoritative live state of every loaded tournament.
// All mutations for one tournament pass through a single serialization
// point so that entity versions increase by exactly 1 per accepted
// mutation and every commit gets the next sequence number. Different
// tournaments commit fully independently.
type Store struct {
	mu          sync.RWMutex
	tournaments map[uuid.UUID]*tournamentState

	repo  Repository
	sink  EventSink
	clock clockwork.Clock
}

type tournamentState struct {
	// commitMu serializes the mutation path, including the durability
	// round-trip. snapMu only guards the snapshot pointer swap, so reads
	// never wait on persistence I/O.
	commitMu sync.Mutex
	snapMu   sync.RWMutex
	snap     *models.Snapshot
}

// NewStore creates a store. repo and sink may be nil; a nil repo keeps
// state purely in memory, a nil sink discards events.
func NewStore(repo Repository, sink EventSink, clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		tournaments: make(map[uuid.UUID]*tournamentState),
		repo:        repo,
		sink:        sink,
		clock:       clock,
	}
}

// CreateTournament persists and registers a tournament with an empty
// snapshot at sequence 0.
func (s *Store) CreateTournament(ctx context.Context, t models.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tournaments[t.ID]; exists {
		return fmt.Errorf("tournament %s already loaded", t.ID)
	}
	if s.repo != nil {
		if err := s.repo.CreateTournament(ctx, t); err != nil {
			return fmt.Errorf("failed to persist tournament: %w", err)
		}
	}
	s.tournaments[t.ID] = &tournamentState{
		snap: &models.Snapshot{
			TournamentID: t.ID,
			Tournament:   t,
			TakenAt:      s.clock.Now().UTC(),
		},
	}
	log.Info().Str("tournament_id", t.ID.String()).Str("name", t.Name).Msg("tournament loaded")
	return nil
}

// Restore registers a tournament from a persisted snapshot.
func (s *Store) Restore(snap *models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tournaments[snap.TournamentID]; exists {
		return fmt.Errorf("tournament %s already loaded", snap.TournamentID)
	}
	s.tournaments[snap.TournamentID] = &tournamentState{snap: snap.Clone()}
	log.Info().
		Str("tournament_id", snap.TournamentID.String()).
		Uint64("sequence", snap.Sequence).
		Msg("tournament restored")
	return nil
}

// Get returns a consistent copy of the tournament's current snapshot.
// Reads run concurrently with commits and observe either the pre- or
// post-mutation state, never a torn mix.
func (s *Store) Get(tournamentID uuid.UUID) (*models.Snapshot, error) {
	ts, err := s.state(tournamentID)
	if err != nil {
		return nil, err
	}
	ts.snapMu.RLock()
	snap := ts.snap
	ts.snapMu.RUnlock()
	return snap.Clone(), nil
}

// TournamentIDs lists the tournaments currently loaded.
func (s *Store) TournamentIDs() []uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(s.tournaments))
	for id := range s.tournaments {
		ids = append(ids, id)
	}
	return ids
}

func (s *Store) state(tournamentID uuid.UUID) (*tournamentState, error) {
	s.mu.RLock()
	ts, ok := s.tournaments[tournamentID]
	s.mu.RUnlock()
	if !ok {
		return nil, &NotFoundError{Entity: models.EntityTournament, ID: tournamentID}
	}
	return ts, nil
}

// commit runs fn against a working copy of the tournament's snapshot. fn
// mutates the copy and records its changes in the change set; any error
// discards the copy, so rejected mutations have no partial effect. On
// success the commit is persisted, the snapshot pointer swapped, and the
// event handed to the sink, all before the next commit may begin. Patch
// emission and store commit are the same atomic step.
func (s *Store) commit(ctx context.Context, tournamentID uuid.UUID, fn func(work *models.Snapshot, cs *changeSet) error) (*events.Event, error) {
	ts, err := s.state(tournamentID)
	if err != nil {
		return nil, err
	}

	ts.commitMu.Lock()
	defer ts.commitMu.Unlock()

	work := ts.snap.Clone()
	cs := &changeSet{now: s.clock.Now().UTC()}
	if err := fn(work, cs); err != nil {
		return nil, err
	}

	seq := ts.snap.Sequence + 1
	work.Sequence = seq
	work.TakenAt = cs.now

	ev := &events.Event{
		ID:           uuid.New(),
		TournamentID: tournamentID,
		Type:         cs.eventType,
		Action:       cs.action,
		Sequence:     seq,
		Timestamp:    cs.now,
		Patches:      cs.patches,
	}

	if s.repo != nil {
		if err := s.repo.ApplyCommit(ctx, cs.buildCommit(tournamentID, seq, ev)); err != nil {
			return nil, fmt.Errorf("failed to persist commit: %w", err)
		}
	}

	ts.snapMu.Lock()
	ts.snap = work
	ts.snapMu.Unlock()

	if s.sink != nil {
		if err := s.sink.Publish(ctx, ev); err != nil {
			log.Error().
				Err(err).
				Str("tournament_id", tournamentID.String()).
				Uint64("sequence", seq).
				Msg("failed to publish event, dropping")
		}
	}

	return ev, nil
}
