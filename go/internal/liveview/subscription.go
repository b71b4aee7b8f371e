package liveview

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/openrally/courtside/go/internal/events"
	"github.com/openrally/courtside/go/internal/models"
	"github.com/rs/zerolog/log"
)

// SnapshotFetcher retrieves the authoritative snapshot for a tournament.
// The REST Client satisfies this.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context, tournamentID uuid.UUID) (*models.Snapshot, error)
}

// Subscription tracks one tournament from a client's point of view. The
// safe startup order is subscribe-then-fetch: frames that arrive before
// the initial snapshot are buffered, then drained against it, so no
// commit between subscribe and fetch is lost. A detected sequence gap
// triggers a snapshot refetch instead of guessing.
type Subscription struct {
	fetcher      SnapshotFetcher
	tournamentID uuid.UUID

	mu      sync.Mutex
	current *models.Snapshot
	pending []events.Frame
	primed  bool
}

func NewSubscription(fetcher SnapshotFetcher, tournamentID uuid.UUID) *Subscription {
	return &Subscription{
		fetcher:      fetcher,
		tournamentID: tournamentID,
	}
}

// Prime fetches the initial snapshot and drains any frames buffered while
// the fetch was in flight.
func (s *Subscription) Prime(ctx context.Context) error {
	snap, err := s.fetcher.FetchSnapshot(ctx, s.tournamentID)
	if err != nil {
		return fmt.Errorf("failed to fetch initial snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = snap.Clone()
	s.primed = true
	return s.drainLocked(ctx)
}

// Handle merges an incoming frame. Before Prime completes, frames are
// buffered; afterwards they apply immediately. On a sequence gap the
// subscription refetches a full snapshot and replays the gapped frame
// against it.
func (s *Subscription) Handle(ctx context.Context, frame events.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.primed {
		s.pending = append(s.pending, frame)
		return nil
	}
	return s.applyLocked(ctx, frame)
}

// Current returns the subscription's view of the tournament, or nil before
// the first snapshot lands.
func (s *Subscription) Current() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	return s.current.Clone()
}

func (s *Subscription) applyLocked(ctx context.Context, frame events.Frame) error {
	next, err := Apply(s.current, frame)

	var gap *SequenceGapError
	if errors.As(err, &gap) {
		log.Warn().
			Str("tournament_id", s.tournamentID.String()).
			Uint64("have", gap.Have).
			Uint64("got", gap.Got).
			Msg("sequence gap, refetching snapshot")
		return s.resyncLocked(ctx, frame)
	}
	if err != nil {
		return err
	}
	s.current = next
	return nil
}

// resyncLocked recovers from a gap: fetch a fresh snapshot, then replay
// the frame that exposed the gap. If the fetched snapshot already covers
// that frame's sequence, the replay is a no-op discard.
func (s *Subscription) resyncLocked(ctx context.Context, frame events.Frame) error {
	snap, err := s.fetcher.FetchSnapshot(ctx, s.tournamentID)
	if err != nil {
		return fmt.Errorf("failed to refetch snapshot after gap: %w", err)
	}
	s.current = snap.Clone()

	next, err := Apply(s.current, frame)
	var gap *SequenceGapError
	if errors.As(err, &gap) {
		// The snapshot is still behind the stream. Keep the snapshot and
		// drop the frame; the next frame will gap again and retry.
		return nil
	}
	if err != nil {
		return err
	}
	s.current = next
	return nil
}

func (s *Subscription) drainLocked(ctx context.Context) error {
	if len(s.pending) == 0 {
		return nil
	}
	frames := s.pending
	s.pending = nil

	// Buffered frames may have raced onto the wire out of order relative
	// to the fetch; sorting by sequence lets the merger's duplicate and
	// gap rules do the rest.
	sort.SliceStable(frames, func(i, j int) bool {
		return frameSequence(frames[i]) < frameSequence(frames[j])
	})
	for _, frame := range frames {
		if err := s.applyLocked(ctx, frame); err != nil {
			return err
		}
	}
	return nil
}

func frameSequence(frame events.Frame) uint64 {
	switch frame.Kind {
	case events.FrameKindSnapshot:
		if frame.Snapshot != nil {
			return frame.Snapshot.Sequence
		}
	case events.FrameKindEvent:
		if frame.Event != nil {
			return frame.Event.Sequence
		}
	}
	return 0
}
