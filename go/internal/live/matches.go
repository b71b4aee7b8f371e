package live

import (
	"context"

	"github.com/google/uuid"
	"github.com/openrally/courtside/go/internal/events"
	"github.com/openrally/courtside/go/internal/models"
)

// CreateCourtRequest registers a new court
type CreateCourtRequest struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Location *string   `json:"location,omitempty"`
}

// CreateMatchRequest schedules a new match
type CreateMatchRequest struct {
	ID        uuid.UUID  `json:"id"`
	Number    int        `json:"number"`
	Round     string     `json:"round"`
	TeamAID   uuid.UUID  `json:"team_a_id"`
	TeamBID   uuid.UUID  `json:"team_b_id"`
	RefereeID *uuid.UUID `json:"referee_id,omitempty"`
	BestOf    int        `json:"best_of,omitempty"`
}

// AddCourt creates a court in idle state.
func (s *Store) AddCourt(ctx context.Context, tournamentID uuid.UUID, req CreateCourtRequest) (*events.Event, error) {
	return s.commit(ctx, tournamentID, func(work *models.Snapshot, cs *changeSet) error {
		if req.ID == uuid.Nil {
			req.ID = uuid.New()
		}
		court := models.Court{
			ID:           req.ID,
			TournamentID: tournamentID,
			Name:         req.Name,
			Location:     req.Location,
			Status:       models.CourtStatusIdle,
			Version:      1,
			UpdatedAt:    cs.now,
		}
		work.Courts = append(work.Courts, court)
		cs.court(&court, models.CourtFields{
			Name:     strPtr(court.Name),
			Location: court.Location,
			Status:   courtStatusPtr(court.Status),
		})
		cs.event(events.EventTypeCourtUpdated, events.ActionCreated)
		return nil
	})
}

// CreateMatch schedules a match in PENDING state and enqueues it at the
// tail of the tournament queue. Exactly one queue item exists per
// not-yet-courted match, so the item is created here and nowhere else.
func (s *Store) CreateMatch(ctx context.Context, tournamentID uuid.UUID, req CreateMatchRequest) (*events.Event, error) {
	return s.commit(ctx, tournamentID, func(work *models.Snapshot, cs *changeSet) error {
		if req.ID == uuid.Nil {
			req.ID = uuid.New()
		}
		bestOf := req.BestOf
		if bestOf == 0 {
			bestOf = work.Tournament.BestOf
		}
		match := models.Match{
			ID:           req.ID,
			TournamentID: tournamentID,
			Number:       req.Number,
			Round:        req.Round,
			TeamAID:      req.TeamAID,
			TeamBID:      req.TeamBID,
			RefereeID:    req.RefereeID,
			Status:       models.MatchStatusPending,
			BestOf:       bestOf,
			Version:      1,
			UpdatedAt:    cs.now,
		}
		work.Matches = append(work.Matches, match)
		cs.match(&match, models.MatchFields{
			Number:    intPtr(match.Number),
			Round:     strPtr(match.Round),
			Status:    matchStatusPtr(match.Status),
			RefereeID: match.RefereeID,
			TeamAID:   &match.TeamAID,
			TeamBID:   &match.TeamBID,
			BestOf:    intPtr(match.BestOf),
		})

		item := models.QueueItem{
			ID:           uuid.New(),
			TournamentID: tournamentID,
			MatchID:      match.ID,
			Position:     nextQueuePosition(work.Queue),
			Version:      1,
			UpdatedAt:    cs.now,
		}
		work.Queue = append(work.Queue, item)
		cs.queueItem(&item, models.QueueItemFields{
			MatchID:  &item.MatchID,
			Position: intPtr(item.Position),
		})

		cs.event(events.EventTypeMatchUpdated, events.ActionCreated)
		return nil
	})
}

// RecordScore applies a game score to an in-progress match. The game
// either updates the latest game in place (live scoring) or appends the
// next one; earlier games are immutable once a later game exists. When the
// game sequence satisfies the best-of-N win condition the match completes
// and the occupying court reverts to cleaning until explicitly cleared.
func (s *Store) RecordScore(ctx context.Context, tournamentID, matchID uuid.UUID, game models.Game, version int64) (*events.Event, error) {
	return s.commit(ctx, tournamentID, func(work *models.Snapshot, cs *changeSet) error {
		match := work.Match(matchID)
		if match == nil {
			return &NotFoundError{Entity: models.EntityMatch, ID: matchID}
		}
		if match.Version != version {
			return &VersionConflictError{Entity: models.EntityMatch, IDs: []uuid.UUID{matchID}}
		}
		if match.Status != models.MatchStatusInProgress {
			return &InvalidTransitionError{From: match.Status, To: match.Status, Reason: "score recorded on a match that is not in progress"}
		}

		switch {
		case game.Seq < 1:
			return &InvalidTransitionError{Reason: "game sequence numbers start at 1"}
		case game.Seq == len(match.Games):
			match.Games[game.Seq-1] = game
		case game.Seq == len(match.Games)+1:
			match.Games = append(match.Games, game)
		default:
			return &InvalidTransitionError{Reason: "games are append-only; only the latest game may change"}
		}

		match.Version++
		match.UpdatedAt = cs.now
		fields := models.MatchFields{Games: []models.Game{game}}

		if _, won := match.Winner(); won {
			match.Status = models.MatchStatusCompleted
			fields.Status = matchStatusPtr(models.MatchStatusCompleted)
			cs.match(match, fields)

			if match.CourtID != nil {
				if court := work.Court(*match.CourtID); court != nil {
					court.Status = models.CourtStatusCleaning
					court.Version++
					court.UpdatedAt = cs.now
					cs.court(court, models.CourtFields{Status: courtStatusPtr(models.CourtStatusCleaning)})
				}
			}
			cs.event(events.EventTypeMatchUpdated, events.ActionCompleted)
			return nil
		}

		cs.match(match, fields)
		cs.event(events.EventTypeScoreUpdated, events.ActionUpdated)
		return nil
	})
}

// CancelMatch terminates a match from any non-completed state. An occupied
// court reverts to cleaning and the match loses its court reference; a
// queued match loses its queue item.
func (s *Store) CancelMatch(ctx context.Context, tournamentID, matchID uuid.UUID, version int64) (*events.Event, error) {
	return s.commit(ctx, tournamentID, func(work *models.Snapshot, cs *changeSet) error {
		match := work.Match(matchID)
		if match == nil {
			return &NotFoundError{Entity: models.EntityMatch, ID: matchID}
		}
		if match.Version != version {
			return &VersionConflictError{Entity: models.EntityMatch, IDs: []uuid.UUID{matchID}}
		}
		if match.Status == models.MatchStatusCompleted || match.Status == models.MatchStatusCancelled {
			return &InvalidTransitionError{From: match.Status, To: models.MatchStatusCancelled}
		}

		wasInProgress := match.Status == models.MatchStatusInProgress
		match.Status = models.MatchStatusCancelled
		match.Version++
		match.UpdatedAt = cs.now
		fields := models.MatchFields{Status: matchStatusPtr(models.MatchStatusCancelled)}

		var court *models.Court
		if wasInProgress && match.CourtID != nil {
			court = work.Court(*match.CourtID)
			match.CourtID = nil
			fields.CourtCleared = true
		}
		cs.match(match, fields)

		if court != nil {
			court.Status = models.CourtStatusCleaning
			court.Version++
			court.UpdatedAt = cs.now
			cs.court(court, models.CourtFields{Status: courtStatusPtr(models.CourtStatusCleaning)})
		}

		for _, q := range work.Queue {
			if q.MatchID == matchID {
				cs.removeQueueItem(q.ID, q.Version+1)
				work.RemoveQueueItem(q.ID)
				break
			}
		}

		cs.event(events.EventTypeMatchUpdated, events.ActionCancelled)
		return nil
	})
}

// ClearCourt returns a cleaning (or held) court to idle. A finished match
// still referencing the court loses its court reference in the same
// commit.
func (s *Store) ClearCourt(ctx context.Context, tournamentID, courtID uuid.UUID, version int64) (*events.Event, error) {
	return s.commit(ctx, tournamentID, func(work *models.Snapshot, cs *changeSet) error {
		court := work.Court(courtID)
		if court == nil {
			return &NotFoundError{Entity: models.EntityCourt, ID: courtID}
		}
		if court.Version != version {
			return &VersionConflictError{Entity: models.EntityCourt, IDs: []uuid.UUID{courtID}}
		}
		if court.Status != models.CourtStatusCleaning && court.Status != models.CourtStatusHold {
			return &CourtUnavailableError{CourtID: courtID, Status: court.Status}
		}

		court.Status = models.CourtStatusIdle
		court.Version++
		court.UpdatedAt = cs.now
		cs.court(court, models.CourtFields{Status: courtStatusPtr(models.CourtStatusIdle)})

		for i := range work.Matches {
			match := &work.Matches[i]
			if match.CourtID == nil || *match.CourtID != courtID {
				continue
			}
			match.CourtID = nil
			match.Version++
			match.UpdatedAt = cs.now
			cs.match(match, models.MatchFields{CourtCleared: true})
		}

		cs.event(events.EventTypeCourtUpdated, events.ActionUpdated)
		return nil
	})
}
