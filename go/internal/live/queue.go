package live

import (
	"context"

	"github.com/google/uuid"
	"github.com/openrally/courtside/go/internal/events"
	"github.com/openrally/courtside/go/internal/models"
)

// ReorderItem is one entry of a reorder batch. Version is the caller's
// believed version of the item; the whole batch is rejected if any one is
// stale.
type ReorderItem struct {
	ID       uuid.UUID `json:"id"`
	Position int       `json:"priority"`
	Version  int64     `json:"version"`
}

// QueueActionRequest is a single-item compare-and-swap mutation
type QueueActionRequest struct {
	ItemID  uuid.UUID          `json:"id"`
	Action  models.QueueAction `json:"action"`
	Version int64              `json:"version"`
	CourtID *uuid.UUID         `json:"court_id,omitempty"`
}

// ReorderQueue atomically repositions a batch of queue items. Each id may
// appear at most once; every supplied (id, version) pair must match the
// store's current version. Any mismatch rejects the whole batch with a
// VersionConflictError naming the offending ids and leaves every item
// untouched. On success each item's position is updated and its version
// incremented by exactly 1. Positions need not be contiguous; equal
// positions order by ascending id.
func (s *Store) ReorderQueue(ctx context.Context, tournamentID uuid.UUID, items []ReorderItem) (*events.Event, error) {
	return s.commit(ctx, tournamentID, func(work *models.Snapshot, cs *changeSet) error {
		seen := make(map[uuid.UUID]bool, len(items))
		targets := make([]*models.QueueItem, len(items))
		var stale []uuid.UUID
		for i, item := range items {
			if seen[item.ID] {
				return &DuplicateItemError{Entity: models.EntityQueueItem, ID: item.ID}
			}
			seen[item.ID] = true
			q := work.QueueItem(item.ID)
			if q == nil {
				return &NotFoundError{Entity: models.EntityQueueItem, ID: item.ID}
			}
			if q.Version != item.Version {
				stale = append(stale, item.ID)
			}
			targets[i] = q
		}
		if len(stale) > 0 {
			return &VersionConflictError{Entity: models.EntityQueueItem, IDs: stale}
		}

		for i, item := range items {
			q := targets[i]
			q.Position = item.Position
			q.Version++
			q.UpdatedAt = cs.now
			cs.queueItem(q, models.QueueItemFields{Position: intPtr(item.Position)})
		}
		sortQueue(work.Queue)

		cs.event(events.EventTypeQueueUpdated, events.ActionReordered)
		return nil
	})
}

// ApplyQueueAction executes a single-item queue mutation under the same
// compare-and-swap discipline as ReorderQueue.
func (s *Store) ApplyQueueAction(ctx context.Context, tournamentID uuid.UUID, req QueueActionRequest) (*events.Event, error) {
	return s.commit(ctx, tournamentID, func(work *models.Snapshot, cs *changeSet) error {
		item := work.QueueItem(req.ItemID)
		if item == nil {
			return &NotFoundError{Entity: models.EntityQueueItem, ID: req.ItemID}
		}
		if item.Version != req.Version {
			return &VersionConflictError{Entity: models.EntityQueueItem, IDs: []uuid.UUID{req.ItemID}}
		}

		switch req.Action {
		case models.QueueActionMarkReady:
			return s.markReady(work, cs, item)
		case models.QueueActionPull:
			return s.pull(work, cs, item)
		case models.QueueActionSendToCourt:
			return s.sendToCourt(work, cs, item, req.CourtID)
		default:
			return &InvalidTransitionError{Reason: "unknown queue action " + string(req.Action)}
		}
	})
}

// markReady advances the underlying match PENDING -> READY.
func (s *Store) markReady(work *models.Snapshot, cs *changeSet, item *models.QueueItem) error {
	match := work.Match(item.MatchID)
	if match == nil {
		return &NotFoundError{Entity: models.EntityMatch, ID: item.MatchID}
	}
	if match.Status != models.MatchStatusPending {
		return &InvalidTransitionError{From: match.Status, To: models.MatchStatusReady}
	}

	match.Status = models.MatchStatusReady
	match.Version++
	match.UpdatedAt = cs.now
	cs.match(match, models.MatchFields{Status: matchStatusPtr(models.MatchStatusReady)})

	item.Version++
	item.UpdatedAt = cs.now
	cs.queueItem(item, models.QueueItemFields{})

	cs.event(events.EventTypeQueueUpdated, events.ActionUpdated)
	return nil
}

// pull removes the item from the queue without touching the match's own
// status; the match keeps whatever state it had.
func (s *Store) pull(work *models.Snapshot, cs *changeSet, item *models.QueueItem) error {
	cs.removeQueueItem(item.ID, item.Version+1)
	work.RemoveQueueItem(item.ID)

	cs.event(events.EventTypeQueueUpdated, events.ActionUpdated)
	return nil
}

// sendToCourt assigns the match to an idle court and starts it. The commit
// touches the match, the court and the queue item; their patches share the
// commit's sequence number in apply order.
func (s *Store) sendToCourt(work *models.Snapshot, cs *changeSet, item *models.QueueItem, courtID *uuid.UUID) error {
	if courtID == nil {
		return ErrCourtRequired
	}
	court := work.Court(*courtID)
	if court == nil {
		return &NotFoundError{Entity: models.EntityCourt, ID: *courtID}
	}
	if court.Status != models.CourtStatusIdle {
		return &CourtUnavailableError{CourtID: court.ID, Status: court.Status}
	}
	match := work.Match(item.MatchID)
	if match == nil {
		return &NotFoundError{Entity: models.EntityMatch, ID: item.MatchID}
	}
	// PENDING auto-advances through READY into IN_PROGRESS.
	if match.Status != models.MatchStatusReady && match.Status != models.MatchStatusPending {
		return &InvalidTransitionError{From: match.Status, To: models.MatchStatusInProgress}
	}

	match.Status = models.MatchStatusInProgress
	match.CourtID = courtID
	match.Version++
	match.UpdatedAt = cs.now
	cs.match(match, models.MatchFields{
		Status:  matchStatusPtr(models.MatchStatusInProgress),
		CourtID: courtID,
	})

	court.Status = models.CourtStatusPlaying
	court.Version++
	court.UpdatedAt = cs.now
	cs.court(court, models.CourtFields{Status: courtStatusPtr(models.CourtStatusPlaying)})

	cs.removeQueueItem(item.ID, item.Version+1)
	work.RemoveQueueItem(item.ID)

	cs.event(events.EventTypeMatchUpdated, events.ActionUpdated)
	return nil
}
