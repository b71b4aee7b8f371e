package models

import (
	"time"

	"github.com/google/uuid"
)

// QueueItem is a pending-match entry in a tournament's priority queue.
// Position defines the priority ordering; it is unique within a tournament
// but need not be dense. Version increments by exactly 1 on every accepted
// mutation and is the compare-and-swap token for the queue mutation
// protocol. There is exactly one queue item per not-yet-courted match; the
// item is removed when the match is sent to a court.
type QueueItem struct {
	ID           uuid.UUID  `json:"id"`
	TournamentID uuid.UUID  `json:"tournament_id"`
	MatchID      uuid.UUID  `json:"match_id"`
	CourtID      *uuid.UUID `json:"court_id,omitempty"`
	Position     int        `json:"position"`
	Version      int64      `json:"version"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// QueueAction is a single-item queue mutation
type QueueAction string

const (
	QueueActionMarkReady   QueueAction = "MARK_READY"
	QueueActionPull        QueueAction = "PULL"
	QueueActionSendToCourt QueueAction = "SEND_TO_COURT"
)
