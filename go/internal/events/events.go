package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/openrally/courtside/go/internal/models"
)

// EventType names the tournament-scoped channel event
type EventType string

const (
	EventTypeMatchUpdated EventType = "match.updated"
	EventTypeScoreUpdated EventType = "score.updated"
	EventTypeQueueUpdated EventType = "queue.updated"
	EventTypeTeamsUpdated EventType = "teams.updated"
	EventTypeCourtUpdated EventType = "court.updated"
	EventTypeAlertUpdated EventType = "alert.updated"
)

// Action qualifies what happened to the event's primary entity
type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionCompleted Action = "completed"
	ActionCancelled Action = "cancelled"
	ActionEnqueued  Action = "enqueued"
	ActionReordered Action = "reordered"
	ActionDeleted   Action = "deleted"
	ActionDismissed Action = "dismissed"
	ActionRaised    Action = "raised"
)

// Event is one accepted mutation's fan-out envelope. Every patch inside
// shares the envelope's sequence number; a commit that touches two
// entities (send-to-court, completion) carries its patches in apply order
// under that single sequence. Events for one tournament are totally
// ordered by Sequence.
type Event struct {
	ID           uuid.UUID      `json:"id"`
	TournamentID uuid.UUID      `json:"tournament_id"`
	Type         EventType      `json:"type"`
	Action       Action         `json:"action"`
	Sequence     uint64         `json:"sequence"`
	Timestamp    time.Time      `json:"timestamp"`
	Patches      []models.Patch `json:"patches"`
}
