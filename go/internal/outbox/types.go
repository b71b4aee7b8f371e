package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxEvent is one durably recorded commit event awaiting publication.
// Payload is the commit's event envelope exactly as the store marshaled
// it; the outbox never rewrites payloads, only relays them.
type OutboxEvent struct {
	ID           uuid.UUID       `json:"id"`
	TournamentID uuid.UUID       `json:"tournament_id"`
	EventType    string          `json:"event_type"`
	Sequence     int64           `json:"sequence"`
	Payload      json.RawMessage `json:"payload"`
	CreatedAt    time.Time       `json:"created_at"`
	SentAt       *time.Time      `json:"sent_at,omitempty"`
}
