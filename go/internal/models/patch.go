package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EntityKind identifies the entity a patch applies to
type EntityKind string

const (
	EntityTournament EntityKind = "tournament"

	EntityCourt     EntityKind = "court"
	EntityMatch     EntityKind = "match"
	EntityQueueItem EntityKind = "queue_item"
	EntityTeam      EntityKind = "team"
	EntityAlert     EntityKind = "alert"
)

// Patch is the smallest update that lets a remote merger reach the same
// state as the store: one entity, its new version, and only the changed
// fields. Exactly one of the per-entity field structs is set, matching
// Entity. Removed marks the entity deleted; no field struct accompanies a
// removal.
type Patch struct {
	Entity   EntityKind `json:"entity"`
	EntityID uuid.UUID  `json:"entity_id"`
	Version  int64      `json:"version"`
	Removed  bool       `json:"removed,omitempty"`

	Court     *CourtFields     `json:"court,omitempty"`
	Match     *MatchFields     `json:"match,omitempty"`
	QueueItem *QueueItemFields `json:"queue_item,omitempty"`
	Team      *TeamFields      `json:"team,omitempty"`
	Alert     *AlertFields     `json:"alert,omitempty"`
}

// CourtFields carries the changed fields of a court patch
type CourtFields struct {
	Name     *string      `json:"name,omitempty"`
	Location *string      `json:"location,omitempty"`
	Status   *CourtStatus `json:"status,omitempty"`
}

// MatchFields carries the changed fields of a match patch. Games holds only
// the games touched by the mutation; the merger upserts them by sequence
// number. CourtCleared distinguishes "court reference removed" from "court
// reference unchanged", which a nil CourtID alone cannot express.
type MatchFields struct {
	Number       *int         `json:"number,omitempty"`
	Round        *string      `json:"round,omitempty"`
	Status       *MatchStatus `json:"status,omitempty"`
	CourtID      *uuid.UUID   `json:"court_id,omitempty"`
	CourtCleared bool         `json:"court_cleared,omitempty"`
	RefereeID    *uuid.UUID   `json:"referee_id,omitempty"`
	TeamAID      *uuid.UUID   `json:"team_a_id,omitempty"`
	TeamBID      *uuid.UUID   `json:"team_b_id,omitempty"`
	BestOf       *int         `json:"best_of,omitempty"`
	Games        []Game       `json:"games,omitempty"`
}

// QueueItemFields carries the changed fields of a queue item patch
type QueueItemFields struct {
	MatchID  *uuid.UUID `json:"match_id,omitempty"`
	CourtID  *uuid.UUID `json:"court_id,omitempty"`
	Position *int       `json:"position,omitempty"`
}

// TeamFields carries the changed fields of a team patch
type TeamFields struct {
	Name    *string  `json:"name,omitempty"`
	Code    *string  `json:"code,omitempty"`
	Players []Player `json:"players,omitempty"`
}

// AlertFields carries the fields of an alert patch. Alerts are created and
// dismissed, never partially updated, so a create patch carries every field.
type AlertFields struct {
	Kind        *AlertKind      `json:"kind,omitempty"`
	Message     *string         `json:"message,omitempty"`
	MatchID     *uuid.UUID      `json:"match_id,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	Dismissible *bool           `json:"dismissible,omitempty"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
}
