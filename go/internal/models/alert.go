package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// AlertKind classifies an alert
type AlertKind string

const (
	AlertKindConflict       AlertKind = "conflict"
	AlertKindMissingReferee AlertKind = "missing_referee"
	AlertKindDelay          AlertKind = "delay"
	AlertKindWarning        AlertKind = "warning"
)

// Alert is an ephemeral notification attached to a tournament
type Alert struct {
	ID           uuid.UUID       `json:"id"`
	TournamentID uuid.UUID       `json:"tournament_id"`
	Kind         AlertKind       `json:"kind"`
	Message      string          `json:"message"`
	MatchID      *uuid.UUID      `json:"match_id,omitempty"`
	Metadata     json.RawMessage `json:"metadata,omitempty"`
	Dismissible  bool            `json:"dismissible"`
	Version      int64           `json:"version"`
	CreatedAt    time.Time       `json:"created_at"`
}
