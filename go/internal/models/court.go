package models

import (
	"time"

	"github.com/google/uuid"
)

// CourtStatus represents the lifecycle state of a court
type CourtStatus string

const (
	CourtStatusIdle     CourtStatus = "idle"
	CourtStatusPlaying  CourtStatus = "playing"
	CourtStatusHold     CourtStatus = "hold"
	CourtStatusCleaning CourtStatus = "cleaning"
)

// Court represents a physical court within a tournament
type Court struct {
	ID           uuid.UUID   `json:"id"`
	TournamentID uuid.UUID   `json:"tournament_id"`
	Name         string      `json:"name"`
	Location     *string     `json:"location,omitempty"`
	Status       CourtStatus `json:"status"`
	Version      int64       `json:"version"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
