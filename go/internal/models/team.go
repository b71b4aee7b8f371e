package models

import (
	"time"

	"github.com/google/uuid"
)

// Team represents a registered team in a tournament. Teams are read-mostly
// from the synchronization engine's perspective.
type Team struct {
	ID           uuid.UUID `json:"id"`
	TournamentID uuid.UUID `json:"tournament_id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	Players      []Player  `json:"players,omitempty"`
	Version      int64     `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
}

// Player represents a registered player on a team
type Player struct {
	ID     uuid.UUID `json:"id"`
	TeamID uuid.UUID `json:"team_id"`
	Name   string    `json:"name"`
}
