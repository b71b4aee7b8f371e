package models

import (
	"time"

	"github.com/google/uuid"
)

// Tournament represents a single tournament in the system. It owns all of
// its courts, matches, queue items and alerts; deleting a tournament
// deletes the children with it.
type Tournament struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Sport     string     `json:"sport"`
	BestOf    int        `json:"best_of"`
	Location  *string    `json:"location,omitempty"`
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
