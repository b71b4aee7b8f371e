package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchStatus represents the lifecycle state of a match. Status advances
// monotonically PENDING -> READY -> IN_PROGRESS -> COMPLETED; CANCELLED is
// terminal from any state except COMPLETED.
type MatchStatus string

const (
	MatchStatusPending    MatchStatus = "PENDING"
	MatchStatusReady      MatchStatus = "READY"
	MatchStatusInProgress MatchStatus = "IN_PROGRESS"
	MatchStatusCompleted  MatchStatus = "COMPLETED"
	MatchStatusCancelled  MatchStatus = "CANCELLED"
)

// Side identifies one side of a match
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// Game is a single game within a match. Games are append-only: a game is
// immutable once a later game exists.
type Game struct {
	Seq       int  `json:"seq"`
	ScoreA    int  `json:"score_a"`
	ScoreB    int  `json:"score_b"`
	Serving   Side `json:"serving"`
	TimeoutsA int  `json:"timeouts_a"`
	TimeoutsB int  `json:"timeouts_b"`
}

// Match represents a scheduled match within a tournament
type Match struct {
	ID           uuid.UUID   `json:"id"`
	TournamentID uuid.UUID   `json:"tournament_id"`
	Number       int         `json:"number"`
	Round        string      `json:"round"`
	CourtID      *uuid.UUID  `json:"court_id,omitempty"`
	RefereeID    *uuid.UUID  `json:"referee_id,omitempty"`
	TeamAID      uuid.UUID   `json:"team_a_id"`
	TeamBID      uuid.UUID   `json:"team_b_id"`
	Games        []Game      `json:"games"`
	Status       MatchStatus `json:"status"`
	BestOf       int         `json:"best_of"`
	Version      int64       `json:"version"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// WinsNeeded returns the number of game wins required to take the match.
func (m *Match) WinsNeeded() int {
	return (m.BestOf + 1) / 2
}

// GameWins counts completed game wins per side.
func (m *Match) GameWins() (winsA, winsB int) {
	for _, g := range m.Games {
		switch {
		case g.ScoreA > g.ScoreB:
			winsA++
		case g.ScoreB > g.ScoreA:
			winsB++
		}
	}
	return winsA, winsB
}

// Winner returns the winning side if the best-of-N condition is satisfied.
func (m *Match) Winner() (Side, bool) {
	winsA, winsB := m.GameWins()
	need := m.WinsNeeded()
	switch {
	case winsA >= need:
		return SideA, true
	case winsB >= need:
		return SideB, true
	}
	return "", false
}
