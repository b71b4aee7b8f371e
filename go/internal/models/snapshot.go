package models

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is a consistent point-in-time aggregate of one tournament's
// live entities, stamped with the tournament's global sequence number.
// The snapshot store owns the canonical copy; every other holder owns a
// derived, eventually-consistent copy rebuilt by merging.
type Snapshot struct {
	TournamentID uuid.UUID   `json:"tournament_id"`
	Sequence     uint64      `json:"sequence"`
	Tournament   Tournament  `json:"tournament"`
	Courts       []Court     `json:"courts"`
	Matches      []Match     `json:"matches"`
	Queue        []QueueItem `json:"queue"`
	Teams        []Team      `json:"teams"`
	Alerts       []Alert     `json:"alerts"`
	TakenAt      time.Time   `json:"taken_at"`
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.Courts = append([]Court(nil), s.Courts...)
	out.Queue = append([]QueueItem(nil), s.Queue...)
	out.Alerts = append([]Alert(nil), s.Alerts...)
	out.Matches = make([]Match, len(s.Matches))
	for i, m := range s.Matches {
		m.Games = append([]Game(nil), m.Games...)
		out.Matches[i] = m
	}
	out.Teams = make([]Team, len(s.Teams))
	for i, t := range s.Teams {
		t.Players = append([]Player(nil), t.Players...)
		out.Teams[i] = t
	}
	return &out
}

// Court returns a pointer into the snapshot's court slice, or nil.
func (s *Snapshot) Court(id uuid.UUID) *Court {
	for i := range s.Courts {
		if s.Courts[i].ID == id {
			return &s.Courts[i]
		}
	}
	return nil
}

// Match returns a pointer into the snapshot's match slice, or nil.
func (s *Snapshot) Match(id uuid.UUID) *Match {
	for i := range s.Matches {
		if s.Matches[i].ID == id {
			return &s.Matches[i]
		}
	}
	return nil
}

// QueueItem returns a pointer into the snapshot's queue slice, or nil.
func (s *Snapshot) QueueItem(id uuid.UUID) *QueueItem {
	for i := range s.Queue {
		if s.Queue[i].ID == id {
			return &s.Queue[i]
		}
	}
	return nil
}

// Team returns a pointer into the snapshot's team slice, or nil.
func (s *Snapshot) Team(id uuid.UUID) *Team {
	for i := range s.Teams {
		if s.Teams[i].ID == id {
			return &s.Teams[i]
		}
	}
	return nil
}

// Alert returns a pointer into the snapshot's alert slice, or nil.
func (s *Snapshot) Alert(id uuid.UUID) *Alert {
	for i := range s.Alerts {
		if s.Alerts[i].ID == id {
			return &s.Alerts[i]
		}
	}
	return nil
}

// RemoveQueueItem deletes a queue item by id, preserving order.
func (s *Snapshot) RemoveQueueItem(id uuid.UUID) {
	for i := range s.Queue {
		if s.Queue[i].ID == id {
			s.Queue = append(s.Queue[:i], s.Queue[i+1:]...)
			return
		}
	}
}

// RemoveAlert deletes an alert by id, preserving order.
func (s *Snapshot) RemoveAlert(id uuid.UUID) {
	for i := range s.Alerts {
		if s.Alerts[i].ID == id {
			s.Alerts = append(s.Alerts[:i], s.Alerts[i+1:]...)
			return
		}
	}
}

// RemoveTeam deletes a team by id, preserving order.
func (s *Snapshot) RemoveTeam(id uuid.UUID) {
	for i := range s.Teams {
		if s.Teams[i].ID == id {
			s.Teams = append(s.Teams[:i], s.Teams[i+1:]...)
			return
		}
	}
}
