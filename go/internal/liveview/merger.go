package liveview

import (
	"errors"
	"fmt"
	"sort"

	"github.com/openrally/courtside/go/internal/events"
	"github.com/openrally/courtside/go/internal/models"
)

// ErrNoSnapshot is returned when an event frame arrives before any
// snapshot has been applied.
var ErrNoSnapshot = errors.New("no snapshot applied yet")

// SequenceGapError signals that an event frame skipped ahead of the local
// sequence. The caller must refetch a full snapshot; applying the frame
// would silently lose the missed commits.
type SequenceGapError struct {
	Have uint64
	Got  uint64
}

func (e *SequenceGapError) Error() string {
	return fmt.Sprintf("sequence gap: have %d, received %d", e.Have, e.Got)
}

// Apply merges a frame into the local snapshot and returns the resulting
// snapshot. It is pure: the input snapshot is never mutated, so callers
// may hold the old pointer across the call.
//
// Snapshot frames replace the local state when their sequence is at least
// the local one; stale snapshots are discarded. Event frames apply only
// when their sequence is exactly local+1: older events are discarded as
// duplicates, newer ones fail with SequenceGapError. The same frame stream
// therefore converges regardless of redelivery.
func Apply(current *models.Snapshot, frame events.Frame) (*models.Snapshot, error) {
	switch frame.Kind {
	case events.FrameKindSnapshot:
		if frame.Snapshot == nil {
			return nil, errors.New("snapshot frame without snapshot")
		}
		if current != nil && frame.Snapshot.Sequence < current.Sequence {
			return current, nil
		}
		return frame.Snapshot.Clone(), nil

	case events.FrameKindEvent:
		if frame.Event == nil {
			return nil, errors.New("event frame without event")
		}
		if current == nil {
			return nil, ErrNoSnapshot
		}
		seq := frame.Event.Sequence
		switch {
		case seq <= current.Sequence:
			return current, nil
		case seq > current.Sequence+1:
			return nil, &SequenceGapError{Have: current.Sequence, Got: seq}
		}
		return applyEvent(current, frame.Event)

	default:
		return nil, fmt.Errorf("unknown frame kind %q", frame.Kind)
	}
}

func applyEvent(current *models.Snapshot, ev *events.Event) (*models.Snapshot, error) {
	next := current.Clone()
	next.Sequence = ev.Sequence
	next.TakenAt = ev.Timestamp

	for _, patch := range ev.Patches {
		if err := applyPatch(next, patch); err != nil {
			return nil, fmt.Errorf("failed to apply patch at sequence %d: %w", ev.Sequence, err)
		}
	}
	return next, nil
}

func applyPatch(snap *models.Snapshot, patch models.Patch) error {
	switch patch.Entity {
	case models.EntityCourt:
		return applyCourtPatch(snap, patch)
	case models.EntityMatch:
		return applyMatchPatch(snap, patch)
	case models.EntityQueueItem:
		return applyQueuePatch(snap, patch)
	case models.EntityTeam:
		return applyTeamPatch(snap, patch)
	case models.EntityAlert:
		return applyAlertPatch(snap, patch)
	default:
		return fmt.Errorf("unknown entity kind %q", patch.Entity)
	}
}

func applyCourtPatch(snap *models.Snapshot, patch models.Patch) error {
	if patch.Removed {
		return fmt.Errorf("courts are never removed")
	}
	court := snap.Court(patch.EntityID)
	if court == nil {
		snap.Courts = append(snap.Courts, models.Court{
			ID:           patch.EntityID,
			TournamentID: snap.TournamentID,
		})
		court = &snap.Courts[len(snap.Courts)-1]
	}
	court.Version = patch.Version
	if f := patch.Court; f != nil {
		if f.Name != nil {
			court.Name = *f.Name
		}
		if f.Location != nil {
			court.Location = f.Location
		}
		if f.Status != nil {
			court.Status = *f.Status
		}
	}
	return nil
}

func applyMatchPatch(snap *models.Snapshot, patch models.Patch) error {
	if patch.Removed {
		return fmt.Errorf("matches are never removed")
	}
	match := snap.Match(patch.EntityID)
	if match == nil {
		snap.Matches = append(snap.Matches, models.Match{
			ID:           patch.EntityID,
			TournamentID: snap.TournamentID,
		})
		match = &snap.Matches[len(snap.Matches)-1]
	}
	match.Version = patch.Version
	f := patch.Match
	if f == nil {
		return nil
	}
	if f.Number != nil {
		match.Number = *f.Number
	}
	if f.Round != nil {
		match.Round = *f.Round
	}
	if f.Status != nil {
		match.Status = *f.Status
	}
	if f.CourtCleared {
		match.CourtID = nil
	} else if f.CourtID != nil {
		match.CourtID = f.CourtID
	}
	if f.RefereeID != nil {
		match.RefereeID = f.RefereeID
	}
	if f.TeamAID != nil {
		match.TeamAID = *f.TeamAID
	}
	if f.TeamBID != nil {
		match.TeamBID = *f.TeamBID
	}
	if f.BestOf != nil {
		match.BestOf = *f.BestOf
	}
	for _, game := range f.Games {
		upsertGame(match, game)
	}
	return nil
}

// upsertGame replaces the game with a matching sequence number or appends
// it, keeping games ordered by sequence.
func upsertGame(match *models.Match, game models.Game) {
	for i, g := range match.Games {
		if g.Seq == game.Seq {
			match.Games[i] = game
			return
		}
	}
	match.Games = append(match.Games, game)
	sort.Slice(match.Games, func(i, j int) bool {
		return match.Games[i].Seq < match.Games[j].Seq
	})
}

func applyQueuePatch(snap *models.Snapshot, patch models.Patch) error {
	if patch.Removed {
		snap.RemoveQueueItem(patch.EntityID)
		return nil
	}
	item := snap.QueueItem(patch.EntityID)
	if item == nil {
		snap.Queue = append(snap.Queue, models.QueueItem{
			ID:           patch.EntityID,
			TournamentID: snap.TournamentID,
		})
		item = &snap.Queue[len(snap.Queue)-1]
	}
	item.Version = patch.Version
	if f := patch.QueueItem; f != nil {
		if f.MatchID != nil {
			item.MatchID = *f.MatchID
		}
		if f.CourtID != nil {
			item.CourtID = f.CourtID
		}
		if f.Position != nil {
			item.Position = *f.Position
		}
	}
	sortQueue(snap.Queue)
	return nil
}

func applyTeamPatch(snap *models.Snapshot, patch models.Patch) error {
	if patch.Removed {
		snap.RemoveTeam(patch.EntityID)
		return nil
	}
	team := snap.Team(patch.EntityID)
	if team == nil {
		snap.Teams = append(snap.Teams, models.Team{
			ID:           patch.EntityID,
			TournamentID: snap.TournamentID,
		})
		team = &snap.Teams[len(snap.Teams)-1]
	}
	team.Version = patch.Version
	if f := patch.Team; f != nil {
		if f.Name != nil {
			team.Name = *f.Name
		}
		if f.Code != nil {
			team.Code = *f.Code
		}
		if f.Players != nil {
			team.Players = f.Players
		}
	}
	return nil
}

func applyAlertPatch(snap *models.Snapshot, patch models.Patch) error {
	if patch.Removed {
		snap.RemoveAlert(patch.EntityID)
		return nil
	}
	alert := snap.Alert(patch.EntityID)
	if alert == nil {
		snap.Alerts = append(snap.Alerts, models.Alert{
			ID:           patch.EntityID,
			TournamentID: snap.TournamentID,
		})
		alert = &snap.Alerts[len(snap.Alerts)-1]
	}
	alert.Version = patch.Version
	if f := patch.Alert; f != nil {
		if f.Kind != nil {
			alert.Kind = *f.Kind
		}
		if f.Message != nil {
			alert.Message = *f.Message
		}
		if f.MatchID != nil {
			alert.MatchID = f.MatchID
		}
		if f.Metadata != nil {
			alert.Metadata = f.Metadata
		}
		if f.Dismissible != nil {
			alert.Dismissible = *f.Dismissible
		}
		if f.CreatedAt != nil {
			alert.CreatedAt = *f.CreatedAt
		}
	}
	return nil
}

// sortQueue mirrors the server's queue ordering: ascending position, ties
// broken by ascending id.
func sortQueue(queue []models.QueueItem) {
	sort.SliceStable(queue, func(i, j int) bool {
		if queue[i].Position != queue[j].Position {
			return queue[i].Position < queue[j].Position
		}
		return queue[i].ID.String() < queue[j].ID.String()
	})
}
