package live

import (
	"context"

	"github.com/google/uuid"
	"github.com/openrally/courtside/go/internal/events"
	"github.com/openrally/courtside/go/internal/models"
)

// Commit is the persistence unit for one accepted mutation: the full rows
// it upserted, the ids it removed, and the event to append to the outbox.
// A repository must apply all of it in a single transaction so sequence
// numbers never gap or duplicate.
type Commit struct {
	TournamentID uuid.UUID
	Sequence     uint64
	Event        *events.Event

	Courts        []models.Court
	Matches       []models.Match
	QueueUpserts  []models.QueueItem
	QueueRemovals []uuid.UUID
	Teams         []models.Team
	TeamRemovals  []uuid.UUID
	Alerts        []models.Alert
	AlertRemovals []uuid.UUID
}

// Repository is the durable store behind the snapshot store. The engine
// assumes a relational store but depends only on this surface.
type Repository interface {
	CreateTournament(ctx context.Context, t models.Tournament) error
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	LoadSnapshot(ctx context.Context, tournamentID uuid.UUID) (*models.Snapshot, error)
	ApplyCommit(ctx context.Context, commit Commit) error
}
