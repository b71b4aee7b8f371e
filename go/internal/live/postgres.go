package live

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/openrally/courtside/go/internal/live/db"
	"github.com/openrally/courtside/go/internal/models"
	"github.com/openrally/courtside/go/internal/sqlutil"
	"github.com/sqlc-dev/pqtype"
)

// PostgresRepository persists tournament state through the sqlc query layer.
type PostgresRepository struct {
	db      *sql.DB
	queries *db.Queries
}

// NewPostgresRepository creates a repository over an open database handle.
func NewPostgresRepository(database *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:      database,
		queries: db.New(database),
	}
}

// CreateTournament inserts a tournament row at sequence 0.
func (r *PostgresRepository) CreateTournament(ctx context.Context, t models.Tournament) error {
	_, err := r.queries.CreateTournament(ctx, db.CreateTournamentParams{
		ID:        t.ID,
		Name:      t.Name,
		Sport:     t.Sport,
		BestOf:    int32(t.BestOf),
		Location:  sqlutil.ToSqlString(t.Location),
		StartsAt:  sqlutil.ToSqlTime(t.StartsAt),
		CreatedAt: t.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

// ListTournaments returns every persisted tournament.
func (r *PostgresRepository) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	rows, err := r.queries.ListTournaments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	tournaments := make([]models.Tournament, len(rows))
	for i, row := range rows {
		tournaments[i] = r.dbTournamentToModel(row)
	}
	return tournaments, nil
}

// LoadSnapshot reassembles a tournament's full snapshot from its rows.
func (r *PostgresRepository) LoadSnapshot(ctx context.Context, tournamentID uuid.UUID) (*models.Snapshot, error) {
	t, err := r.queries.GetTournament(ctx, tournamentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{Entity: models.EntityTournament, ID: tournamentID}
		}
		return nil, fmt.Errorf("failed to get tournament: %w", err)
	}

	snap := &models.Snapshot{
		TournamentID: tournamentID,
		Sequence:     uint64(t.Sequence),
		Tournament:   r.dbTournamentToModel(t),
	}

	courts, err := r.queries.ListCourtsByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courts: %w", err)
	}
	for _, row := range courts {
		snap.Courts = append(snap.Courts, models.Court{
			ID:           row.ID,
			TournamentID: row.TournamentID,
			Name:         row.Name,
			Location:     sqlutil.FromSqlStringPtr(row.Location),
			Status:       models.CourtStatus(row.Status),
			Version:      row.Version,
			UpdatedAt:    row.UpdatedAt,
		})
	}

	matches, err := r.queries.ListMatchesByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	for _, row := range matches {
		m, err := r.dbMatchToModel(row)
		if err != nil {
			return nil, err
		}
		snap.Matches = append(snap.Matches, m)
	}

	queue, err := r.queries.ListQueueByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list queue: %w", err)
	}
	for _, row := range queue {
		snap.Queue = append(snap.Queue, models.QueueItem{
			ID:           row.ID,
			TournamentID: row.TournamentID,
			MatchID:      row.MatchID,
			CourtID:      sqlutil.FromNullUUID(row.CourtID),
			Position:     int(row.Position),
			Version:      row.Version,
			UpdatedAt:    row.UpdatedAt,
		})
	}

	teams, err := r.queries.ListTeamsByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, row := range teams {
		team := models.Team{
			ID:           row.ID,
			TournamentID: row.TournamentID,
			Name:         row.Name,
			Code:         row.Code,
			Version:      row.Version,
			CreatedAt:    row.CreatedAt,
		}
		if len(row.Players) > 0 {
			if err := json.Unmarshal(row.Players, &team.Players); err != nil {
				return nil, fmt.Errorf("failed to unmarshal players for team %s: %w", row.ID, err)
			}
		}
		snap.Teams = append(snap.Teams, team)
	}

	alerts, err := r.queries.ListAlertsByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	for _, row := range alerts {
		alert := models.Alert{
			ID:           row.ID,
			TournamentID: row.TournamentID,
			Kind:         models.AlertKind(row.Kind),
			Message:      row.Message,
			MatchID:      sqlutil.FromNullUUID(row.MatchID),
			Dismissible:  row.Dismissible,
			Version:      row.Version,
			CreatedAt:    row.CreatedAt,
		}
		if row.Metadata.Valid {
			alert.Metadata = row.Metadata.RawMessage
		}
		snap.Alerts = append(snap.Alerts, alert)
	}

	return snap, nil
}

// ApplyCommit writes every row change of one accepted mutation plus its
// outbox event and the new sequence number in a single transaction.
func (r *PostgresRepository) ApplyCommit(ctx context.Context, commit Commit) error {
	payload, err := json.Marshal(commit.Event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return sqlutil.Run(ctx, r.db,
		func(tx *sql.Tx) *db.Queries { return r.queries.WithTx(tx) },
		func(q *db.Queries) error {
			for _, c := range commit.Courts {
				if err := q.UpsertCourt(ctx, db.UpsertCourtParams{
					ID:           c.ID,
					TournamentID: c.TournamentID,
					Name:         c.Name,
					Location:     sqlutil.ToSqlString(c.Location),
					Status:       string(c.Status),
					Version:      c.Version,
					UpdatedAt:    c.UpdatedAt,
				}); err != nil {
					return fmt.Errorf("failed to upsert court %s: %w", c.ID, err)
				}
			}
			for _, m := range commit.Matches {
				params, err := r.matchToParams(m)
				if err != nil {
					return err
				}
				if err := q.UpsertMatch(ctx, params); err != nil {
					return fmt.Errorf("failed to upsert match %s: %w", m.ID, err)
				}
			}
			for _, item := range commit.QueueUpserts {
				if err := q.UpsertQueueItem(ctx, db.UpsertQueueItemParams{
					ID:           item.ID,
					TournamentID: item.TournamentID,
					MatchID:      item.MatchID,
					CourtID:      sqlutil.ToNullUUID(item.CourtID),
					Position:     int32(item.Position),
					Version:      item.Version,
					UpdatedAt:    item.UpdatedAt,
				}); err != nil {
					return fmt.Errorf("failed to upsert queue item %s: %w", item.ID, err)
				}
			}
			for _, id := range commit.QueueRemovals {
				if err := q.DeleteQueueItem(ctx, id); err != nil {
					return fmt.Errorf("failed to delete queue item %s: %w", id, err)
				}
			}
			for _, team := range commit.Teams {
				players, err := json.Marshal(team.Players)
				if err != nil {
					return fmt.Errorf("failed to marshal players: %w", err)
				}
				if err := q.UpsertTeam(ctx, db.UpsertTeamParams{
					ID:           team.ID,
					TournamentID: team.TournamentID,
					Name:         team.Name,
					Code:         team.Code,
					Players:      players,
					Version:      team.Version,
					CreatedAt:    team.CreatedAt,
				}); err != nil {
					return fmt.Errorf("failed to upsert team %s: %w", team.ID, err)
				}
			}
			for _, id := range commit.TeamRemovals {
				if err := q.DeleteTeam(ctx, id); err != nil {
					return fmt.Errorf("failed to delete team %s: %w", id, err)
				}
			}
			for _, a := range commit.Alerts {
				if err := q.UpsertAlert(ctx, db.UpsertAlertParams{
					ID:           a.ID,
					TournamentID: a.TournamentID,
					Kind:         string(a.Kind),
					Message:      a.Message,
					MatchID:      sqlutil.ToNullUUID(a.MatchID),
					Metadata:     pqtype.NullRawMessage{RawMessage: a.Metadata, Valid: len(a.Metadata) > 0},
					Dismissible:  a.Dismissible,
					Version:      a.Version,
					CreatedAt:    a.CreatedAt,
				}); err != nil {
					return fmt.Errorf("failed to upsert alert %s: %w", a.ID, err)
				}
			}
			for _, id := range commit.AlertRemovals {
				if err := q.DeleteAlert(ctx, id); err != nil {
					return fmt.Errorf("failed to delete alert %s: %w", id, err)
				}
			}

			if err := q.InsertOutboxEvent(ctx, db.InsertOutboxEventParams{
				ID:           commit.Event.ID,
				TournamentID: commit.TournamentID,
				EventType:    string(commit.Event.Type),
				Sequence:     int64(commit.Sequence),
				Payload:      payload,
				CreatedAt:    commit.Event.Timestamp,
			}); err != nil {
				return fmt.Errorf("failed to insert outbox event: %w", err)
			}

			if err := q.UpdateTournamentSequence(ctx, db.UpdateTournamentSequenceParams{
				ID:       commit.TournamentID,
				Sequence: int64(commit.Sequence),
			}); err != nil {
				return fmt.Errorf("failed to update tournament sequence: %w", err)
			}
			return nil
		})
}

func (r *PostgresRepository) dbTournamentToModel(row db.Tournament) models.Tournament {
	return models.Tournament{
		ID:        row.ID,
		Name:      row.Name,
		Sport:     row.Sport,
		BestOf:    int(row.BestOf),
		Location:  sqlutil.FromSqlStringPtr(row.Location),
		StartsAt:  sqlutil.FromSqlTime(row.StartsAt),
		CreatedAt: row.CreatedAt,
	}
}

func (r *PostgresRepository) dbMatchToModel(row db.Match) (models.Match, error) {
	m := models.Match{
		ID:           row.ID,
		TournamentID: row.TournamentID,
		Number:       int(row.Number),
		Round:        row.Round,
		CourtID:      sqlutil.FromNullUUID(row.CourtID),
		RefereeID:    sqlutil.FromNullUUID(row.RefereeID),
		TeamAID:      row.TeamAID,
		TeamBID:      row.TeamBID,
		Status:       models.MatchStatus(row.Status),
		BestOf:       int(row.BestOf),
		Version:      row.Version,
		UpdatedAt:    row.UpdatedAt,
	}
	if len(row.Games) > 0 {
		if err := json.Unmarshal(row.Games, &m.Games); err != nil {
			return m, fmt.Errorf("failed to unmarshal games for match %s: %w", row.ID, err)
		}
	}
	return m, nil
}

func (r *PostgresRepository) matchToParams(m models.Match) (db.UpsertMatchParams, error) {
	games, err := json.Marshal(m.Games)
	if err != nil {
		return db.UpsertMatchParams{}, fmt.Errorf("failed to marshal games: %w", err)
	}
	return db.UpsertMatchParams{
		ID:           m.ID,
		TournamentID: m.TournamentID,
		Number:       int32(m.Number),
		Round:        m.Round,
		CourtID:      sqlutil.ToNullUUID(m.CourtID),
		RefereeID:    sqlutil.ToNullUUID(m.RefereeID),
		TeamAID:      m.TeamAID,
		TeamBID:      m.TeamBID,
		Games:        games,
		Status:       string(m.Status),
		BestOf:       int32(m.BestOf),
		Version:      m.Version,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}
