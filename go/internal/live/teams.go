package live

import (
	"context"

	"github.com/google/uuid"
	"github.com/openrally/courtside/go/internal/events"
	"github.com/openrally/courtside/go/internal/models"
)

// UpsertTeamRequest creates or updates a team roster entry
type UpsertTeamRequest struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Code    string          `json:"code"`
	Players []models.Player `json:"players,omitempty"`
}

// UpsertTeam creates the team if its id is unknown, otherwise updates it.
func (s *Store) UpsertTeam(ctx context.Context, tournamentID uuid.UUID, req UpsertTeamRequest) (*events.Event, error) {
	return s.commit(ctx, tournamentID, func(work *models.Snapshot, cs *changeSet) error {
		if req.ID == uuid.Nil {
			req.ID = uuid.New()
		}
		fields := models.TeamFields{
			Name:    strPtr(req.Name),
			Code:    strPtr(req.Code),
			Players: req.Players,
		}

		if team := work.Team(req.ID); team != nil {
			team.Name = req.Name
			team.Code = req.Code
			if req.Players != nil {
				team.Players = req.Players
			}
			team.Version++
			cs.team(team, fields)
			cs.event(events.EventTypeTeamsUpdated, events.ActionUpdated)
			return nil
		}

		team := models.Team{
			ID:           req.ID,
			TournamentID: tournamentID,
			Name:         req.Name,
			Code:         req.Code,
			Players:      req.Players,
			Version:      1,
			CreatedAt:    cs.now,
		}
		work.Teams = append(work.Teams, team)
		cs.team(&team, fields)
		cs.event(events.EventTypeTeamsUpdated, events.ActionCreated)
		return nil
	})
}

// DeleteTeam removes a team from the roster.
func (s *Store) DeleteTeam(ctx context.Context, tournamentID, teamID uuid.UUID) (*events.Event, error) {
	return s.commit(ctx, tournamentID, func(work *models.Snapshot, cs *changeSet) error {
		team := work.Team(teamID)
		if team == nil {
			return &NotFoundError{Entity: models.EntityTeam, ID: teamID}
		}
		cs.removeTeam(team.ID, team.Version+1)
		work.RemoveTeam(team.ID)
		cs.event(events.EventTypeTeamsUpdated, events.ActionDeleted)
		return nil
	})
}
