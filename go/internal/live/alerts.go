package live

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/openrally/courtside/go/internal/events"
	"github.com/openrally/courtside/go/internal/models"
)

// RaiseAlertRequest creates an alert on a tournament
type RaiseAlertRequest struct {
	Kind        models.AlertKind `json:"kind"`
	Message     string           `json:"message"`
	MatchID     *uuid.UUID       `json:"match_id,omitempty"`
	Metadata    json.RawMessage  `json:"metadata,omitempty"`
	Dismissible bool             `json:"dismissible"`
}

// RaiseAlert attaches an ephemeral alert to the tournament.
func (s *Store) RaiseAlert(ctx context.Context, tournamentID uuid.UUID, req RaiseAlertRequest) (*events.Event, error) {
	return s.commit(ctx, tournamentID, func(work *models.Snapshot, cs *changeSet) error {
		alert := models.Alert{
			ID:           uuid.New(),
			TournamentID: tournamentID,
			Kind:         req.Kind,
			Message:      req.Message,
			MatchID:      req.MatchID,
			Metadata:     req.Metadata,
			Dismissible:  req.Dismissible,
			Version:      1,
			CreatedAt:    cs.now,
		}
		work.Alerts = append(work.Alerts, alert)
		cs.alert(&alert, models.AlertFields{
			Kind:        &alert.Kind,
			Message:     strPtr(alert.Message),
			MatchID:     alert.MatchID,
			Metadata:    alert.Metadata,
			Dismissible: boolPtr(alert.Dismissible),
			CreatedAt:   &alert.CreatedAt,
		})
		cs.event(events.EventTypeAlertUpdated, events.ActionRaised)
		return nil
	})
}

// DismissAlert removes a dismissible alert.
func (s *Store) DismissAlert(ctx context.Context, tournamentID, alertID uuid.UUID, version int64) (*events.Event, error) {
	return s.commit(ctx, tournamentID, func(work *models.Snapshot, cs *changeSet) error {
		alert := work.Alert(alertID)
		if alert == nil {
			return &NotFoundError{Entity: models.EntityAlert, ID: alertID}
		}
		if alert.Version != version {
			return &VersionConflictError{Entity: models.EntityAlert, IDs: []uuid.UUID{alertID}}
		}
		if !alert.Dismissible {
			return &InvalidTransitionError{Reason: "alert is not dismissible"}
		}
		cs.removeAlert(alert.ID, alert.Version+1)
		work.RemoveAlert(alert.ID)
		cs.event(events.EventTypeAlertUpdated, events.ActionDismissed)
		return nil
	})
}
