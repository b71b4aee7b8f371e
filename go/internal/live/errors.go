package live

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/openrally/courtside/go/internal/models"
)

// ErrCourtRequired is returned when SEND_TO_COURT is submitted without a court id
var ErrCourtRequired = errors.New("send to court requires a court id")

// VersionConflictError reports a stale version supplied for one or more
// entities. It is the expected, non-fatal signal that the caller must
// re-fetch current state and resubmit; the rejected mutation has no
// partial effect.
type VersionConflictError struct {
	Entity models.EntityKind
	IDs    []uuid.UUID
}

func (e *VersionConflictError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("version conflict on %s: %s", e.Entity, strings.Join(ids, ", "))
}

// DuplicateItemError reports a batch naming the same entity more than
// once. Applying such a batch would bump one version twice under a
// single accepted mutation, so it is rejected before any validation.
type DuplicateItemError struct {
	Entity models.EntityKind
	ID     uuid.UUID
}

func (e *DuplicateItemError) Error() string {
	return fmt.Sprintf("duplicate %s %s in batch", e.Entity, e.ID)
}

// InvalidTransitionError reports a state machine rule violation. It is
// surfaced to the caller and not retried automatically.
type InvalidTransitionError struct {
	From   models.MatchStatus
	To     models.MatchStatus
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid transition: %s", e.Reason)
	}
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// CourtUnavailableError reports that the target court is not idle
type CourtUnavailableError struct {
	CourtID uuid.UUID
	Status  models.CourtStatus
}

func (e *CourtUnavailableError) Error() string {
	return fmt.Sprintf("court %s unavailable: status %s", e.CourtID, e.Status)
}

// NotFoundError reports an unknown entity id
type NotFoundError struct {
	Entity models.EntityKind
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}
