package live

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/openrally/courtside/go/internal/events"
	"github.com/openrally/courtside/go/internal/models"
)

// changeSet accumulates the minimal patches and the full upserted rows for
// one commit. Mutators record every entity they touch; buildCommit turns
// the accumulated rows into the persistence unit.
type changeSet struct {
	now       time.Time
	eventType events.EventType
	action    events.Action
	patches   []models.Patch
	commit    Commit
}

func (cs *changeSet) event(t events.EventType, a events.Action) {
	cs.eventType = t
	cs.action = a
}

func (cs *changeSet) court(c *models.Court, fields models.CourtFields) {
	cs.patches = append(cs.patches, models.Patch{
		Entity:   models.EntityCourt,
		EntityID: c.ID,
		Version:  c.Version,
		Court:    &fields,
	})
	cs.commit.Courts = append(cs.commit.Courts, *c)
}

func (cs *changeSet) match(m *models.Match, fields models.MatchFields) {
	cs.patches = append(cs.patches, models.Patch{
		Entity:   models.EntityMatch,
		EntityID: m.ID,
		Version:  m.Version,
		Match:    &fields,
	})
	cs.commit.Matches = append(cs.commit.Matches, *m)
}

func (cs *changeSet) queueItem(q *models.QueueItem, fields models.QueueItemFields) {
	cs.patches = append(cs.patches, models.Patch{
		Entity:    models.EntityQueueItem,
		EntityID:  q.ID,
		Version:   q.Version,
		QueueItem: &fields,
	})
	cs.commit.QueueUpserts = append(cs.commit.QueueUpserts, *q)
}

func (cs *changeSet) removeQueueItem(id uuid.UUID, version int64) {
	cs.patches = append(cs.patches, models.Patch{
		Entity:   models.EntityQueueItem,
		EntityID: id,
		Version:  version,
		Removed:  true,
	})
	cs.commit.QueueRemovals = append(cs.commit.QueueRemovals, id)
}

func (cs *changeSet) team(t *models.Team, fields models.TeamFields) {
	cs.patches = append(cs.patches, models.Patch{
		Entity:   models.EntityTeam,
		EntityID: t.ID,
		Version:  t.Version,
		Team:     &fields,
	})
	cs.commit.Teams = append(cs.commit.Teams, *t)
}

func (cs *changeSet) removeTeam(id uuid.UUID, version int64) {
	cs.patches = append(cs.patches, models.Patch{
		Entity:   models.EntityTeam,
		EntityID: id,
		Version:  version,
		Removed:  true,
	})
	cs.commit.TeamRemovals = append(cs.commit.TeamRemovals, id)
}

func (cs *changeSet) alert(a *models.Alert, fields models.AlertFields) {
	cs.patches = append(cs.patches, models.Patch{
		Entity:   models.EntityAlert,
		EntityID: a.ID,
		Version:  a.Version,
		Alert:    &fields,
	})
	cs.commit.Alerts = append(cs.commit.Alerts, *a)
}

func (cs *changeSet) removeAlert(id uuid.UUID, version int64) {
	cs.patches = append(cs.patches, models.Patch{
		Entity:   models.EntityAlert,
		EntityID: id,
		Version:  version,
		Removed:  true,
	})
	cs.commit.AlertRemovals = append(cs.commit.AlertRemovals, id)
}

func (cs *changeSet) buildCommit(tournamentID uuid.UUID, sequence uint64, ev *events.Event) Commit {
	c := cs.commit
	c.TournamentID = tournamentID
	c.Sequence = sequence
	c.Event = ev
	return c
}

// sortQueue orders queue items by ascending position, ties broken by
// ascending id.
func sortQueue(queue []models.QueueItem) {
	sort.SliceStable(queue, func(i, j int) bool {
		if queue[i].Position != queue[j].Position {
			return queue[i].Position < queue[j].Position
		}
		return queue[i].ID.String() < queue[j].ID.String()
	})
}

// nextQueuePosition returns one past the highest position in use.
func nextQueuePosition(queue []models.QueueItem) int {
	max := 0
	for _, q := range queue {
		if q.Position > max {
			max = q.Position
		}
	}
	return max + 1
}

func courtStatusPtr(s models.CourtStatus) *models.CourtStatus { return &s }
func matchStatusPtr(s models.MatchStatus) *models.MatchStatus { return &s }
func intPtr(v int) *int                                       { return &v }
func strPtr(v string) *string                                 { return &v }
func boolPtr(v bool) *bool                                    { return &v }
