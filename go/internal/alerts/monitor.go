package alerts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/openrally/courtside/go/internal/events"
	"github.com/openrally/courtside/go/internal/live"
	"github.com/openrally/courtside/go/internal/models"
	"github.com/rs/zerolog/log"
)

// AlertRaiser raises an alert on a tournament. The live store satisfies
// this.
type AlertRaiser interface {
	RaiseAlert(ctx context.Context, tournamentID uuid.UUID, req live.RaiseAlertRequest) (*events.Event, error)
}

// Config holds configuration for the delay monitor
type Config struct {
	// DelayThreshold is how long a match may run before a delay alert
	// is raised against it.
	DelayThreshold time.Duration
}

func DefaultConfig() Config {
	return Config{
		DelayThreshold: 45 * time.Minute,
	}
}

// Monitor watches the commit event stream for match starts and ends and
// raises a delay alert when a match outlives the threshold. It sits in the
// store's sink chain: every event is forwarded to the wrapped sink
// untouched, then inspected.
type Monitor struct {
	next   live.EventSink
	raiser AlertRaiser
	clock  clockwork.Clock
	config Config

	mu     sync.Mutex
	timers map[uuid.UUID]clockwork.Timer
}

// NewMonitor wraps next with delay monitoring. next may be nil when the
// monitor is the end of the chain. SetRaiser must be called before any
// event flows through; the store and its sink reference each other, so
// wiring happens in two steps.
func NewMonitor(next live.EventSink, clock clockwork.Clock, config Config) *Monitor {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Monitor{
		next:   next,
		clock:  clock,
		config: config,
		timers: make(map[uuid.UUID]clockwork.Timer),
	}
}

// SetRaiser attaches the alert target.
func (m *Monitor) SetRaiser(raiser AlertRaiser) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raiser = raiser
}

// Publish implements live.EventSink.
func (m *Monitor) Publish(ctx context.Context, ev *events.Event) error {
	var err error
	if m.next != nil {
		err = m.next.Publish(ctx, ev)
	}

	for _, patch := range ev.Patches {
		if patch.Entity != models.EntityMatch || patch.Match == nil || patch.Match.Status == nil {
			continue
		}
		switch *patch.Match.Status {
		case models.MatchStatusInProgress:
			m.schedule(ev.TournamentID, patch.EntityID)
		case models.MatchStatusCompleted, models.MatchStatusCancelled:
			m.cancel(patch.EntityID)
		}
	}
	return err
}

func (m *Monitor) schedule(tournamentID, matchID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.timers[matchID]; exists {
		return
	}
	m.timers[matchID] = m.clock.AfterFunc(m.config.DelayThreshold, func() {
		m.fire(tournamentID, matchID)
	})

	log.Debug().
		Str("match_id", matchID.String()).
		Dur("threshold", m.config.DelayThreshold).
		Msg("delay timer scheduled")
}

func (m *Monitor) cancel(matchID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if timer, exists := m.timers[matchID]; exists {
		timer.Stop()
		delete(m.timers, matchID)
	}
}

// fire runs on the timer goroutine, outside any commit, so raising the
// alert is an ordinary new mutation.
func (m *Monitor) fire(tournamentID, matchID uuid.UUID) {
	m.mu.Lock()
	delete(m.timers, matchID)
	raiser := m.raiser
	m.mu.Unlock()

	if raiser == nil {
		log.Warn().Str("match_id", matchID.String()).Msg("delay timer fired with no raiser attached")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := raiser.RaiseAlert(ctx, tournamentID, live.RaiseAlertRequest{
		Kind:        models.AlertKindDelay,
		Message:     fmt.Sprintf("match %s has been running for over %s", matchID, m.config.DelayThreshold),
		MatchID:     &matchID,
		Dismissible: true,
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("match_id", matchID.String()).
			Msg("failed to raise delay alert")
		return
	}

	log.Info().
		Str("match_id", matchID.String()).
		Str("tournament_id", tournamentID.String()).
		Msg("delay alert raised")
}

// Stop cancels every pending timer.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for matchID, timer := range m.timers {
		timer.Stop()
		delete(m.timers, matchID)
	}
}
