package outbox

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventPublisher delivers one outbox event to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, event OutboxEvent) error
}

// NATSPublisherConfig holds configuration for the JetStream publisher
type NATSPublisherConfig struct {
	URL            string
	StreamName     string
	SubjectPrefix  string // events publish to "<prefix>.<tournament_id>"
	MaxReconnects  int
	ReconnectWait  time.Duration
	PublishTimeout time.Duration
}

// DefaultNATSPublisherConfig returns default publisher configuration
func DefaultNATSPublisherConfig() NATSPublisherConfig {
	return NATSPublisherConfig{
		URL:            nats.DefaultURL,
		StreamName:     "TOURNAMENT_EVENTS",
		SubjectPrefix:  "tournament.events",
		MaxReconnects:  -1,
		ReconnectWait:  2 * time.Second,
		PublishTimeout: 5 * time.Second,
	}
}

// NATSPublisher publishes outbox events to a JetStream stream. Each
// tournament maps to one subject, so per-subject ordering matches the
// tournament's sequence order.
type NATSPublisher struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	config NATSPublisherConfig
	logger *slog.Logger
}

// NewNATSPublisher connects to NATS and ensures the event stream exists.
func NewNATSPublisher(config NATSPublisherConfig, logger *slog.Logger) (*NATSPublisher, error) {
	nc, err := nats.Connect(config.URL,
		nats.MaxReconnects(config.MaxReconnects),
		nats.ReconnectWait(config.ReconnectWait),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	p := &NATSPublisher{
		nc:     nc,
		js:     js,
		config: config,
		logger: logger,
	}

	if err := p.ensureStream(context.Background()); err != nil {
		nc.Close()
		return nil, fmt.Errorf("ensure stream: %w", err)
	}

	return p, nil
}

// ensureStream creates the event stream if it does not exist yet.
func (p *NATSPublisher) ensureStream(ctx context.Context) error {
	_, err := p.js.Stream(ctx, p.config.StreamName)
	if err == nil {
		return nil
	}

	_, err = p.js.CreateStream(ctx, jetstream.StreamConfig{
		Name:      p.config.StreamName,
		Subjects:  []string{p.config.SubjectPrefix + ".>"},
		Retention: jetstream.LimitsPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   jetstream.FileStorage,
	})
	if err != nil {
		return fmt.Errorf("create stream: %w", err)
	}

	p.logger.Info("created JetStream stream",
		slog.String("stream", p.config.StreamName),
		slog.String("subjects", p.config.SubjectPrefix+".>"))
	return nil
}

func (p *NATSPublisher) Publish(ctx context.Context, event OutboxEvent) error {
	subject := fmt.Sprintf("%s.%s", p.config.SubjectPrefix, event.TournamentID)

	pubCtx, cancel := context.WithTimeout(ctx, p.config.PublishTimeout)
	defer cancel()

	// The event id deduplicates redeliveries when the worker crashes
	// between publish and mark-sent.
	_, err := p.js.Publish(pubCtx, subject, event.Payload,
		jetstream.WithMsgID(event.ID.String()))
	if err != nil {
		return fmt.Errorf("publish to %s: %w", subject, err)
	}

	p.logger.Debug("published event",
		slog.String("event_id", event.ID.String()),
		slog.String("subject", subject),
		slog.Int64("sequence", event.Sequence))
	return nil
}

// Close shuts down the NATS connection.
func (p *NATSPublisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}

// MockPublisher is a simple in-memory publisher for development/testing
type MockPublisher struct {
	logger *slog.Logger

	Published []OutboxEvent
}

func NewMockPublisher(logger *slog.Logger) *MockPublisher {
	return &MockPublisher{logger: logger}
}

func (p *MockPublisher) Publish(ctx context.Context, event OutboxEvent) error {
	p.Published = append(p.Published, event)
	p.logger.Info("publishing event",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.EventType),
		slog.String("tournament_id", event.TournamentID.String()))
	return nil
}
