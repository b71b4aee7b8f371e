package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/openrally/courtside/go/internal/events"
	"github.com/openrally/courtside/go/internal/live"
	"github.com/rs/zerolog/log"
)

// Service ties the tournament gateway together: WebSocket fan-out, the
// JetStream consumer feeding it, and the REST read/mutation surface.
type Service struct {
	connectionManager *ConnectionManager
	wsHandler         *WebSocketHandler
	eventConsumer     *EventConsumer
	stateHandler      *StateHandler
	mutationHandler   *MutationHandler
}

// Config holds configuration for the gateway service
type Config struct {
	ConnectionConfig ConnectionConfig
	JetStreamConfig  JetStreamConsumerConfig
}

// DefaultConfig returns default configuration for the gateway
func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
		JetStreamConfig:  DefaultJetStreamConsumerConfig(),
	}
}

// NewService creates a new gateway service around the live store.
func NewService(config Config, store *live.Store) (*Service, error) {
	connectionManager := NewConnectionManager(config.ConnectionConfig)

	eventConsumer, err := NewEventConsumer(connectionManager, config.JetStreamConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create event consumer: %w", err)
	}

	return &Service{
		connectionManager: connectionManager,
		wsHandler:         NewWebSocketHandler(connectionManager, store),
		eventConsumer:     eventConsumer,
		stateHandler:      NewStateHandler(store),
		mutationHandler:   NewMutationHandler(store),
	}, nil
}

// Start begins the gateway service and blocks until the context ends.
func (s *Service) Start(ctx context.Context) error {
	log.Info().Msg("starting tournament gateway service")

	go s.connectionManager.Start(ctx)

	go func() {
		if err := s.eventConsumer.Start(ctx); err != nil {
			log.Error().Err(err).Msg("event consumer failed")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("tournament gateway service shutting down")
	return s.Stop()
}

// Stop gracefully shuts down the gateway service
func (s *Service) Stop() error {
	if err := s.eventConsumer.Stop(); err != nil {
		log.Error().Err(err).Msg("failed to stop event consumer")
	}
	log.Info().Msg("tournament gateway service stopped")
	return nil
}

// RegisterRoutes registers every gateway route
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.wsHandler.RegisterRoutes(mux)
	s.stateHandler.RegisterStateRoutes(mux)
	s.mutationHandler.RegisterMutationRoutes(mux)
	log.Info().Msg("tournament gateway routes registered")
}

// GetStats returns statistics about the gateway service
func (s *Service) GetStats() map[string]interface{} {
	stats := s.connectionManager.GetConnectionStats()
	stats["service"] = "tournament_gateway"
	stats["status"] = "running"
	return stats
}

// BroadcastFrame allows manual frame broadcasting (useful for testing)
func (s *Service) BroadcastFrame(tournamentID uuid.UUID, frame events.Frame) {
	s.connectionManager.BroadcastToTournament(tournamentID, frame)
}
