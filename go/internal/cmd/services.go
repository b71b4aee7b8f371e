package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/openrally/courtside/go/internal/alerts"
	"github.com/openrally/courtside/go/internal/dbconfig"
	"github.com/openrally/courtside/go/internal/gateway"
	"github.com/openrally/courtside/go/internal/live"
	"github.com/openrally/courtside/go/internal/outbox"
	"github.com/rs/zerolog/log"
)

type Services struct {
	Store   *live.Store
	Gateway *gateway.Service
	Monitor *alerts.Monitor

	outboxWorker   *outbox.Worker
	outboxListener *outbox.Listener
	publisher      *outbox.NATSPublisher
}

// setupServices wires the dependency chain: database → repository → store
// (with the delay monitor as its sink) → gateway, plus the outbox
// publication path.
func setupServices(ctx context.Context, database *sql.DB, dbCfg dbconfig.Config, config *Config) (*Services, error) {
	repo := live.NewPostgresRepository(database)

	monitor := alerts.NewMonitor(nil, nil, alerts.Config{
		DelayThreshold: config.Alerts.DelayThreshold,
	})
	store := live.NewStore(repo, monitor, nil)
	monitor.SetRaiser(store)

	if err := restoreTournaments(ctx, store, repo); err != nil {
		return nil, err
	}

	// Outbox publication to JetStream
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	publisherCfg := outbox.DefaultNATSPublisherConfig()
	publisherCfg.URL = config.NATS.URL
	publisherCfg.StreamName = config.NATS.StreamName
	publisher, err := outbox.NewNATSPublisher(publisherCfg, slogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	services := &Services{
		Store:     store,
		Monitor:   monitor,
		publisher: publisher,
	}

	switch config.Outbox.Mode {
	case "listener":
		listenerCfg := outbox.DefaultListenerConfig()
		listenerCfg.DatabaseURL = dbCfg.DSN()
		listener, err := outbox.NewListener(database, publisher, listenerCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create outbox listener: %w", err)
		}
		services.outboxListener = listener
	default:
		workerCfg := outbox.DefaultConfig()
		workerCfg.PollInterval = config.Outbox.PollInterval
		services.outboxWorker = outbox.NewWorker(database, publisher, workerCfg, slogger)
	}

	// Gateway: WebSocket fan-out fed by the JetStream consumer
	gatewayCfg := gateway.DefaultConfig()
	gatewayCfg.JetStreamConfig.URL = config.NATS.URL
	gatewayCfg.JetStreamConfig.StreamName = config.NATS.StreamName
	gatewaySvc, err := gateway.NewService(gatewayCfg, store)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway: %w", err)
	}
	services.Gateway = gatewaySvc

	return services, nil
}

// restoreTournaments reloads every persisted tournament's snapshot so the
// store resumes exactly where it left off.
func restoreTournaments(ctx context.Context, store *live.Store, repo *live.PostgresRepository) error {
	tournaments, err := repo.ListTournaments(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tournaments: %w", err)
	}

	for _, t := range tournaments {
		snap, err := repo.LoadSnapshot(ctx, t.ID)
		if err != nil {
			return fmt.Errorf("failed to load snapshot for %s: %w", t.ID, err)
		}
		if err := store.Restore(snap); err != nil {
			return fmt.Errorf("failed to restore tournament %s: %w", t.ID, err)
		}
	}

	log.Info().Int("tournaments", len(tournaments)).Msg("tournaments restored")
	return nil
}

// Start launches the background components.
func (s *Services) Start(ctx context.Context) error {
	if s.outboxWorker != nil {
		if err := s.outboxWorker.Start(ctx); err != nil {
			return fmt.Errorf("failed to start outbox worker: %w", err)
		}
	}
	if s.outboxListener != nil {
		go func() {
			if err := s.outboxListener.Start(ctx); err != nil {
				log.Error().Err(err).Msg("outbox listener failed")
			}
		}()
	}

	go func() {
		if err := s.Gateway.Start(ctx); err != nil {
			log.Error().Err(err).Msg("gateway failed")
		}
	}()

	return nil
}

// Stop shuts the background components down.
func (s *Services) Stop() {
	if s.outboxWorker != nil {
		if err := s.outboxWorker.Stop(); err != nil {
			log.Error().Err(err).Msg("failed to stop outbox worker")
		}
	}
	s.Monitor.Stop()
	if s.publisher != nil {
		s.publisher.Close()
	}
}
