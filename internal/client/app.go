package client

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-shelf-keeper/internal/adapter"
	"github.com/MKhiriev/go-shelf-keeper/internal/config"
	"github.com/MKhiriev/go-shelf-keeper/internal/logger"
	"github.com/MKhiriev/go-shelf-keeper/internal/service"
	"github.com/MKhiriev/go-shelf-keeper/internal/store"
	"github.com/MKhiriev/go-shelf-keeper/internal/workers"
	"github.com/MKhiriev/go-shelf-keeper/models"
)

type App struct {
	storages *store.ClientStorages
	services *service.ClientServices
	gate     adapter.ConnectivityGate
	workers  *workers.Workers
	logger   *logger.Logger
}

// NewApp wires the full agent: storage, server adapter, connectivity gate,
// sync services, and background workers. An auth token is read from
// SHELF_AUTH_TOKEN when present; without one the server will reject pushes
// until a token is provided.
func NewApp(cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	localStorage, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	server := adapter.NewHTTPSyncServer(cfg.Adapter, log)
	if token := os.Getenv("SHELF_AUTH_TOKEN"); token != "" {
		server.SetToken(token)
		if accountID, err := server.AccountID(); err == nil {
			log.Info().Str("account_id", accountID).Msg("authenticated")
		}
	}

	gate := adapter.NewConnectivityMonitor(cfg.Adapter, log)
	services := service.NewClientServices(localStorage, server, gate, cfg.Sync, log)

	return &App{
		storages: localStorage,
		services: services,
		gate:     gate,
		workers:  workers.NewClientWorkers(services, gate, localStorage.Jobs.Enqueued(), cfg.Sync, log),
		logger:   log,
	}, nil
}

// Run starts the background workers and blocks until SIGINT or SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.logProgress(a.services.Sync.Subscribe())

	// a crash mid-push leaves jobs in processing; re-arm them before syncing
	if restored, err := a.storages.Jobs.RequeueProcessingJobs(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("failed to requeue interrupted jobs")
	} else if restored > 0 {
		a.logger.Info().Int("jobs", restored).Msg("requeued interrupted jobs")
	}

	// drain anything queued while the agent was down before the first tick
	if err := a.services.Sync.Sync(ctx); err != nil && !errors.Is(err, service.ErrOffline) {
		a.logger.Warn().Err(err).Msg("initial sync failed")
	}

	a.workers.Start(ctx)
	a.logger.Info().Msg("sync agent running")

	<-ctx.Done()
	a.logger.Info().Msg("shutting down...")

	a.workers.Stop()
	a.gate.Close()
	a.services.Sync.Close()

	return nil
}

func (a *App) logProgress(updates <-chan models.SyncProgress) {
	for p := range updates {
		event := a.logger.Debug().
			Str("func", "App.logProgress").
			Str("status", string(p.Status))
		if p.TotalChanges > 0 {
			event = event.Int("processed", p.ProcessedChanges).Int("total", p.TotalChanges)
		}
		if p.Err != nil {
			event = event.Err(p.Err)
		}
		event.Msg(p.Message)
	}
}
