package workers

import (
	"context"

	"github.com/MKhiriev/go-shelf-keeper/internal/adapter"
	"github.com/MKhiriev/go-shelf-keeper/internal/config"
	"github.com/MKhiriev/go-shelf-keeper/internal/logger"
	"github.com/MKhiriev/go-shelf-keeper/internal/service"
)

// Workers runs a set of background jobs as a unit.
type Workers struct {
	workers []Worker
}

// NewClientWorkers builds the client's background jobs: the sync trigger and
// the retry sweep. enqueued carries the outbox's job-added signals so the
// sync trigger fires as soon as a mutation is queued.
func NewClientWorkers(services *service.ClientServices, gate adapter.ConnectivityGate, enqueued <-chan struct{}, cfg config.ClientSync, logger *logger.Logger) *Workers {
	logger.Info().Msg("creating new workers...")

	return &Workers{
		workers: []Worker{
			NewSyncWorker(services.Sync, gate, enqueued, cfg.SyncInterval, logger),
			NewRetryWorker(services.Retry, cfg.RetryInterval, logger),
		},
	}
}

// Start launches every worker.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops the workers in reverse start order and blocks until all of
// them have exited.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
