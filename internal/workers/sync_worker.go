// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-shelf-keeper/internal/adapter"
	"github.com/MKhiriev/go-shelf-keeper/internal/logger"
	"github.com/MKhiriev/go-shelf-keeper/internal/service"
)

// syncWorker triggers sync cycles. Three things wake it: the periodic
// ticker, a connectivity-regained transition from the gate, and an enqueue
// signal from the job outbox, so a mutation queued while online drains
// right away instead of waiting out the interval.
type syncWorker struct {
	sync     service.SyncService
	gate     adapter.ConnectivityGate
	enqueued <-chan struct{}
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncWorker creates the periodic sync trigger. enqueued carries the
// outbox's job-added signals and may be nil. The worker is idle until Start
// is called. A non-positive interval falls back to 5 minutes.
func NewSyncWorker(syncSvc service.SyncService, gate adapter.ConnectivityGate, enqueued <-chan struct{}, interval time.Duration, logger *logger.Logger) Worker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &syncWorker{
		sync:     syncSvc,
		gate:     gate,
		enqueued: enqueued,
		interval: interval,
		logger:   logger,
	}
}

func (w *syncWorker) Start(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	transitions := w.gate.Subscribe()

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				w.trigger(jobCtx, "interval")
			case online, ok := <-transitions:
				if !ok {
					// gate closed, keep running on the ticker alone
					transitions = nil
					continue
				}
				if online {
					w.trigger(jobCtx, "connectivity regained")
				}
			case <-w.enqueued:
				w.trigger(jobCtx, "job enqueued")
			}
		}
	}()
}

func (w *syncWorker) trigger(ctx context.Context, reason string) {
	err := w.sync.Sync(ctx)
	switch {
	case err == nil:
		w.logger.Debug().
			Str("func", "syncWorker.trigger").
			Str("reason", reason).
			Msg("sync cycle completed")
	case errors.Is(err, service.ErrSyncAlreadyRunning), errors.Is(err, service.ErrOffline):
		// expected while a cycle is in flight or the device is offline
		w.logger.Debug().
			Str("func", "syncWorker.trigger").
			Str("reason", reason).
			Msg(err.Error())
	default:
		w.logger.Err(err).
			Str("func", "syncWorker.trigger").
			Str("reason", reason).
			Msg("sync cycle failed")
	}
}

func (w *syncWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}
