package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-shelf-keeper/internal/logger"
	"github.com/MKhiriev/go-shelf-keeper/internal/service"
)

// retryWorker runs the failed-job sweep on a ticker.
type retryWorker struct {
	retry    service.RetryService
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRetryWorker creates the periodic retry sweep. The worker is idle until
// Start is called. A non-positive interval falls back to 15 minutes.
func NewRetryWorker(retry service.RetryService, interval time.Duration, logger *logger.Logger) Worker {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &retryWorker{
		retry:    retry,
		interval: interval,
		logger:   logger,
	}
}

func (w *retryWorker) Start(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				w.sweep(jobCtx)
			}
		}
	}()
}

func (w *retryWorker) sweep(ctx context.Context) {
	n, err := w.retry.Sweep(ctx)
	if err != nil {
		w.logger.Err(err).Str("func", "retryWorker.sweep").Msg("retry sweep failed")
		return
	}
	if n > 0 {
		w.logger.Info().
			Str("func", "retryWorker.sweep").
			Int("rescheduled", n).
			Msg("failed jobs re-armed")
	}
}

func (w *retryWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}
