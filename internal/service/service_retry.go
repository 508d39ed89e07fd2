package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/MKhiriev/go-shelf-keeper/internal/config"
	"github.com/MKhiriev/go-shelf-keeper/internal/logger"
	"github.com/MKhiriev/go-shelf-keeper/internal/store"
)

// maxBackoffShift caps the exponent so the delay computation cannot
// overflow no matter what attempt count a row carries.
const maxBackoffShift = 16

type retryService struct {
	jobs   store.JobRepository
	cfg    config.ClientSync
	logger *logger.Logger

	// jitter is swappable for deterministic tests
	jitter func(max time.Duration) time.Duration
}

// NewRetryService constructs the [RetryService] sweeping the given job
// queue. cfg.MaxAttempts is the same threshold the push pipeline uses to
// mark jobs failed, so a job is never re-armed past the limit that failed
// it.
func NewRetryService(jobs store.JobRepository, cfg config.ClientSync, logger *logger.Logger) RetryService {
	return &retryService{
		jobs:   jobs,
		cfg:    cfg,
		logger: logger,
		jitter: randomJitter,
	}
}

func (s *retryService) Sweep(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)
	now := time.Now().UTC()

	jobs, err := s.jobs.RetryableJobs(ctx, s.cfg.MaxAttempts, now)
	if err != nil {
		return 0, fmt.Errorf("select retryable jobs: %w", err)
	}

	rescheduled := 0
	for _, job := range jobs {
		delay := s.Backoff(job.Attempts) + s.jitter(s.cfg.RetryJitterMax)

		if err = s.jobs.RescheduleJob(ctx, job.ID, now.Add(delay)); err != nil {
			// the job may have been resolved concurrently; skip it
			log.Warn().Err(err).
				Str("func", "retryService.Sweep").
				Str("job_id", job.ID).
				Msg("failed to reschedule job")
			continue
		}

		log.Debug().
			Str("func", "retryService.Sweep").
			Str("job_id", job.ID).
			Int("attempts", job.Attempts).
			Dur("delay", delay).
			Msg("failed job re-armed with backoff")
		rescheduled++
	}

	return rescheduled, nil
}

// Backoff returns the deterministic part of the retry delay:
// BaseRetryDelay * 2^attempts. It is monotone in attempts.
func (s *retryService) Backoff(attempts int) time.Duration {
	if attempts < 0 {
		attempts = 0
	}
	if attempts > maxBackoffShift {
		attempts = maxBackoffShift
	}
	return s.cfg.BaseRetryDelay * (1 << attempts)
}

func randomJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(max)))
}
