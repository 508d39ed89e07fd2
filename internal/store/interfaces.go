package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-shelf-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// JobRepository is the durable outbox of pending local mutations. It owns the
// sync_jobs table exclusively; no other component touches job rows outside
// these operations, and every operation is a single atomic statement.
type JobRepository interface {
	// AddJob inserts a new pending job of the given type. scheduledAt may be
	// nil, in which case the job becomes eligible immediately. No
	// deduplication is performed; identical mutations may be enqueued
	// multiple times and last-write-wins apply resolves them.
	AddJob(ctx context.Context, jobType models.JobType, payload models.JobPayload, scheduledAt *time.Time) (models.Job, error)

	// Enqueued returns a channel that receives a signal after every
	// successful AddJob, so the sync trigger can drain the queue without
	// waiting for the next tick. The signal is coalesced: a slow consumer
	// sees at least one signal, not one per insert.
	Enqueued() <-chan struct{}

	// GetJob returns the job with the given id, or ErrJobNotFound.
	GetJob(ctx context.Context, id string) (models.Job, error)

	// GetPendingJobs returns jobs with status=pending and scheduled_at<=now,
	// ordered by creation time ascending. It is side-effect free.
	GetPendingJobs(ctx context.Context) ([]models.Job, error)

	// UpdateJobStatus sets the job's status and last error message.
	UpdateJobStatus(ctx context.Context, id string, status models.JobStatus, errMsg string) error

	// IncrementAttempts bumps the attempt counter by one and records the
	// error that caused the failed delivery. Attempts never decrease.
	IncrementAttempts(ctx context.Context, id string, errMsg string) error

	// CompleteJob deletes the job row; completed jobs are not archived.
	CompleteJob(ctx context.Context, id string) error

	// FailJob marks the job failed and records the error for diagnostics.
	FailJob(ctx context.Context, id string, errMsg string) error

	// HasPendingJobs reports whether any job is currently pending.
	HasPendingJobs(ctx context.Context) (bool, error)

	// GetJobCount returns the number of jobs in the given status.
	GetJobCount(ctx context.Context, status models.JobStatus) (int, error)

	// RetryableJobs returns failed jobs with attempts below maxAttempts
	// whose backoff window has expired (scheduled_at <= now).
	RetryableJobs(ctx context.Context, maxAttempts int, now time.Time) ([]models.Job, error)

	// RequeueProcessingJobs moves every processing job back to pending and
	// returns how many rows were affected. A job is only ever in processing
	// while a push is in flight, so any processing row found outside a
	// cycle is a leftover from a crash and must be re-armed on startup.
	RequeueProcessingJobs(ctx context.Context) (int, error)

	// RescheduleJob re-arms a failed job to pending with the given earliest
	// execution time. It only acts on failed jobs; ErrJobNotFound is
	// returned otherwise.
	RescheduleJob(ctx context.Context, id string, at time.Time) error

	// ResolveConflict applies an explicit conflict decision to the job:
	// use_local and merge re-arm it to pending for immediate retry with the
	// error and schedule cleared, use_server completes (deletes) it.
	ResolveConflict(ctx context.Context, id string, choice models.ConflictChoice) error
}

// CheckpointRepository persists the delta-sync watermark: the timestamp of
// the last fully processed server manifest.
type CheckpointRepository interface {
	// Checkpoint returns the current watermark. ok is false when no sync
	// has completed yet (first/full sync).
	Checkpoint(ctx context.Context) (ts time.Time, ok bool, err error)

	// SaveCheckpoint advances the watermark to ts. Moving the watermark
	// backwards is silently ignored to keep it monotonically non-decreasing.
	SaveCheckpoint(ctx context.Context, ts time.Time) error
}

// EntityRepository gives the change applier idempotent replace/delete access
// to the local entity tables (documents, bookmarks, comments, reading
// progress, tags, document-tag links, shares).
type EntityRepository interface {
	// UpsertEntity replaces the whole row for (entityType, id) with data.
	// Last write wins; there is no field-level merge.
	UpsertEntity(ctx context.Context, entityType models.EntityType, id string, data map[string]any) error

	// DeleteEntity removes the row for (entityType, id). Deleting a missing
	// row is not an error.
	DeleteEntity(ctx context.Context, entityType models.EntityType, id string) error

	// GetEntity returns the stored record, or ErrEntityNotFound.
	GetEntity(ctx context.Context, entityType models.EntityType, id string) (models.EntityRecord, error)
}
