package service

import (
	"context"

	"github.com/MKhiriev/go-shelf-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncService is the top-level sync orchestrator. A cycle pulls the remote
// delta manifest, applies it locally, drains the outbox through one push
// batch, and advances the checkpoint. Only one cycle runs at a time.
type SyncService interface {
	// Sync runs one full cycle. It returns ErrSyncAlreadyRunning when a
	// cycle is active (the duplicate trigger is dropped) and ErrOffline when
	// the connectivity gate reports no connection. Transport-level failures
	// abort the cycle with the checkpoint unchanged.
	Sync(ctx context.Context) error

	// Status returns the orchestrator's current state.
	Status() models.SyncStatus

	// Subscribe returns a channel receiving progress records for all
	// subsequent cycles. The channel is closed by Close.
	Subscribe() <-chan models.SyncProgress

	// Close shuts the progress stream down.
	Close()
}

// ChangeApplier applies inbound remote changes to local storage. Application
// is idempotent, so a change redelivered after a partial-failure retry is
// harmless.
type ChangeApplier interface {
	// Apply dispatches one change to its entity handler: create/update
	// replace the whole local row, delete removes it (missing row is a
	// no-op). Unknown entity types are skipped with a log entry for forward
	// compatibility with newer server schemas.
	Apply(ctx context.Context, change models.SyncChange) error
}

// ConflictResolver decides the fate of a job whose pushed change the server
// reported as conflicted.
type ConflictResolver interface {
	// Resolve consumes one conflict together with its originating job.
	// server_wins adopts the server version locally and completes the job;
	// client_wins completes the job with no local mutation; merge_required
	// is treated as server_wins (field-level merge is not implemented).
	// The job always leaves the processing state.
	Resolve(ctx context.Context, conflict models.SyncConflict, job models.Job) error

	// SuggestResolution is an advisory heuristic for manual conflict
	// review. It is not consulted by the automatic pipeline: reading
	// progress prefers the larger progress value, user-authored content
	// (bookmarks, comments) prefers local, organisational data (tags,
	// links, shares) prefers server.
	SuggestResolution(ctx context.Context, conflict models.SyncConflict) (models.ConflictChoice, error)
}

// RetryService is the periodic sweep that promotes failed jobs back to
// pending with exponential backoff.
type RetryService interface {
	// Sweep re-arms every failed job below the attempt limit whose backoff
	// window expired, scheduling it at now + BaseRetryDelay*2^attempts +
	// jitter. It returns the number of jobs rescheduled.
	Sweep(ctx context.Context) (int, error)
}
