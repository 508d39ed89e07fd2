package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-shelf-keeper/internal/logger"
	"github.com/MKhiriev/go-shelf-keeper/internal/utils"
	"github.com/MKhiriev/go-shelf-keeper/models"
)

// jobRepository is the SQLite-backed implementation of [JobRepository]. It
// executes all outbox operations against the "sync_jobs" table using the
// embedded [*DB] connection. Each operation is a single statement, so two
// concurrent sweeps never observe a half-updated row.
type jobRepository struct {
	*DB
	logger   *logger.Logger
	uuid     *utils.UUIDGenerator
	enqueued chan struct{}
}

// NewJobRepository constructs a [JobRepository] backed by the provided
// database connection and logger.
func NewJobRepository(db *DB, logger *logger.Logger) JobRepository {
	return &jobRepository{
		DB:     db,
		logger: logger,
		uuid:   utils.NewUUIDGenerator(),
		// capacity 1 so the signal coalesces instead of blocking inserts
		enqueued: make(chan struct{}, 1),
	}
}

func (r *jobRepository) AddJob(ctx context.Context, jobType models.JobType, payload models.JobPayload, scheduledAt *time.Time) (models.Job, error) {
	log := logger.FromContext(ctx)

	raw, err := models.EncodeJobPayload(payload)
	if err != nil {
		return models.Job{}, fmt.Errorf("add job: %w", err)
	}

	now := time.Now().UTC()
	job := models.Job{
		ID:          r.uuid.Generate(),
		Type:        jobType,
		Payload:     payload,
		Status:      models.JobStatusPending,
		CreatedAt:   now,
		ScheduledAt: now,
	}
	if scheduledAt != nil {
		job.ScheduledAt = scheduledAt.UTC()
	}

	_, err = r.DB.ExecContext(ctx, insertJob,
		job.ID, job.Type, string(raw), job.Status,
		job.CreatedAt, job.Attempts, job.LastError, job.ScheduledAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "jobRepository.AddJob").
			Str("job_type", string(jobType)).
			Msg("failed to insert job")
		return models.Job{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	select {
	case r.enqueued <- struct{}{}:
	default:
	}

	return job, nil
}

func (r *jobRepository) Enqueued() <-chan struct{} {
	return r.enqueued
}

func (r *jobRepository) GetJob(ctx context.Context, id string) (models.Job, error) {
	row := r.DB.QueryRowContext(ctx, getJobByID, id)

	job, err := scanJob(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Job{}, fmt.Errorf("%w: %s", ErrJobNotFound, id)
		}
		return models.Job{}, err
	}
	return job, nil
}

// GetPendingJobs returns every due pending job, oldest first, so a push
// batch preserves FIFO fairness by creation time.
func (r *jobRepository) GetPendingJobs(ctx context.Context) ([]models.Job, error) {
	query, args, err := sq.Select("id", "type", "payload", "status", "created_at", "attempts", "last_error", "scheduled_at").
		From("sync_jobs").
		Where(sq.Eq{"status": models.JobStatusPending}).
		Where(sq.LtOrEq{"scheduled_at": time.Now().UTC()}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryJobs(ctx, query, args...)
}

// RetryableJobs returns failed jobs still under the attempt limit whose
// backoff window has expired.
func (r *jobRepository) RetryableJobs(ctx context.Context, maxAttempts int, now time.Time) ([]models.Job, error) {
	query, args, err := sq.Select("id", "type", "payload", "status", "created_at", "attempts", "last_error", "scheduled_at").
		From("sync_jobs").
		Where(sq.Eq{"status": models.JobStatusFailed}).
		Where(sq.Lt{"attempts": maxAttempts}).
		Where(sq.LtOrEq{"scheduled_at": now.UTC()}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryJobs(ctx, query, args...)
}

func (r *jobRepository) queryJobs(ctx context.Context, query string, args ...any) ([]models.Job, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "jobRepository.queryJobs").
			Msg("failed to execute jobs query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	jobs := make([]models.Job, 0, 16)
	for rows.Next() {
		job, scanErr := scanJob(rows.Scan)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "jobRepository.queryJobs").
				Msg("failed to scan job row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		jobs = append(jobs, job)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}
	return jobs, nil
}

func (r *jobRepository) UpdateJobStatus(ctx context.Context, id string, status models.JobStatus, errMsg string) error {
	return r.execOnJob(ctx, "jobRepository.UpdateJobStatus", id, updateJobStatus, status, errMsg, id)
}

func (r *jobRepository) IncrementAttempts(ctx context.Context, id string, errMsg string) error {
	return r.execOnJob(ctx, "jobRepository.IncrementAttempts", id, incrementJobAttempts, errMsg, id)
}

func (r *jobRepository) CompleteJob(ctx context.Context, id string) error {
	return r.execOnJob(ctx, "jobRepository.CompleteJob", id, deleteJob, id)
}

func (r *jobRepository) FailJob(ctx context.Context, id string, errMsg string) error {
	return r.execOnJob(ctx, "jobRepository.FailJob", id, updateJobStatus, models.JobStatusFailed, errMsg, id)
}

// RequeueProcessingJobs re-arms jobs stranded in processing by a crash
// between the push and its reconciliation. Zero affected rows is the normal
// case after a clean shutdown.
func (r *jobRepository) RequeueProcessingJobs(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, requeueProcessingJobs)
	if err != nil {
		log.Err(err).
			Str("func", "jobRepository.RequeueProcessingJobs").
			Msg("failed to requeue processing jobs")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return int(affected), nil
}

// RescheduleJob moves a failed job back to pending with its backoff expiry.
// The WHERE status='failed' guard keeps the transition monotonic even when a
// concurrent resolution already acted on the job.
func (r *jobRepository) RescheduleJob(ctx context.Context, id string, at time.Time) error {
	return r.execOnJob(ctx, "jobRepository.RescheduleJob", id, rescheduleFailedJob, at.UTC(), id)
}

func (r *jobRepository) ResolveConflict(ctx context.Context, id string, choice models.ConflictChoice) error {
	switch choice {
	case models.ChoiceUseLocal, models.ChoiceMerge:
		// merge is not implemented, an explicit merge request keeps the
		// local version and retries immediately
		return r.execOnJob(ctx, "jobRepository.ResolveConflict", id, rearmJobForRetry, time.Now().UTC(), id)
	case models.ChoiceUseServer:
		return r.CompleteJob(ctx, id)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidConflictChoice, choice)
	}
}

func (r *jobRepository) HasPendingJobs(ctx context.Context) (bool, error) {
	count, err := r.GetJobCount(ctx, models.JobStatusPending)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *jobRepository) GetJobCount(ctx context.Context, status models.JobStatus) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, countJobsByStatus, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return count, nil
}

// execOnJob runs a single-row statement and maps "no rows affected" to
// ErrJobNotFound.
func (r *jobRepository) execOnJob(ctx context.Context, funcName, id, query string, args ...any) error {
	log := logger.FromContext(ctx)

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Str("job_id", id).
			Msg("failed to execute job statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	return nil
}

// scanJob reads one sync_jobs row via the given scan function and decodes the
// typed payload from its JSON representation.
func scanJob(scan func(dest ...any) error) (models.Job, error) {
	var (
		job models.Job
		raw string
	)

	err := scan(
		&job.ID,
		&job.Type,
		&raw,
		&job.Status,
		&job.CreatedAt,
		&job.Attempts,
		&job.LastError,
		&job.ScheduledAt,
	)
	if err != nil {
		return models.Job{}, err
	}

	payload, err := models.DecodeJobPayload(job.Type, []byte(raw))
	if err != nil {
		return models.Job{}, err
	}
	job.Payload = payload

	return job, nil
}
