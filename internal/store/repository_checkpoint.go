package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-shelf-keeper/internal/logger"
)

// checkpointRepository persists the sync watermark as a single key-value row
// in the sync_checkpoint table.
type checkpointRepository struct {
	*DB
	logger *logger.Logger
}

// NewCheckpointRepository constructs a [CheckpointRepository] backed by the
// provided database connection and logger.
func NewCheckpointRepository(db *DB, logger *logger.Logger) CheckpointRepository {
	return &checkpointRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *checkpointRepository) Checkpoint(ctx context.Context) (time.Time, bool, error) {
	var ts time.Time
	err := r.DB.QueryRowContext(ctx, getCheckpoint, checkpointKey).Scan(&ts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return ts.UTC(), true, nil
}

// SaveCheckpoint advances the watermark to ts. The upsert's WHERE clause
// drops writes that would move the watermark backwards, keeping it
// monotonically non-decreasing no matter what the caller hands in.
func (r *checkpointRepository) SaveCheckpoint(ctx context.Context, ts time.Time) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, upsertCheckpoint, checkpointKey, ts.UTC(), time.Now().UTC())
	if err != nil {
		log.Err(err).
			Str("func", "checkpointRepository.SaveCheckpoint").
			Time("checkpoint", ts).
			Msg("failed to save checkpoint")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
