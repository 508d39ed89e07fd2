package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shelf-keeper/internal/logger"
	"github.com/MKhiriev/go-shelf-keeper/models"
)

// newMockDB wires the repositories to a sqlmock connection for driving
// driver-level failures that an in-memory SQLite database cannot produce.
func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &DB{DB: conn, logger: logger.Nop()}, mock
}

func TestJobRepository_AddJob_ExecError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewJobRepository(db, logger.Nop())

	mock.ExpectExec("INSERT INTO sync_jobs").WillReturnError(errors.New("disk I/O error"))

	_, err := repo.AddJob(context.Background(), models.JobCreateTag, models.TagPayload{TagID: "t1"}, nil)
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_GetPendingJobs_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewJobRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT (.+) FROM sync_jobs").WillReturnError(errors.New("database is locked"))

	_, err := repo.GetPendingJobs(context.Background())
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_GetPendingJobs_CorruptPayload(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewJobRepository(db, logger.Nop())

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "type", "payload", "status", "created_at", "attempts", "last_error", "scheduled_at"}).
		AddRow("j1", string(models.JobCreateBookmark), "{not json", string(models.JobStatusPending), now, 0, "", now)
	mock.ExpectQuery("SELECT (.+) FROM sync_jobs").WillReturnRows(rows)

	_, err := repo.GetPendingJobs(context.Background())
	assert.ErrorIs(t, err, ErrScanningRow)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJobRepository_UpdateJobStatus_ExecError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewJobRepository(db, logger.Nop())

	mock.ExpectExec("UPDATE sync_jobs").WillReturnError(errors.New("disk I/O error"))

	err := repo.UpdateJobStatus(context.Background(), "j1", models.JobStatusProcessing, "")
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckpointRepository_Checkpoint_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCheckpointRepository(db, logger.Nop())

	mock.ExpectQuery(`SELECT value\s+FROM sync_checkpoint`).WillReturnError(errors.New("database is locked"))

	_, _, err := repo.Checkpoint(context.Background())
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckpointRepository_SaveCheckpoint_ExecError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCheckpointRepository(db, logger.Nop())

	mock.ExpectExec("INSERT INTO sync_checkpoint").WillReturnError(errors.New("disk I/O error"))

	err := repo.SaveCheckpoint(context.Background(), time.Now().UTC())
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}
