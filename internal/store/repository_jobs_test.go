package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shelf-keeper/internal/logger"
	"github.com/MKhiriev/go-shelf-keeper/migrations"
	"github.com/MKhiriev/go-shelf-keeper/models"
)

// newTestDB opens an in-memory SQLite database with the full schema applied.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, migrations.Migrate(conn))
	return &DB{DB: conn, logger: logger.Nop()}
}

func newTestJobRepo(t *testing.T) JobRepository {
	t.Helper()
	return NewJobRepository(newTestDB(t), logger.Nop())
}

func TestAddJob_Defaults(t *testing.T) {
	repo := newTestJobRepo(t)
	ctx := context.Background()

	job, err := repo.AddJob(ctx, models.JobCreateTag, models.TagPayload{TagID: "t1", Name: "fiction"}, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, job.ID)
	assert.Equal(t, models.JobStatusPending, job.Status)
	assert.Zero(t, job.Attempts)
	assert.WithinDuration(t, time.Now().UTC(), job.ScheduledAt, 2*time.Second)

	stored, err := repo.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TagPayload{TagID: "t1", Name: "fiction"}, stored.Payload)
}

func TestAddJob_NoDedup(t *testing.T) {
	repo := newTestJobRepo(t)
	ctx := context.Background()

	payload := models.BookmarkPayload{BookmarkID: "b1", DocumentID: "d1", PageNumber: 3}
	first, err := repo.AddJob(ctx, models.JobUpdateBookmark, payload, nil)
	require.NoError(t, err)
	second, err := repo.AddJob(ctx, models.JobUpdateBookmark, payload, nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)

	count, err := repo.GetJobCount(ctx, models.JobStatusPending)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestGetPendingJobs_FIFOAndDueOnly(t *testing.T) {
	repo := newTestJobRepo(t)
	ctx := context.Background()

	past := time.Now().UTC().Add(-time.Minute)
	future := time.Now().UTC().Add(time.Hour)

	oldest, err := repo.AddJob(ctx, models.JobCreateTag, models.TagPayload{TagID: "t1"}, &past)
	require.NoError(t, err)
	newest, err := repo.AddJob(ctx, models.JobCreateTag, models.TagPayload{TagID: "t2"}, nil)
	require.NoError(t, err)
	_, err = repo.AddJob(ctx, models.JobCreateTag, models.TagPayload{TagID: "t3"}, &future)
	require.NoError(t, err)

	pending, err := repo.GetPendingJobs(ctx)
	require.NoError(t, err)

	require.Len(t, pending, 2, "future-scheduled job must not be returned")
	assert.Equal(t, oldest.ID, pending[0].ID)
	assert.Equal(t, newest.ID, pending[1].ID)
}

func TestGetPendingJobs_SideEffectFree(t *testing.T) {
	repo := newTestJobRepo(t)
	ctx := context.Background()

	job, err := repo.AddJob(ctx, models.JobCreateShare, models.SharePayload{ShareID: "s1"}, nil)
	require.NoError(t, err)

	_, err = repo.GetPendingJobs(ctx)
	require.NoError(t, err)
	_, err = repo.GetPendingJobs(ctx)
	require.NoError(t, err)

	stored, err := repo.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPending, stored.Status)
	assert.Zero(t, stored.Attempts)
}

func TestIncrementAttempts_RecordsError(t *testing.T) {
	repo := newTestJobRepo(t)
	ctx := context.Background()

	job, err := repo.AddJob(ctx, models.JobDeleteTag, models.TagPayload{TagID: "t1"}, nil)
	require.NoError(t, err)

	require.NoError(t, repo.IncrementAttempts(ctx, job.ID, "connection refused"))
	require.NoError(t, repo.IncrementAttempts(ctx, job.ID, "timeout"))

	stored, err := repo.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Attempts)
	assert.Equal(t, "timeout", stored.LastError)
}

func TestCompleteJob_DeletesRow(t *testing.T) {
	repo := newTestJobRepo(t)
	ctx := context.Background()

	job, err := repo.AddJob(ctx, models.JobCreateComment, models.CommentPayload{CommentID: "c1"}, nil)
	require.NoError(t, err)

	require.NoError(t, repo.CompleteJob(ctx, job.ID))

	_, err = repo.GetJob(ctx, job.ID)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestFailJob_SetsStatusAndError(t *testing.T) {
	repo := newTestJobRepo(t)
	ctx := context.Background()

	job, err := repo.AddJob(ctx, models.JobScanLibrary, models.ScanLibraryPayload{LibraryID: "l1"}, nil)
	require.NoError(t, err)

	require.NoError(t, repo.FailJob(ctx, job.ID, "server unavailable"))

	stored, err := repo.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusFailed, stored.Status)
	assert.Equal(t, "server unavailable", stored.LastError)
}

func TestRescheduleJob_OnlyFailedJobs(t *testing.T) {
	repo := newTestJobRepo(t)
	ctx := context.Background()

	job, err := repo.AddJob(ctx, models.JobCreateTag, models.TagPayload{TagID: "t1"}, nil)
	require.NoError(t, err)

	// pending job must not be rescheduled
	err = repo.RescheduleJob(ctx, job.ID, time.Now().UTC().Add(time.Minute))
	assert.ErrorIs(t, err, ErrJobNotFound)

	require.NoError(t, repo.FailJob(ctx, job.ID, "boom"))

	at := time.Now().UTC().Add(30 * time.Second)
	require.NoError(t, repo.RescheduleJob(ctx, job.ID, at))

	stored, err := repo.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPending, stored.Status)
	assert.WithinDuration(t, at, stored.ScheduledAt, time.Second)

	// still backing off, so not in the due pending set
	pending, err := repo.GetPendingJobs(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRetryableJobs_FiltersByAttemptsAndSchedule(t *testing.T) {
	repo := newTestJobRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	due, err := repo.AddJob(ctx, models.JobCreateTag, models.TagPayload{TagID: "t1"}, nil)
	require.NoError(t, err)
	require.NoError(t, repo.FailJob(ctx, due.ID, "boom"))

	exhausted, err := repo.AddJob(ctx, models.JobCreateTag, models.TagPayload{TagID: "t2"}, nil)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.IncrementAttempts(ctx, exhausted.ID, "boom"))
	}
	require.NoError(t, repo.FailJob(ctx, exhausted.ID, "boom"))

	jobs, err := repo.RetryableJobs(ctx, 5, now.Add(time.Second))
	require.NoError(t, err)

	require.Len(t, jobs, 1, "job at the attempt limit must not be retried")
	assert.Equal(t, due.ID, jobs[0].ID)
}

func TestResolveConflict(t *testing.T) {
	tests := []struct {
		name       string
		choice     models.ConflictChoice
		wantStatus models.JobStatus
		wantGone   bool
	}{
		{name: "use_local re-arms to pending", choice: models.ChoiceUseLocal, wantStatus: models.JobStatusPending},
		{name: "merge behaves like use_local", choice: models.ChoiceMerge, wantStatus: models.JobStatusPending},
		{name: "use_server deletes the job", choice: models.ChoiceUseServer, wantGone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestJobRepo(t)
			ctx := context.Background()

			job, err := repo.AddJob(ctx, models.JobUpdateBookmark, models.BookmarkPayload{BookmarkID: "b1"}, nil)
			require.NoError(t, err)
			require.NoError(t, repo.IncrementAttempts(ctx, job.ID, "conflict"))
			require.NoError(t, repo.UpdateJobStatus(ctx, job.ID, models.JobStatusProcessing, "conflict"))

			require.NoError(t, repo.ResolveConflict(ctx, job.ID, tt.choice))

			stored, err := repo.GetJob(ctx, job.ID)
			if tt.wantGone {
				assert.ErrorIs(t, err, ErrJobNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, stored.Status)
			assert.Empty(t, stored.LastError, "re-arming must clear the error")
		})
	}
}

func TestResolveConflict_InvalidChoice(t *testing.T) {
	repo := newTestJobRepo(t)

	err := repo.ResolveConflict(context.Background(), "some-id", "flip-a-coin")
	assert.ErrorIs(t, err, ErrInvalidConflictChoice)
}

func TestAddJob_SignalsEnqueued(t *testing.T) {
	repo := newTestJobRepo(t)
	ctx := context.Background()

	select {
	case <-repo.Enqueued():
		t.Fatal("no signal expected before the first insert")
	default:
	}

	_, err := repo.AddJob(ctx, models.JobCreateTag, models.TagPayload{TagID: "t1"}, nil)
	require.NoError(t, err)

	select {
	case <-repo.Enqueued():
	default:
		t.Fatal("AddJob must signal the enqueue channel")
	}

	// signals coalesce: two inserts with no consumer leave one signal
	_, err = repo.AddJob(ctx, models.JobCreateTag, models.TagPayload{TagID: "t2"}, nil)
	require.NoError(t, err)
	_, err = repo.AddJob(ctx, models.JobCreateTag, models.TagPayload{TagID: "t3"}, nil)
	require.NoError(t, err)

	<-repo.Enqueued()
	select {
	case <-repo.Enqueued():
		t.Fatal("coalesced signal must be drained by a single receive")
	default:
	}
}

func TestRequeueProcessingJobs(t *testing.T) {
	repo := newTestJobRepo(t)
	ctx := context.Background()

	stuck, err := repo.AddJob(ctx, models.JobCreateComment, models.CommentPayload{CommentID: "c1"}, nil)
	require.NoError(t, err)
	require.NoError(t, repo.UpdateJobStatus(ctx, stuck.ID, models.JobStatusProcessing, ""))

	failed, err := repo.AddJob(ctx, models.JobCreateTag, models.TagPayload{TagID: "t1"}, nil)
	require.NoError(t, err)
	require.NoError(t, repo.FailJob(ctx, failed.ID, "boom"))

	restored, err := repo.RequeueProcessingJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, restored, "only processing jobs are requeued")

	stored, err := repo.GetJob(ctx, stuck.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPending, stored.Status)

	stillFailed, err := repo.GetJob(ctx, failed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusFailed, stillFailed.Status)

	restored, err = repo.RequeueProcessingJobs(ctx)
	require.NoError(t, err)
	assert.Zero(t, restored)
}

func TestHasPendingJobs(t *testing.T) {
	repo := newTestJobRepo(t)
	ctx := context.Background()

	has, err := repo.HasPendingJobs(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = repo.AddJob(ctx, models.JobCreateTag, models.TagPayload{TagID: "t1"}, nil)
	require.NoError(t, err)

	has, err = repo.HasPendingJobs(ctx)
	require.NoError(t, err)
	assert.True(t, has)
}
