package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shelf-keeper/internal/logger"
)

func newTestCheckpointRepo(t *testing.T) CheckpointRepository {
	t.Helper()
	return NewCheckpointRepository(newTestDB(t), logger.Nop())
}

func TestCheckpoint_EmptyOnFirstSync(t *testing.T) {
	repo := newTestCheckpointRepo(t)

	_, ok, err := repo.Checkpoint(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveCheckpoint_RoundTrip(t *testing.T) {
	repo := newTestCheckpointRepo(t)
	ctx := context.Background()

	want := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	require.NoError(t, repo.SaveCheckpoint(ctx, want))

	got, ok, err := repo.Checkpoint(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Equal(want))
}

func TestSaveCheckpoint_Monotonic(t *testing.T) {
	repo := newTestCheckpointRepo(t)
	ctx := context.Background()

	newer := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)

	require.NoError(t, repo.SaveCheckpoint(ctx, newer))
	// a stale manifest timestamp must never move the watermark backwards
	require.NoError(t, repo.SaveCheckpoint(ctx, older))

	got, ok, err := repo.Checkpoint(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Equal(newer))
}

func TestSaveCheckpoint_AdvancesForward(t *testing.T) {
	repo := newTestCheckpointRepo(t)
	ctx := context.Background()

	first := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	require.NoError(t, repo.SaveCheckpoint(ctx, first))
	require.NoError(t, repo.SaveCheckpoint(ctx, second))

	got, _, err := repo.Checkpoint(ctx)
	require.NoError(t, err)
	assert.True(t, got.Equal(second))
}
