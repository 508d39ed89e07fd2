package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shelf-keeper/internal/logger"
	"github.com/MKhiriev/go-shelf-keeper/models"
)

func newTestEntityRepo(t *testing.T) EntityRepository {
	t.Helper()
	return NewEntityRepository(newTestDB(t), logger.Nop())
}

func TestUpsertEntity_InsertThenReplace(t *testing.T) {
	repo := newTestEntityRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertEntity(ctx, models.EntityBookmark, "b1",
		map[string]any{"document_id": "d1", "page_number": float64(3)}))

	// replace, not merge: the old page_number must be gone
	require.NoError(t, repo.UpsertEntity(ctx, models.EntityBookmark, "b1",
		map[string]any{"document_id": "d1", "note": "reread this"}))

	record, err := repo.GetEntity(ctx, models.EntityBookmark, "b1")
	require.NoError(t, err)

	assert.Equal(t, "reread this", record.Data["note"])
	assert.NotContains(t, record.Data, "page_number")
}

func TestUpsertEntity_Idempotent(t *testing.T) {
	repo := newTestEntityRepo(t)
	ctx := context.Background()

	data := map[string]any{"name": "fiction", "color": "#aa0000"}
	require.NoError(t, repo.UpsertEntity(ctx, models.EntityTag, "t1", data))
	require.NoError(t, repo.UpsertEntity(ctx, models.EntityTag, "t1", data))

	record, err := repo.GetEntity(ctx, models.EntityTag, "t1")
	require.NoError(t, err)
	assert.Equal(t, data, record.Data)
}

func TestDeleteEntity_MissingRowIsNoop(t *testing.T) {
	repo := newTestEntityRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertEntity(ctx, models.EntityDocument, "d1",
		map[string]any{"title": "SICP"}))

	require.NoError(t, repo.DeleteEntity(ctx, models.EntityDocument, "d1"))
	// redelivered delete
	require.NoError(t, repo.DeleteEntity(ctx, models.EntityDocument, "d1"))

	_, err := repo.GetEntity(ctx, models.EntityDocument, "d1")
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestEntityRepository_UnknownEntityType(t *testing.T) {
	repo := newTestEntityRepo(t)
	ctx := context.Background()

	err := repo.UpsertEntity(ctx, "hologram", "h1", map[string]any{})
	assert.ErrorIs(t, err, ErrUnknownEntityType)

	err = repo.DeleteEntity(ctx, "hologram", "h1")
	assert.ErrorIs(t, err, ErrUnknownEntityType)

	_, err = repo.GetEntity(ctx, "hologram", "h1")
	assert.ErrorIs(t, err, ErrUnknownEntityType)
}

func TestEntityTables_CoverAllEntityTypes(t *testing.T) {
	for _, et := range []models.EntityType{
		models.EntityDocument, models.EntityBookmark, models.EntityComment,
		models.EntityReadingProgress, models.EntityTag,
		models.EntityDocumentTag, models.EntityShare,
	} {
		_, ok := entityTables[et]
		assert.True(t, ok, "entity type %s must have a local table", et)
	}
}
