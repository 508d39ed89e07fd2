package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-shelf-keeper/internal/logger"
	"github.com/MKhiriev/go-shelf-keeper/models"
)

// entityTables maps synchronised entity types to their local tables. Types
// absent from this map are unknown to this build of the client.
var entityTables = map[models.EntityType]string{
	models.EntityDocument:        "documents",
	models.EntityBookmark:        "bookmarks",
	models.EntityComment:         "comments",
	models.EntityReadingProgress: "reading_progress",
	models.EntityTag:             "tags",
	models.EntityDocumentTag:     "document_tags",
	models.EntityShare:           "shares",
}

// entityRepository is the SQLite-backed implementation of [EntityRepository].
// Rows are opaque JSON documents keyed by entity id; upsert replaces the
// whole row, so applying the same change twice leaves identical state.
type entityRepository struct {
	*DB
	logger *logger.Logger
}

// NewEntityRepository constructs an [EntityRepository] backed by the provided
// database connection and logger.
func NewEntityRepository(db *DB, logger *logger.Logger) EntityRepository {
	return &entityRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *entityRepository) UpsertEntity(ctx context.Context, entityType models.EntityType, id string, data map[string]any) error {
	log := logger.FromContext(ctx)

	table, ok := entityTables[entityType]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEntityType, entityType)
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal entity data: %w", err)
	}

	query, args, err := sq.Insert(table).
		Columns("id", "data", "updated_at").
		Values(id, string(raw), time.Now().UTC()).
		Suffix("ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "entityRepository.UpsertEntity").
			Str("entity_type", string(entityType)).
			Str("entity_id", id).
			Msg("failed to upsert entity")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteEntity removes the row; a missing row is not an error so that a
// redelivered delete stays a no-op.
func (r *entityRepository) DeleteEntity(ctx context.Context, entityType models.EntityType, id string) error {
	log := logger.FromContext(ctx)

	table, ok := entityTables[entityType]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEntityType, entityType)
	}

	query, args, err := sq.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "entityRepository.DeleteEntity").
			Str("entity_type", string(entityType)).
			Str("entity_id", id).
			Msg("failed to delete entity")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *entityRepository) GetEntity(ctx context.Context, entityType models.EntityType, id string) (models.EntityRecord, error) {
	table, ok := entityTables[entityType]
	if !ok {
		return models.EntityRecord{}, fmt.Errorf("%w: %q", ErrUnknownEntityType, entityType)
	}

	query, args, err := sq.Select("id", "data", "updated_at").
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.EntityRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		record = models.EntityRecord{EntityType: entityType}
		raw    string
	)
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(&record.ID, &raw, &record.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EntityRecord{}, fmt.Errorf("%w: %s/%s", ErrEntityNotFound, entityType, id)
		}
		return models.EntityRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if err = json.Unmarshal([]byte(raw), &record.Data); err != nil {
		return models.EntityRecord{}, fmt.Errorf("unmarshal entity data: %w", err)
	}

	return record, nil
}
