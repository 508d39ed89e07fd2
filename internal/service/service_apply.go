package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-shelf-keeper/internal/logger"
	"github.com/MKhiriev/go-shelf-keeper/internal/store"
	"github.com/MKhiriev/go-shelf-keeper/models"
)

type changeApplier struct {
	entities store.EntityRepository
	logger   *logger.Logger
}

// NewChangeApplier constructs the [ChangeApplier] writing to the given
// entity repository.
func NewChangeApplier(entities store.EntityRepository, logger *logger.Logger) ChangeApplier {
	return &changeApplier{
		entities: entities,
		logger:   logger,
	}
}

func (a *changeApplier) Apply(ctx context.Context, change models.SyncChange) error {
	switch change.Operation {
	case models.OpCreate, models.OpUpdate:
		if err := a.entities.UpsertEntity(ctx, change.EntityType, change.EntityID, change.Data); err != nil {
			return a.skipUnknown(change, fmt.Errorf("apply %s %s/%s: %w", change.Operation, change.EntityType, change.EntityID, err))
		}
		return nil
	case models.OpDelete:
		if err := a.entities.DeleteEntity(ctx, change.EntityType, change.EntityID); err != nil {
			return a.skipUnknown(change, fmt.Errorf("apply delete %s/%s: %w", change.EntityType, change.EntityID, err))
		}
		return nil
	case models.OpScan:
		// scan is a server-side operation; an inbound scan change carries
		// refreshed document rows in later manifest entries, nothing to do
		// here
		a.logger.Debug().
			Str("func", "changeApplier.Apply").
			Str("entity_id", change.EntityID).
			Msg("skipping inbound scan change")
		return nil
	default:
		a.logger.Warn().
			Str("func", "changeApplier.Apply").
			Str("operation", string(change.Operation)).
			Str("entity_type", string(change.EntityType)).
			Msg("skipping change with unknown operation")
		return nil
	}
}

// skipUnknown downgrades unknown-entity-type failures to a logged skip so a
// newer server schema never breaks older clients; everything else stays an
// error for the caller to log.
func (a *changeApplier) skipUnknown(change models.SyncChange, err error) error {
	if !isUnknownEntity(err) {
		return err
	}

	a.logger.Warn().
		Str("func", "changeApplier.Apply").
		Str("entity_type", string(change.EntityType)).
		Str("entity_id", change.EntityID).
		Msg("skipping change for unknown entity type")
	return nil
}

func isUnknownEntity(err error) bool {
	return errors.Is(err, store.ErrUnknownEntityType)
}
