// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-shelf-keeper/internal/logger"
	"github.com/MKhiriev/go-shelf-keeper/internal/store"
	"github.com/MKhiriev/go-shelf-keeper/models"
)

type conflictResolver struct {
	jobs     store.JobRepository
	entities store.EntityRepository
	applier  ChangeApplier
	logger   *logger.Logger
}

// NewConflictResolver constructs the [ConflictResolver] acting on the given
// job queue and entity store.
func NewConflictResolver(jobs store.JobRepository, entities store.EntityRepository, applier ChangeApplier, logger *logger.Logger) ConflictResolver {
	return &conflictResolver{
		jobs:     jobs,
		entities: entities,
		applier:  applier,
		logger:   logger,
	}
}

func (r *conflictResolver) Resolve(ctx context.Context, conflict models.SyncConflict, job models.Job) error {
	log := logger.FromContext(ctx)

	switch conflict.Resolution {
	case models.ResolutionServerWins, models.ResolutionMergeRequired:
		// merge_required has no real merge implementation; adopting the
		// server version keeps both sides consistent until one exists
		if conflict.Resolution == models.ResolutionMergeRequired {
			log.Warn().
				Str("func", "conflictResolver.Resolve").
				Str("entity_id", conflict.EntityID).
				Msg("merge_required degraded to server_wins")
		}
		return r.adoptServerVersion(ctx, conflict, job)

	case models.ResolutionClientWins:
		// local state is already what the server accepted as the winner
		if err := r.jobs.CompleteJob(ctx, job.ID); err != nil {
			return fmt.Errorf("complete client_wins job %s: %w", job.ID, err)
		}
		return nil

	default:
		// the job must still leave processing: keep it failed so the retry
		// sweep or a manual decision can pick it up
		if err := r.jobs.FailJob(ctx, job.ID, fmt.Sprintf("unknown resolution %q", conflict.Resolution)); err != nil {
			return errors.Join(ErrUnknownResolution, err)
		}
		return fmt.Errorf("%w: %q", ErrUnknownResolution, conflict.Resolution)
	}
}

func (r *conflictResolver) adoptServerVersion(ctx context.Context, conflict models.SyncConflict, job models.Job) error {
	change := models.SyncChange{
		EntityType: conflict.EntityType,
		EntityID:   conflict.EntityID,
		Operation:  models.OpUpdate,
		Data:       conflict.ServerVersion,
		Timestamp:  time.Now().UTC(),
	}
	if err := r.applier.Apply(ctx, change); err != nil {
		// keep the job around for the retry sweep instead of losing the
		// local intent while the row is in an unknown state
		if failErr := r.jobs.FailJob(ctx, job.ID, err.Error()); failErr != nil {
			return errors.Join(err, failErr)
		}
		return fmt.Errorf("adopt server version for %s/%s: %w", conflict.EntityType, conflict.EntityID, err)
	}

	if err := r.jobs.CompleteJob(ctx, job.ID); err != nil {
		return fmt.Errorf("complete server_wins job %s: %w", job.ID, err)
	}
	return nil
}

// SuggestResolution implements the advisory heuristic used by manual
// conflict review screens. The automatic pipeline never calls it.
func (r *conflictResolver) SuggestResolution(ctx context.Context, conflict models.SyncConflict) (models.ConflictChoice, error) {
	switch conflict.EntityType {
	case models.EntityReadingProgress:
		return r.suggestByProgress(ctx, conflict)
	case models.EntityBookmark, models.EntityComment:
		// user-authored content: prefer what the user wrote on this device
		return models.ChoiceUseLocal, nil
	case models.EntityTag, models.EntityDocumentTag, models.EntityShare:
		// organisational data: the server sees every device, trust it
		return models.ChoiceUseServer, nil
	default:
		return models.ChoiceUseServer, nil
	}
}

// suggestByProgress prefers whichever side has read further.
func (r *conflictResolver) suggestByProgress(ctx context.Context, conflict models.SyncConflict) (models.ConflictChoice, error) {
	serverProgress, ok := models.ProgressValue(conflict.ServerVersion)
	if !ok {
		return models.ChoiceUseLocal, nil
	}

	record, err := r.entities.GetEntity(ctx, conflict.EntityType, conflict.EntityID)
	if err != nil {
		if errors.Is(err, store.ErrEntityNotFound) {
			return models.ChoiceUseServer, nil
		}
		return "", fmt.Errorf("load local %s/%s: %w", conflict.EntityType, conflict.EntityID, err)
	}

	localProgress, ok := models.ProgressValue(record.Data)
	if !ok || serverProgress > localProgress {
		return models.ChoiceUseServer, nil
	}
	return models.ChoiceUseLocal, nil
}
