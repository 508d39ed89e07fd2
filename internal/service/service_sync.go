// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/go-shelf-keeper/internal/adapter"
	"github.com/MKhiriev/go-shelf-keeper/internal/config"
	"github.com/MKhiriev/go-shelf-keeper/internal/logger"
	"github.com/MKhiriev/go-shelf-keeper/internal/store"
	"github.com/MKhiriev/go-shelf-keeper/models"
)

// syncOrchestrator sequences one full sync cycle: checkpoint resolve ->
// manifest pull -> local apply -> push pipeline -> checkpoint advance.
//
// Single-flight is enforced with an atomic compare-and-swap, not a plain
// flag read: two triggers racing on the same instant still produce exactly
// one cycle. There is no mid-flight cancellation; a duplicate trigger is
// dropped.
type syncOrchestrator struct {
	jobs       store.JobRepository
	checkpoint store.CheckpointRepository
	server     adapter.SyncServer
	gate       adapter.ConnectivityGate
	applier    ChangeApplier
	resolver   ConflictResolver
	cfg        config.ClientSync
	logger     *logger.Logger

	syncing atomic.Bool
	cycle   atomic.Int64

	mu     sync.Mutex
	status models.SyncStatus
	subs   []chan models.SyncProgress
	closed bool
}

// NewSyncService wires the orchestrator from its collaborators. All state it
// owns is instance state; nothing is package-global.
func NewSyncService(
	storages *store.ClientStorages,
	server adapter.SyncServer,
	gate adapter.ConnectivityGate,
	applier ChangeApplier,
	resolver ConflictResolver,
	cfg config.ClientSync,
	logger *logger.Logger,
) SyncService {
	return &syncOrchestrator{
		jobs:       storages.Jobs,
		checkpoint: storages.Checkpoint,
		server:     server,
		gate:       gate,
		applier:    applier,
		resolver:   resolver,
		cfg:        cfg,
		logger:     logger,
		status:     models.SyncIdle,
	}
}

func (o *syncOrchestrator) Sync(ctx context.Context) error {
	if !o.syncing.CompareAndSwap(false, true) {
		return ErrSyncAlreadyRunning
	}
	defer o.syncing.Store(false)

	o.cycle.Add(1)

	if !o.gate.IsOnline() {
		o.setStatus(models.SyncOffline)
		o.publish(models.SyncProgress{Status: models.SyncOffline, Message: "no connection, sync skipped"})
		o.scheduleIdleRevert()
		return ErrOffline
	}

	o.setStatus(models.SyncSyncing)
	o.publish(models.SyncProgress{Status: models.SyncSyncing, Message: "sync started"})

	err := o.runCycle(ctx)
	if err != nil {
		o.logger.Err(err).Str("func", "syncOrchestrator.Sync").Msg("sync cycle failed")
		o.setStatus(models.SyncError)
		o.publish(models.SyncProgress{Status: models.SyncError, Message: "sync failed", Err: err})
		o.scheduleIdleRevert()
		return err
	}

	o.setStatus(models.SyncCompleted)
	o.publish(models.SyncProgress{Status: models.SyncCompleted, Message: "sync completed"})
	o.scheduleIdleRevert()
	return nil
}

// runCycle executes pull, apply, push and checkpoint advance. Any error it
// returns is fatal for the cycle and leaves the checkpoint untouched;
// per-change apply failures are logged and swallowed because re-application
// is idempotent.
func (o *syncOrchestrator) runCycle(ctx context.Context) error {
	since, err := o.resolveCheckpoint(ctx)
	if err != nil {
		return err
	}

	manifest, err := o.server.GetManifest(ctx, since)
	if err != nil {
		return fmt.Errorf("pull manifest: %w", err)
	}

	o.applyChanges(ctx, manifest.Changes)

	if err = o.pushPending(ctx); err != nil {
		return err
	}

	if !manifest.Timestamp.IsZero() {
		if err = o.checkpoint.SaveCheckpoint(ctx, manifest.Timestamp); err != nil {
			return fmt.Errorf("advance checkpoint: %w", err)
		}
	}

	return nil
}

func (o *syncOrchestrator) resolveCheckpoint(ctx context.Context) (*time.Time, error) {
	ts, ok, err := o.checkpoint.Checkpoint(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve checkpoint: %w", err)
	}
	if !ok {
		// first sync: pull the full history
		return nil, nil
	}
	return &ts, nil
}

func (o *syncOrchestrator) applyChanges(ctx context.Context, changes []models.SyncChange) {
	if len(changes) == 0 {
		return
	}

	total := len(changes)
	for i, change := range changes {
		if err := o.applier.Apply(ctx, change); err != nil {
			// isolated: one bad change never aborts the batch, the change
			// will be redelivered while the checkpoint stays behind it
			o.logger.Err(err).
				Str("func", "syncOrchestrator.applyChanges").
				Str("entity_type", string(change.EntityType)).
				Str("entity_id", change.EntityID).
				Msg("failed to apply remote change")
		}

		o.publish(models.SyncProgress{
			Status:           models.SyncSyncing,
			TotalChanges:     total,
			ProcessedChanges: i + 1,
			Message:          "applying remote changes",
		})
	}
}

type outboundJob struct {
	job    models.Job
	change models.SyncChange
}

// pushPending drains the outbox: every due pending job is converted to a
// change and the whole set goes out as one batch. FIFO order within the
// batch follows job creation time.
func (o *syncOrchestrator) pushPending(ctx context.Context) error {
	jobs, err := o.jobs.GetPendingJobs(ctx)
	if err != nil {
		return fmt.Errorf("read pending jobs: %w", err)
	}
	if len(jobs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	batch := make([]outboundJob, 0, len(jobs))
	for _, job := range jobs {
		change, ok := o.convertJob(ctx, job, now)
		if !ok {
			continue
		}
		batch = append(batch, outboundJob{job: job, change: change})
	}
	if len(batch) == 0 {
		return nil
	}

	o.publish(models.SyncProgress{Status: models.SyncSyncing, Message: fmt.Sprintf("pushing %d local changes", len(batch))})

	changes := make([]models.SyncChange, 0, len(batch))
	for _, ob := range batch {
		changes = append(changes, ob.change)
	}

	resp, err := o.server.Push(ctx, models.PushRequest{Changes: changes, ClientTimestamp: now})
	if err != nil {
		o.failBatch(ctx, batch, err)
		return fmt.Errorf("push batch: %w", err)
	}

	o.reconcilePush(ctx, batch, resp)
	return nil
}

// convertJob maps a job to its outbound change and marks it processing.
// Jobs without a valid entity/operation mapping are dropped silently.
func (o *syncOrchestrator) convertJob(ctx context.Context, job models.Job, now time.Time) (models.SyncChange, bool) {
	entityType, op, ok := job.Type.ChangeTarget()
	if !ok {
		o.logger.Warn().
			Str("func", "syncOrchestrator.convertJob").
			Str("job_id", job.ID).
			Str("job_type", string(job.Type)).
			Msg("dropping job with no change mapping")
		_ = o.jobs.CompleteJob(ctx, job.ID)
		return models.SyncChange{}, false
	}

	data, err := models.ChangeData(job.Payload)
	if err != nil {
		o.logger.Err(err).
			Str("func", "syncOrchestrator.convertJob").
			Str("job_id", job.ID).
			Msg("failed to encode job payload")
		_ = o.jobs.FailJob(ctx, job.ID, err.Error())
		return models.SyncChange{}, false
	}

	if err = o.jobs.UpdateJobStatus(ctx, job.ID, models.JobStatusProcessing, ""); err != nil {
		o.logger.Err(err).
			Str("func", "syncOrchestrator.convertJob").
			Str("job_id", job.ID).
			Msg("failed to mark job processing")
		return models.SyncChange{}, false
	}

	return models.SyncChange{
		EntityType: entityType,
		EntityID:   job.Payload.EntityID(),
		Operation:  op,
		Data:       data,
		Timestamp:  now,
	}, true
}

// failBatch records a transport-level push failure on every job in the
// batch. Each job gets its attempt counter bumped and is marked failed so
// the retry sweep owns it from here; jobs at the attempt limit stay failed
// until resolved manually.
func (o *syncOrchestrator) failBatch(ctx context.Context, batch []outboundJob, pushErr error) {
	for _, ob := range batch {
		if err := o.jobs.IncrementAttempts(ctx, ob.job.ID, pushErr.Error()); err != nil {
			o.logger.Err(err).Str("job_id", ob.job.ID).Msg("failed to increment attempts")
			continue
		}
		if err := o.jobs.FailJob(ctx, ob.job.ID, pushErr.Error()); err != nil {
			o.logger.Err(err).Str("job_id", ob.job.ID).Msg("failed to mark job failed")
		}
	}
}

// reconcilePush settles every job in the batch against the push response:
// accepted jobs complete, conflicted jobs go to the resolver, anything the
// server did not mention returns to pending for the next cycle.
func (o *syncOrchestrator) reconcilePush(ctx context.Context, batch []outboundJob, resp models.PushResponse) {
	accepted := make(map[string]struct{}, len(resp.AcceptedChangeIDs))
	for _, id := range resp.AcceptedChangeIDs {
		accepted[id] = struct{}{}
	}
	conflicts := make(map[string]models.SyncConflict, len(resp.Conflicts))
	for _, c := range resp.Conflicts {
		conflicts[c.EntityID] = c
	}

	for _, ob := range batch {
		entityID := ob.change.EntityID

		if _, ok := accepted[entityID]; ok {
			if err := o.jobs.CompleteJob(ctx, ob.job.ID); err != nil {
				o.logger.Err(err).Str("job_id", ob.job.ID).Msg("failed to complete accepted job")
			}
			continue
		}

		if conflict, ok := conflicts[entityID]; ok {
			if err := o.resolver.Resolve(ctx, conflict, ob.job); err != nil {
				o.logger.Err(err).
					Str("job_id", ob.job.ID).
					Str("entity_id", entityID).
					Msg("failed to resolve push conflict")
			}
			continue
		}

		if err := o.jobs.UpdateJobStatus(ctx, ob.job.ID, models.JobStatusPending, ""); err != nil {
			o.logger.Err(err).Str("job_id", ob.job.ID).Msg("failed to re-arm unreconciled job")
		}
	}
}

func (o *syncOrchestrator) Status() models.SyncStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

func (o *syncOrchestrator) setStatus(status models.SyncStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status = status
}

// scheduleIdleRevert arms the cooldown that returns the orchestrator to
// idle. The cycle counter guards against a stale timer clobbering the state
// of a newer cycle.
func (o *syncOrchestrator) scheduleIdleRevert() {
	gen := o.cycle.Load()
	time.AfterFunc(o.cfg.Cooldown, func() {
		if o.syncing.Load() || o.cycle.Load() != gen {
			return
		}
		o.setStatus(models.SyncIdle)
	})
}

func (o *syncOrchestrator) Subscribe() <-chan models.SyncProgress {
	o.mu.Lock()
	defer o.mu.Unlock()

	// buffered so a slow observer never stalls the cycle
	ch := make(chan models.SyncProgress, 32)
	o.subs = append(o.subs, ch)
	return ch
}

func (o *syncOrchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return
	}
	o.closed = true
	for _, ch := range o.subs {
		close(ch)
	}
	o.subs = nil
}

func (o *syncOrchestrator) publish(p models.SyncProgress) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, ch := range o.subs {
		select {
		case ch <- p:
		default:
			// observer buffer full, drop the update rather than block
		}
	}
}
