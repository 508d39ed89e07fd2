// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	insertJob = `
		INSERT INTO sync_jobs (
			id,
			type,
			payload,
			status,
			created_at,
			attempts,
			last_error,
			scheduled_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	getJobByID = `
		SELECT
			id,
			type,
			payload,
			status,
			created_at,
			attempts,
			last_error,
			scheduled_at
		FROM sync_jobs
		WHERE id = ?;`

	updateJobStatus = `
		UPDATE sync_jobs SET
			status     = ?,
			last_error = ?
		WHERE id = ?;`

	incrementJobAttempts = `
		UPDATE sync_jobs SET
			attempts   = attempts + 1,
			last_error = ?
		WHERE id = ?;`

	deleteJob = `
		DELETE FROM sync_jobs
		WHERE id = ?;`

	rescheduleFailedJob = `
		UPDATE sync_jobs SET
			status       = 'pending',
			scheduled_at = ?
		WHERE id = ? AND status = 'failed';`

	rearmJobForRetry = `
		UPDATE sync_jobs SET
			status       = 'pending',
			last_error   = '',
			scheduled_at = ?
		WHERE id = ?;`

	requeueProcessingJobs = `
		UPDATE sync_jobs SET
			status = 'pending'
		WHERE status = 'processing';`

	countJobsByStatus = `
		SELECT COUNT(*)
		FROM sync_jobs
		WHERE status = ?;`

	getCheckpoint = `
		SELECT value
		FROM sync_checkpoint
		WHERE key = ?;`

	upsertCheckpoint = `
		INSERT INTO sync_checkpoint (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value      = excluded.value,
			updated_at = excluded.updated_at
		WHERE excluded.value >= sync_checkpoint.value;`
)

// checkpointKey is the single row key of the sync watermark.
const checkpointKey = "last_manifest_timestamp"
