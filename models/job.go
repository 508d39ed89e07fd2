package models

import "time"

// JobStatus describes the lifecycle state of a queued mutation.
// Transitions are monotonic: pending -> processing -> {completed|failed}.
// A failed job can only go back to pending through the retry sweep or an
// explicit conflict resolution.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// JobType identifies the kind of local mutation a job carries. The type
// implies both the target entity kind and the operation, see ChangeTarget.
type JobType string

const (
	JobCreateBookmark JobType = "create_bookmark"
	JobUpdateBookmark JobType = "update_bookmark"
	JobDeleteBookmark JobType = "delete_bookmark"

	JobCreateComment JobType = "create_comment"
	JobUpdateComment JobType = "update_comment"
	JobDeleteComment JobType = "delete_comment"

	JobUpdateReadingProgress JobType = "update_reading_progress"

	JobCreateTag JobType = "create_tag"
	JobUpdateTag JobType = "update_tag"
	JobDeleteTag JobType = "delete_tag"

	JobAddDocumentTag    JobType = "add_document_tag"
	JobRemoveDocumentTag JobType = "remove_document_tag"

	JobCreateShare JobType = "create_share"
	JobDeleteShare JobType = "delete_share"

	JobScanLibrary JobType = "scan_library"
)

// ChangeTarget returns the entity type and sync operation a job of this type
// translates to when pushed to the server. ok is false for job types that do
// not map to a valid pair; such jobs are dropped by the push pipeline.
func (t JobType) ChangeTarget() (entityType EntityType, op SyncOperation, ok bool) {
	switch t {
	case JobCreateBookmark:
		return EntityBookmark, OpCreate, true
	case JobUpdateBookmark:
		return EntityBookmark, OpUpdate, true
	case JobDeleteBookmark:
		return EntityBookmark, OpDelete, true
	case JobCreateComment:
		return EntityComment, OpCreate, true
	case JobUpdateComment:
		return EntityComment, OpUpdate, true
	case JobDeleteComment:
		return EntityComment, OpDelete, true
	case JobUpdateReadingProgress:
		return EntityReadingProgress, OpUpdate, true
	case JobCreateTag:
		return EntityTag, OpCreate, true
	case JobUpdateTag:
		return EntityTag, OpUpdate, true
	case JobDeleteTag:
		return EntityTag, OpDelete, true
	case JobAddDocumentTag:
		return EntityDocumentTag, OpCreate, true
	case JobRemoveDocumentTag:
		return EntityDocumentTag, OpDelete, true
	case JobCreateShare:
		return EntityShare, OpCreate, true
	case JobDeleteShare:
		return EntityShare, OpDelete, true
	case JobScanLibrary:
		return EntityDocument, OpScan, true
	default:
		return "", "", false
	}
}

// Job is one durable pending local mutation waiting to be pushed to the
// server. Jobs survive process restarts; completed jobs are deleted from
// storage rather than archived.
type Job struct {
	ID          string     `json:"id" db:"id"`
	Type        JobType    `json:"type" db:"type"`
	Payload     JobPayload `json:"payload" db:"payload"`
	Status      JobStatus  `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	Attempts    int        `json:"attempts" db:"attempts"`
	LastError   string     `json:"last_error" db:"last_error"`
	ScheduledAt time.Time  `json:"scheduled_at" db:"scheduled_at"`
}

// ConflictChoice is a manual/explicit resolution decision for a conflicted
// job.
type ConflictChoice string

const (
	// ChoiceUseLocal re-arms the job to pending for an immediate retry,
	// keeping the local version of the record.
	ChoiceUseLocal ConflictChoice = "use_local"
	// ChoiceUseServer discards the local intent and completes the job.
	ChoiceUseServer ConflictChoice = "use_server"
	// ChoiceMerge requests a field-level merge. Merge is not implemented and
	// currently behaves exactly like ChoiceUseLocal.
	ChoiceMerge ConflictChoice = "merge"
)
