package models

import "time"

// EntityType names a synchronised domain entity; each type has its own local
// table.
type EntityType string

const (
	EntityDocument        EntityType = "document"
	EntityBookmark        EntityType = "bookmark"
	EntityComment         EntityType = "comment"
	EntityReadingProgress EntityType = "reading_progress"
	EntityTag             EntityType = "tag"
	EntityDocumentTag     EntityType = "document_tag"
	EntityShare           EntityType = "share"
)

// SyncOperation is the wire-level mutation verb of a SyncChange.
type SyncOperation string

const (
	OpCreate SyncOperation = "create"
	OpUpdate SyncOperation = "update"
	OpDelete SyncOperation = "delete"
	OpScan   SyncOperation = "scan"
)

// SyncChange describes one entity mutation on the wire. Inbound changes come
// from the server manifest; outbound changes are converted from queued jobs.
// Application is idempotent: create/update replace the whole row keyed by
// EntityID, delete of a missing row is a no-op.
type SyncChange struct {
	EntityType EntityType     `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Operation  SyncOperation  `json:"operation"`
	Data       map[string]any `json:"data,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

// ConflictResolution is the server's verdict on a conflicted push change.
type ConflictResolution string

const (
	ResolutionServerWins    ConflictResolution = "server_wins"
	ResolutionClientWins    ConflictResolution = "client_wins"
	ResolutionMergeRequired ConflictResolution = "merge_required"
)

// SyncConflict is returned in a push response when both sides changed the
// same record concurrently. It is transient: consumed immediately by the
// conflict resolver and never persisted beyond the action taken on the
// associated job.
type SyncConflict struct {
	EntityType    EntityType         `json:"entity_type"`
	EntityID      string             `json:"entity_id"`
	Resolution    ConflictResolution `json:"resolution"`
	ServerVersion map[string]any     `json:"server_version,omitempty"`
}

// SyncStatus is the orchestrator state exposed on the progress stream.
type SyncStatus string

const (
	SyncIdle      SyncStatus = "idle"
	SyncSyncing   SyncStatus = "syncing"
	SyncCompleted SyncStatus = "completed"
	SyncError     SyncStatus = "error"
	SyncOffline   SyncStatus = "offline"
)

// SyncProgress is one record on the progress stream observers subscribe to.
type SyncProgress struct {
	Status           SyncStatus `json:"status"`
	TotalChanges     int        `json:"total_changes"`
	ProcessedChanges int        `json:"processed_changes"`
	Message          string     `json:"message,omitempty"`
	Err              error      `json:"-"`
}
