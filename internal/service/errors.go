package service

import "errors"

var (
	// ErrSyncAlreadyRunning is returned when Sync is invoked while another
	// cycle is active; the duplicate trigger is dropped.
	ErrSyncAlreadyRunning = errors.New("sync cycle already running")

	// ErrOffline is returned when the connectivity gate reports no
	// connection at the start of a cycle.
	ErrOffline = errors.New("client is offline")

	// ErrUnknownResolution is returned for a conflict resolution tag
	// outside the known set.
	ErrUnknownResolution = errors.New("unknown conflict resolution")
)
