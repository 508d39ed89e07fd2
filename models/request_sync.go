// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ManifestResponse is the server's answer to a delta-manifest request. It
// lists every change recorded since the client's watermark together with the
// server timestamp the client should persist as its next checkpoint.
type ManifestResponse struct {
	// Changes are the remote mutations the client has not applied yet,
	// in server commit order.
	Changes []SyncChange `json:"changes"`

	// Timestamp is the server-side manifest time. After a fully successful
	// cycle the client advances its checkpoint to this value.
	Timestamp time.Time `json:"timestamp"`
}

// PushRequest is one batch of outbound changes converted from queued jobs.
type PushRequest struct {
	// Changes are the local mutations being submitted, FIFO by job
	// creation time.
	Changes []SyncChange `json:"changes"`

	// ClientTimestamp is the client wall-clock time at submission, used by
	// the server for conflict timestamping.
	ClientTimestamp time.Time `json:"client_timestamp"`
}

// PushResponse is the server's reconciliation of a push batch: every change
// is either accepted (by entity id) or reported as a conflict.
type PushResponse struct {
	// AcceptedChangeIDs lists the entity ids of changes the server applied.
	AcceptedChangeIDs []string `json:"accepted_change_ids"`

	// Conflicts lists changes the server refused because the record was
	// modified concurrently on another device.
	Conflicts []SyncConflict `json:"conflicts"`
}
