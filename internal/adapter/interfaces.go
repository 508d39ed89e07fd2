// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with the shelf sync service.
//
// The primary abstraction is [SyncServer], which decouples the sync engine
// from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPSyncServer]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"
	"time"

	"github.com/MKhiriev/go-shelf-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/sync_server_mock.go -package=mock

// SyncServer defines transport-agnostic communication with the remote sync
// service. Implementations are responsible for serialisation, bearer token
// management, and mapping transport-level errors to the sentinel values
// defined in this package.
type SyncServer interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// AccountID extracts the account identifier from the stored token's
	// "sub" claim. Returns an error when no token is set or the token
	// cannot be parsed.
	AccountID() (string, error)

	// GetManifest fetches the manifest of remote changes recorded since the
	// given watermark. A nil since requests the full change history
	// (first sync). Returns the changes together with the server manifest
	// timestamp the caller should checkpoint after a successful cycle.
	GetManifest(ctx context.Context, since *time.Time) (models.ManifestResponse, error)

	// Push submits one batch of outbound changes. The response reconciles
	// the batch into accepted entity ids and conflicts. Delivery is
	// at-least-once: the server applies changes idempotently, so a retried
	// batch is safe.
	Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error)
}

// ConnectivityGate supplies the online/offline signal that gates sync
// cycles. It is intentionally narrow: the sync engine only needs a current
// answer and a stream of transitions.
type ConnectivityGate interface {
	// IsOnline reports the most recent connectivity verdict.
	IsOnline() bool

	// Subscribe returns a channel receiving connectivity transitions
	// (true = regained, false = lost). The channel is closed by Close.
	Subscribe() <-chan bool

	// Close stops the underlying probe and closes all subscriptions.
	Close()
}
