// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-shelf-keeper client. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the version string.
	App App `envPrefix:"APP_"`

	// Adapter holds the remote sync server address and timeouts.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the local persistence settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Sync holds the sync engine cadence and retry policy.
	Sync Sync `envPrefix:"SYNC_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed as the lowest-precedence source:
	// it only fills fields left empty by environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running client
	// (e.g. "1.2.3").
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Adapter holds network settings for the outbound transport layer.
type Adapter struct {
	// ServerURL is the base URL of the remote sync service
	// (e.g. "https://shelf.example.com").
	// Env: ADAPTER_SERVER_URL
	ServerURL string `env:"SERVER_URL"`

	// RequestTimeout is the maximum duration allowed for a single outbound
	// request (manifest pull or push submit) before it is cancelled.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ProbeInterval is how often the connectivity gate probes the server's
	// health endpoint.
	// Env: ADAPTER_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`
}

// Storage holds the configuration of the local persistence layer.
type Storage struct {
	// DB holds the local SQLite settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite file path (or full DSN with driver options) of the
	// local library database.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Sync holds the sync engine cadence and retry policy. A single MaxAttempts
// value governs both the push pipeline's failure threshold and the retry
// sweep's upper bound.
type Sync struct {
	// SyncInterval is the periodic sync cadence.
	// Env: SYNC_INTERVAL
	SyncInterval time.Duration `env:"INTERVAL"`

	// RetryInterval is the cadence of the failed-job retry sweep. It is
	// intentionally longer than SyncInterval to reduce storage pressure.
	// Env: SYNC_RETRY_INTERVAL
	RetryInterval time.Duration `env:"RETRY_INTERVAL"`

	// Cooldown is how long the orchestrator stays in the completed/error
	// state before reverting to idle.
	// Env: SYNC_COOLDOWN
	Cooldown time.Duration `env:"COOLDOWN"`

	// MaxAttempts is the number of delivery attempts after which a job is
	// no longer retried automatically.
	// Env: SYNC_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`

	// BaseRetryDelay is the base of the exponential backoff
	// (delay = BaseRetryDelay * 2^attempts + jitter).
	// Env: SYNC_BASE_RETRY_DELAY
	BaseRetryDelay time.Duration `env:"BASE_RETRY_DELAY"`

	// RetryJitterMax bounds the random jitter added to each backoff delay.
	// Env: SYNC_RETRY_JITTER_MAX
	RetryJitterMax time.Duration `env:"RETRY_JITTER_MAX"`
}
