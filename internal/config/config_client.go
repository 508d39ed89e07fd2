// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Defaults applied by [GetClientConfig] when a value is absent from every
// configuration source.
const (
	DefaultSyncInterval   = 5 * time.Minute
	DefaultRetryInterval  = 15 * time.Minute
	DefaultCooldown       = 30 * time.Second
	DefaultMaxAttempts    = 5
	DefaultBaseRetryDelay = 2 * time.Second
	DefaultRetryJitterMax = 10 * time.Second
	DefaultRequestTimeout = 15 * time.Second
	DefaultProbeInterval  = 30 * time.Second
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// ServerURL is the base URL of the remote sync service.
	ServerURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// ProbeInterval is the connectivity probe cadence.
	ProbeInterval time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientSync contains sync engine cadence and retry settings.
type ClientSync struct {
	// SyncInterval defines how often the periodic sync trigger fires.
	SyncInterval time.Duration
	// RetryInterval defines how often the failed-job sweep runs.
	RetryInterval time.Duration
	// Cooldown is the completed/error state hold time before idle.
	Cooldown time.Duration
	// MaxAttempts bounds automatic delivery retries. The same value is the
	// push pipeline's failure threshold and the retry sweep's upper bound.
	MaxAttempts int
	// BaseRetryDelay is the exponential backoff base.
	BaseRetryDelay time.Duration
	// RetryJitterMax bounds the random jitter added to backoff delays.
	RetryJitterMax time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App App
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Sync contains sync engine settings.
	Sync ClientSync
}

// GetClientConfig builds and validates the client configuration.
//
// It merges environment variables, command-line flags, and the optional JSON
// file via the config builder, projects the result into a [ClientConfig],
// fills unset values with defaults, and validates the final view.
func GetClientConfig() (*ClientConfig, error) {
	structured, err := newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error building client config: %w", err)
	}

	cfg := &ClientConfig{
		App: structured.App,
		Adapter: ClientAdapter{
			ServerURL:      structured.Adapter.ServerURL,
			RequestTimeout: structured.Adapter.RequestTimeout,
			ProbeInterval:  structured.Adapter.ProbeInterval,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: structured.Storage.DB.DSN},
		},
		Sync: ClientSync{
			SyncInterval:   structured.Sync.SyncInterval,
			RetryInterval:  structured.Sync.RetryInterval,
			Cooldown:       structured.Sync.Cooldown,
			MaxAttempts:    structured.Sync.MaxAttempts,
			BaseRetryDelay: structured.Sync.BaseRetryDelay,
			RetryJitterMax: structured.Sync.RetryJitterMax,
		},
	}
	cfg.applyDefaults()

	if err = cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid client config: %w", err)
	}

	return cfg, nil
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Adapter.ProbeInterval <= 0 {
		cfg.Adapter.ProbeInterval = DefaultProbeInterval
	}
	if cfg.Sync.SyncInterval <= 0 {
		cfg.Sync.SyncInterval = DefaultSyncInterval
	}
	if cfg.Sync.RetryInterval <= 0 {
		cfg.Sync.RetryInterval = DefaultRetryInterval
	}
	if cfg.Sync.Cooldown <= 0 {
		cfg.Sync.Cooldown = DefaultCooldown
	}
	if cfg.Sync.MaxAttempts <= 0 {
		cfg.Sync.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Sync.BaseRetryDelay <= 0 {
		cfg.Sync.BaseRetryDelay = DefaultBaseRetryDelay
	}
	if cfg.Sync.RetryJitterMax < 0 {
		cfg.Sync.RetryJitterMax = DefaultRetryJitterMax
	}
}
