// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.ServerURL == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	// the sweep must not outrun the sync cadence, see ClientSync.RetryInterval
	if cfg.Sync.RetryInterval < cfg.Sync.SyncInterval {
		return ErrInvalidSyncConfigs
	}

	return nil
}
