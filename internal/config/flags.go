package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-s server base URL
//	-d local database path (SQLite DSN)
//	-c/-config json file path with configs
//	-sync-interval periodic sync cadence (e.g., "5m")
//	-retry-interval failed-job sweep cadence (e.g., "15m")
//	-max-attempts delivery attempt limit
//	-request-timeout outbound request timeout (e.g., "15s")
func ParseFlags() *StructuredConfig {
	var serverURL string
	var databaseDSN string
	var jsonConfigPath string
	var syncInterval time.Duration
	var retryInterval time.Duration
	var maxAttempts int
	var requestTimeout time.Duration

	flag.StringVar(&serverURL, "s", "", "Sync server base URL")
	flag.StringVar(&databaseDSN, "d", "", "Local database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Periodic sync cadence (e.g., 5m)")
	flag.DurationVar(&retryInterval, "retry-interval", 0, "Failed-job sweep cadence (e.g., 15m)")
	flag.IntVar(&maxAttempts, "max-attempts", 0, "Delivery attempt limit")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Outbound request timeout (e.g., 15s)")

	flag.Parse()

	return &StructuredConfig{
		Adapter: Adapter{
			ServerURL:      serverURL,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Sync: Sync{
			SyncInterval:  syncInterval,
			RetryInterval: retryInterval,
			MaxAttempts:   maxAttempts,
		},
		JSONFilePath: jsonConfigPath,
	}
}
