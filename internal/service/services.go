package service

import (
	"github.com/MKhiriev/go-shelf-keeper/internal/adapter"
	"github.com/MKhiriev/go-shelf-keeper/internal/config"
	"github.com/MKhiriev/go-shelf-keeper/internal/logger"
	"github.com/MKhiriev/go-shelf-keeper/internal/store"
)

// ClientServices groups the client-side services into a single value for
// wiring in main and in the workers.
type ClientServices struct {
	Sync      SyncService
	Applier   ChangeApplier
	Conflicts ConflictResolver
	Retry     RetryService
}

// NewClientServices builds the service layer on top of the storage and
// adapter layers.
func NewClientServices(
	storages *store.ClientStorages,
	server adapter.SyncServer,
	gate adapter.ConnectivityGate,
	cfg config.ClientSync,
	logger *logger.Logger,
) *ClientServices {
	logger.Info().Msg("creating new services...")

	applier := NewChangeApplier(storages.Entities, logger)
	resolver := NewConflictResolver(storages.Jobs, storages.Entities, applier, logger)

	return &ClientServices{
		Sync:      NewSyncService(storages, server, gate, applier, resolver, cfg, logger),
		Applier:   applier,
		Conflicts: resolver,
		Retry:     NewRetryService(storages.Jobs, cfg, logger),
	}
}
