package store

import (
	"context"
	"fmt"

	"github.com/makarovdm/go-sync-suite/internal/config"
	"github.com/makarovdm/go-sync-suite/internal/logger"
)

// ClientStorages groups the client-side storage into a single value that can
// be passed around the engine layer. Currently it holds only [LocalStore];
// additional repositories can be added here as the feature set grows.
type ClientStorages struct {
	// LocalStore is the SQLite-backed namespace store holding every
	// application's envelope on this device.
	LocalStore LocalStore
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It opens an SQLite connection to the file path in
// cfg.Path (creating the file if needed) and bootstraps the envelopes table.
func NewClientStorages(cfg config.Local, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Msg("creating client storages...")

	db, err := NewConnectSQLite(context.Background(), cfg, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	local, err := NewLocalStore(db, log)
	if err != nil {
		return nil, fmt.Errorf("local store init error: %w", err)
	}

	return &ClientStorages{LocalStore: local}, nil
}
