package store

import (
	"context"
	"fmt"

	"github.com/makarovdm/go-sync-suite/internal/config"
	"github.com/makarovdm/go-sync-suite/internal/logger"
	"github.com/makarovdm/go-sync-suite/migrations"
)

// Storages groups the server-side repositories into a single value that can
// be passed around the service layer.
type Storages struct {
	UserRepository   UserRepository
	RecordRepository RecordRepository
}

// NewStorages initialises the server storage layer: it connects to
// PostgreSQL, runs pending goose migrations, and wires the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := migrations.Migrate(db.DB); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		UserRepository:   NewUserRepository(db, log),
		RecordRepository: NewRecordRepository(db, log),
	}, nil
}
