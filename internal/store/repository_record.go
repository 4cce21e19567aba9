package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/makarovdm/go-sync-suite/internal/logger"
	"github.com/makarovdm/go-sync-suite/models"
)

// recordRepository is the PostgreSQL-backed implementation of
// [RecordRepository]. Each user owns at most one row in "user_records": a
// JSONB object whose top-level keys are application namespaces, each mapping
// to that application's envelope, plus a server-maintained updated_at.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields.
type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordRepository] backed by the provided
// database connection and logger.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

// GetRecord retrieves the record row for userID.
//
// Returns [ErrRecordNotFound] when the user has no record yet — callers must
// treat this as a normal first-run condition, never as a failure.
func (r *recordRepository) GetRecord(ctx context.Context, userID int64) (models.RemoteRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetRecordQuery(userID)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.GetRecord").
			Int64("user_id", userID).
			Msg("failed to create query")
		return models.RemoteRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var raw []byte
	var updatedAt time.Time
	row := r.DB.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&raw, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RemoteRecord{}, ErrRecordNotFound
		}

		log.Err(err).
			Str("func", "recordRepository.GetRecord").
			Int64("user_id", userID).
			Msg("failed to scan record row")
		return models.RemoteRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	namespaces := make(map[string]json.RawMessage)
	if len(raw) > 0 {
		if err = json.Unmarshal(raw, &namespaces); err != nil {
			log.Err(err).
				Str("func", "recordRepository.GetRecord").
				Int64("user_id", userID).
				Msg("failed to decode record json")
			return models.RemoteRecord{}, fmt.Errorf("decode record json: %w", err)
		}
	}

	return models.RemoteRecord{
		UserID:     userID,
		Namespaces: namespaces,
		UpdatedAt:  updatedAt,
	}, nil
}

// UpsertRecord writes the full namespace map for userID, creating the row on
// first write. The returned time is the server-maintained updated_at assigned
// by this write.
//
// The caller is responsible for having merged sibling namespaces into the map
// before calling; this method persists exactly what it is given.
func (r *recordRepository) UpsertRecord(ctx context.Context, userID int64, record map[string]json.RawMessage) (time.Time, error) {
	log := logger.FromContext(ctx)

	raw, err := json.Marshal(record)
	if err != nil {
		return time.Time{}, fmt.Errorf("encode record json: %w", err)
	}

	query, args, err := buildUpsertRecordQuery(userID, raw)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.UpsertRecord").
			Int64("user_id", userID).
			Msg("failed to create query")
		return time.Time{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updatedAt time.Time
	row := r.DB.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&updatedAt); err != nil {
		log.Err(err).
			Str("func", "recordRepository.UpsertRecord").
			Int64("user_id", userID).
			Int("namespaces", len(record)).
			Msg("failed to execute record upsert")
		return time.Time{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return updatedAt, nil
}
