// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Makarov

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/makarovdm/go-sync-suite/internal/logger"
)

const createEnvelopesTable = `CREATE TABLE IF NOT EXISTS envelopes (
    namespace TEXT PRIMARY KEY,
    value     TEXT NOT NULL
);`

const (
	readEnvelope  = `SELECT value FROM envelopes WHERE namespace = ?;`
	writeEnvelope = `INSERT INTO envelopes (namespace, value) VALUES (?, ?) ON CONFLICT (namespace) DO UPDATE SET value = excluded.value;`
	clearEnvelope = `DELETE FROM envelopes WHERE namespace = ?;`
	listEnvelopes = `SELECT namespace, value FROM envelopes;`
)

// localStore is the SQLite-backed implementation of [LocalStore], one row per
// namespace holding the raw JSON-serialized envelope.
//
// All operations are synchronous from the caller's perspective. SQLite's
// out-of-space condition maps to [ErrQuotaExceeded] so the application can
// warn the user instead of silently losing a write.
type localStore struct {
	db     *DB
	logger *logger.Logger
}

// NewLocalStore opens (and bootstraps, if needed) the envelopes table on the
// given connection and returns a [LocalStore] over it.
func NewLocalStore(db *DB, logger *logger.Logger) (LocalStore, error) {
	if _, err := db.ExecContext(context.Background(), createEnvelopesTable); err != nil {
		logger.Err(err).Str("func", "NewLocalStore").Msg("error bootstrapping envelopes table")
		return nil, fmt.Errorf("bootstrap envelopes table: %w", err)
	}

	return &localStore{db: db, logger: logger}, nil
}

// Read returns the raw persisted value for namespace.
// Absent namespaces return [ErrNamespaceNotFound].
func (s *localStore) Read(namespace string) ([]byte, error) {
	var value string
	row := s.db.QueryRowContext(context.Background(), readEnvelope, namespace)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNamespaceNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return []byte(value), nil
}

// Write persists the raw value under namespace, replacing any previous value.
func (s *localStore) Write(namespace string, value []byte) error {
	_, err := s.db.ExecContext(context.Background(), writeEnvelope, namespace, string(value))
	if err != nil {
		if isQuotaError(err) {
			s.logger.Err(err).Str("namespace", namespace).Msg("local store is full")
			return fmt.Errorf("%w: %w", ErrQuotaExceeded, err)
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Clear removes the value stored under namespace. Clearing an absent
// namespace is a no-op.
func (s *localStore) Clear(namespace string) error {
	if _, err := s.db.ExecContext(context.Background(), clearEnvelope, namespace); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ReadAll returns every stored namespace and its raw value. Used by backup
// export, which serializes values verbatim.
func (s *localStore) ReadAll() (map[string][]byte, error) {
	rows, err := s.db.QueryContext(context.Background(), listEnvelopes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	all := make(map[string][]byte)
	for rows.Next() {
		var namespace, value string
		if err = rows.Scan(&namespace, &value); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		all[namespace] = []byte(value)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return all, nil
}

// isQuotaError reports whether err is SQLite's out-of-space condition.
func isQuotaError(err error) bool {
	var serr sqlite3.Error
	if errors.As(err, &serr) {
		return serr.Code == sqlite3.ErrFull
	}
	return false
}
