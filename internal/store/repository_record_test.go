package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makarovdm/go-sync-suite/internal/logger"
	"github.com/makarovdm/go-sync-suite/models"
)

func TestGetRecord(t *testing.T) {
	updatedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRecordRepository(db, logger.Nop())

		raw := `{"notes":{"payload":{"text":"hi"},"lastUpdated":"2026-03-01T11:00:00Z"}}`
		mock.ExpectQuery(`SELECT record, updated_at FROM user_records`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"record", "updated_at"}).AddRow([]byte(raw), updatedAt))

		record, err := repo.GetRecord(context.Background(), 7)
		require.NoError(t, err)

		assert.Equal(t, int64(7), record.UserID)
		assert.Equal(t, updatedAt, record.UpdatedAt)
		require.Contains(t, record.Namespaces, models.NamespaceNotes)

		env, ok, err := record.EnvelopeFor(models.NamespaceNotes)
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, `{"text":"hi"}`, string(env.Payload))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no record yet", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRecordRepository(db, logger.Nop())

		mock.ExpectQuery(`SELECT record, updated_at FROM user_records`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"record", "updated_at"}))

		_, err := repo.GetRecord(context.Background(), 7)
		assert.ErrorIs(t, err, ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpsertRecord(t *testing.T) {
	updatedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	db, mock := newMockDB(t)
	repo := NewRecordRepository(db, logger.Nop())

	record := map[string]json.RawMessage{
		models.NamespaceNotes: json.RawMessage(`{"payload":{},"lastUpdated":"2026-03-01T11:00:00Z"}`),
	}
	raw, err := json.Marshal(record)
	require.NoError(t, err)

	mock.ExpectQuery(`INSERT INTO user_records .+ ON CONFLICT \(user_id\) DO UPDATE`).
		WithArgs(int64(7), raw).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(updatedAt))

	got, err := repo.UpsertRecord(context.Background(), 7, record)
	require.NoError(t, err)

	assert.Equal(t, updatedAt, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
