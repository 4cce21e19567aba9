package store

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (login, password_hash, name)
    VALUES ($1, $2, $3)
    RETURNING user_id, login, password_hash, name, created_at;`

	findUserByLogin = `SELECT user_id, login, password_hash, name, created_at
    FROM users
    WHERE login = $1;`
)

// psql is the shared statement builder configured for PostgreSQL
// dollar-numbered placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildGetRecordQuery builds the SELECT for a user's record row.
func buildGetRecordQuery(userID int64) (string, []any, error) {
	return psql.
		Select("record", "updated_at").
		From("user_records").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// buildUpsertRecordQuery builds the idempotent record upsert. The ON CONFLICT
// clause collapses the insert/update distinction: first write creates the
// row, later writes replace the record JSON and refresh updated_at. The
// server-maintained updated_at is returned so callers can hand it back to
// clients as the legacy recency fallback.
func buildUpsertRecordQuery(userID int64, record []byte) (string, []any, error) {
	return psql.
		Insert("user_records").
		Columns("user_id", "record", "updated_at").
		Values(userID, record, sq.Expr("now()")).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET record = EXCLUDED.record, updated_at = now()
		RETURNING updated_at`).
		ToSql()
}
