package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/makarovdm/go-sync-suite/models"
)

// UserRepository is the server-side persistence contract for user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, user models.User) (models.User, error)
}

// RecordRepository is the server-side persistence contract for per-user
// records. A record is the single shared document holding every
// application's envelope for one user.
type RecordRepository interface {
	GetRecord(ctx context.Context, userID int64) (models.RemoteRecord, error)
	UpsertRecord(ctx context.Context, userID int64, record map[string]json.RawMessage) (time.Time, error)
}
