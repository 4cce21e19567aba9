package service

import (
	"context"

	"github.com/makarovdm/go-sync-suite/models"
)

// AuthService handles account registration, credential verification and JWT
// token lifecycle.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// RecordService handles reads and writes of a user's record and notifies the
// user's other live sessions after every successful write.
type RecordService interface {
	GetRecord(ctx context.Context, userID int64) (models.RemoteRecord, error)
	UpsertRecord(ctx context.Context, userID int64, req models.PutRecordRequest) (models.RemoteRecord, error)
}

// Notifier pushes a record change notification to every live session of the
// given user. Implemented by the websocket hub.
type Notifier interface {
	Broadcast(ctx context.Context, userID int64, n models.SyncNotification)
}
