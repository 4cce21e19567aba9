package adapter

import (
	"context"

	"github.com/makarovdm/go-sync-suite/models"
)

// ServerAdapter is the client's view of the sync server.
//
// FetchRecord and PutRecord address the caller's own record; the user is
// identified by the bearer token installed via SetToken, never by a
// client-supplied id.
type ServerAdapter interface {
	Register(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.Token, error)

	// FetchRecord retrieves the authenticated user's full record.
	// A user with no record yet returns [ErrNotFound]; callers treat that
	// as a normal first-run condition.
	FetchRecord(ctx context.Context) (models.RemoteRecord, error)

	// PutRecord replaces the authenticated user's record with the merged
	// namespace map in req and returns the stored record as the server now
	// sees it (including the fresh server-side updated_at).
	PutRecord(ctx context.Context, req models.PutRecordRequest) (models.RemoteRecord, error)

	SetToken(token string)
	Token() string
}
