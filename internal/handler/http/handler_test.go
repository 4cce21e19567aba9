package http

import (
	"context"
	"errors"

	"github.com/makarovdm/go-sync-suite/internal/hub"
	"github.com/makarovdm/go-sync-suite/internal/logger"
	"github.com/makarovdm/go-sync-suite/internal/service"
	"github.com/makarovdm/go-sync-suite/models"
)

// fakeAuthService scripts the auth layer: any token string it issued parses
// back to the same user id.
type fakeAuthService struct {
	registerErr error
	loginErr    error
	userID      int64
}

func (f *fakeAuthService) RegisterUser(_ context.Context, user models.User) (models.User, error) {
	if f.registerErr != nil {
		return models.User{}, f.registerErr
	}
	return models.User{UserID: f.userID, Login: user.Login}, nil
}

func (f *fakeAuthService) Login(_ context.Context, user models.User) (models.User, error) {
	if f.loginErr != nil {
		return models.User{}, f.loginErr
	}
	return models.User{UserID: f.userID, Login: user.Login}, nil
}

func (f *fakeAuthService) CreateToken(_ context.Context, user models.User) (models.Token, error) {
	return models.Token{SignedString: "signed-token", UserID: user.UserID}, nil
}

func (f *fakeAuthService) ParseToken(_ context.Context, tokenString string) (models.Token, error) {
	if tokenString != "signed-token" {
		return models.Token{}, service.ErrTokenIsExpiredOrInvalid
	}
	return models.Token{SignedString: tokenString, UserID: f.userID}, nil
}

// fakeRecordService scripts the record layer.
type fakeRecordService struct {
	record     models.RemoteRecord
	getErr     error
	upsertErr  error
	lastUpsert models.PutRecordRequest
}

func (f *fakeRecordService) GetRecord(_ context.Context, _ int64) (models.RemoteRecord, error) {
	if f.getErr != nil {
		return models.RemoteRecord{}, f.getErr
	}
	return f.record, nil
}

func (f *fakeRecordService) UpsertRecord(_ context.Context, userID int64, req models.PutRecordRequest) (models.RemoteRecord, error) {
	if f.upsertErr != nil {
		return models.RemoteRecord{}, f.upsertErr
	}
	f.lastUpsert = req
	return models.RemoteRecord{UserID: userID, Namespaces: req.Record, UpdatedAt: f.record.UpdatedAt}, nil
}

var errBoom = errors.New("boom")

func newTestHandler(auth *fakeAuthService, records *fakeRecordService) (*Handler, *hub.Hub) {
	liveHub := hub.NewHub(logger.Nop())
	h := NewHandler(&service.Services{
		AuthService:   auth,
		RecordService: records,
	}, liveHub, logger.Nop())
	return h, liveHub
}
