package service

import (
	"github.com/makarovdm/go-sync-suite/internal/config"
	"github.com/makarovdm/go-sync-suite/internal/logger"
	"github.com/makarovdm/go-sync-suite/internal/store"
)

type Services struct {
	AuthService   AuthService
	RecordService RecordService
}

func NewServices(storages store.Storages, notifier Notifier, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:   NewAuthService(storages.UserRepository, cfg.App, logger),
		RecordService: NewRecordService(storages.RecordRepository, notifier, logger),
	}
}
