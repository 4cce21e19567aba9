// Package http implements the HTTP transport layer of the sync server:
// middleware, route handlers and the websocket endpoint over which record
// change notifications are pushed to connected clients.
package http

import (
	"github.com/makarovdm/go-sync-suite/internal/hub"
	"github.com/makarovdm/go-sync-suite/internal/logger"
	"github.com/makarovdm/go-sync-suite/internal/service"
)

type Handler struct {
	services *service.Services
	hub      *hub.Hub

	logger *logger.Logger
}

func NewHandler(services *service.Services, hub *hub.Hub, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		hub:      hub,
		logger:   logger,
	}
}
