// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Makarov

// Package server owns the sync server process lifecycle: it starts the HTTP
// listener (which also carries the websocket endpoint) and shuts everything
// down gracefully on SIGINT/SIGTERM/SIGQUIT, closing live sessions last so
// clients see a clean disconnect.
package server

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/makarovdm/go-sync-suite/internal/config"
	"github.com/makarovdm/go-sync-suite/internal/hub"
	"github.com/makarovdm/go-sync-suite/internal/logger"
)

type server struct {
	httpServer *httpServer
	hub        *hub.Hub
	logger     *logger.Logger
}

func NewServer(router http.Handler, h *hub.Hub, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(router, cfg, logger),
		hub:        h,
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	if err := s.run(); err != nil {
		s.logger.Error().Err(err).Msg("error running server")
	}
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()

	if s.hub != nil {
		s.hub.CloseAll()
	}
}

func (s *server) run() error {
	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		<-ctx.Done()
		s.Shutdown()
		close(idleConnectionsClosed)
	}()

	s.logger.Info().Str("address", s.httpServer.server.Addr).Msg("launching HTTP server")
	go s.httpServer.RunServer()

	<-idleConnectionsClosed
	s.logger.Info().Msg("server shut down gracefully")

	return nil
}
