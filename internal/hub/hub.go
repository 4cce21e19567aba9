// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Makarov

// Package hub maintains the server-side registry of live websocket
// connections, grouped by user, and fans record change notifications out to
// every session of the affected user.
package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/makarovdm/go-sync-suite/internal/logger"
	"github.com/makarovdm/go-sync-suite/models"
)

const writeTimeout = 5 * time.Second

// session wraps a connection with a write lock; websocket connections allow
// only one concurrent writer.
type session struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *session) write(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	return s.conn.Write(ctx, websocket.MessageText, data)
}

// Hub tracks connected sessions per user. A user's sessions on other devices
// are how live sync happens: every successful record write is broadcast to
// all of them, including the writer (clients drop their own echo).
type Hub struct {
	logger *logger.Logger

	mu       sync.RWMutex
	sessions map[int64]map[*websocket.Conn]*session
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		logger:   log,
		sessions: make(map[int64]map[*websocket.Conn]*session),
	}
}

// Add registers a connection under userID.
func (h *Hub) Add(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sessions[userID] == nil {
		h.sessions[userID] = make(map[*websocket.Conn]*session)
	}
	h.sessions[userID][conn] = &session{conn: conn}

	h.logger.Debug().Str("func", "Add").Int64("userID", userID).
		Int("sessions", len(h.sessions[userID])).Msg("live session connected")
}

// Remove unregisters a connection. Safe to call for a connection that was
// already removed.
func (h *Hub) Remove(userID int64, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.sessions[userID], conn)
	if len(h.sessions[userID]) == 0 {
		delete(h.sessions, userID)
	}
}

// Broadcast sends the notification to every connected session of userID.
// Sessions whose write fails are dropped from the registry; the client side
// reconnects on its own.
func (h *Hub) Broadcast(ctx context.Context, userID int64, n models.SyncNotification) {
	data, err := json.Marshal(n)
	if err != nil {
		h.logger.Error().Str("func", "Broadcast").Int64("userID", userID).Err(err).
			Msg("failed to marshal notification")
		return
	}

	h.mu.RLock()
	targets := make([]*session, 0, len(h.sessions[userID]))
	for _, s := range h.sessions[userID] {
		targets = append(targets, s)
	}
	h.mu.RUnlock()

	// Writes happen outside the registry lock so one slow session cannot
	// stall connects and disconnects.
	for _, s := range targets {
		if err := s.write(ctx, data); err != nil {
			h.logger.Warn().Str("func", "Broadcast").Int64("userID", userID).Err(err).
				Msg("dropping unresponsive live session")
			h.Remove(userID, s.conn)
			_ = s.conn.Close(websocket.StatusGoingAway, "write failed")
		}
	}
}

// SessionCount reports how many live sessions userID currently has.
func (h *Hub) SessionCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[userID])
}

// CloseAll disconnects every session, used at server shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, conns := range h.sessions {
		for conn := range conns {
			_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
		}
		delete(h.sessions, userID)
	}
}
