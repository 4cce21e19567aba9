// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Makarov

package http

import (
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"

	"github.com/makarovdm/go-sync-suite/internal/logger"
	"github.com/makarovdm/go-sync-suite/internal/utils"
	"github.com/makarovdm/go-sync-suite/models"
)

// subscribe upgrades the request to a websocket and registers the connection
// in the hub. The channel is push-only: the server sends a hello frame and
// then record change notifications; client frames are read solely to detect
// disconnection.
func (h *Handler) subscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("websocket upgrade failed")
		return
	}

	h.hub.Add(userID, conn)
	defer func() {
		h.hub.Remove(userID, conn)
		_ = conn.Close(websocket.StatusNormalClosure, "")
	}()

	if data, err := json.Marshal(models.SyncNotification{Type: models.NotificationHello}); err == nil {
		_ = conn.Write(ctx, websocket.MessageText, data)
	}

	log.Info().Int64("userID", userID).Msg("live session established")

	for {
		if _, _, err := conn.Read(ctx); err != nil {
			log.Debug().Int64("userID", userID).Err(err).Msg("live session closed")
			return
		}
	}
}
