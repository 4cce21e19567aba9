// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Makarov

package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/makarovdm/go-sync-suite/internal/logger"
	"github.com/makarovdm/go-sync-suite/models"
)

const defaultRetryDelay = 5 * time.Second

// wsConn is the slice of *websocket.Conn the subscriber actually uses,
// extracted so tests can feed scripted frames.
type wsConn interface {
	Read(ctx context.Context) (websocket.MessageType, []byte, error)
	Close(code websocket.StatusCode, reason string) error
}

type dialFunc func(ctx context.Context, serverURL, token string) (wsConn, error)

func dialWebsocket(ctx context.Context, serverURL, token string) (wsConn, error) {
	u := strings.TrimRight(serverURL, "/") + "/api/record/ws"
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}

	conn, _, err := websocket.Dial(ctx, u, &websocket.DialOptions{
		HTTPHeader: http.Header{"Authorization": []string{"Bearer " + token}},
	})
	if err != nil {
		return nil, err
	}

	return conn, nil
}

// Subscriber maintains the live update channel: a websocket connection to the
// server over which record change notifications for the authenticated user
// arrive. Each notification is handed to apply; the subscriber never writes
// to the channel and never triggers a remote write of its own.
//
// Start and Stop form an explicit lifecycle handle. The connection is retried
// with a flat delay until Stop is called or the session signs out.
type Subscriber struct {
	serverURL  string
	session    *Session
	apply      func(models.SyncNotification)
	logger     *logger.Logger
	dial       dialFunc
	retryDelay time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	started bool
	wg      sync.WaitGroup
}

func NewSubscriber(serverURL string, session *Session, apply func(models.SyncNotification), log *logger.Logger) *Subscriber {
	return &Subscriber{
		serverURL:  serverURL,
		session:    session,
		apply:      apply,
		logger:     log,
		dial:       dialWebsocket,
		retryDelay: defaultRetryDelay,
	}
}

// Start launches the subscription loop. Calling Start on a running
// subscriber is a no-op.
func (s *Subscriber) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.started = true

	s.wg.Add(1)
	go s.run(ctx)
}

// Stop closes the connection and waits for the loop to exit.
func (s *Subscriber) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.started = false
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Subscriber) run(ctx context.Context) {
	defer s.wg.Done()

	for {
		if ctx.Err() != nil {
			return
		}

		token := s.session.Token()
		if token == "" {
			// Signed out; the next sign-in starts a fresh subscriber.
			return
		}

		conn, err := s.dial(ctx, s.serverURL, token)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.logger.Warn().Str("func", "run").Err(err).Msg("live channel dial failed, retrying")
			if !s.sleep(ctx) {
				return
			}
			continue
		}

		s.readLoop(ctx, conn)
		_ = conn.Close(websocket.StatusNormalClosure, "")

		if !s.sleep(ctx) {
			return
		}
	}
}

func (s *Subscriber) readLoop(ctx context.Context, conn wsConn) {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if ctx.Err() == nil {
				s.logger.Warn().Str("func", "readLoop").Err(err).Msg("live channel read failed, reconnecting")
			}
			return
		}

		var n models.SyncNotification
		if err = json.Unmarshal(data, &n); err != nil {
			s.logger.Warn().Str("func", "readLoop").Err(err).Msg("dropping malformed notification")
			continue
		}

		if n.Type != models.NotificationRecordUpdated {
			continue
		}
		// Our own write coming back. Applying it would be a harmless
		// overwrite with identical data; skipping saves the churn.
		if n.DeviceID == s.session.DeviceID() {
			continue
		}

		s.apply(n)
	}
}

// sleep waits out the retry delay; it reports false when ctx was canceled.
func (s *Subscriber) sleep(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(s.retryDelay):
		return true
	}
}
