// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Makarov

package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/makarovdm/go-sync-suite/internal/adapter"
	"github.com/makarovdm/go-sync-suite/internal/logger"
	"github.com/makarovdm/go-sync-suite/internal/store"
	"github.com/makarovdm/go-sync-suite/models"
)

// SuiteOptions configures the client suite as a whole.
type SuiteOptions struct {
	// ServerURL is the sync server base URL, used for the live channel.
	ServerURL string

	DebounceWindow time.Duration
	FlushTimeout   time.Duration
	Clock          Clock

	// OnChange observes inbound remote updates per namespace.
	OnChange func(namespace string, env models.Envelope)

	// OnStatus observes sync state transitions from any engine.
	OnStatus StatusFunc
}

// Suite is the client-side composition root: one engine per application
// namespace, a shared session, and the live subscriber, all over a single
// local store and server adapter.
type Suite struct {
	Session    *Session
	Subscriber *Subscriber

	engines map[string]*Engine
	local   store.LocalStore
	remote  adapter.ServerAdapter
	clock   Clock
	logger  *logger.Logger
}

func NewSuite(local store.LocalStore, remote adapter.ServerAdapter, log *logger.Logger, opts SuiteOptions) *Suite {
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}

	s := &Suite{
		Session: NewSession(),
		engines: make(map[string]*Engine, len(models.AllNamespaces())),
		local:   local,
		remote:  remote,
		clock:   opts.Clock,
		logger:  log,
	}

	for _, ns := range models.AllNamespaces() {
		ns := ns
		var onChange func(models.Envelope)
		if opts.OnChange != nil {
			onChange = func(env models.Envelope) { opts.OnChange(ns, env) }
		}
		s.engines[ns] = NewEngine(ns, local, remote, s.Session, log, Options{
			DebounceWindow: opts.DebounceWindow,
			FlushTimeout:   opts.FlushTimeout,
			Clock:          opts.Clock,
			OnChange:       onChange,
			OnStatus:       opts.OnStatus,
		})
	}

	s.Subscriber = NewSubscriber(opts.ServerURL, s.Session, s.applyNotification, log)

	return s
}

// Engine returns the engine serving namespace, or nil for an unknown one.
func (s *Suite) Engine(namespace string) *Engine {
	return s.engines[namespace]
}

// Register creates a new account, adopts the returned session and brings the
// suite online.
func (s *Suite) Register(ctx context.Context, user models.User) error {
	created, err := s.remote.Register(ctx, user)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}

	s.Session.SetAuthenticated(s.remote.Token(), created.UserID)
	return s.goOnline(ctx)
}

// Login authenticates an existing account, adopts the session and brings the
// suite online.
func (s *Suite) Login(ctx context.Context, user models.User) error {
	token, err := s.remote.Login(ctx, user)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	s.Session.SetAuthenticated(token.SignedString, token.UserID)
	return s.goOnline(ctx)
}

// LoadAll reconciles every application's startup state. Safe to call while
// signed out; each engine then adopts its local copy or defaults.
func (s *Suite) LoadAll(ctx context.Context) {
	for _, ns := range models.AllNamespaces() {
		s.engines[ns].Load(ctx)
	}
}

func (s *Suite) goOnline(ctx context.Context) error {
	s.LoadAll(ctx)
	s.Subscriber.Start(ctx)
	return nil
}

// SignOut tears the session down in order: the live channel stops first,
// then every engine cancels its pending write and clears its namespace, and
// only then is the identity dropped. A debounce timer that slips through the
// cancellation still finds an unauthenticated session and does nothing.
func (s *Suite) SignOut() error {
	s.Subscriber.Stop()

	var firstErr error
	for _, ns := range models.AllNamespaces() {
		if err := s.engines[ns].SignOut(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("clear %s: %w", ns, err)
		}
	}

	s.Session.Clear()
	s.remote.SetToken("")

	return firstErr
}

// Export snapshots local storage into a backup document.
func (s *Suite) Export() (models.BackupFile, error) {
	return ExportBackup(s.local, s.clock.Now())
}

// Import restores a backup into local storage and reloads every engine so
// the restored values are adopted.
func (s *Suite) Import(ctx context.Context, file models.BackupFile) error {
	if err := ImportBackup(s.local, file); err != nil {
		return err
	}
	s.LoadAll(ctx)
	return nil
}

// applyNotification fans an inbound record update out to every engine whose
// namespace the notification carries.
func (s *Suite) applyNotification(n models.SyncNotification) {
	record := n.RemoteRecordOf()

	for ns, eng := range s.engines {
		env, ok, err := record.EnvelopeFor(ns)
		if err != nil {
			s.logger.Warn().Str("func", "applyNotification").Str("namespace", ns).Err(err).
				Msg("dropping malformed namespace in notification")
			continue
		}
		if !ok {
			continue
		}
		eng.ApplyRemote(env)
	}
}
