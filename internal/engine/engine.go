// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Makarov

package engine

import (
	"context"
	"sync"
	"time"

	"github.com/makarovdm/go-sync-suite/internal/adapter"
	"github.com/makarovdm/go-sync-suite/internal/logger"
	"github.com/makarovdm/go-sync-suite/internal/store"
	"github.com/makarovdm/go-sync-suite/models"
)

const (
	// DefaultDebounceWindow is how long the publisher waits after the last
	// mutation before pushing to the remote store.
	DefaultDebounceWindow = 2 * time.Second

	// DefaultFlushTimeout bounds a single remote read-merge-write cycle.
	DefaultFlushTimeout = 15 * time.Second
)

// Options tunes an Engine. The zero value gets production defaults.
type Options struct {
	DebounceWindow time.Duration
	FlushTimeout   time.Duration

	// Clock defaults to the system clock. Tests inject a fake to drive the
	// debounce window deterministically.
	Clock Clock

	// OnChange is invoked after an inbound remote update is applied, so the
	// embedding UI can re-render. Never invoked for the caller's own
	// Publish calls.
	OnChange func(models.Envelope)

	// OnStatus observes sync state transitions.
	OnStatus StatusFunc
}

// Engine owns one application's state lifecycle: startup reconciliation,
// mutation publishing (immediate local write plus debounced remote write) and
// application of inbound live updates.
//
// One Engine serves one namespace; the suite holds one per application, all
// sharing a Session, a LocalStore and a ServerAdapter.
type Engine struct {
	namespace    string
	window       time.Duration
	flushTimeout time.Duration

	local      store.LocalStore
	remote     adapter.ServerAdapter
	session    *Session
	reconciler *Reconciler
	clock      Clock
	logger     *logger.Logger
	status     *statusTracker
	onChange   func(models.Envelope)

	mu      sync.Mutex
	loaded  bool
	current models.Envelope
	timer   Timer
}

func NewEngine(namespace string, local store.LocalStore, remote adapter.ServerAdapter, session *Session, log *logger.Logger, opts Options) *Engine {
	if opts.DebounceWindow <= 0 {
		opts.DebounceWindow = DefaultDebounceWindow
	}
	if opts.FlushTimeout <= 0 {
		opts.FlushTimeout = DefaultFlushTimeout
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}

	return &Engine{
		namespace:    namespace,
		window:       opts.DebounceWindow,
		flushTimeout: opts.FlushTimeout,
		local:        local,
		remote:       remote,
		session:      session,
		reconciler:   NewReconciler(local, remote, session, log),
		clock:        opts.Clock,
		logger:       log,
		status:       newStatusTracker(opts.OnStatus),
		onChange:     opts.OnChange,
	}
}

// Namespace returns the fixed namespace this engine serves.
func (e *Engine) Namespace() string { return e.namespace }

// Load reconciles the startup state and arms the publisher. It adopts the
// winning envelope in memory only; nothing is persisted until the next
// published mutation.
//
// A namespace absent on both sides starts from the application's first-run
// defaults. Their LastUpdated stays zero, so any remote copy that appears
// later outranks untouched defaults.
func (e *Engine) Load(ctx context.Context) (models.Envelope, Source) {
	env, src := e.reconciler.Reconcile(ctx, e.namespace)
	if src == SourceAbsent {
		if raw, ok := models.DefaultStateFor(e.namespace); ok {
			env.Payload = raw
		}
	}

	e.mu.Lock()
	e.current = env
	e.loaded = true
	e.mu.Unlock()

	e.logger.Debug().Str("func", "Load").Str("namespace", e.namespace).
		Str("source", string(src)).Msg("startup state reconciled")

	return env, src
}

// Current returns the in-memory envelope the engine last adopted or published.
func (e *Engine) Current() models.Envelope {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// Status returns the current sync condition.
func (e *Engine) Status() SyncState {
	return e.status.current()
}

// ApplyRemote installs an envelope received over the live subscription. The
// local copy is refreshed so a restart sees the update, but no remote write
// is scheduled: inbound updates never echo back out.
func (e *Engine) ApplyRemote(env models.Envelope) {
	e.mu.Lock()
	e.current = env
	e.mu.Unlock()

	encoded, err := env.Encode()
	if err == nil {
		err = e.local.Write(e.namespace, encoded)
	}
	if err != nil {
		e.logger.Warn().Str("func", "ApplyRemote").Str("namespace", e.namespace).Err(err).
			Msg("failed to persist inbound update locally")
	}

	if e.onChange != nil {
		e.onChange(env)
	}
}

// SignOut cancels any pending remote write, drops the in-memory state and
// clears the namespace from local storage. The shared session is cleared by
// the suite, not here.
func (e *Engine) SignOut() error {
	e.mu.Lock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.current = models.Envelope{}
	e.loaded = false
	e.mu.Unlock()

	return e.local.Clear(e.namespace)
}
