// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Makarov

package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/makarovdm/go-sync-suite/internal/adapter"
	"github.com/makarovdm/go-sync-suite/models"
)

// Publish accepts the application's new full state. The envelope is stamped
// with the current wall clock, written to local storage before returning, and
// a remote write is scheduled one debounce window out. Rapid successive calls
// keep resetting that timer; when it finally fires it reads the then-current
// state, so intermediate versions are coalesced away rather than queued.
//
// A full local medium surfaces as [store.ErrQuotaExceeded]. The in-memory
// state and the scheduled remote write are unaffected by a local write
// failure.
func (e *Engine) Publish(_ context.Context, payload json.RawMessage) error {
	env := models.NewEnvelope(payload, e.clock.Now())

	encoded, err := env.Encode()
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	e.mu.Lock()
	if !e.loaded {
		e.mu.Unlock()
		return ErrNotLoaded
	}

	e.current = env
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = nil
	if e.session.Authenticated() {
		e.timer = e.clock.AfterFunc(e.window, e.flush)
	}

	// The local write happens under the lock so persisted values cannot
	// land out of order relative to e.current.
	writeErr := e.local.Write(e.namespace, encoded)
	e.mu.Unlock()

	if writeErr != nil {
		return fmt.Errorf("persist %s: %w", e.namespace, writeErr)
	}

	return nil
}

// flush runs when the debounce timer fires. It deliberately re-reads the
// current in-memory state rather than a value captured at scheduling time.
func (e *Engine) flush() {
	e.mu.Lock()
	e.timer = nil
	env := e.current
	loaded := e.loaded
	e.mu.Unlock()

	// Sign-out may have raced the timer.
	if !loaded || !e.session.Authenticated() {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.flushTimeout)
	defer cancel()

	e.push(ctx, env)
}

// push performs one read-merge-write cycle against the remote store. Failures
// move the sync status and nothing else: the local copy is already current and
// the next mutation's debounce cycle is the retry.
func (e *Engine) push(ctx context.Context, env models.Envelope) {
	e.status.set(StateSyncing, nil)

	record, err := e.remote.FetchRecord(ctx)
	switch {
	case errors.Is(err, adapter.ErrNotFound):
		record = models.RemoteRecord{}
	case errors.Is(err, adapter.ErrNetwork), errors.Is(err, adapter.ErrUnauthorized):
		e.logger.Warn().Str("func", "push").Str("namespace", e.namespace).Err(err).
			Msg("remote fetch failed, keeping local copy")
		e.status.set(StateOffline, err)
		return
	case err != nil:
		e.logger.Error().Str("func", "push").Str("namespace", e.namespace).Err(err).
			Msg("remote fetch failed")
		e.status.set(StateError, err)
		return
	}

	merged, err := record.WithEnvelope(e.namespace, env)
	if err != nil {
		e.status.set(StateError, err)
		return
	}

	_, err = e.remote.PutRecord(ctx, models.PutRecordRequest{
		Record:   merged,
		DeviceID: e.session.DeviceID(),
	})
	if err != nil {
		if errors.Is(err, adapter.ErrNetwork) || errors.Is(err, adapter.ErrUnauthorized) {
			e.status.set(StateOffline, err)
		} else {
			e.status.set(StateError, err)
		}
		e.logger.Warn().Str("func", "push").Str("namespace", e.namespace).Err(err).
			Msg("remote write failed, will retry on next change")
		return
	}

	e.status.set(StateIdle, nil)
}
