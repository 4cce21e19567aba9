// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Makarov

package engine

import (
	"context"
	"errors"

	"github.com/makarovdm/go-sync-suite/internal/adapter"
	"github.com/makarovdm/go-sync-suite/internal/logger"
	"github.com/makarovdm/go-sync-suite/internal/store"
	"github.com/makarovdm/go-sync-suite/models"
)

// Source tells where the envelope adopted at startup came from.
type Source string

const (
	// SourceLocal means the local copy won (or remote was unreachable).
	SourceLocal Source = "local"

	// SourceRemote means the remote copy was at least as recent and won.
	// Ties go remote: with equal timestamps the copies are assumed to be
	// the same write observed twice, and remote is the shared view.
	SourceRemote Source = "remote"

	// SourceAbsent means neither side holds data for the namespace; the
	// application starts from its built-in defaults.
	SourceAbsent Source = "absent"
)

// Reconciler picks the authoritative envelope for a namespace at startup by
// comparing the local and remote copies on their lastUpdated stamps.
//
// Reconcile never fails and never persists: a malformed or unreachable side
// simply loses, and the adopted envelope is handed to the caller in memory.
// The next published mutation is what writes it down.
type Reconciler struct {
	local   store.LocalStore
	remote  adapter.ServerAdapter
	session *Session
	logger  *logger.Logger
}

func NewReconciler(local store.LocalStore, remote adapter.ServerAdapter, session *Session, log *logger.Logger) *Reconciler {
	return &Reconciler{local: local, remote: remote, session: session, logger: log}
}

// Reconcile resolves the startup envelope for namespace.
func (r *Reconciler) Reconcile(ctx context.Context, namespace string) (models.Envelope, Source) {
	localEnv, haveLocal := r.readLocal(namespace)

	if !r.session.Authenticated() {
		if haveLocal {
			return localEnv, SourceLocal
		}
		return models.Envelope{}, SourceAbsent
	}

	remoteEnv, haveRemote := r.readRemote(ctx, namespace)

	switch {
	case haveLocal && haveRemote:
		// Tie goes remote.
		if remoteEnv.LastUpdated.Before(localEnv.LastUpdated) {
			return localEnv, SourceLocal
		}
		return remoteEnv, SourceRemote
	case haveLocal:
		return localEnv, SourceLocal
	case haveRemote:
		return remoteEnv, SourceRemote
	default:
		return models.Envelope{}, SourceAbsent
	}
}

func (r *Reconciler) readLocal(namespace string) (models.Envelope, bool) {
	raw, err := r.local.Read(namespace)
	if err != nil {
		if !errors.Is(err, store.ErrNamespaceNotFound) {
			r.logger.Warn().Str("func", "readLocal").Str("namespace", namespace).Err(err).
				Msg("local read failed, treating namespace as absent")
		}
		return models.Envelope{}, false
	}

	env, err := models.DecodeEnvelope(raw)
	if err != nil {
		r.logger.Warn().Str("func", "readLocal").Str("namespace", namespace).Err(err).
			Msg("local value is malformed, treating namespace as absent")
		return models.Envelope{}, false
	}
	if env.IsZero() {
		return models.Envelope{}, false
	}

	return env, true
}

func (r *Reconciler) readRemote(ctx context.Context, namespace string) (models.Envelope, bool) {
	record, err := r.remote.FetchRecord(ctx)
	if err != nil {
		if !errors.Is(err, adapter.ErrNotFound) {
			r.logger.Warn().Str("func", "readRemote").Str("namespace", namespace).Err(err).
				Msg("remote fetch failed, falling back to local state")
		}
		return models.Envelope{}, false
	}

	env, ok, err := record.EnvelopeFor(namespace)
	if err != nil {
		r.logger.Warn().Str("func", "readRemote").Str("namespace", namespace).Err(err).
			Msg("remote value is malformed, treating namespace as absent")
		return models.Envelope{}, false
	}

	return env, ok
}
