// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Makarov

package models

import (
	"encoding/json"
	"time"
)

// RemoteRecord is the per-user document held by the remote store.
//
// Namespaces maps each application's namespace to that application's raw
// persisted envelope (or, for legacy rows, directly to a bare application
// state). UpdatedAt is the server-maintained modification time of the whole
// record; it is the recency fallback for legacy entries that carry no
// lastUpdated of their own.
type RemoteRecord struct {
	UserID     int64                      `json:"-"`
	Namespaces map[string]json.RawMessage `json:"record"`
	UpdatedAt  time.Time                  `json:"updated_at"`
}

// EnvelopeFor extracts and decodes the envelope stored under namespace.
//
// The second return value is false when the record holds nothing for that
// namespace. Legacy entries (no embedded lastUpdated) inherit the record's
// server-side UpdatedAt as their recency.
func (r RemoteRecord) EnvelopeFor(namespace string) (Envelope, bool, error) {
	raw, ok := r.Namespaces[namespace]
	if !ok || len(raw) == 0 {
		return Envelope{}, false, nil
	}

	env, err := DecodeEnvelope(raw)
	if err != nil {
		return Envelope{}, false, err
	}

	if env.LastUpdated.IsZero() {
		env.LastUpdated = r.UpdatedAt
	}

	return env, true, nil
}

// WithEnvelope returns a copy of the record's namespace map with the given
// namespace replaced by the encoded envelope. All sibling namespaces are
// carried over untouched; this is the merge half of the mandatory
// read-merge-write sequence.
func (r RemoteRecord) WithEnvelope(namespace string, env Envelope) (map[string]json.RawMessage, error) {
	encoded, err := env.Encode()
	if err != nil {
		return nil, err
	}

	merged := make(map[string]json.RawMessage, len(r.Namespaces)+1)
	for ns, raw := range r.Namespaces {
		merged[ns] = raw
	}
	merged[namespace] = encoded

	return merged, nil
}

// TableName returns the name of the database table backing RemoteRecord.
func (r RemoteRecord) TableName() string {
	return "user_records"
}
