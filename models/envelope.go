// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Makarov

package models

import (
	"encoding/json"
	"time"
)

// Fixed namespaces identifying each application's slot in local and remote
// storage. Namespaces are static; new applications add a constant here.
const (
	NamespaceFinance  = "finance"
	NamespaceNotes    = "notes"
	NamespaceTasks    = "tasks"
	NamespaceSettings = "settings"
)

// AllNamespaces returns every namespace known to the suite, in a stable order.
// Backup export and sign-out iterate over this list.
func AllNamespaces() []string {
	return []string{NamespaceFinance, NamespaceNotes, NamespaceTasks, NamespaceSettings}
}

// Envelope is the unit of persistence shared by the local and remote stores.
//
// Payload is the application's full state, opaque to the sync layer.
// LastUpdated is stamped by the change publisher at write time (wall clock,
// not storage time) and is the only metadata the reconciler compares.
type Envelope struct {
	Payload     json.RawMessage `json:"payload"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

// NewEnvelope wraps payload with the given write timestamp.
func NewEnvelope(payload json.RawMessage, at time.Time) Envelope {
	return Envelope{Payload: payload, LastUpdated: at}
}

// IsZero reports whether the envelope carries no data at all.
func (e Envelope) IsZero() bool {
	return len(e.Payload) == 0 && e.LastUpdated.IsZero()
}

// envelopeWire mirrors Envelope for detection of the wrapped shape during
// tolerant decoding.
type envelopeWire struct {
	Payload     json.RawMessage `json:"payload"`
	LastUpdated *time.Time      `json:"lastUpdated"`
}

// DecodeEnvelope parses a raw persisted value into an Envelope, accepting two
// shapes:
//
//   - the current wrapped form {"payload": ..., "lastUpdated": ...};
//   - the legacy form, a bare application state with no wrapper at all.
//
// Legacy values decode with a zero LastUpdated, which ranks them older than
// any stamped envelope during reconciliation. This is the single place in the
// codebase that knows about the legacy shape; callers never branch on it.
func DecodeEnvelope(raw []byte) (Envelope, error) {
	if len(raw) == 0 {
		return Envelope{}, nil
	}

	var wire envelopeWire
	if err := json.Unmarshal(raw, &wire); err == nil && wire.LastUpdated != nil && wire.Payload != nil {
		return Envelope{Payload: wire.Payload, LastUpdated: *wire.LastUpdated}, nil
	}

	// Legacy shape: the whole value is the payload. Validate it is JSON at all
	// so that corrupted rows surface as errors rather than silent adoption.
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Envelope{}, err
	}

	return Envelope{Payload: append(json.RawMessage(nil), raw...)}, nil
}

// Encode serializes the envelope into its persisted wrapped form.
func (e Envelope) Encode() ([]byte, error) {
	return json.Marshal(e)
}
