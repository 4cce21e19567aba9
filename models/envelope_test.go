package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope(t *testing.T) {
	stamped := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		raw         string
		wantPayload string
		wantTime    time.Time
		wantErr     bool
	}{
		{
			name:        "wrapped shape",
			raw:         `{"payload":{"text":"hi"},"lastUpdated":"2026-03-01T12:00:00Z"}`,
			wantPayload: `{"text":"hi"}`,
			wantTime:    stamped,
		},
		{
			name:        "legacy bare state decodes with zero recency",
			raw:         `{"text":"hi","pinned":true}`,
			wantPayload: `{"text":"hi","pinned":true}`,
		},
		{
			name:        "legacy bare state that happens to contain a payload key",
			raw:         `{"payload":"just a field"}`,
			wantPayload: `{"payload":"just a field"}`,
		},
		{
			name:        "legacy bare array",
			raw:         `[1,2,3]`,
			wantPayload: `[1,2,3]`,
		},
		{
			name:    "corrupted value",
			raw:     `{not json`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := DecodeEnvelope([]byte(tt.raw))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantPayload, string(env.Payload))
			assert.Equal(t, tt.wantTime, env.LastUpdated)
		})
	}
}

func TestDecodeEnvelopeEmpty(t *testing.T) {
	env, err := DecodeEnvelope(nil)
	require.NoError(t, err)
	assert.True(t, env.IsZero())
}

func TestEnvelopeEncodeRoundTrip(t *testing.T) {
	stamped := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	env := NewEnvelope(json.RawMessage(`{"v":1}`), stamped)

	raw, err := env.Encode()
	require.NoError(t, err)

	decoded, err := DecodeEnvelope(raw)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(decoded.Payload))
	assert.Equal(t, stamped, decoded.LastUpdated)
}

func TestRemoteRecordEnvelopeFor(t *testing.T) {
	recordTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	envTime := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	wrapped, err := NewEnvelope(json.RawMessage(`{"v":1}`), envTime).Encode()
	require.NoError(t, err)

	record := RemoteRecord{
		Namespaces: map[string]json.RawMessage{
			NamespaceNotes:    wrapped,
			NamespaceFinance:  json.RawMessage(`{"balance":5}`),
			NamespaceSettings: json.RawMessage(`{broken`),
		},
		UpdatedAt: recordTime,
	}

	t.Run("wrapped entry keeps its own recency", func(t *testing.T) {
		env, ok, err := record.EnvelopeFor(NamespaceNotes)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, envTime, env.LastUpdated)
	})

	t.Run("legacy entry inherits record recency", func(t *testing.T) {
		env, ok, err := record.EnvelopeFor(NamespaceFinance)
		require.NoError(t, err)
		require.True(t, ok)
		assert.JSONEq(t, `{"balance":5}`, string(env.Payload))
		assert.Equal(t, recordTime, env.LastUpdated)
	})

	t.Run("absent namespace", func(t *testing.T) {
		_, ok, err := record.EnvelopeFor(NamespaceTasks)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("corrupted entry surfaces an error", func(t *testing.T) {
		_, _, err := record.EnvelopeFor(NamespaceSettings)
		assert.Error(t, err)
	})
}

func TestRemoteRecordWithEnvelope(t *testing.T) {
	sibling := json.RawMessage(`{"payload":{},"lastUpdated":"2026-01-01T00:00:00Z"}`)
	record := RemoteRecord{
		Namespaces: map[string]json.RawMessage{NamespaceTasks: sibling},
	}

	env := NewEnvelope(json.RawMessage(`{"text":"hi"}`), time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	merged, err := record.WithEnvelope(NamespaceNotes, env)
	require.NoError(t, err)

	assert.Len(t, merged, 2)
	assert.Equal(t, sibling, merged[NamespaceTasks], "siblings carry over untouched")

	decoded, err := DecodeEnvelope(merged[NamespaceNotes])
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"hi"}`, string(decoded.Payload))

	// The receiver's map is not mutated.
	assert.Len(t, record.Namespaces, 1)
}
