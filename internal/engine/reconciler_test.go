package engine

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makarovdm/go-sync-suite/internal/adapter"
	"github.com/makarovdm/go-sync-suite/internal/logger"
	"github.com/makarovdm/go-sync-suite/models"
)

func writeLocalEnvelope(t *testing.T, local *memStore, namespace string, payload string, at time.Time) {
	t.Helper()
	encoded, err := models.NewEnvelope(json.RawMessage(payload), at).Encode()
	require.NoError(t, err)
	require.NoError(t, local.Write(namespace, encoded))
}

func remoteRecordWith(t *testing.T, namespace string, payload string, at time.Time) models.RemoteRecord {
	t.Helper()
	encoded, err := models.NewEnvelope(json.RawMessage(payload), at).Encode()
	require.NoError(t, err)
	return models.RemoteRecord{
		Namespaces: map[string]json.RawMessage{namespace: encoded},
		UpdatedAt:  at,
	}
}

func authedSession() *Session {
	s := NewSession()
	s.SetAuthenticated("test-token", 1)
	return s
}

func TestReconcile(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		authenticated bool
		setup         func(t *testing.T, local *memStore, remote *fakeAdapter)
		wantSource    Source
		wantPayload   string
	}{
		{
			name:          "signed out adopts local copy",
			authenticated: false,
			setup: func(t *testing.T, local *memStore, _ *fakeAdapter) {
				writeLocalEnvelope(t, local, models.NamespaceNotes, `{"v":"local"}`, base)
			},
			wantSource:  SourceLocal,
			wantPayload: `{"v":"local"}`,
		},
		{
			name:          "signed out with nothing stored starts from defaults",
			authenticated: false,
			setup:         func(*testing.T, *memStore, *fakeAdapter) {},
			wantSource:    SourceAbsent,
		},
		{
			name:          "newer local copy wins",
			authenticated: true,
			setup: func(t *testing.T, local *memStore, remote *fakeAdapter) {
				writeLocalEnvelope(t, local, models.NamespaceNotes, `{"v":"local"}`, base.Add(time.Minute))
				remote.setRecord(remoteRecordWith(t, models.NamespaceNotes, `{"v":"remote"}`, base))
			},
			wantSource:  SourceLocal,
			wantPayload: `{"v":"local"}`,
		},
		{
			name:          "newer remote copy wins",
			authenticated: true,
			setup: func(t *testing.T, local *memStore, remote *fakeAdapter) {
				writeLocalEnvelope(t, local, models.NamespaceNotes, `{"v":"local"}`, base)
				remote.setRecord(remoteRecordWith(t, models.NamespaceNotes, `{"v":"remote"}`, base.Add(time.Minute)))
			},
			wantSource:  SourceRemote,
			wantPayload: `{"v":"remote"}`,
		},
		{
			name:          "equal timestamps go remote",
			authenticated: true,
			setup: func(t *testing.T, local *memStore, remote *fakeAdapter) {
				writeLocalEnvelope(t, local, models.NamespaceNotes, `{"v":"local"}`, base)
				remote.setRecord(remoteRecordWith(t, models.NamespaceNotes, `{"v":"remote"}`, base))
			},
			wantSource:  SourceRemote,
			wantPayload: `{"v":"remote"}`,
		},
		{
			name:          "unreachable remote falls back to local",
			authenticated: true,
			setup: func(t *testing.T, local *memStore, remote *fakeAdapter) {
				writeLocalEnvelope(t, local, models.NamespaceNotes, `{"v":"local"}`, base)
				remote.fetchErr = adapter.ErrNetwork
			},
			wantSource:  SourceLocal,
			wantPayload: `{"v":"local"}`,
		},
		{
			name:          "no remote record yet adopts local",
			authenticated: true,
			setup: func(t *testing.T, local *memStore, _ *fakeAdapter) {
				writeLocalEnvelope(t, local, models.NamespaceNotes, `{"v":"local"}`, base)
			},
			wantSource:  SourceLocal,
			wantPayload: `{"v":"local"}`,
		},
		{
			name:          "remote only",
			authenticated: true,
			setup: func(t *testing.T, _ *memStore, remote *fakeAdapter) {
				remote.setRecord(remoteRecordWith(t, models.NamespaceNotes, `{"v":"remote"}`, base))
			},
			wantSource:  SourceRemote,
			wantPayload: `{"v":"remote"}`,
		},
		{
			name:          "corrupted local value loses to remote",
			authenticated: true,
			setup: func(t *testing.T, local *memStore, remote *fakeAdapter) {
				require.NoError(t, local.Write(models.NamespaceNotes, []byte("{not json")))
				remote.setRecord(remoteRecordWith(t, models.NamespaceNotes, `{"v":"remote"}`, base))
			},
			wantSource:  SourceRemote,
			wantPayload: `{"v":"remote"}`,
		},
		{
			name:          "nothing anywhere",
			authenticated: true,
			setup:         func(*testing.T, *memStore, *fakeAdapter) {},
			wantSource:    SourceAbsent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := newMemStore()
			remote := newFakeAdapter()
			session := NewSession()
			if tt.authenticated {
				session.SetAuthenticated("test-token", 1)
			}
			tt.setup(t, local, remote)

			r := NewReconciler(local, remote, session, logger.Nop())
			env, src := r.Reconcile(context.Background(), models.NamespaceNotes)

			assert.Equal(t, tt.wantSource, src)
			if tt.wantPayload != "" {
				assert.JSONEq(t, tt.wantPayload, string(env.Payload))
			} else {
				assert.True(t, env.IsZero())
			}
			if !tt.authenticated {
				assert.Zero(t, remote.fetchCount(), "signed out reconciliation never calls the server")
			}
		})
	}
}

// A legacy remote entry carries no lastUpdated of its own; the record's
// server-side updated_at stands in for it.
func TestReconcileLegacyRemoteEntryUsesRecordTime(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	local := newMemStore()
	remote := newFakeAdapter()
	writeLocalEnvelope(t, local, models.NamespaceNotes, `{"v":"local"}`, base)
	remote.setRecord(models.RemoteRecord{
		Namespaces: map[string]json.RawMessage{
			models.NamespaceNotes: json.RawMessage(`{"v":"legacy remote"}`),
		},
		UpdatedAt: base.Add(time.Hour),
	})

	r := NewReconciler(local, remote, authedSession(), logger.Nop())
	env, src := r.Reconcile(context.Background(), models.NamespaceNotes)

	assert.Equal(t, SourceRemote, src)
	assert.JSONEq(t, `{"v":"legacy remote"}`, string(env.Payload))
	assert.Equal(t, base.Add(time.Hour), env.LastUpdated)
}

// Reconciliation adopts in memory only. Neither store is written, so a
// reconcile against a read-only medium can never fail.
func TestReconcileDoesNotPersist(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	local := newMemStore()
	remote := newFakeAdapter()
	remote.setRecord(remoteRecordWith(t, models.NamespaceNotes, `{"v":"remote"}`, base))

	r := NewReconciler(local, remote, authedSession(), logger.Nop())
	_, src := r.Reconcile(context.Background(), models.NamespaceNotes)

	require.Equal(t, SourceRemote, src)
	_, err := local.Read(models.NamespaceNotes)
	assert.Error(t, err, "adopting a remote copy must not write it locally")
	assert.Zero(t, remote.putCount())
}
