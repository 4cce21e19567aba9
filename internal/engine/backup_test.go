package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makarovdm/go-sync-suite/models"
)

func TestBackupRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	src := newMemStore()
	writeLocalEnvelope(t, src, models.NamespaceNotes, `{"text":"hi"}`, at)
	// A legacy bare value exports and restores verbatim too.
	require.NoError(t, src.Write(models.NamespaceSettings, []byte(`{"theme":"dark"}`)))

	file, err := ExportBackup(src, at)
	require.NoError(t, err)
	assert.Equal(t, models.BackupFormatVersion, file.Meta.Version)
	assert.Equal(t, at, file.Meta.ExportedAt)
	assert.Len(t, file.Data, 2)

	dst := newMemStore()
	require.NoError(t, ImportBackup(dst, file))

	for _, ns := range []string{models.NamespaceNotes, models.NamespaceSettings} {
		want, err := src.Read(ns)
		require.NoError(t, err)
		got, err := dst.Read(ns)
		require.NoError(t, err)
		assert.Equal(t, want, got, "namespace %s must restore byte for byte", ns)
	}
}

func TestImportRejectsUnknownVersion(t *testing.T) {
	dst := newMemStore()
	err := ImportBackup(dst, models.BackupFile{
		Meta: models.BackupMeta{Version: 99},
		Data: map[string]string{models.NamespaceNotes: `{}`},
	})

	assert.ErrorIs(t, err, ErrBackupVersion)
	all, readErr := dst.ReadAll()
	require.NoError(t, readErr)
	assert.Empty(t, all, "a rejected import must not touch the store")
}

func TestExportEmptyStore(t *testing.T) {
	file, err := ExportBackup(newMemStore(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, file.Data)
}
