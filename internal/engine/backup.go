package engine

import (
	"fmt"
	"time"

	"github.com/makarovdm/go-sync-suite/internal/store"
	"github.com/makarovdm/go-sync-suite/models"
)

// ExportBackup snapshots every stored namespace into a backup document. The
// values are copied verbatim, wrapper and all, so a round trip is lossless.
func ExportBackup(local store.LocalStore, now time.Time) (models.BackupFile, error) {
	all, err := local.ReadAll()
	if err != nil {
		return models.BackupFile{}, fmt.Errorf("read local namespaces: %w", err)
	}

	data := make(map[string]string, len(all))
	for ns, raw := range all {
		data[ns] = string(raw)
	}

	return models.BackupFile{
		Meta: models.BackupMeta{Version: models.BackupFormatVersion, ExportedAt: now},
		Data: data,
	}, nil
}

// ImportBackup writes every value from the backup into local storage
// verbatim. It is a full overwrite, not a merge; the caller reloads the
// engines afterwards so the restored state is reconciled and adopted.
func ImportBackup(local store.LocalStore, file models.BackupFile) error {
	if file.Meta.Version != models.BackupFormatVersion {
		return fmt.Errorf("%w: %d", ErrBackupVersion, file.Meta.Version)
	}

	for ns, value := range file.Data {
		if err := local.Write(ns, []byte(value)); err != nil {
			return fmt.Errorf("restore %s: %w", ns, err)
		}
	}

	return nil
}
