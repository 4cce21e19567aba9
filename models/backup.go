package models

import "time"

// BackupFormatVersion is written into every exported backup file and checked
// on import.
const BackupFormatVersion = 1

// BackupMeta describes a backup file.
type BackupMeta struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exported_at"`
}

// BackupFile is the export/import document: every namespace's raw persisted
// value, exactly as it sits in the local store. Import writes each value back
// verbatim with no merge; a restore is an explicit full overwrite.
type BackupFile struct {
	Meta BackupMeta        `json:"meta"`
	Data map[string]string `json:"data"`
}
