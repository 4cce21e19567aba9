package engine

import "errors"

var (
	// ErrNotLoaded is returned when a mutation is published before the
	// engine has reconciled its startup state. Publishing before load could
	// overwrite a newer remote copy that was never seen.
	ErrNotLoaded = errors.New("application state not loaded")

	// ErrBackupVersion is returned when an imported backup file declares a
	// format version this build does not understand.
	ErrBackupVersion = errors.New("unsupported backup format version")
)
