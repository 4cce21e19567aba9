package engine

import "sync"

// SyncState is the coarse sync condition surfaced to the embedding UI.
// Sync failures never block the application; they only move this state.
type SyncState string

const (
	// StateIdle means the last remote interaction (if any) succeeded.
	StateIdle SyncState = "idle"

	// StateSyncing means a remote write or read is in flight.
	StateSyncing SyncState = "syncing"

	// StateOffline means remote access failed at the transport level or the
	// session is not authenticated; the engine operates on local state.
	StateOffline SyncState = "offline"

	// StateError means the last remote write failed for a non-transport
	// reason. The local copy is still current; the next debounce cycle is
	// the retry.
	StateError SyncState = "error"
)

// StatusFunc receives sync state transitions. err is non-nil only for
// StateOffline and StateError.
type StatusFunc func(state SyncState, err error)

// statusTracker serializes state transitions and fans them out to an
// optional observer.
type statusTracker struct {
	mu     sync.Mutex
	state  SyncState
	notify StatusFunc
}

func newStatusTracker(notify StatusFunc) *statusTracker {
	return &statusTracker{state: StateIdle, notify: notify}
}

func (t *statusTracker) set(state SyncState, err error) {
	t.mu.Lock()
	t.state = state
	notify := t.notify
	t.mu.Unlock()

	if notify != nil {
		notify(state, err)
	}
}

func (t *statusTracker) current() SyncState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
