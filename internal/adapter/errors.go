package adapter

import "errors"

var (
	// ErrUnauthorized is returned when the server rejects the session token
	// (or no token is installed). Callers fall back to local-only behavior.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrNotFound is returned when the authenticated user has no remote
	// record yet. This is a normal first-run result, not a failure.
	ErrNotFound = errors.New("remote record not found")

	// ErrNetwork is returned for transport-level failures (connection
	// refused, timeout, DNS). Reads fall back to local state; writes are
	// effectively retried by the next debounce cycle.
	ErrNetwork = errors.New("network error")
)
