package store

// LocalStore is the client-side durable key-value persistence contract: the
// application's full state per fixed namespace, synchronous from the caller's
// perspective.
//
// It is injected as a capability object rather than accessed ambiently so
// tests can substitute an in-memory fake.
type LocalStore interface {
	// Read returns the raw persisted value for namespace, or
	// [ErrNamespaceNotFound] when nothing has been written.
	Read(namespace string) ([]byte, error)

	// Write persists the raw value under namespace. A full medium surfaces
	// as [ErrQuotaExceeded]; the write is never silently dropped.
	Write(namespace string, value []byte) error

	// Clear removes the value stored under namespace.
	Clear(namespace string) error

	// ReadAll returns every stored namespace and its raw value.
	ReadAll() (map[string][]byte, error)
}
