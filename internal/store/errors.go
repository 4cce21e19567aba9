package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same login already exists in the database.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrRecordNotFound is returned when a user has no remote record yet.
	// This is a normal first-run condition, not a failure: the caller adopts
	// local state and the first debounced write creates the record.
	ErrRecordNotFound = errors.New("user record not found")

	// ErrQuotaExceeded is returned when the local store rejects a write
	// because the underlying medium is out of space. The in-memory state is
	// still correct; only local persistence lags. Callers surface this to the
	// user instead of silently dropping the write.
	ErrQuotaExceeded = errors.New("local storage quota exceeded")

	// ErrNamespaceNotFound is returned when a local read targets a namespace
	// that has never been written. Treated by the reconciler as an absent
	// envelope with recency older than any stamped one.
	ErrNamespaceNotFound = errors.New("namespace not found in local store")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")
)
