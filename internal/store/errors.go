package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrJobNotFound is returned when an operation targets a job id that is
	// not present in the sync_jobs table, or when a guarded transition (for
	// example failed -> pending) matches no row.
	ErrJobNotFound = errors.New("sync job was not found")

	// ErrUnknownEntityType is returned when an entity operation names an
	// entity type this build has no local table for.
	ErrUnknownEntityType = errors.New("unknown entity type")

	// ErrEntityNotFound is returned when a lookup targets an entity row
	// that does not exist locally.
	ErrEntityNotFound = errors.New("entity was not found")

	// ErrInvalidConflictChoice is returned when ResolveConflict receives a
	// choice value outside the known set.
	ErrInvalidConflictChoice = errors.New("invalid conflict resolution choice")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
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

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
