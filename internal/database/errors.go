package database

import (
	"errors"
	"fmt"
)

// ErrDatabaseNotFound is returned by Open when CreateIfNotExists is
// false and no database file exists at the requested location.
// Commands that read an existing store match on it to tell "never
// crawled" apart from a real I/O failure.
var ErrDatabaseNotFound = errors.New("database not found")

// PersistenceError describes a failed write to the metadata store.
// The crawl orchestrator retries each failed write once and aborts the
// run after repeated failures; the operation and key let it log exactly
// what was at risk of being lost.
type PersistenceError struct {
	// Op names the store operation that failed ("upsert video",
	// "upsert subtitle", "save run summary").
	Op string

	// Key identifies the row involved, usually a video id or run id.
	Key string

	// Err is the underlying database error.
	Err error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error so errors.Is and errors.As can
// reach driver-level causes.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}
