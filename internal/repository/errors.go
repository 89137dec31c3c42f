package repository

import (
	"errors"
	"strings"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Storage-level sentinel errors. Services map these onto API responses.
var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateCategory = errors.New("category with this name already exists")
)

// isUniqueViolation reports whether err is a sqlite UNIQUE constraint failure.
// Uniqueness conflicts are detected from this signal rather than a pre-check,
// so concurrent inserts of the same key resolve with exactly one winner.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	// Wrapped or driver-agnostic errors (e.g. in tests) only carry the message.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
