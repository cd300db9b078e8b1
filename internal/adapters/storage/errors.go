package storage

import (
	"errors"
	"strings"
)

// ErrDuplicateID is returned by entity stores when an insert collides on the
// identifier primary key. It marks an identifier-allocation race: the caller
// re-allocates and retries. Username conflicts are NOT this error.
var ErrDuplicateID = errors.New("identifier already exists")

// IsUniqueViolation reports whether err is a SQLite UNIQUE constraint
// violation on the given table.column. The modernc driver exposes constraint
// failures only through the error text, e.g.
// "constraint failed: UNIQUE constraint failed: User_Login.Username (2067)".
func IsUniqueViolation(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, column)
}
