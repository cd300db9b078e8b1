package identifier

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	domain "bloodbank/internal/domain/identifier"
)

// sqlIdentifier matches table and column names that are safe to interpolate.
// Names come from code, never from users, but the allocator is generic over
// tables so it re-checks before building the query.
var sqlIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteAllocator implements Allocator by scanning existing identifiers.
type SQLiteAllocator struct {
	db *sql.DB
}

// NewSQLiteAllocator creates a new SQLiteAllocator.
func NewSQLiteAllocator(db *sql.DB) *SQLiteAllocator {
	return &SQLiteAllocator{db: db}
}

// NextID returns the next identifier for prefix in table.idColumn.
// PRE: prefix is 1-3 uppercase letters; table and idColumn name existing schema objects
// POST: Returns prefix + zero-padded(max existing suffix + 1); no rows are written
// INVARIANT: Read-only — concurrent callers can race to the same value, which
// the caller must resolve via the primary-key constraint and re-allocation
func (a *SQLiteAllocator) NextID(ctx context.Context, prefix, table, idColumn string) (string, error) {
	if _, err := domain.PadLength(prefix); err != nil {
		return "", err
	}
	if !sqlIdentifier.MatchString(table) || !sqlIdentifier.MatchString(idColumn) {
		return "", fmt.Errorf("%w: bad table or column name", domain.ErrInvalidArgument)
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s LIKE ?", idColumn, table, idColumn)
	rows, err := a.db.QueryContext(ctx, query, prefix+"%")
	if err != nil {
		return "", fmt.Errorf("id allocation query failed: %w", err)
	}
	defer rows.Close()

	var existing []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("id allocation scan failed: %w", err)
		}
		existing = append(existing, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("id allocation read failed: %w", err)
	}

	return domain.Next(prefix, existing)
}
