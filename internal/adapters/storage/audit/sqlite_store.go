package audit

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	domain "bloodbank/internal/domain/audit"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new audit store.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Insert appends an audit event.
// PRE: e carries a fresh ID and timestamp
// POST: Event is persisted; events are never updated or deleted
func (s *SQLiteStore) Insert(ctx context.Context, e domain.Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO Audit_Event (Event_ID, Timestamp, Category, Action, Severity, Actor_ID, Resource_ID, Resource_Type, Description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Timestamp.Format(time.RFC3339Nano), string(e.Category), string(e.Action),
		string(e.Severity), e.ActorID, e.ResourceID, e.ResourceType, e.Description,
	)
	return err
}

// List retrieves audit events, newest first.
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Event, error) {
	var b strings.Builder
	var args []any

	b.WriteString("SELECT Event_ID, Timestamp, Category, Action, Severity, Actor_ID, Resource_ID, Resource_Type, Description FROM Audit_Event")
	if filter.Severity != "" {
		b.WriteString(" WHERE Severity = ?")
		args = append(args, string(filter.Severity))
	}
	b.WriteString(" ORDER BY Timestamp DESC")
	if filter.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Event
	for rows.Next() {
		var e domain.Event
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.Category, &e.Action, &e.Severity, &e.ActorID, &e.ResourceID, &e.ResourceType, &e.Description); err != nil {
			return nil, err
		}
		e.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("cannot parse audit timestamp: %w", err)
		}
		results = append(results, e)
	}
	return results, rows.Err()
}
