package audit

import (
	"context"

	domain "bloodbank/internal/domain/audit"
)

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit    int
	Severity domain.Severity
}

// Store persists audit events. Events are append-only.
type Store interface {
	Insert(ctx context.Context, e domain.Event) error
	List(ctx context.Context, filter ListFilter) ([]domain.Event, error)
}
