package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bloodbank/internal/adapters/storage"
)

// IDAllocator computes the next sequential identifier for a prefixed
// sequence by reading the rows currently in table.idColumn.
type IDAllocator interface {
	NextID(ctx context.Context, prefix, table, idColumn string) (string, error)
}

// ErrIDAllocationFailed wraps allocator failures surfaced to callers.
var ErrIDAllocationFailed = errors.New("could not allocate identifier")

// maxAllocationAttempts bounds the re-allocation loop when concurrent
// writers race to the same identifier.
const maxAllocationAttempts = 3

// insertWithFreshID allocates an identifier and runs insert with it.
// The allocator's read-then-insert sequence can race with a concurrent
// writer on the same prefix; the primary-key constraint is the backstop, and
// a duplicate-ID violation triggers re-allocation with the table's new
// contents. Any other insert error is returned as-is.
// POST: Returns the identifier that was successfully inserted
func insertWithFreshID(ctx context.Context, alloc IDAllocator, prefix, table, idColumn string, insert func(id string) error) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAllocationAttempts; attempt++ {
		id, err := alloc.NextID(ctx, prefix, table, idColumn)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrIDAllocationFailed, err)
		}
		err = insert(id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, storage.ErrDuplicateID) {
			return "", err
		}
		slog.Warn("id_allocation_race", "prefix", prefix, "id", id, "attempt", attempt)
		lastErr = err
	}
	return "", fmt.Errorf("%w: %v", ErrIDAllocationFailed, lastErr)
}
