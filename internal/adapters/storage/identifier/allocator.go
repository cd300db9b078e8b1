package identifier

import (
	"context"
)

// Allocator computes the next unused identifier for a prefixed sequence.
type Allocator interface {
	// NextID returns the next identifier for prefix, derived from the rows
	// currently in table.idColumn. It is a pure read: calling it twice
	// without an intervening insert returns the same value.
	NextID(ctx context.Context, prefix, table, idColumn string) (string, error)
}
