package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"bloodbank/internal/domain/request"
)

// RequestStoreForUpdate defines the store interface needed by UpdateRequestStatus.
type RequestStoreForUpdate interface {
	GetByID(ctx context.Context, id string) (request.Request, error)
	Save(ctx context.Context, r request.Request) error
}

// UpdateRequestStatusInput carries the status transition fields.
type UpdateRequestStatusInput struct {
	RequestID string
	Status    string
}

// UpdateRequestStatusDeps holds dependencies for UpdateRequestStatus.
type UpdateRequestStatusDeps struct {
	RequestStore RequestStoreForUpdate
}

// ExecuteUpdateRequestStatus resolves a pending request to Fulfilled or
// Cancelled. Requests that already left Pending are rejected.
// PRE: The request exists and is Pending
// POST: The stored status matches input.Status
func ExecuteUpdateRequestStatus(ctx context.Context, input UpdateRequestStatusInput, deps UpdateRequestStatusDeps) error {
	r, err := deps.RequestStore.GetByID(ctx, input.RequestID)
	if err != nil {
		return err
	}
	if err := r.Resolve(input.Status); err != nil {
		return err
	}
	if err := deps.RequestStore.Save(ctx, r); err != nil {
		return fmt.Errorf("could not update request %s: %w", input.RequestID, err)
	}

	slog.Info("request_event", "event", "request_resolved", "request_id", input.RequestID, "status", input.Status)
	return nil
}
