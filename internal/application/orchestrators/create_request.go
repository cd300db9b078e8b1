package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"bloodbank/internal/domain/request"
)

// RequestStoreForCreate defines the store interface needed by CreateRequest.
type RequestStoreForCreate interface {
	Insert(ctx context.Context, r request.Request) error
}

// CreateRequestInput carries the blood request form fields.
type CreateRequestInput struct {
	HospitalID  string
	RecipientID string
	BloodGroup  string
	Quantity    int
}

// CreateRequestDeps holds dependencies for CreateRequest.
type CreateRequestDeps struct {
	Allocator    IDAllocator
	RequestStore RequestStoreForCreate
}

// ExecuteCreateRequest opens a new blood request. Every request starts
// Pending and is dated at creation time.
// POST: Returns the allocated request identifier
func ExecuteCreateRequest(ctx context.Context, input CreateRequestInput, deps CreateRequestDeps) (string, error) {
	r := request.Request{
		HospitalID:  input.HospitalID,
		RecipientID: input.RecipientID,
		Status:      request.StatusPending,
		Quantity:    input.Quantity,
		BloodGroup:  input.BloodGroup,
		Date:        time.Now(),
	}
	if err := r.Validate(); err != nil {
		return "", err
	}

	requestID, err := insertWithFreshID(ctx, deps.Allocator, "REQ", "Request", "Request_ID", func(id string) error {
		r.ID = id
		return deps.RequestStore.Insert(ctx, r)
	})
	if err != nil {
		return "", err
	}

	slog.Info("request_event", "event", "request_created", "request_id", requestID, "blood_group", input.BloodGroup, "quantity", input.Quantity)
	return requestID, nil
}
