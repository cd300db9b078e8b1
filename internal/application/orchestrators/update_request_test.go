package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"bloodbank/internal/domain/request"
)

// mockRequestStore implements RequestStoreForUpdate and RequestStoreForCreate.
type mockRequestStore struct {
	reg      *idRegistry
	requests map[string]request.Request
}

func newMockRequestStore() *mockRequestStore {
	return &mockRequestStore{reg: &idRegistry{}, requests: map[string]request.Request{}}
}

func (m *mockRequestStore) Insert(_ context.Context, r request.Request) error {
	m.requests[r.ID] = r
	m.reg.add(r.ID)
	return nil
}

func (m *mockRequestStore) GetByID(_ context.Context, id string) (request.Request, error) {
	r, ok := m.requests[id]
	if !ok {
		return request.Request{}, errors.New("request not found")
	}
	return r, nil
}

func (m *mockRequestStore) Save(_ context.Context, r request.Request) error {
	if _, ok := m.requests[r.ID]; !ok {
		return errors.New("request not found")
	}
	m.requests[r.ID] = r
	return nil
}

func pendingRequest(id string) request.Request {
	return request.Request{
		ID: id, HospitalID: "H0001", RecipientID: "R0001",
		Status: request.StatusPending, Quantity: 500, BloodGroup: "A+",
		Date: time.Now(),
	}
}

// TestExecuteUpdateRequestStatus_Fulfil tests resolving a pending request.
func TestExecuteUpdateRequestStatus_Fulfil(t *testing.T) {
	store := newMockRequestStore()
	store.requests["REQ01"] = pendingRequest("REQ01")

	err := ExecuteUpdateRequestStatus(context.Background(), UpdateRequestStatusInput{
		RequestID: "REQ01",
		Status:    request.StatusFulfilled,
	}, UpdateRequestStatusDeps{RequestStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.requests["REQ01"].Status; got != request.StatusFulfilled {
		t.Errorf("expected Fulfilled, got %s", got)
	}
}

// TestExecuteUpdateRequestStatus_AlreadyResolved tests that a resolved
// request cannot transition again.
func TestExecuteUpdateRequestStatus_AlreadyResolved(t *testing.T) {
	store := newMockRequestStore()
	r := pendingRequest("REQ01")
	r.Status = request.StatusCancelled
	store.requests["REQ01"] = r

	err := ExecuteUpdateRequestStatus(context.Background(), UpdateRequestStatusInput{
		RequestID: "REQ01",
		Status:    request.StatusFulfilled,
	}, UpdateRequestStatusDeps{RequestStore: store})
	if !errors.Is(err, request.ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
	if got := store.requests["REQ01"].Status; got != request.StatusCancelled {
		t.Errorf("status must be unchanged, got %s", got)
	}
}

// TestExecuteUpdateRequestStatus_InvalidTarget tests that Pending is not a
// valid resolution target.
func TestExecuteUpdateRequestStatus_InvalidTarget(t *testing.T) {
	store := newMockRequestStore()
	store.requests["REQ01"] = pendingRequest("REQ01")

	err := ExecuteUpdateRequestStatus(context.Background(), UpdateRequestStatusInput{
		RequestID: "REQ01",
		Status:    request.StatusPending,
	}, UpdateRequestStatusDeps{RequestStore: store})
	if !errors.Is(err, request.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

// TestExecuteUpdateRequestStatus_NotFound tests the missing-request path.
func TestExecuteUpdateRequestStatus_NotFound(t *testing.T) {
	err := ExecuteUpdateRequestStatus(context.Background(), UpdateRequestStatusInput{
		RequestID: "REQ99",
		Status:    request.StatusFulfilled,
	}, UpdateRequestStatusDeps{RequestStore: newMockRequestStore()})
	if err == nil {
		t.Fatal("expected error for missing request")
	}
}

// TestExecuteCreateRequest_StartsPending tests that new requests open in the
// Pending state with a fresh identifier.
func TestExecuteCreateRequest_StartsPending(t *testing.T) {
	store := newMockRequestStore()

	id, err := ExecuteCreateRequest(context.Background(), CreateRequestInput{
		HospitalID:  "H0001",
		RecipientID: "R0001",
		BloodGroup:  "B-",
		Quantity:    750,
	}, CreateRequestDeps{Allocator: &scanAllocator{reg: store.reg}, RequestStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "REQ01" {
		t.Errorf("expected REQ01, got %s", id)
	}
	if got := store.requests[id].Status; got != request.StatusPending {
		t.Errorf("expected Pending, got %s", got)
	}
}
