package orchestrators

import (
	"context"
	"log/slog"

	"bloodbank/internal/domain/recipient"
)

// RecipientStoreForAdd defines the store interface needed by AddRecipient.
type RecipientStoreForAdd interface {
	Insert(ctx context.Context, r recipient.Recipient) error
	InsertContact(ctx context.Context, c recipient.Contact) error
}

// AddRecipientInput carries the recipient registration form fields.
type AddRecipientInput struct {
	FirstName  string
	LastName   string
	Address    string
	Gender     string
	Age        int
	BloodGroup string
	Contact    string
}

// AddRecipientDeps holds dependencies for AddRecipient.
type AddRecipientDeps struct {
	Allocator      IDAllocator
	RecipientStore RecipientStoreForAdd
	AuditStore     AuditStoreForWorkflows
}

// ExecuteAddRecipient registers a new recipient. A contact number is
// required; its child row insert is best-effort once the recipient row is
// committed.
// POST: Returns the allocated recipient identifier
func ExecuteAddRecipient(ctx context.Context, input AddRecipientInput, deps AddRecipientDeps) (string, error) {
	r := recipient.Recipient{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Address:    input.Address,
		Gender:     input.Gender,
		Age:        input.Age,
		BloodGroup: input.BloodGroup,
	}
	if err := r.Validate(); err != nil {
		return "", err
	}
	if input.Contact == "" {
		return "", ErrEmptyContact
	}

	recipientID, err := insertWithFreshID(ctx, deps.Allocator, "R", "Recipient", "Recipient_ID", func(id string) error {
		r.ID = id
		return deps.RecipientStore.Insert(ctx, r)
	})
	if err != nil {
		return "", err
	}

	if err := deps.RecipientStore.InsertContact(ctx, recipient.Contact{RecipientID: recipientID, Contact: input.Contact}); err != nil {
		recordPartialFailure(ctx, deps.AuditStore, recipientID, "recipient_contact", err)
	}

	slog.Info("recipient_event", "event", "recipient_added", "recipient_id", recipientID, "blood_group", input.BloodGroup)
	return recipientID, nil
}
