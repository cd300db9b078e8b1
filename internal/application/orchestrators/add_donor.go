package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"bloodbank/internal/domain/donor"
)

// ErrEmptyContact is returned when a donor or recipient registration arrives
// without a contact number.
var ErrEmptyContact = errors.New("contact is required")

// DonorStoreForAdd defines the store interface needed by AddDonor.
type DonorStoreForAdd interface {
	Insert(ctx context.Context, d donor.Donor) error
	InsertContact(ctx context.Context, c donor.Contact) error
}

// AddDonorInput carries the donor registration form fields.
type AddDonorInput struct {
	FirstName  string
	LastName   string
	Address    string
	Gender     string
	DOB        time.Time
	BloodGroup string
	Contact    string
}

// AddDonorDeps holds dependencies for AddDonor.
type AddDonorDeps struct {
	Allocator  IDAllocator
	DonorStore DonorStoreForAdd
	AuditStore AuditStoreForWorkflows
}

// ExecuteAddDonor registers a new donor. Age is derived from the date of
// birth at registration time and stored with the row. A contact number is
// required; its child row insert is best-effort once the donor row is
// committed.
// POST: Returns the allocated donor identifier
func ExecuteAddDonor(ctx context.Context, input AddDonorInput, deps AddDonorDeps) (string, error) {
	d := donor.Donor{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Address:    input.Address,
		Gender:     input.Gender,
		DOB:        input.DOB,
		Age:        donor.AgeAt(input.DOB, time.Now()),
		BloodGroup: input.BloodGroup,
	}
	if err := d.Validate(); err != nil {
		return "", err
	}
	if input.Contact == "" {
		return "", ErrEmptyContact
	}

	donorID, err := insertWithFreshID(ctx, deps.Allocator, "D", "Donor", "Donor_ID", func(id string) error {
		d.ID = id
		return deps.DonorStore.Insert(ctx, d)
	})
	if err != nil {
		return "", err
	}

	if err := deps.DonorStore.InsertContact(ctx, donor.Contact{DonorID: donorID, Contact: input.Contact}); err != nil {
		recordPartialFailure(ctx, deps.AuditStore, donorID, "donor_contact", err)
	}

	slog.Info("donor_event", "event", "donor_added", "donor_id", donorID, "blood_group", input.BloodGroup)
	return donorID, nil
}
