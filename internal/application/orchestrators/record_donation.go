package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"bloodbank/internal/domain/donation"
)

// DonationStoreForRecord defines the store interface needed by RecordDonation.
type DonationStoreForRecord interface {
	Insert(ctx context.Context, d donation.Donation) error
}

// RecordDonationInput carries the donation form fields.
type RecordDonationInput struct {
	HospitalID string
	DonorID    string
	Quantity   int
	Date       time.Time
}

// RecordDonationDeps holds dependencies for RecordDonation.
type RecordDonationDeps struct {
	Allocator     IDAllocator
	DonationStore DonationStoreForRecord
}

// ExecuteRecordDonation records one blood donation against a donor and the
// hospital where it was taken.
// POST: Returns the allocated donation identifier
func ExecuteRecordDonation(ctx context.Context, input RecordDonationInput, deps RecordDonationDeps) (string, error) {
	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}
	d := donation.Donation{
		HospitalID: input.HospitalID,
		DonorID:    input.DonorID,
		Quantity:   input.Quantity,
		Date:       date,
	}
	if err := d.Validate(); err != nil {
		return "", err
	}

	donationID, err := insertWithFreshID(ctx, deps.Allocator, "DON", "Donation", "Donation_ID", func(id string) error {
		d.ID = id
		return deps.DonationStore.Insert(ctx, d)
	})
	if err != nil {
		return "", err
	}

	slog.Info("donation_event", "event", "donation_recorded", "donation_id", donationID, "donor_id", input.DonorID, "quantity", input.Quantity)
	return donationID, nil
}
