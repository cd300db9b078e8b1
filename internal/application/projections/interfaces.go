package projections

import (
	"context"

	donationStore "bloodbank/internal/adapters/storage/donation"
	donorStore "bloodbank/internal/adapters/storage/donor"
	hospitalStore "bloodbank/internal/adapters/storage/hospital"
	requestStore "bloodbank/internal/adapters/storage/request"
)

// DonorCountStore defines the donor store interface needed by read projections.
type DonorCountStore interface {
	Count(ctx context.Context) (int, error)
	CountByBloodGroup(ctx context.Context) ([]donorStore.GroupCount, error)
	ListAges(ctx context.Context) ([]int, error)
}

// RecipientCountStore defines the recipient store interface needed by read projections.
type RecipientCountStore interface {
	Count(ctx context.Context) (int, error)
	ListAges(ctx context.Context) ([]int, error)
}

// DonationReadStore defines the donation store interface needed by read projections.
type DonationReadStore interface {
	Count(ctx context.Context) (int, error)
	Recent(ctx context.Context, limit int) ([]donationStore.Row, error)
	MonthlyCounts(ctx context.Context, months int) ([]donationStore.MonthCount, error)
	QuantityByBloodGroup(ctx context.Context) ([]donationStore.GroupQuantity, error)
}

// RequestReadStore defines the request store interface needed by read projections.
type RequestReadStore interface {
	CountPending(ctx context.Context) (int, error)
	Recent(ctx context.Context, limit int) ([]requestStore.Row, error)
	FulfilledByBloodGroup(ctx context.Context) ([]requestStore.GroupQuantity, error)
}

// HospitalActivityStore defines the hospital store interface needed by read projections.
type HospitalActivityStore interface {
	ListActivity(ctx context.Context) ([]hospitalStore.Activity, error)
}
