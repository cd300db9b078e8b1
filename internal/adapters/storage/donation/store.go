package donation

import (
	"context"

	"bloodbank/internal/adapters/storage"
	domain "bloodbank/internal/domain/donation"
)

// ErrDuplicateID marks an identifier-allocation race; callers re-allocate.
var ErrDuplicateID = storage.ErrDuplicateID

// Row is a donation joined with donor and hospital names for list pages.
type Row struct {
	ID         string `json:"id"`
	Donor      string `json:"donor"`
	BloodGroup string `json:"blood_group"`
	Hospital   string `json:"hospital"`
	Quantity   int    `json:"quantity"`
	Date       string `json:"date"`
}

// MonthCount is one month's donation count (month formatted YYYY-MM).
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// GroupQuantity is the total millilitres donated per blood group.
type GroupQuantity struct {
	BloodGroup string `json:"blood_group"`
	Quantity   int    `json:"quantity"`
}

// Store persists Donation state.
type Store interface {
	Insert(ctx context.Context, d domain.Donation) error
	List(ctx context.Context) ([]Row, error)
	Recent(ctx context.Context, limit int) ([]Row, error)
	Count(ctx context.Context) (int, error)
	MonthlyCounts(ctx context.Context, months int) ([]MonthCount, error)
	QuantityByBloodGroup(ctx context.Context) ([]GroupQuantity, error)
}
