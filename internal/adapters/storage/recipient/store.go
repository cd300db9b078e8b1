package recipient

import (
	"context"

	"bloodbank/internal/adapters/storage"
	domain "bloodbank/internal/domain/recipient"
)

// ErrDuplicateID marks an identifier-allocation race; callers re-allocate.
var ErrDuplicateID = storage.ErrDuplicateID

// Summary is a recipient row with aggregated contacts for list pages.
type Summary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Gender     string `json:"gender"`
	Age        int    `json:"age"`
	BloodGroup string `json:"blood_group"`
	Address    string `json:"address"`
	Contacts   string `json:"contacts"`
}

// Lookup is a minimal row for pick-lists.
type Lookup struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Store persists Recipient state.
type Store interface {
	Insert(ctx context.Context, r domain.Recipient) error
	InsertContact(ctx context.Context, c domain.Contact) error
	List(ctx context.Context) ([]Summary, error)
	ListLookup(ctx context.Context) ([]Lookup, error)
	Count(ctx context.Context) (int, error)
	ListAges(ctx context.Context) ([]int, error)
}
