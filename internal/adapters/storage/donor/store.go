package donor

import (
	"context"

	"bloodbank/internal/adapters/storage"
	domain "bloodbank/internal/domain/donor"
)

// ErrDuplicateID marks an identifier-allocation race; callers re-allocate.
var ErrDuplicateID = storage.ErrDuplicateID

// Summary is a donor row with aggregated contacts for list pages.
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

// GroupCount is one blood group's donor count.
type GroupCount struct {
	BloodGroup string `json:"blood_group"`
	Count      int    `json:"count"`
}

// Store persists Donor state.
type Store interface {
	Insert(ctx context.Context, d domain.Donor) error
	InsertContact(ctx context.Context, c domain.Contact) error
	GetByID(ctx context.Context, id string) (Summary, error)
	List(ctx context.Context) ([]Summary, error)
	ListByBloodGroup(ctx context.Context, bloodGroup string) ([]Summary, error)
	ListLookup(ctx context.Context) ([]Lookup, error)
	Count(ctx context.Context) (int, error)
	CountByBloodGroup(ctx context.Context) ([]GroupCount, error)
	ListAges(ctx context.Context) ([]int, error)
}
