package hospital

import (
	"context"

	"bloodbank/internal/adapters/storage"
	domain "bloodbank/internal/domain/hospital"
)

// ErrDuplicateID marks an identifier-allocation race; callers re-allocate.
var ErrDuplicateID = storage.ErrDuplicateID

// Summary is a hospital row with its contacts and emails aggregated for
// list pages.
type Summary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Contacts string `json:"contacts"`
	Emails   string `json:"emails"`
}

// Activity aggregates donation and request counts per hospital.
type Activity struct {
	Name      string `json:"name"`
	Donations int    `json:"donations"`
	Requests  int    `json:"requests"`
}

// Lookup is a minimal row for pick-lists.
type Lookup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Store persists Hospital state.
type Store interface {
	Insert(ctx context.Context, h domain.Hospital) error
	InsertContact(ctx context.Context, c domain.Contact) error
	InsertEmail(ctx context.Context, e domain.Email) error
	GetByID(ctx context.Context, id string) (domain.Hospital, error)
	List(ctx context.Context) ([]Summary, error)
	ListLookup(ctx context.Context) ([]Lookup, error)
	ListActivity(ctx context.Context) ([]Activity, error)
}
