package request

import (
	"context"
	"errors"

	"bloodbank/internal/adapters/storage"
	domain "bloodbank/internal/domain/request"
)

// Store errors. ErrDuplicateID marks an identifier-allocation race.
var (
	ErrDuplicateID = storage.ErrDuplicateID
	ErrNotFound    = errors.New("request not found")
)

// Row is a request joined with recipient and hospital names for list pages.
type Row struct {
	ID         string `json:"id"`
	Recipient  string `json:"recipient"`
	Hospital   string `json:"hospital"`
	BloodGroup string `json:"blood_group"`
	Quantity   int    `json:"quantity"`
	Status     string `json:"status"`
	Date       string `json:"date"`
}

// GroupQuantity is the total millilitres fulfilled per blood group.
type GroupQuantity struct {
	BloodGroup string `json:"blood_group"`
	Quantity   int    `json:"quantity"`
}

// Store persists Request state.
type Store interface {
	Insert(ctx context.Context, r domain.Request) error
	GetByID(ctx context.Context, id string) (domain.Request, error)
	Save(ctx context.Context, r domain.Request) error
	List(ctx context.Context) ([]Row, error)
	Recent(ctx context.Context, limit int) ([]Row, error)
	ListPendingIDs(ctx context.Context) ([]string, error)
	CountPending(ctx context.Context) (int, error)
	FulfilledByBloodGroup(ctx context.Context) ([]GroupQuantity, error)
}
