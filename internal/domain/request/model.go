package request

import (
	"errors"
	"time"

	"bloodbank/internal/domain/donor"
)

// Status constants. A request starts Pending and moves exactly once to
// Fulfilled or Cancelled.
const (
	StatusPending   = "Pending"
	StatusFulfilled = "Fulfilled"
	StatusCancelled = "Cancelled"
)

// Quantity bounds in millilitres for a single request.
const (
	MinQuantity = 100
	MaxQuantity = 2000
)

// Domain errors
var (
	ErrEmptyRecipient    = errors.New("request must reference a recipient")
	ErrEmptyHospital     = errors.New("request must reference a hospital")
	ErrInvalidQuantity   = errors.New("quantity must be between 100 and 2000 ml")
	ErrInvalidBloodGroup = errors.New("blood group must be one of: A+, A-, B+, B-, AB+, AB-, O+, O-")
	ErrInvalidStatus     = errors.New("status must be Fulfilled or Cancelled")
	ErrNotPending        = errors.New("only pending requests can be updated")
)

// Request holds state for one blood request.
type Request struct {
	ID          string
	HospitalID  string
	RecipientID string
	Status      string
	Quantity    int
	BloodGroup  string
	Date        time.Time
}

// Validate checks if the Request has valid data.
// PRE: Request struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Request) Validate() error {
	if r.RecipientID == "" {
		return ErrEmptyRecipient
	}
	if r.HospitalID == "" {
		return ErrEmptyHospital
	}
	if r.Quantity < MinQuantity || r.Quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	if !donor.ValidBloodGroup(r.BloodGroup) {
		return ErrInvalidBloodGroup
	}
	return nil
}

// Resolve transitions a pending request to its final status.
// PRE: Request is Pending, status is Fulfilled or Cancelled
// POST: Status is updated
func (r *Request) Resolve(status string) error {
	if r.Status != StatusPending {
		return ErrNotPending
	}
	if status != StatusFulfilled && status != StatusCancelled {
		return ErrInvalidStatus
	}
	r.Status = status
	return nil
}
