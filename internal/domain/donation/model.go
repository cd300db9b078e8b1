package donation

import (
	"errors"
	"time"
)

// Quantity bounds in millilitres for a single donation.
const (
	MinQuantity = 100
	MaxQuantity = 500
)

// Domain errors
var (
	ErrEmptyDonor      = errors.New("donation must reference a donor")
	ErrEmptyHospital   = errors.New("donation must reference a hospital")
	ErrInvalidQuantity = errors.New("quantity must be between 100 and 500 ml")
	ErrFutureDate      = errors.New("donation date cannot be in the future")
)

// Donation holds state for one recorded blood donation.
type Donation struct {
	ID         string
	HospitalID string
	DonorID    string
	Quantity   int
	Date       time.Time
}

// Validate checks if the Donation has valid data.
// PRE: Donation struct is populated
// POST: Returns nil if valid, error otherwise
func (d *Donation) Validate() error {
	if d.DonorID == "" {
		return ErrEmptyDonor
	}
	if d.HospitalID == "" {
		return ErrEmptyHospital
	}
	if d.Quantity < MinQuantity || d.Quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	if d.Date.After(time.Now().AddDate(0, 0, 1)) {
		return ErrFutureDate
	}
	return nil
}
