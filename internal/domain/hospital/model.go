package hospital

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength    = 200
	MaxAddressLength = 500
)

// Domain errors
var (
	ErrEmptyName    = errors.New("hospital name cannot be empty")
	ErrEmptyAddress = errors.New("hospital address cannot be empty")
	ErrNameTooLong  = errors.New("hospital name cannot exceed 200 characters")
)

// Hospital holds state for the Hospital concept. Contacts and emails live in
// child rows keyed by the hospital identifier.
type Hospital struct {
	ID      string
	Name    string
	Address string
}

// Contact is a phone contact child row for a hospital.
type Contact struct {
	HospitalID string
	Contact    string
}

// Email is an email child row for a hospital.
type Email struct {
	HospitalID string
	Email      string
}

// Validate checks if the Hospital has valid data.
// PRE: Hospital struct is populated
// POST: Returns nil if valid, error otherwise
func (h *Hospital) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return ErrEmptyName
	}
	if len(h.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if strings.TrimSpace(h.Address) == "" {
		return ErrEmptyAddress
	}
	if len(h.Address) > MaxAddressLength {
		return errors.New("hospital address cannot exceed 500 characters")
	}
	return nil
}
