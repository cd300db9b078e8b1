package recipient

import (
	"errors"
	"strings"

	"bloodbank/internal/domain/donor"
)

// Domain errors
var (
	ErrEmptyFirstName    = errors.New("first name cannot be empty")
	ErrEmptyLastName     = errors.New("last name cannot be empty")
	ErrInvalidGender     = errors.New("gender must be M, F or Other")
	ErrInvalidBloodGroup = errors.New("blood group must be one of: A+, A-, B+, B-, AB+, AB-, O+, O-")
	ErrInvalidAge        = errors.New("age must be between 1 and 120")
)

// Recipient holds state for the Recipient concept. Unlike donors, recipients
// are registered with an explicit age rather than a date of birth.
type Recipient struct {
	ID         string
	FirstName  string
	LastName   string
	Address    string
	Gender     string
	Age        int
	BloodGroup string
}

// Contact is a phone contact child row for a recipient.
type Contact struct {
	RecipientID string
	Contact     string
}

// Validate checks if the Recipient has valid data.
// PRE: Recipient struct is populated
// POST: Returns nil if valid, error otherwise
func (r *Recipient) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" {
		return ErrEmptyFirstName
	}
	if strings.TrimSpace(r.LastName) == "" {
		return ErrEmptyLastName
	}
	if r.Gender != donor.GenderMale && r.Gender != donor.GenderFemale && r.Gender != donor.GenderOther {
		return ErrInvalidGender
	}
	if !donor.ValidBloodGroup(r.BloodGroup) {
		return ErrInvalidBloodGroup
	}
	if r.Age < 1 || r.Age > 120 {
		return ErrInvalidAge
	}
	return nil
}
