package donor

import (
	"errors"
	"strings"
	"time"
)

// Gender constants
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "Other"
)

// BloodGroups contains all valid blood group values.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// Domain errors
var (
	ErrEmptyFirstName    = errors.New("first name cannot be empty")
	ErrEmptyLastName     = errors.New("last name cannot be empty")
	ErrInvalidGender     = errors.New("gender must be M, F or Other")
	ErrInvalidBloodGroup = errors.New("blood group must be one of: A+, A-, B+, B-, AB+, AB-, O+, O-")
	ErrFutureBirthDate   = errors.New("date of birth cannot be in the future")
)

// Donor holds state for the Donor concept. Age is derived from DOB at
// registration time and stored alongside it, matching the legacy schema.
type Donor struct {
	ID         string
	FirstName  string
	LastName   string
	Address    string
	Gender     string
	DOB        time.Time
	Age        int
	BloodGroup string
}

// Contact is a phone contact child row for a donor.
type Contact struct {
	DonorID string
	Contact string
}

// ValidBloodGroup reports whether g is a recognised blood group.
func ValidBloodGroup(g string) bool {
	for _, b := range BloodGroups {
		if b == g {
			return true
		}
	}
	return false
}

// AgeAt computes a person's age in whole years at the given date.
// PRE: dob is not after at
// POST: Returns completed years between dob and at
func AgeAt(dob, at time.Time) int {
	age := at.Year() - dob.Year()
	if at.Month() < dob.Month() || (at.Month() == dob.Month() && at.Day() < dob.Day()) {
		age--
	}
	return age
}

// Validate checks if the Donor has valid data.
// PRE: Donor struct is populated, DOB set
// POST: Returns nil if valid, error otherwise
func (d *Donor) Validate() error {
	if strings.TrimSpace(d.FirstName) == "" {
		return ErrEmptyFirstName
	}
	if strings.TrimSpace(d.LastName) == "" {
		return ErrEmptyLastName
	}
	if d.Gender != GenderMale && d.Gender != GenderFemale && d.Gender != GenderOther {
		return ErrInvalidGender
	}
	if !ValidBloodGroup(d.BloodGroup) {
		return ErrInvalidBloodGroup
	}
	if d.DOB.After(time.Now()) {
		return ErrFutureBirthDate
	}
	return nil
}
