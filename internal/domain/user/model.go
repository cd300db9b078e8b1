package user

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Max length constants for user-editable fields.
const (
	MaxUsernameLength = 100
	MinPasswordLength = 8
)

// Domain errors
var (
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrUsernameTooLong  = errors.New("username cannot exceed 100 characters")
	ErrEmptyHospital    = errors.New("user must reference a hospital")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrWrongPassword    = errors.New("incorrect password")
)

// Login holds state for a User_Login row: the credentials of a hospital
// admin. Contacts and emails live in child rows keyed by the user identifier.
// A login is either present (active) or deleted — there is no locked or
// suspended state.
type Login struct {
	ID           string
	Username     string
	PasswordHash string
	HospitalID   string
}

// Contact is a phone contact child row for a user.
type Contact struct {
	UserID  string
	Contact string
}

// Email is an email child row for a user.
type Email struct {
	UserID string
	Email  string
}

// Validate checks if the Login has valid data.
// PRE: Login struct is populated
// POST: Returns nil if valid, error otherwise
func (l *Login) Validate() error {
	if strings.TrimSpace(l.Username) == "" {
		return ErrEmptyUsername
	}
	if len(l.Username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}
	if l.HospitalID == "" {
		return ErrEmptyHospital
	}
	return nil
}

// SetPassword hashes and stores a password using bcrypt with cost 12.
// PRE: plaintext is non-empty and >= 8 characters
// POST: PasswordHash is set to bcrypt hash; plaintext is never retained
func (l *Login) SetPassword(plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	if len(plaintext) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), 12)
	if err != nil {
		return err
	}
	l.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is set
// INVARIANT: Login fields are not mutated
func (l *Login) CheckPassword(plaintext string) error {
	if l.PasswordHash == "" {
		return ErrWrongPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(l.PasswordHash), []byte(plaintext)); err != nil {
		return ErrWrongPassword
	}
	return nil
}
