package user

import (
	"errors"
	"testing"
)

// TestValidate tests Login field validation.
func TestValidate(t *testing.T) {
	valid := Login{ID: "U0001", Username: "citygeneral_admin", HospitalID: "H0001"}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid login, got %v", err)
	}

	empty := Login{ID: "U0001", HospitalID: "H0001"}
	if err := empty.Validate(); !errors.Is(err, ErrEmptyUsername) {
		t.Errorf("expected ErrEmptyUsername, got %v", err)
	}

	noHospital := Login{ID: "U0001", Username: "admin"}
	if err := noHospital.Validate(); !errors.Is(err, ErrEmptyHospital) {
		t.Errorf("expected ErrEmptyHospital, got %v", err)
	}
}

// TestSetPassword_TooShort tests the 8-character minimum.
func TestSetPassword_TooShort(t *testing.T) {
	l := Login{}
	if err := l.SetPassword("short77"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("expected ErrPasswordTooShort for 7 chars, got %v", err)
	}
	if l.PasswordHash != "" {
		t.Error("hash must not be set on failed SetPassword")
	}
}

// TestSetPassword_Empty tests rejection of an empty password.
func TestSetPassword_Empty(t *testing.T) {
	l := Login{}
	if err := l.SetPassword(""); !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("expected ErrEmptyPassword, got %v", err)
	}
}

// TestCheckPassword_RoundTrip tests that the original plaintext verifies and
// any other string does not.
func TestCheckPassword_RoundTrip(t *testing.T) {
	l := Login{}
	if err := l.SetPassword("correct horse battery"); err != nil {
		t.Fatalf("SetPassword failed: %v", err)
	}
	if l.PasswordHash == "correct horse battery" {
		t.Fatal("password stored in plaintext")
	}
	if err := l.CheckPassword("correct horse battery"); err != nil {
		t.Errorf("expected original plaintext to verify, got %v", err)
	}
	if err := l.CheckPassword("wrong password!"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}
}

// TestCheckPassword_NoHash tests verification against an unset hash.
func TestCheckPassword_NoHash(t *testing.T) {
	l := Login{}
	if err := l.CheckPassword("anything"); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}
}
