package donor

import (
	"errors"
	"testing"
	"time"
)

// TestAgeAt tests whole-year age derivation from a date of birth.
func TestAgeAt(t *testing.T) {
	at := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		dob  time.Time
		want int
	}{
		{time.Date(2000, 8, 29, 0, 0, 0, 0, time.UTC), 26}, // birthday today
		{time.Date(2000, 8, 30, 0, 0, 0, 0, time.UTC), 25}, // birthday tomorrow
		{time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), 26},
		{time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), 0},
	}
	for _, c := range cases {
		if got := AgeAt(c.dob, at); got != c.want {
			t.Errorf("AgeAt(%s) = %d, want %d", c.dob.Format("2006-01-02"), got, c.want)
		}
	}
}

// TestValidate tests Donor field validation.
func TestValidate(t *testing.T) {
	valid := Donor{
		ID: "D0001", FirstName: "John", LastName: "Doe",
		Gender: GenderMale, BloodGroup: "O+",
		DOB: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid donor, got %v", err)
	}

	d := valid
	d.FirstName = ""
	if err := d.Validate(); !errors.Is(err, ErrEmptyFirstName) {
		t.Errorf("expected ErrEmptyFirstName, got %v", err)
	}

	d = valid
	d.Gender = "X"
	if err := d.Validate(); !errors.Is(err, ErrInvalidGender) {
		t.Errorf("expected ErrInvalidGender, got %v", err)
	}

	d = valid
	d.BloodGroup = "C+"
	if err := d.Validate(); !errors.Is(err, ErrInvalidBloodGroup) {
		t.Errorf("expected ErrInvalidBloodGroup, got %v", err)
	}

	d = valid
	d.DOB = time.Now().AddDate(1, 0, 0)
	if err := d.Validate(); !errors.Is(err, ErrFutureBirthDate) {
		t.Errorf("expected ErrFutureBirthDate, got %v", err)
	}
}

// TestValidBloodGroup tests the blood group whitelist.
func TestValidBloodGroup(t *testing.T) {
	for _, g := range BloodGroups {
		if !ValidBloodGroup(g) {
			t.Errorf("expected %q to be valid", g)
		}
	}
	for _, g := range []string{"", "o+", "AB", "A +"} {
		if ValidBloodGroup(g) {
			t.Errorf("expected %q to be invalid", g)
		}
	}
}
