package hospital

import (
	"errors"
	"strings"
	"testing"
)

// TestValidate tests Hospital field validation.
func TestValidate(t *testing.T) {
	valid := Hospital{ID: "H0001", Name: "City General Hospital", Address: "12 Main St"}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid hospital, got %v", err)
	}

	noName := Hospital{ID: "H0001", Name: "   ", Address: "12 Main St"}
	if err := noName.Validate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}

	noAddress := Hospital{ID: "H0001", Name: "City General"}
	if err := noAddress.Validate(); !errors.Is(err, ErrEmptyAddress) {
		t.Errorf("expected ErrEmptyAddress, got %v", err)
	}

	longName := Hospital{ID: "H0001", Name: strings.Repeat("x", 201), Address: "12 Main St"}
	if err := longName.Validate(); !errors.Is(err, ErrNameTooLong) {
		t.Errorf("expected ErrNameTooLong, got %v", err)
	}
}
