package identifier

import (
	"errors"
	"testing"
)

// TestNext_EmptySet tests that the first identifier for a prefix is sequence 1.
func TestNext_EmptySet(t *testing.T) {
	cases := []struct {
		prefix string
		want   string
	}{
		{"D", "D0001"},
		{"H", "H0001"},
		{"U", "U0001"},
		{"R", "R0001"},
		{"DON", "DON01"},
		{"REQ", "REQ01"},
	}
	for _, c := range cases {
		got, err := Next(c.prefix, nil)
		if err != nil {
			t.Fatalf("Next(%q, nil): unexpected error: %v", c.prefix, err)
		}
		if got != c.want {
			t.Errorf("Next(%q, nil) = %q, want %q", c.prefix, got, c.want)
		}
		if len(got) != TotalLength {
			t.Errorf("Next(%q, nil) has width %d, want %d", c.prefix, len(got), TotalLength)
		}
	}
}

// TestNext_Increments tests that the maximum existing suffix drives the next value.
func TestNext_Increments(t *testing.T) {
	got, err := Next("D", []string{"D0001", "D0003", "D0002"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "D0004" {
		t.Errorf("got %q, want D0004", got)
	}
}

// TestNext_NumericNotLexicographic tests that suffixes compare as numbers.
func TestNext_NumericNotLexicographic(t *testing.T) {
	// Unpadded legacy rows: lexicographically "D9" > "D10" but numerically 10 wins.
	got, err := Next("D", []string{"D9", "D10"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "D0011" {
		t.Errorf("got %q, want D0011", got)
	}
}

// TestNext_IgnoresMalformedSuffixes tests defensive handling of legacy data.
func TestNext_IgnoresMalformedSuffixes(t *testing.T) {
	existing := []string{"D0007", "DX999", "D00A1", "D", "H0042"}
	got, err := Next("D", existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "D0008" {
		t.Errorf("got %q, want D0008", got)
	}
}

// TestNext_Overflow tests that exhausting the digit budget fails permanently.
func TestNext_Overflow(t *testing.T) {
	_, err := Next("D", []string{"D9999"})
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("expected ErrOverflow, got %v", err)
	}
	_, err = Next("DON", []string{"DON99"})
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("expected ErrOverflow for DON99, got %v", err)
	}
}

// TestNext_LastValueBeforeOverflow tests the final allocatable value.
func TestNext_LastValueBeforeOverflow(t *testing.T) {
	got, err := Next("D", []string{"D9998"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "D9999" {
		t.Errorf("got %q, want D9999", got)
	}
}

// TestNext_InvalidPrefix tests rejection of malformed prefixes.
func TestNext_InvalidPrefix(t *testing.T) {
	for _, prefix := range []string{"", "d", "D1", "DONR", "ABCD", "R-"} {
		if _, err := Next(prefix, nil); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Next(%q): expected ErrInvalidArgument, got %v", prefix, err)
		}
	}
}

// TestSuffixNumber tests suffix extraction edge cases.
func TestSuffixNumber(t *testing.T) {
	if n, ok := SuffixNumber("D0010", "D"); !ok || n != 10 {
		t.Errorf("SuffixNumber(D0010, D) = %d, %v; want 10, true", n, ok)
	}
	if _, ok := SuffixNumber("REQ01", "D"); ok {
		t.Error("SuffixNumber should reject identifiers with a different prefix")
	}
	if _, ok := SuffixNumber("D", "D"); ok {
		t.Error("SuffixNumber should reject a bare prefix with no digits")
	}
	// "DON01" starts with "D" but its remainder is not numeric.
	if _, ok := SuffixNumber("DON01", "D"); ok {
		t.Error("SuffixNumber should reject non-numeric remainders")
	}
}

// TestRender_ZeroPadding tests fixed-width rendering.
func TestRender_ZeroPadding(t *testing.T) {
	got, err := Render("REQ", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "REQ07" {
		t.Errorf("got %q, want REQ07", got)
	}
}

// TestNext_Idempotent tests that Next is a pure read of its inputs.
func TestNext_Idempotent(t *testing.T) {
	existing := []string{"U0001", "U0002"}
	first, err := Next("U", existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Next("U", existing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("Next is not idempotent: %q vs %q", first, second)
	}
}
