package identifier

import (
	"errors"
	"fmt"
	"strconv"
)

// TotalLength is the fixed width of every entity identifier. A prefix of
// length N leaves 5-N digits for the zero-padded sequence number
// (e.g. D0001, DON01, REQ01).
const TotalLength = 5

// Allocation errors
var (
	ErrInvalidArgument = errors.New("prefix must be 1-3 uppercase letters")
	ErrPrefixTooLong   = errors.New("prefix leaves no room for a sequence number")
	ErrOverflow        = errors.New("sequence number exhausted for prefix")
)

// ValidPrefix reports whether prefix is 1-3 uppercase ASCII letters.
// INVARIANT: No inputs are mutated
func ValidPrefix(prefix string) bool {
	if len(prefix) < 1 || len(prefix) > 3 {
		return false
	}
	for _, c := range prefix {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// PadLength returns the digit budget for the given prefix.
// PRE: prefix is a valid prefix
// POST: Returns TotalLength - len(prefix), which is >= 2 for valid prefixes
func PadLength(prefix string) (int, error) {
	if !ValidPrefix(prefix) {
		return 0, ErrInvalidArgument
	}
	pad := TotalLength - len(prefix)
	if pad <= 0 {
		return 0, ErrPrefixTooLong
	}
	return pad, nil
}

// SuffixNumber extracts the numeric sequence value from an identifier with
// the given prefix. Identifiers whose suffix is not purely numeric come from
// malformed legacy rows and are reported via ok=false, never as an error.
// INVARIANT: Comparison is numeric, not lexicographic ("D9" > "D10" is false)
func SuffixNumber(id, prefix string) (uint64, bool) {
	if len(id) <= len(prefix) || id[:len(prefix)] != prefix {
		return 0, false
	}
	suffix := id[len(prefix):]
	for _, c := range suffix {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(suffix, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Render formats sequence number n as a full identifier for prefix.
// PRE: prefix is valid
// POST: Returns a TotalLength-wide identifier, or ErrOverflow if n does not
// fit the prefix's digit budget
func Render(prefix string, n uint64) (string, error) {
	pad, err := PadLength(prefix)
	if err != nil {
		return "", err
	}
	s := strconv.FormatUint(n, 10)
	if len(s) > pad {
		return "", fmt.Errorf("%w: %s%s exceeds width %d", ErrOverflow, prefix, s, TotalLength)
	}
	for len(s) < pad {
		s = "0" + s
	}
	return prefix + s, nil
}

// Next computes the identifier following the given existing identifiers.
// Existing values that do not carry the prefix or whose suffix is not
// numeric are ignored. An empty set yields sequence number 1.
// PRE: prefix is valid
// POST: Returns prefix + zero-padded(max+1), or ErrOverflow past the budget
// INVARIANT: Pure function — deterministic for the same inputs
func Next(prefix string, existing []string) (string, error) {
	if _, err := PadLength(prefix); err != nil {
		return "", err
	}
	var max uint64
	for _, id := range existing {
		if n, ok := SuffixNumber(id, prefix); ok && n > max {
			max = n
		}
	}
	return Render(prefix, max+1)
}
