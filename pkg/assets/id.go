// Package assets defines asset identifiers, selector parsing, and the
// resolver boundary between the layout engine and the inventory service.
//
// # Asset IDs
//
// An [ID] is two zero-padded 3-digit decimal components joined by a hyphen,
// e.g. "000-015". IDs order numerically on (major, minor), and ranges
// iterate in that order. This ordering is part of the resolver contract: it
// determines the order labels appear on the sheet.
//
// # Selectors
//
// A [Selector] names the assets to generate labels for. The syntax is a
// comma-separated list of single IDs and inclusive ranges joined with "--":
//
//	000-001--000-010,000-015
//
// # Resolution
//
// A [Resolver] turns a selector into an ordered sequence of [Record]s. How
// individual missing IDs are treated is controlled by [MissingPolicy].
package assets

import (
	"fmt"

	"github.com/labelsmith/labelsmith/pkg/errors"
)

// idComponentMax is the largest value of one ID component.
const idComponentMax = 999

// ID is an asset identifier of the form "MMM-mmm", two zero-padded 3-digit
// decimal components. The zero value is the first valid ID, "000-000".
type ID struct {
	Major uint16
	Minor uint16
}

// ParseID parses an asset ID of the form "000-015".
// Both components must be exactly three ASCII digits.
func ParseID(s string) (ID, error) {
	if len(s) != 7 || s[3] != '-' {
		return ID{}, errors.New(errors.ErrCodeInvalidSelector, "invalid asset ID %q: expected form 000-000", s)
	}

	major, ok := parseComponent(s[:3])
	if !ok {
		return ID{}, errors.New(errors.ErrCodeInvalidSelector, "invalid asset ID %q: expected form 000-000", s)
	}
	minor, ok := parseComponent(s[4:])
	if !ok {
		return ID{}, errors.New(errors.ErrCodeInvalidSelector, "invalid asset ID %q: expected form 000-000", s)
	}

	return ID{Major: major, Minor: minor}, nil
}

func parseComponent(s string) (uint16, bool) {
	var n uint16
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + uint16(c-'0')
	}
	return n, true
}

// String returns the canonical zero-padded form, e.g. "000-015".
func (id ID) String() string {
	return fmt.Sprintf("%03d-%03d", id.Major, id.Minor)
}

// Compare orders IDs numerically on (major, minor).
// It returns -1 if id < other, 0 if equal, +1 if id > other.
func (id ID) Compare(other ID) int {
	switch {
	case id.Major != other.Major:
		if id.Major < other.Major {
			return -1
		}
		return 1
	case id.Minor != other.Minor:
		if id.Minor < other.Minor {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Next returns the successor ID, carrying into the major component when the
// minor component overflows 999.
func (id ID) Next() ID {
	if id.Minor == idComponentMax {
		return ID{Major: id.Major + 1, Minor: 0}
	}
	return ID{Major: id.Major, Minor: id.Minor + 1}
}
