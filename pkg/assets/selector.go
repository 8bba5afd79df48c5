package assets

import (
	"strings"

	"github.com/labelsmith/labelsmith/pkg/errors"
)

// Entry is one element of a selector: a single ID or an inclusive range.
// A single ID is represented as a range where From == To.
type Entry struct {
	From ID
	To   ID
}

// IsRange reports whether the entry covers more than one ID.
func (e Entry) IsRange() bool { return e.From != e.To }

// Count returns the number of IDs the entry expands to.
func (e Entry) Count() int {
	return (int(e.To.Major)-int(e.From.Major))*(idComponentMax+1) + int(e.To.Minor) - int(e.From.Minor) + 1
}

// IDs returns the entry's IDs in ascending numeric order.
func (e Entry) IDs() []ID {
	ids := make([]ID, 0, e.Count())
	for id := e.From; id.Compare(e.To) <= 0; id = id.Next() {
		ids = append(ids, id)
	}
	return ids
}

// Selector is an ordered list of entries. Expansion preserves entry order;
// entries may overlap or repeat (duplicates produce duplicate labels, which
// is occasionally what the user wants).
type Selector []Entry

// ParseSelector parses a selector expression such as
// "000-001--000-010,000-015". Whitespace around entries is ignored.
// A range whose start exceeds its end is rejected.
func ParseSelector(input string) (Selector, error) {
	if strings.TrimSpace(input) == "" {
		return nil, errors.New(errors.ErrCodeInvalidSelector, "selector cannot be empty")
	}

	var sel Selector
	for _, part := range strings.Split(input, ",") {
		entry, err := parseEntry(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		sel = append(sel, entry)
	}
	return sel, nil
}

func parseEntry(part string) (Entry, error) {
	from, to, isRange := strings.Cut(part, "--")
	fromID, err := ParseID(strings.TrimSpace(from))
	if err != nil {
		return Entry{}, err
	}
	if !isRange {
		return Entry{From: fromID, To: fromID}, nil
	}

	toID, err := ParseID(strings.TrimSpace(to))
	if err != nil {
		return Entry{}, err
	}
	if fromID.Compare(toID) > 0 {
		return Entry{}, errors.New(errors.ErrCodeInvalidSelector,
			"range start %s exceeds range end %s", fromID, toID)
	}
	return Entry{From: fromID, To: toID}, nil
}

// Count returns the total number of IDs the selector expands to.
func (s Selector) Count() int {
	var n int
	for _, e := range s {
		n += e.Count()
	}
	return n
}

// IDs expands the selector into the full ordered ID sequence.
func (s Selector) IDs() []ID {
	ids := make([]ID, 0, s.Count())
	for _, e := range s {
		ids = append(ids, e.IDs()...)
	}
	return ids
}

// String reassembles the selector in canonical form.
func (s Selector) String() string {
	parts := make([]string, len(s))
	for i, e := range s {
		if e.IsRange() {
			parts[i] = e.From.String() + "--" + e.To.String()
		} else {
			parts[i] = e.From.String()
		}
	}
	return strings.Join(parts, ",")
}
