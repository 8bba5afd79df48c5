package assets

import (
	"context"
	"fmt"
)

// Record is one inventory item's identifying and descriptive data, as
// returned by the inventory service. Records are immutable once resolved;
// the layout engine is their sole consumer for the duration of one pass.
type Record struct {
	ID         ID
	Name       string
	Location   string
	Attributes map[string]string
}

// Attribute returns the named attribute value. The built-in keys "id",
// "name" and "location" map to the corresponding record fields; anything
// else is looked up in the attribute map. A missing attribute yields the
// empty string, never an error.
func (r Record) Attribute(key string) string {
	switch key {
	case "id":
		return r.ID.String()
	case "name":
		return r.Name
	case "location":
		return r.Location
	default:
		return r.Attributes[key]
	}
}

// MissingPolicy controls what a resolver does when an individual ID inside
// a selector has no matching asset.
type MissingPolicy int

const (
	// PolicySkip drops missing IDs, records a warning for each, and
	// resolves the rest. The default: one bad asset must not waste an
	// entire print run.
	PolicySkip MissingPolicy = iota

	// PolicyAbort fails the whole resolution on the first missing ID.
	PolicyAbort
)

// ParseMissingPolicy parses the CLI spelling of a missing policy.
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch s {
	case "skip", "":
		return PolicySkip, nil
	case "abort":
		return PolicyAbort, nil
	default:
		return 0, fmt.Errorf("invalid missing-ID policy: %q (must be 'skip' or 'abort')", s)
	}
}

func (p MissingPolicy) String() string {
	if p == PolicyAbort {
		return "abort"
	}
	return "skip"
}

// Warning records a non-fatal per-asset problem encountered while resolving
// or laying out a batch.
type Warning struct {
	AssetID string
	Message string
}

func (w Warning) String() string {
	return w.AssetID + ": " + w.Message
}

// Resolver turns a selector into an ordered record sequence.
//
// Records are returned in selector expansion order. Under [PolicySkip],
// missing IDs become warnings and the returned error is nil; under
// [PolicyAbort] the first missing ID fails the call with an
// ASSET_NOT_FOUND error. Transport or auth failures fail the call with
// RESOLVER_UNAVAILABLE regardless of policy.
type Resolver interface {
	Resolve(ctx context.Context, sel Selector, policy MissingPolicy) ([]Record, []Warning, error)
}
