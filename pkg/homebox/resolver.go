package homebox

import (
	"context"
	"strings"

	"github.com/labelsmith/labelsmith/pkg/assets"
	"github.com/labelsmith/labelsmith/pkg/errors"
)

// Resolver resolves asset selectors against a Homebox instance. It
// implements [assets.Resolver].
type Resolver struct {
	client *Client
}

// NewResolver wraps a client in the resolver interface the layout pipeline
// consumes.
func NewResolver(client *Client) *Resolver {
	return &Resolver{client: client}
}

// Resolve expands the selector and looks up every ID in order. Missing
// assets follow the policy; transport and auth failures always abort,
// surfaced as RESOLVER_UNAVAILABLE so callers can tell a down server from
// a bad selector.
func (r *Resolver) Resolve(ctx context.Context, sel assets.Selector, policy assets.MissingPolicy) ([]assets.Record, []assets.Warning, error) {
	ids := sel.IDs()
	records := make([]assets.Record, 0, len(ids))
	var warnings []assets.Warning

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		item, err := r.client.ItemByAssetID(ctx, id.String())
		switch {
		case err == nil:
			records = append(records, toRecord(id, item))
		case errors.Is(err, errors.ErrCodeAssetNotFound):
			if policy == assets.PolicyAbort {
				return nil, nil, err
			}
			warnings = append(warnings, assets.Warning{
				AssetID: id.String(),
				Message: "no item with this asset id",
			})
		case errors.Is(err, errors.ErrCodeNetwork) || errors.Is(err, errors.ErrCodeTimeout):
			return nil, nil, errors.Wrap(errors.ErrCodeResolverUnavailable, err,
				"cannot reach %s", r.client.BaseURL())
		default:
			return nil, nil, err
		}
	}
	return records, warnings, nil
}

// toRecord flattens a Homebox item into the attribute bag labels print
// from. Custom fields keep their user-facing names; built-in extras get
// fixed keys.
func toRecord(id assets.ID, item *Item) assets.Record {
	rec := assets.Record{
		ID:   id,
		Name: item.Name,
	}
	if item.Location != nil {
		rec.Location = item.Location.Name
	}

	attrs := make(map[string]string)
	if item.Description != "" {
		attrs["description"] = item.Description
	}
	if len(item.Labels) > 0 {
		names := make([]string, 0, len(item.Labels))
		for _, l := range item.Labels {
			names = append(names, l.Name)
		}
		attrs["labels"] = strings.Join(names, ", ")
	}
	for _, f := range item.Fields {
		if f.Name != "" && f.TextValue != "" {
			attrs[f.Name] = f.TextValue
		}
	}
	if len(attrs) > 0 {
		rec.Attributes = attrs
	}
	return rec
}
