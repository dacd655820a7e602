package template

import "context"

// Catalog exposes template pack reads. Packs are returned in catalog order,
// which drives sort_order assignment during generation.
type Catalog interface {
	ListEnabled(ctx context.Context, clubID string) ([]Pack, error)
}
