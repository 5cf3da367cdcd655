package cachetag

import "context"

// Store is the cache-invalidation side of a response cache: whatever
// stores compiled query results keyed by cache tag must implement this so
// an Invalidator can evict by tag. Users back this with their preferred
// store (Redis, Memcached, in-process).
type Store interface {
	// DeleteTag removes every cached entry associated with tag.
	DeleteTag(ctx context.Context, tag string) error
}

// Invalidator evicts cached response entries by the tags a response
// produced (spec §4.I consumer side): every statement response is tagged
// on write, and invalidation walks a mutation's response JSON the same
// way to find which entries it touched.
type Invalidator struct {
	store Store
}

// NewInvalidator wraps a Store with tag-driven invalidation.
func NewInvalidator(store Store) *Invalidator {
	return &Invalidator{store: store}
}

// InvalidateJSON extracts tags from value and deletes every cache entry
// associated with any of them.
func (inv *Invalidator) InvalidateJSON(ctx context.Context, value any) error {
	tags := map[string]struct{}{}
	Extract(value, tags)
	return inv.InvalidateTags(ctx, tags)
}

// InvalidateTags deletes every cache entry associated with any tag in the
// set, stopping at the first error the Store reports.
func (inv *Invalidator) InvalidateTags(ctx context.Context, tags map[string]struct{}) error {
	for _, tag := range Sorted(tags) {
		if err := inv.store.DeleteTag(ctx, tag); err != nil {
			return err
		}
	}
	return nil
}
