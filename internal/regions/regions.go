// Package regions stores the active set of region identifiers the worker
// services (spec.md §3 RegionSet, §4.F).
package regions

import (
	"context"
	"errors"

	"github.com/riftkeep/matchmaker/internal/queue"
)

// Registry reads and writes RegionsKey against the shared store.
type Registry struct {
	store queue.Store
}

// New builds a Registry over store.
func New(store queue.Store) *Registry {
	return &Registry{store: store}
}

// SetRegions is the operator-facing write: it replaces the active region set.
// There is no TTL (spec.md §6): an empty list must be written explicitly to
// stop servicing all regions.
func (r *Registry) SetRegions(ctx context.Context, regionIDs []string) error {
	b, err := queue.EncodeStringList(regionIDs)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, queue.RegionsKey, b)
}

// Load fetches the active region set. Absence is a valid empty state — the
// worker treats "no regions" the same as "empty region list": do nothing this
// tick (spec.md §4.E phase 1, step 1).
func (r *Registry) Load(ctx context.Context) ([]string, error) {
	b, err := r.store.Get(ctx, queue.RegionsKey)
	if errors.Is(err, queue.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return queue.DecodeStringList(b)
}
