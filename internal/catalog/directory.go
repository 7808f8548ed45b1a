package catalog

import (
	"context"
	"sort"

	"github.com/mesh-intelligence/promptlib/pkg/types"
)

// TagOptions maps a registry category to its selectable values.
type TagOptions map[string][]string

// MergeTagOptions computes the effective options per category: the
// registry's values plus any stored value in a registry category that the
// registry lacks. Every list is then sorted except the ones whose registry
// order is meaningful, which keep it and only gain extras at the end.
// Stored tags in categories outside the registry are ignored.
func MergeTagOptions(stored []types.Tag) TagOptions {
	opts := make(TagOptions, len(types.Categories()))
	seen := make(map[string]map[string]bool, len(opts))
	for _, category := range types.Categories() {
		values := types.ValuesOf(category)
		opts[category] = values
		seen[category] = make(map[string]bool, len(values))
		for _, v := range values {
			seen[category][v] = true
		}
	}

	for _, t := range stored {
		known, ok := seen[t.Category]
		if !ok || known[t.Name] {
			continue
		}
		known[t.Name] = true
		opts[t.Category] = append(opts[t.Category], t.Name)
	}

	for category, values := range opts {
		if !types.KeepsRegistryOrder(category) {
			sort.Strings(values)
		}
	}
	return opts
}

// EffectiveTagOptions reads the stored tags and merges them with the
// registry.
func (c *Catalog) EffectiveTagOptions(ctx context.Context) (TagOptions, error) {
	stored, err := c.store.AllTags(ctx)
	if err != nil {
		return nil, err
	}
	return MergeTagOptions(stored), nil
}
