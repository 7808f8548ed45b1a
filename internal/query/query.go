// Package query filters, searches, and sorts a snapshot of prompts. It holds
// no state: callers pass the full prompt set fetched from the store on each
// call.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mesh-intelligence/promptlib/pkg/types"
)

// SortMode selects the result ordering.
type SortMode string

// Sort modes.
const (
	SortTitleAsc  SortMode = "title-asc"
	SortTitleDesc SortMode = "title-desc"
	SortNewest    SortMode = "newest"
	SortOldest    SortMode = "oldest"
)

// DefaultSort is used when Options.Sort is empty.
const DefaultSort = SortTitleAsc

// sortLabels are the display names accepted as aliases by ParseSortMode.
var sortLabels = map[SortMode]string{
	SortTitleAsc:  "Title (A-Z)",
	SortTitleDesc: "Title (Z-A)",
	SortNewest:    "Newest",
	SortOldest:    "Oldest",
}

// SortModes returns the sort modes in display order.
func SortModes() []SortMode {
	return []SortMode{SortTitleAsc, SortTitleDesc, SortNewest, SortOldest}
}

// sortModeNames lists the mode keys comma-separated.
func sortModeNames() string {
	modes := SortModes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// Label returns the display name of m.
func (m SortMode) Label() string {
	return sortLabels[m]
}

// ParseSortMode accepts a mode key or its display label in any letter case.
// An empty string yields DefaultSort.
func ParseSortMode(s string) (SortMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultSort, nil
	}
	for mode, label := range sortLabels {
		if strings.EqualFold(s, string(mode)) || strings.EqualFold(s, label) {
			return mode, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: %s)", types.ErrInvalidSortMode, s, sortModeNames())
}

// Options controls one Search call.
type Options struct {
	FavoritesOnly bool
	TagFilters    types.Tags
	Query         string
	Sort          SortMode
}

// Search applies, in order, the favorites filter, the tag filters, the
// free-text search, and the sort. The input slice is not modified; the
// returned slice shares prompt pointers with it.
func Search(prompts []*types.Prompt, opts Options) []*types.Prompt {
	filters := opts.TagFilters.Normalize()
	needle := strings.ToLower(strings.TrimSpace(opts.Query))

	out := make([]*types.Prompt, 0, len(prompts))
	for _, p := range prompts {
		if opts.FavoritesOnly && !p.IsFavorite {
			continue
		}
		if !matchesTags(p, filters) {
			continue
		}
		if needle != "" && !matchesText(p, needle) {
			continue
		}
		out = append(out, p)
	}

	sortPrompts(out, opts.Sort)
	return out
}

// matchesTags reports whether p carries every selected value of every
// filtered category.
func matchesTags(p *types.Prompt, filters types.Tags) bool {
	for category, want := range filters {
		if !p.Tags.HasAll(category, want) {
			return false
		}
	}
	return true
}

// matchesText reports whether needle, already lower-cased, occurs in any of
// p's searchable fields.
func matchesText(p *types.Prompt, needle string) bool {
	for _, field := range p.SearchFields() {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// sortPrompts orders ps in place. Ties keep their input order.
func sortPrompts(ps []*types.Prompt, mode SortMode) {
	var less func(a, b *types.Prompt) bool
	switch mode {
	case SortTitleDesc:
		less = func(a, b *types.Prompt) bool {
			return strings.ToLower(a.Title) > strings.ToLower(b.Title)
		}
	case SortNewest:
		less = func(a, b *types.Prompt) bool { return a.LastModified > b.LastModified }
	case SortOldest:
		less = func(a, b *types.Prompt) bool { return a.CreatedAt < b.CreatedAt }
	default:
		less = func(a, b *types.Prompt) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	}
	sort.SliceStable(ps, func(i, j int) bool { return less(ps[i], ps[j]) })
}
