package types

import (
	"fmt"
	"sort"
	"strings"
)

// Tag is a global (name, category) pair. The same pair is shared by every
// prompt that references it.
type Tag struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Tags maps a category name to the set of tag values selected in it. The
// canonical form omits categories with no values; value order carries no
// meaning.
type Tags map[string][]string

// Normalize returns a canonical copy: category names and values are trimmed,
// empty values and duplicates are dropped, and categories left with no
// values are omitted. The result is never nil.
func (t Tags) Normalize() Tags {
	out := make(Tags, len(t))
	for category, values := range t {
		category = strings.TrimSpace(category)
		if category == "" {
			continue
		}
		seen := make(map[string]bool, len(values))
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out[category] = append(out[category], v)
		}
	}
	return out
}

// Clone returns a deep copy of t.
func (t Tags) Clone() Tags {
	if t == nil {
		return nil
	}
	out := make(Tags, len(t))
	for category, values := range t {
		out[category] = append([]string(nil), values...)
	}
	return out
}

// HasAll reports whether the values under category are a superset of want.
// An empty want is trivially satisfied.
func (t Tags) HasAll(category string, want []string) bool {
	if len(want) == 0 {
		return true
	}
	have := make(map[string]bool, len(t[category]))
	for _, v := range t[category] {
		have[v] = true
	}
	for _, w := range want {
		if !have[w] {
			return false
		}
	}
	return true
}

// Categories returns the category names present in t, sorted.
func (t Tags) Categories() []string {
	out := make([]string, 0, len(t))
	for category := range t {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// Len returns the total number of values across all categories.
func (t Tags) Len() int {
	n := 0
	for _, values := range t {
		n += len(values)
	}
	return n
}

// Equal reports whether t and o hold the same value sets per category after
// normalization.
func (t Tags) Equal(o Tags) bool {
	a, b := t.Normalize(), o.Normalize()
	if len(a) != len(b) {
		return false
	}
	for category, values := range a {
		other, ok := b[category]
		if !ok || len(other) != len(values) {
			return false
		}
		if !b.HasAll(category, values) {
			return false
		}
	}
	return true
}

// Add appends value under category unless it is already present.
func (t Tags) Add(category, value string) {
	for _, v := range t[category] {
		if v == value {
			return
		}
	}
	t[category] = append(t[category], value)
}

// ParseTagPair splits "Category=value" into its parts. A colon is accepted
// as separator when no equals sign is present, since category names never
// contain either.
func ParseTagPair(s string) (category, value string, err error) {
	sep := "="
	if !strings.Contains(s, sep) {
		sep = ":"
	}
	parts := strings.SplitN(s, sep, 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("%w: %q (expected Category=value)", ErrInvalidTagValue, s)
	}
	category = strings.TrimSpace(parts[0])
	value = strings.TrimSpace(parts[1])
	if category == "" || value == "" {
		return "", "", fmt.Errorf("%w: %q (expected Category=value)", ErrInvalidTagValue, s)
	}
	return category, value, nil
}

// ParseTagPairs folds a list of "Category=value" strings into Tags.
func ParseTagPairs(pairs []string) (Tags, error) {
	out := Tags{}
	for _, p := range pairs {
		category, value, err := ParseTagPair(p)
		if err != nil {
			return nil, err
		}
		out.Add(category, value)
	}
	return out, nil
}
