package catalog

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/promptlib/pkg/types"
)

func TestMergeTagOptions_RegistryOnly(t *testing.T) {
	opts := MergeTagOptions(nil)

	assert.Len(t, opts, len(types.Categories()))
	assert.Equal(t, types.ValuesOf(types.CategoryComplexity), opts[types.CategoryComplexity])
	for category, values := range opts {
		if category == types.CategoryComplexity {
			continue
		}
		assert.True(t, sort.StringsAreSorted(values), category)
	}
}

func TestMergeTagOptions_AddsStoredValues(t *testing.T) {
	opts := MergeTagOptions([]types.Tag{
		{Name: "aaa-first", Category: "Domain"},
		{Name: "zzz-custom", Category: "Domain"},
		{Name: "legal", Category: "Domain"},
		{Name: "wizard", Category: "Complexity"},
		{Name: "platform", Category: "Team"},
	})

	domain := opts["Domain"]
	assert.Equal(t, "aaa-first", domain[0])
	assert.Contains(t, domain, "zzz-custom")
	assert.True(t, sort.StringsAreSorted(domain))

	count := 0
	for _, v := range domain {
		if v == "legal" {
			count++
		}
	}
	assert.Equal(t, 1, count, "registry values are not repeated")

	assert.Equal(t,
		append(types.ValuesOf(types.CategoryComplexity), "wizard"),
		opts[types.CategoryComplexity],
		"complexity keeps its hand-authored order",
	)

	_, ok := opts["Team"]
	assert.False(t, ok)
}

func TestMergeTagOptions_DoesNotAliasRegistry(t *testing.T) {
	opts := MergeTagOptions([]types.Tag{{Name: "zzz", Category: "Tone"}})
	opts["Tone"][0] = "mutated"

	assert.NotContains(t, types.ValuesOf("Tone"), "mutated")
	assert.NotContains(t, types.ValuesOf("Tone"), "zzz")
}
