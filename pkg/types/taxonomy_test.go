package types

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoriesOrderAndCount(t *testing.T) {
	cats := Categories()

	assert.Len(t, cats, 20)
	assert.Equal(t, "Abstraction Level", cats[0])
	assert.Equal(t, "Complexity", cats[1])
	assert.Equal(t, "Status", cats[len(cats)-1])
}

func TestValuesOf(t *testing.T) {
	assert.Equal(t, []string{"basic", "simple", "intermediate", "advanced", "expert"}, ValuesOf(CategoryComplexity))
	assert.Contains(t, ValuesOf(CategoryTaskType), "debugging")
	assert.Nil(t, ValuesOf("Not A Category"))

	// Callers cannot mutate the registry through the returned slice.
	vals := ValuesOf(CategoryStatus)
	vals[0] = "mutated"
	assert.NotEqual(t, "mutated", ValuesOf(CategoryStatus)[0])
}

func TestRegistryListsHaveNoDuplicates(t *testing.T) {
	for _, name := range Categories() {
		seen := map[string]bool{}
		for _, v := range ValuesOf(name) {
			assert.False(t, seen[v], "duplicate %q in %s", v, name)
			seen[v] = true
		}
	}
}

func TestOnlyComplexityKeepsRegistryOrder(t *testing.T) {
	for _, name := range Categories() {
		assert.Equal(t, name == CategoryComplexity, KeepsRegistryOrder(name), name)
	}
	assert.False(t, sort.StringsAreSorted(ValuesOf(CategoryComplexity)))
}

func TestSingleValueAndRequiredCategories(t *testing.T) {
	assert.ElementsMatch(t, []string{"Complexity", "Abstraction Level", "Status"}, SingleValueCategories())
	assert.ElementsMatch(t, []string{"Task Type", "Complexity", "Abstraction Level"}, RequiredCategories())
	assert.True(t, IsSingleValue(CategoryStatus))
	assert.False(t, IsSingleValue(CategoryTaskType))

	for _, c := range append(SingleValueCategories(), RequiredCategories()...) {
		assert.True(t, IsCategory(c), c)
	}
}

func TestGroupsReferenceRegistryCategories(t *testing.T) {
	for _, groups := range [][]Group{FilterGroups(), EditGroups()} {
		covered := map[string]bool{}
		for _, g := range groups {
			for _, c := range g.Categories {
				assert.True(t, IsCategory(c), "group %s references unknown %q", g.Name, c)
				covered[c] = true
			}
		}
		assert.Len(t, covered, len(Categories()))
	}
}
