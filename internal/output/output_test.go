package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/promptlib/pkg/types"
)

func TestPromptTable(t *testing.T) {
	fav := types.NewPrompt("Bug Triage")
	fav.ID = "p-1"
	fav.IsFavorite = true
	fav.Tags = types.Tags{"Task Type": {"debugging"}, "Complexity": {"intermediate"}}
	plain := types.NewPrompt("Summarizer")
	plain.ID = "p-2"

	rendered := PromptTable([]*types.Prompt{fav, plain})
	assert.Contains(t, rendered, "Bug Triage")
	assert.Contains(t, rendered, "p-2")
	assert.Contains(t, rendered, favoriteMark)
	assert.Contains(t, strings.ToLower(rendered), "2 prompt(s)")
	assert.Equal(t, 1, strings.Count(rendered, favoriteMark))
}

func TestPromptDetail(t *testing.T) {
	p := types.NewPrompt("Summarizer")
	p.ID = "p-9"
	p.Task = "Summarize the document"
	p.UseCase = "Reports"
	p.Tags = types.Tags{"Team": {"platform"}, "Task Type": {"summarization"}}

	rendered := PromptDetail(p)
	assert.Contains(t, rendered, "### TASK\nSummarize the document")
	assert.Contains(t, rendered, "Reports")
	assert.NotContains(t, rendered, "Usage Notes")
	assert.Less(t, strings.Index(rendered, "Task Type"), strings.Index(rendered, "Team"),
		"registry categories come first")
}

func TestTagOptions_Filter(t *testing.T) {
	opts := map[string][]string{"Tone": {"casual", "formal"}, "Domain": {"legal"}}
	groups := []types.Group{
		{Name: "Task & Domain", Categories: []string{"Domain"}},
		{Name: "Quality & Management", Categories: []string{"Tone"}},
	}

	all := TagOptions(opts, groups, "")
	assert.Contains(t, all, "legal")
	assert.Contains(t, all, "casual, formal")

	one := TagOptions(opts, groups, "tone")
	assert.Contains(t, one, "formal")
	assert.NotContains(t, one, "legal")

	assert.Empty(t, TagOptions(opts, groups, "Nope"))
}

func TestAdvisories(t *testing.T) {
	rendered := Advisories(types.CheckAdvisories(types.Tags{}))
	assert.Equal(t, 3, strings.Count(rendered, "warning: "))
}

func TestJSON(t *testing.T) {
	rendered, err := JSON(map[string]int{"imported": 2})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"imported\": 2\n}", rendered)
}
