package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagsNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Tags
		want Tags
	}{
		{
			name: "nil becomes empty map",
			in:   nil,
			want: Tags{},
		},
		{
			name: "empty categories are omitted",
			in:   Tags{"Domain": {}, "Task Type": {"analysis"}},
			want: Tags{"Task Type": {"analysis"}},
		},
		{
			name: "values are trimmed and deduplicated in first-seen order",
			in:   Tags{"Tone": {" formal", "direct", "formal ", ""}},
			want: Tags{"Tone": {"formal", "direct"}},
		},
		{
			name: "blank category names are dropped",
			in:   Tags{"  ": {"x"}},
			want: Tags{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestTagsHasAll(t *testing.T) {
	tags := Tags{"Task Type": {"analysis", "debugging", "research"}}

	assert.True(t, tags.HasAll("Task Type", []string{"analysis", "research"}))
	assert.True(t, tags.HasAll("Task Type", nil))
	assert.True(t, tags.HasAll("Domain", nil))
	assert.False(t, tags.HasAll("Task Type", []string{"analysis", "writing"}))
	assert.False(t, tags.HasAll("Domain", []string{"software"}))
}

func TestTagsEqualIgnoresOrder(t *testing.T) {
	a := Tags{"Tone": {"formal", "direct"}, "Domain": {"legal"}}
	b := Tags{"Domain": {"legal"}, "Tone": {"direct", "formal"}, "Status": {}}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Tags{"Tone": {"formal"}, "Domain": {"legal"}}))
	assert.True(t, Tags{}.Equal(nil))
}

func TestTagsCloneAndLen(t *testing.T) {
	tags := Tags{"Tone": {"formal"}, "Domain": {"legal", "finance"}}
	c := tags.Clone()
	c["Tone"][0] = "casual"

	assert.Equal(t, "formal", tags["Tone"][0])
	assert.Equal(t, 3, tags.Len())
	assert.Equal(t, []string{"Domain", "Tone"}, tags.Categories())
	assert.Nil(t, Tags(nil).Clone())
}

func TestParseTagPair(t *testing.T) {
	tests := []struct {
		in        string
		wantCat   string
		wantValue string
		wantErr   bool
	}{
		{"Task Type=debugging", "Task Type", "debugging", false},
		{"Model = Claude 3.5 Sonnet", "Model", "Claude 3.5 Sonnet", false},
		{"Safety & Guardrails:pii-protection", "Safety & Guardrails", "pii-protection", false},
		{"Complexity", "", "", true},
		{"=basic", "", "", true},
		{"Complexity=", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			cat, val, err := ParseTagPair(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTagValue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCat, cat)
			assert.Equal(t, tt.wantValue, val)
		})
	}
}

func TestParseTagPairsFoldsDuplicates(t *testing.T) {
	tags, err := ParseTagPairs([]string{"Tone=formal", "Tone=direct", "Tone=formal", "Domain=legal"})
	require.NoError(t, err)
	assert.Equal(t, Tags{"Tone": {"formal", "direct"}, "Domain": {"legal"}}, tags)

	_, err = ParseTagPairs([]string{"broken"})
	assert.Error(t, err)
}
