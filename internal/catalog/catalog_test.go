package catalog

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/promptlib/internal/codec"
	"github.com/mesh-intelligence/promptlib/internal/query"
	"github.com/mesh-intelligence/promptlib/internal/sqlite"
	"github.com/mesh-intelligence/promptlib/pkg/types"
)

func newTestCatalog(t *testing.T) (*Catalog, *sqlite.Backend) {
	t.Helper()
	store, err := sqlite.Open(types.Config{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store, nil), store
}

func TestSavePrompt_BugTriageScenario(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	p := types.NewPrompt("Bug Triage")
	p.PromptType = types.PromptStandard
	p.Instructions = "Find the root cause."
	tags := types.Tags{"Task Type": {"debugging"}, "Complexity": {"intermediate"}}

	advisories, err := c.SavePrompt(ctx, p, tags)
	require.NoError(t, err)
	require.Len(t, advisories, 1)
	assert.Equal(t, types.CategoryAbstractionLevel, advisories[0].Category)

	text, found, err := c.CopyText(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Find the root cause.", text)

	found, err = c.DeletePrompt(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, found)

	_, found, err = c.GetPrompt(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSavePrompt_Validation(t *testing.T) {
	tests := []struct {
		name     string
		prompt   *types.Prompt
		tags     types.Tags
		sentinel error
		field    string
	}{
		{
			name:     "empty title",
			prompt:   &types.Prompt{Title: ""},
			sentinel: types.ErrInvalidTitle,
			field:    "title",
		},
		{
			name:     "whitespace title",
			prompt:   &types.Prompt{Title: "   \t"},
			sentinel: types.ErrInvalidTitle,
			field:    "title",
		},
		{
			name:     "bad prompt type",
			prompt:   &types.Prompt{Title: "x", PromptType: "freeform"},
			sentinel: types.ErrInvalidPromptType,
			field:    "prompt_type",
		},
		{
			name:     "unknown category",
			prompt:   &types.Prompt{Title: "x"},
			tags:     types.Tags{"Team": {"platform"}},
			sentinel: types.ErrUnknownCategory,
			field:    "tags",
		},
		{
			name:     "blank tag value",
			prompt:   &types.Prompt{Title: "x"},
			tags:     types.Tags{"Tone": {"formal", "  "}},
			sentinel: types.ErrInvalidTagValue,
			field:    "tags",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCatalog(t)
			ctx := context.Background()

			_, err := c.SavePrompt(ctx, tt.prompt, tt.tags)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrValidation)
			assert.ErrorIs(t, err, tt.sentinel)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)

			all, err := c.GetAllPrompts(ctx)
			require.NoError(t, err)
			assert.Empty(t, all, "nothing is saved")
		})
	}
}

func TestSavePrompt_NormalizesInput(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	p := &types.Prompt{Title: "  Padded  ", PromptType: "STANDARD"}
	_, err := c.SavePrompt(ctx, p, types.Tags{"Tone": {"formal", "formal"}})
	require.NoError(t, err)

	got, _, err := c.GetPrompt(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Padded", got.Title)
	assert.Equal(t, types.PromptStandard, got.PromptType)
	assert.Equal(t, types.DefaultVersion, got.Version)
	assert.Equal(t, types.Tags{"Tone": {"formal"}}, got.Tags)
}

func TestSavePrompt_AcceptsAdHocValues(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	p := types.NewPrompt("Custom")
	_, err := c.SavePrompt(ctx, p, types.Tags{"Model": {"in-house-llm"}})
	require.NoError(t, err)

	opts, err := c.EffectiveTagOptions(ctx)
	require.NoError(t, err)
	assert.Contains(t, opts["Model"], "in-house-llm")
}

func TestSavePrompt_StoreFailure(t *testing.T) {
	c, store := newTestCatalog(t)
	require.NoError(t, store.Close())

	_, err := c.SavePrompt(context.Background(), types.NewPrompt("late"), nil)
	assert.ErrorIs(t, err, types.ErrStoreClosed)
	assert.NotErrorIs(t, err, types.ErrValidation)
}

func TestToggleAndDuplicate(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	p := types.NewPrompt("Original")
	_, err := c.SavePrompt(ctx, p, types.Tags{"Domain": {"legal"}})
	require.NoError(t, err)

	found, err := c.ToggleFavorite(ctx, p.ID, false)
	require.NoError(t, err)
	assert.True(t, found)

	newID, found, err := c.DuplicatePrompt(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, found)

	cp, _, err := c.GetPrompt(ctx, newID)
	require.NoError(t, err)
	assert.Equal(t, "Original (Copy)", cp.Title)
	assert.False(t, cp.IsFavorite)
	assert.Equal(t, types.Tags{"Domain": {"legal"}}, cp.Tags)

	_, found, err = c.DuplicatePrompt(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSearch_ReflectsLatestState(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	a := types.NewPrompt("Alpha")
	_, err := c.SavePrompt(ctx, a, types.Tags{"Domain": {"legal"}})
	require.NoError(t, err)

	got, err := c.Search(ctx, query.Options{TagFilters: types.Tags{"Domain": {"legal"}}})
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = c.SavePrompt(ctx, a, types.Tags{})
	require.NoError(t, err)

	got, err = c.Search(ctx, query.Options{TagFilters: types.Tags{"Domain": {"legal"}}})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExportImport_RoundTrip(t *testing.T) {
	for _, f := range codec.Formats() {
		t.Run(string(f), func(t *testing.T) {
			src, _ := newTestCatalog(t)
			ctx := context.Background()

			s := types.NewPrompt("Summarizer")
			s.Task = "Summarize the document"
			_, err := src.SavePrompt(ctx, s, types.Tags{"Task Type": {"summarization"}})
			require.NoError(t, err)
			b := types.NewPrompt("Bug Triage")
			b.PromptType = types.PromptStandard
			b.Instructions = "Find the root cause."
			_, err = src.SavePrompt(ctx, b, types.Tags{"Task Type": {"debugging"}, "Complexity": {"intermediate"}})
			require.NoError(t, err)

			var buf bytes.Buffer
			n, err := src.Export(ctx, &buf, f)
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			dst, _ := newTestCatalog(t)
			n, err = dst.Import(ctx, buf.Bytes(), "")
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			before, err := src.GetAllPrompts(ctx)
			require.NoError(t, err)
			after, err := dst.GetAllPrompts(ctx)
			require.NoError(t, err)
			require.Len(t, after, len(before))
			for i := range before {
				assert.NotEqual(t, before[i].ID, after[i].ID)
				assert.Equal(t, before[i].Title, after[i].Title)
				assert.Equal(t, before[i].PromptType, after[i].PromptType)
				assert.Equal(t, before[i].CopyText(), after[i].CopyText())
				assert.True(t, before[i].Tags.Equal(after[i].Tags))
			}
		})
	}
}

func TestImport_MalformedWritesNothing(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	doc := []byte(`[{"title":"ok"},{"title":"bad","prompt_type":"freeform"}]`)
	n, err := c.Import(ctx, doc, codec.FormatJSON)
	assert.ErrorIs(t, err, codec.ErrMalformedDocument)
	assert.Zero(t, n)

	all, err := c.GetAllPrompts(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImport_DiscardsIDsAndKeepsUnknownCategories(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	doc := []byte(`[
  {"id": "fixed", "title": "One", "tags": {"Team": ["platform"]}},
  {"id": "fixed", "title": "Two"}
]`)
	n, err := c.Import(ctx, doc, codec.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := c.GetAllPrompts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.NotEqual(t, "fixed", all[0].ID)
	assert.NotEqual(t, all[0].ID, all[1].ID)
	assert.Equal(t, types.Tags{"Team": {"platform"}}, all[0].Tags)

	opts, err := c.EffectiveTagOptions(ctx)
	require.NoError(t, err)
	_, ok := opts["Team"]
	assert.False(t, ok, "categories outside the registry are not surfaced")
}

func TestSavePrompt_UpdateKeepsImportedCategories(t *testing.T) {
	tests := []struct {
		name    string
		tags    func(stored types.Tags) types.Tags
		wantErr error
	}{
		{
			name: "title only edit",
			tags: func(stored types.Tags) types.Tags { return stored },
		},
		{
			name: "new value in imported category",
			tags: func(stored types.Tags) types.Tags {
				return types.Tags{"Legacy Cat": {"newer", "old"}, "Tone": {"formal"}}
			},
		},
		{
			name: "imported category dropped",
			tags: func(stored types.Tags) types.Tags { return types.Tags{"Tone": {"formal"}} },
		},
		{
			name: "unknown category added on update",
			tags: func(stored types.Tags) types.Tags {
				return types.Tags{"Legacy Cat": {"old"}, "Team": {"platform"}}
			},
			wantErr: types.ErrUnknownCategory,
		},
		{
			name:    "empty value in imported category",
			tags:    func(stored types.Tags) types.Tags { return types.Tags{"Legacy Cat": {" "}} },
			wantErr: types.ErrInvalidTagValue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCatalog(t)
			ctx := context.Background()

			n, err := c.Import(ctx, []byte(`[{"title":"Old","tags":{"Legacy Cat":["old"]}}]`), codec.FormatJSON)
			require.NoError(t, err)
			require.Equal(t, 1, n)
			all, err := c.GetAllPrompts(ctx)
			require.NoError(t, err)
			require.Len(t, all, 1)

			p := all[0]
			p.Title = "Renamed"
			want := tt.tags(p.Tags)
			_, err = c.SavePrompt(ctx, p, want)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, types.ErrValidation)
				return
			}
			require.NoError(t, err)

			got, found, err := c.GetPrompt(ctx, p.ID)
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, "Renamed", got.Title)
			assert.Equal(t, want.Normalize(), got.Tags)
		})
	}
}

func TestSavePrompt_NewPromptRejectsUnknownCategory(t *testing.T) {
	c, _ := newTestCatalog(t)

	_, err := c.SavePrompt(context.Background(), types.NewPrompt("Fresh"), types.Tags{"Legacy Cat": {"old"}})
	assert.ErrorIs(t, err, types.ErrUnknownCategory)
}

func TestExportFileImportFile(t *testing.T) {
	c, _ := newTestCatalog(t)
	ctx := context.Background()

	_, err := c.SavePrompt(ctx, types.NewPrompt("Saved"), nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "backup.yaml")
	n, err := c.ExportFile(ctx, path, codec.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = c.ImportFile(ctx, path, "")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	all, err := c.GetAllPrompts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
