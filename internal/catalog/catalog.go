// Package catalog is the boundary between the outer surfaces (CLI and HTTP)
// and the prompt store. It validates user input, runs searches over fresh
// store snapshots, computes effective tag options, and drives import and
// export.
package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/promptlib/internal/codec"
	"github.com/mesh-intelligence/promptlib/internal/query"
	"github.com/mesh-intelligence/promptlib/pkg/types"
)

// Catalog exposes the prompt library operations over a Store.
type Catalog struct {
	store    types.Store
	log      *zap.Logger
	validate *validator.Validate
}

// New returns a Catalog backed by store. A nil logger discards output.
func New(store types.Store, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{
		store:    store,
		log:      log,
		validate: newValidator(),
	}
}

// GetAllPrompts returns every prompt ordered by title.
func (c *Catalog) GetAllPrompts(ctx context.Context) ([]*types.Prompt, error) {
	return c.store.LoadAll(ctx)
}

// GetPrompt returns the prompt with the given ID.
func (c *Catalog) GetPrompt(ctx context.Context, id string) (*types.Prompt, bool, error) {
	return c.store.LoadByID(ctx, strings.TrimSpace(id))
}

// SavePrompt validates p and saves it with the full tag set tags. The title
// is trimmed, an empty type or version takes its default, and the store's
// resolved ID and timestamps are written back into p. Tag advisories are
// returned and logged but never block the save. On update, categories outside
// the registry are accepted only if the stored record already has them.
func (c *Catalog) SavePrompt(ctx context.Context, p *types.Prompt, tags types.Tags) ([]types.Advisory, error) {
	if p == nil {
		return nil, &ValidationError{Field: "prompt", Message: "prompt is required", err: types.ErrValidation}
	}
	p.Title = strings.TrimSpace(p.Title)
	if p.PromptType == "" {
		p.PromptType = types.DefaultPromptType
	}
	p.PromptType = types.PromptType(strings.ToLower(string(p.PromptType)))
	if p.Version == "" {
		p.Version = types.DefaultVersion
	}

	var stored types.Tags
	if p.ID != "" {
		current, found, err := c.store.LoadByID(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("loading prompt: %w", err)
		}
		if found {
			stored = current.Tags
		}
	}

	if err := c.validate.Struct(draftFrom(p, tags, stored)); err != nil {
		return nil, toValidationError(err)
	}

	normalized := tags.Normalize()
	advisories := types.CheckAdvisories(normalized)
	for _, a := range advisories {
		c.log.Debug("tag advisory", zap.String("kind", a.Kind), zap.String("category", a.Category))
	}

	isNew := p.ID == ""
	if err := c.store.Save(ctx, p, normalized); err != nil {
		c.log.Error("save prompt failed", zap.String("id", p.ID), zap.String("title", p.Title), zap.Error(err))
		return nil, fmt.Errorf("saving prompt: %w", err)
	}
	if isNew {
		c.log.Info("prompt created", zap.String("id", p.ID), zap.String("title", p.Title))
	} else {
		c.log.Info("prompt updated", zap.String("id", p.ID), zap.String("title", p.Title))
	}
	return advisories, nil
}

// DeletePrompt removes the prompt. found is false when nothing matched.
func (c *Catalog) DeletePrompt(ctx context.Context, id string) (bool, error) {
	found, err := c.store.Delete(ctx, id)
	if err != nil {
		c.log.Error("delete prompt failed", zap.String("id", id), zap.Error(err))
		return false, fmt.Errorf("deleting prompt: %w", err)
	}
	if found {
		c.log.Info("prompt deleted", zap.String("id", id))
	}
	return found, nil
}

// ToggleFavorite stores the negation of current.
func (c *Catalog) ToggleFavorite(ctx context.Context, id string, current bool) (bool, error) {
	found, err := c.store.ToggleFavorite(ctx, id, current)
	if err != nil {
		c.log.Error("toggle favorite failed", zap.String("id", id), zap.Error(err))
		return false, fmt.Errorf("toggling favorite: %w", err)
	}
	return found, nil
}

// DuplicatePrompt copies the prompt under a new ID.
func (c *Catalog) DuplicatePrompt(ctx context.Context, id string) (string, bool, error) {
	newID, found, err := c.store.Duplicate(ctx, id)
	if err != nil {
		c.log.Error("duplicate prompt failed", zap.String("id", id), zap.Error(err))
		return "", false, fmt.Errorf("duplicating prompt: %w", err)
	}
	if found {
		c.log.Info("prompt duplicated", zap.String("source", id), zap.String("id", newID))
	}
	return newID, found, nil
}

// CopyText returns the rendered copy text of the prompt.
func (c *Catalog) CopyText(ctx context.Context, id string) (string, bool, error) {
	p, found, err := c.GetPrompt(ctx, id)
	if err != nil || !found {
		return "", found, err
	}
	return p.CopyText(), true, nil
}

// Search loads the current prompt set and runs the query pipeline over it.
func (c *Catalog) Search(ctx context.Context, opts query.Options) ([]*types.Prompt, error) {
	all, err := c.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	return query.Search(all, opts), nil
}

// Export writes the whole catalog to w in format f and returns the number
// of records written.
func (c *Catalog) Export(ctx context.Context, w io.Writer, f codec.Format) (int, error) {
	all, err := c.store.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := codec.Encode(w, all, f); err != nil {
		return 0, err
	}
	c.log.Info("catalog exported", zap.Int("count", len(all)), zap.String("format", string(f)))
	return len(all), nil
}

// ExportFile atomically writes the whole catalog to path.
func (c *Catalog) ExportFile(ctx context.Context, path string, f codec.Format) (int, error) {
	all, err := c.store.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	if err := codec.WriteFile(path, all, f); err != nil {
		return 0, err
	}
	c.log.Info("catalog exported", zap.Int("count", len(all)), zap.String("path", path))
	return len(all), nil
}

// Import parses data in format f and saves every record with a fresh ID.
// The document is parsed in full before anything is written, and all
// records are saved in one transaction: on any failure nothing is imported.
func (c *Catalog) Import(ctx context.Context, data []byte, f codec.Format) (int, error) {
	if f == "" {
		f = codec.DetectFormat(data)
	}
	entries, err := codec.Decode(data, f)
	if err != nil {
		c.log.Warn("import rejected", zap.Error(err))
		return 0, err
	}
	return c.saveImported(ctx, entries)
}

// ImportFile reads and imports the document at path. An empty f infers the
// format from the extension or content.
func (c *Catalog) ImportFile(ctx context.Context, path string, f codec.Format) (int, error) {
	entries, _, err := codec.ReadFile(path, f)
	if err != nil {
		c.log.Warn("import rejected", zap.String("path", path), zap.Error(err))
		return 0, err
	}
	return c.saveImported(ctx, entries)
}

func (c *Catalog) saveImported(ctx context.Context, entries []types.Entry) (int, error) {
	for i, e := range entries {
		e.Prompt.ID = ""
		for category := range e.Tags {
			if !types.IsCategory(category) {
				c.log.Warn("import keeps unknown tag category",
					zap.Int("record", i+1), zap.String("category", category))
			}
		}
	}
	if err := c.store.SaveAll(ctx, entries); err != nil {
		c.log.Error("import failed", zap.Int("records", len(entries)), zap.Error(err))
		return 0, fmt.Errorf("importing catalog: %w", err)
	}
	c.log.Info("catalog imported", zap.Int("count", len(entries)))
	return len(entries), nil
}
