package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/promptlib/pkg/types"
)

// promptColumns is the column list shared by every prompts SELECT. The order
// must match hydratePrompt.
const promptColumns = `id, title, prompt_type, use_case, description, usage_notes, version,
    persona, context, task, style, variables, instructions,
    is_favorite, created_at, last_modified`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// hydratePrompt converts a prompts row into a *types.Prompt with an empty
// tag map.
func hydratePrompt(row rowScanner) (*types.Prompt, error) {
	var (
		p          types.Prompt
		promptType string
		favorite   int64
	)
	err := row.Scan(
		&p.ID, &p.Title, &promptType, &p.UseCase, &p.Description, &p.UsageNotes, &p.Version,
		&p.Persona, &p.Context, &p.Task, &p.Style, &p.Variables, &p.Instructions,
		&favorite, &p.CreatedAt, &p.LastModified,
	)
	if err != nil {
		return nil, err
	}
	p.PromptType = types.PromptType(promptType)
	p.IsFavorite = favorite != 0
	p.Tags = types.Tags{}
	return &p, nil
}

// LoadAll returns every prompt with its tags, ordered by title.
func (b *Backend) LoadAll(ctx context.Context) ([]*types.Prompt, error) {
	var prompts []*types.Prompt
	err := b.withDB(func(db *sql.DB) error {
		var err error
		prompts, err = queryPrompts(ctx, db)
		if err != nil {
			return err
		}
		byID := make(map[string]*types.Prompt, len(prompts))
		for _, p := range prompts {
			byID[p.ID] = p
		}
		return loadAllTags(ctx, db, byID)
	})
	if err != nil {
		b.log.Error("load all prompts failed", zap.Error(err))
		return nil, err
	}
	return prompts, nil
}

// queryPrompts reads every prompts row. The rows are closed before it
// returns so the single connection is free for the tag query.
func queryPrompts(ctx context.Context, q querier) ([]*types.Prompt, error) {
	rows, err := q.QueryContext(ctx, "SELECT "+promptColumns+" FROM prompts ORDER BY title, id")
	if err != nil {
		return nil, fmt.Errorf("querying prompts: %w", err)
	}
	defer rows.Close()

	var prompts []*types.Prompt
	for rows.Next() {
		p, err := hydratePrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning prompt: %w", err)
		}
		prompts = append(prompts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating prompts: %w", err)
	}
	return prompts, nil
}

// LoadByID returns the prompt with the given ID and its tags.
func (b *Backend) LoadByID(ctx context.Context, id string) (*types.Prompt, bool, error) {
	var p *types.Prompt
	err := b.withDB(func(db *sql.DB) error {
		var err error
		p, err = loadPrompt(ctx, db, id)
		return err
	})
	if err != nil {
		b.log.Error("load prompt failed", zap.String("id", id), zap.Error(err))
		return nil, false, err
	}
	return p, p != nil, nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// loadPrompt reads one prompt and its tags. A missing row yields nil, nil.
func loadPrompt(ctx context.Context, q querier, id string) (*types.Prompt, error) {
	row := q.QueryRowContext(ctx, "SELECT "+promptColumns+" FROM prompts WHERE id = ?", id)
	p, err := hydratePrompt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting prompt %s: %w", id, err)
	}
	tags, err := loadTags(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("loading tags for prompt %s: %w", id, err)
	}
	p.Tags = tags
	return p, nil
}

// Save inserts or updates p and replaces its tag associations with tags.
func (b *Backend) Save(ctx context.Context, p *types.Prompt, tags types.Tags) error {
	if p == nil {
		return fmt.Errorf("saving prompt: nil prompt")
	}
	work := p.Clone()
	err := b.withTx(ctx, "save", func(tx *sql.Tx) error {
		return b.savePrompt(ctx, tx, work, tags)
	})
	if err != nil {
		return err
	}
	*p = *work
	b.log.Debug("prompt saved", zap.String("id", p.ID), zap.String("title", p.Title))
	return nil
}

// SaveAll saves every entry in a single transaction. Prompts are only
// updated in place once the transaction has committed.
func (b *Backend) SaveAll(ctx context.Context, entries []types.Entry) error {
	work := make([]*types.Prompt, len(entries))
	err := b.withTx(ctx, "save all", func(tx *sql.Tx) error {
		for i, e := range entries {
			if e.Prompt == nil {
				return fmt.Errorf("saving entry %d: nil prompt", i)
			}
			work[i] = e.Prompt.Clone()
			if err := b.savePrompt(ctx, tx, work[i], e.Tags); err != nil {
				return fmt.Errorf("saving entry %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	for i, e := range entries {
		*e.Prompt = *work[i]
	}
	b.log.Debug("prompts saved", zap.Int("count", len(entries)))
	return nil
}

// savePrompt upserts p inside tx. On insert the creation time and favorite
// flag are set by the store; on update they are carried over from the
// stored row. The resolved values are written back into p.
func (b *Backend) savePrompt(ctx context.Context, tx *sql.Tx, p *types.Prompt, tags types.Tags) error {
	now := b.timestamp()
	if p.ID == "" {
		p.ID = b.newID()
	}
	if p.PromptType == "" {
		p.PromptType = types.DefaultPromptType
	}

	var (
		createdAt string
		favorite  int64
	)
	err := tx.QueryRowContext(ctx,
		"SELECT created_at, is_favorite FROM prompts WHERE id = ?", p.ID,
	).Scan(&createdAt, &favorite)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx,
			`INSERT INTO prompts (`+promptColumns+`)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
			p.ID, p.Title, string(p.PromptType), p.UseCase, p.Description, p.UsageNotes, p.Version,
			p.Persona, p.Context, p.Task, p.Style, p.Variables, p.Instructions,
			now, now,
		)
		if err != nil {
			return fmt.Errorf("inserting prompt %s: %w", p.ID, err)
		}
		p.CreatedAt = now
		p.IsFavorite = false
	case err != nil:
		return fmt.Errorf("checking prompt %s: %w", p.ID, err)
	default:
		_, err = tx.ExecContext(ctx,
			`UPDATE prompts SET title = ?, prompt_type = ?, use_case = ?, description = ?,
                usage_notes = ?, version = ?, persona = ?, context = ?, task = ?, style = ?,
                variables = ?, instructions = ?, last_modified = ?
             WHERE id = ?`,
			p.Title, string(p.PromptType), p.UseCase, p.Description,
			p.UsageNotes, p.Version, p.Persona, p.Context, p.Task, p.Style,
			p.Variables, p.Instructions, now,
			p.ID,
		)
		if err != nil {
			return fmt.Errorf("updating prompt %s: %w", p.ID, err)
		}
		p.CreatedAt = createdAt
		p.IsFavorite = favorite != 0
	}
	p.LastModified = now

	normalized := tags.Normalize()
	if err := replaceTags(ctx, tx, p.ID, normalized); err != nil {
		return fmt.Errorf("replacing tags for prompt %s: %w", p.ID, err)
	}
	p.Tags = normalized
	return nil
}

// Delete removes the prompt and its associations.
func (b *Backend) Delete(ctx context.Context, id string) (bool, error) {
	var found bool
	err := b.withTx(ctx, "delete", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM prompt_tags WHERE prompt_id = ?", id); err != nil {
			return fmt.Errorf("deleting associations for prompt %s: %w", id, err)
		}
		res, err := tx.ExecContext(ctx, "DELETE FROM prompts WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("deleting prompt %s: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("checking delete result: %w", err)
		}
		found = n > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	if found {
		b.log.Debug("prompt deleted", zap.String("id", id))
	}
	return found, nil
}

// ToggleFavorite stores !current as the prompt's favorite flag.
func (b *Backend) ToggleFavorite(ctx context.Context, id string, current bool) (bool, error) {
	next := 0
	if !current {
		next = 1
	}
	var found bool
	err := b.withTx(ctx, "toggle favorite", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "UPDATE prompts SET is_favorite = ? WHERE id = ?", next, id)
		if err != nil {
			return fmt.Errorf("updating favorite for prompt %s: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("checking favorite result: %w", err)
		}
		found = n > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// Duplicate copies a prompt and its tags under a fresh ID. The read and the
// write share one transaction.
func (b *Backend) Duplicate(ctx context.Context, id string) (string, bool, error) {
	var newID string
	err := b.withTx(ctx, "duplicate", func(tx *sql.Tx) error {
		src, err := loadPrompt(ctx, tx, id)
		if err != nil {
			return err
		}
		if src == nil {
			return nil
		}
		cp := src.Clone()
		cp.ID = ""
		cp.Title = src.Title + types.CopySuffix
		cp.IsFavorite = false
		cp.CreatedAt = ""
		cp.LastModified = ""
		if err := b.savePrompt(ctx, tx, cp, src.Tags); err != nil {
			return fmt.Errorf("saving copy of prompt %s: %w", id, err)
		}
		newID = cp.ID
		return nil
	})
	if err != nil {
		return "", false, err
	}
	if newID == "" {
		return "", false, nil
	}
	b.log.Debug("prompt duplicated", zap.String("source", id), zap.String("id", newID))
	return newID, true, nil
}
