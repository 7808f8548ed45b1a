package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/promptlib/pkg/types"
)

// AllTags returns every tag row ordered by category, then name.
func (b *Backend) AllTags(ctx context.Context) ([]types.Tag, error) {
	var tags []types.Tag
	err := b.withDB(func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, "SELECT id, name, category FROM tags ORDER BY category, name")
		if err != nil {
			return fmt.Errorf("querying tags: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var t types.Tag
			if err := rows.Scan(&t.ID, &t.Name, &t.Category); err != nil {
				return fmt.Errorf("scanning tag: %w", err)
			}
			tags = append(tags, t)
		}
		return rows.Err()
	})
	if err != nil {
		b.log.Error("load tags failed", zap.Error(err))
		return nil, err
	}
	return tags, nil
}

// loadTags returns the tag map for one prompt. Values within a category come
// back sorted by name.
func loadTags(ctx context.Context, q querier, promptID string) (types.Tags, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT t.category, t.name FROM prompt_tags pt
         JOIN tags t ON t.id = pt.tag_id
         WHERE pt.prompt_id = ?
         ORDER BY t.category, t.name`,
		promptID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := types.Tags{}
	for rows.Next() {
		var category, name string
		if err := rows.Scan(&category, &name); err != nil {
			return nil, err
		}
		tags[category] = append(tags[category], name)
	}
	return tags, rows.Err()
}

// loadAllTags fills in the tag maps of the given prompts in one query.
func loadAllTags(ctx context.Context, q querier, byID map[string]*types.Prompt) error {
	rows, err := q.QueryContext(ctx,
		`SELECT pt.prompt_id, t.category, t.name FROM prompt_tags pt
         JOIN tags t ON t.id = pt.tag_id
         ORDER BY t.category, t.name`,
	)
	if err != nil {
		return fmt.Errorf("querying associations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var promptID, category, name string
		if err := rows.Scan(&promptID, &category, &name); err != nil {
			return fmt.Errorf("scanning association: %w", err)
		}
		if p, ok := byID[promptID]; ok {
			p.Tags[category] = append(p.Tags[category], name)
		}
	}
	return rows.Err()
}

// replaceTags deletes every association of promptID, then links it to one
// tag row per (category, value) pair, creating rows that do not exist yet.
func replaceTags(ctx context.Context, tx *sql.Tx, promptID string, tags types.Tags) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM prompt_tags WHERE prompt_id = ?", promptID); err != nil {
		return fmt.Errorf("clearing associations: %w", err)
	}
	for _, category := range tags.Categories() {
		for _, name := range tags[category] {
			tagID, err := ensureTag(ctx, tx, name, category)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO prompt_tags (prompt_id, tag_id) VALUES (?, ?)",
				promptID, tagID,
			); err != nil {
				return fmt.Errorf("linking tag %s=%s: %w", category, name, err)
			}
		}
	}
	return nil
}

// ensureTag returns the ID of the (name, category) tag row, inserting it on
// first use.
func ensureTag(ctx context.Context, tx *sql.Tx, name, category string) (int64, error) {
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO tags (name, category) VALUES (?, ?) ON CONFLICT(name, category) DO NOTHING",
		name, category,
	); err != nil {
		return 0, fmt.Errorf("creating tag %s=%s: %w", category, name, err)
	}
	var id int64
	if err := tx.QueryRowContext(ctx,
		"SELECT id FROM tags WHERE name = ? AND category = ?", name, category,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("resolving tag %s=%s: %w", category, name, err)
	}
	return id, nil
}
