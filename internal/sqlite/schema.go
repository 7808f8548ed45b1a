package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema DDL. Statements are idempotent so opening an existing file is safe.
const (
	createPrompts = `CREATE TABLE IF NOT EXISTS prompts (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    prompt_type TEXT NOT NULL DEFAULT 'structured',
    use_case TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    usage_notes TEXT NOT NULL DEFAULT '',
    version TEXT NOT NULL DEFAULT 'v1.0',
    persona TEXT NOT NULL DEFAULT '',
    context TEXT NOT NULL DEFAULT '',
    task TEXT NOT NULL DEFAULT '',
    style TEXT NOT NULL DEFAULT '',
    variables TEXT NOT NULL DEFAULT '',
    instructions TEXT NOT NULL DEFAULT '',
    is_favorite INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    last_modified TEXT NOT NULL
);`

	createTags = `CREATE TABLE IF NOT EXISTS tags (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    UNIQUE (name, category)
);`

	createPromptTags = `CREATE TABLE IF NOT EXISTS prompt_tags (
    prompt_id TEXT NOT NULL,
    tag_id INTEGER NOT NULL,
    PRIMARY KEY (prompt_id, tag_id),
    FOREIGN KEY (prompt_id) REFERENCES prompts(id) ON DELETE CASCADE,
    FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE
);`
)

// Index DDL for tag lookups.
const (
	idxPromptTagsTag = `CREATE INDEX IF NOT EXISTS idx_prompt_tags_tag ON prompt_tags(tag_id);`
	idxTagsCategory  = `CREATE INDEX IF NOT EXISTS idx_tags_category ON tags(category);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createPrompts,
	createTags,
	createPromptTags,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxPromptTagsTag,
	idxTagsCategory,
}

// applySchema creates any missing tables and indexes.
func applySchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}
	for _, stmt := range indexDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}
