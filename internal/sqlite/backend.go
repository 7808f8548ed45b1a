// Package sqlite implements the SQLite storage backend for the prompt
// library. A single database file holds the prompts, tags, and prompt_tags
// relations; every mutating operation runs inside one transaction.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/promptlib/pkg/types"
)

// Compile-time interface check: Backend must implement Store.
var _ types.Store = (*Backend)(nil)

// Backend implements types.Store on a SQLite database file.
type Backend struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
	log  *zap.Logger

	now   func() time.Time
	newID func() string
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for storage errors and mutations.
func WithLogger(l *zap.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.log = l
		}
	}
}

// WithClock overrides the time source used for created_at and
// last_modified.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		if now != nil {
			b.now = now
		}
	}
}

// WithIDGenerator overrides prompt ID generation.
func WithIDGenerator(gen func() string) Option {
	return func(b *Backend) {
		if gen != nil {
			b.newID = gen
		}
	}
}

// Open validates cfg, creates the database directory if needed, opens the
// database file, and applies the schema. Existing data is kept.
func Open(cfg types.Config, opts ...Option) (*Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Backend{
		path:  cfg.DBPath(),
		log:   zap.NewNop(),
		now:   time.Now,
		newID: generateUUID,
	}
	for _, opt := range opts {
		opt(b)
	}

	if dir := filepath.Dir(b.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(b.path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection keeps PRAGMAs and transactions on the same handle.
	db.SetMaxOpenConns(1)

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	b.db = db
	b.log.Debug("store opened", zap.String("path", b.path))
	return b, nil
}

// dsn builds the modernc.org/sqlite connection string for path.
func dsn(path string) string {
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Path returns the database file path.
func (b *Backend) Path() string {
	return b.path
}

// Close releases the database handle. Close is idempotent.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	if err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// withTx runs fn inside a transaction. Any error from fn rolls the whole
// transaction back and is logged under op before being returned.
func (b *Backend) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.db == nil {
		return types.ErrStoreClosed
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		b.log.Error("begin transaction failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		b.log.Error("transaction rolled back", zap.String("op", op), zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		b.log.Error("commit failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("committing %s: %w", op, err)
	}
	return nil
}

// withDB runs a read-only fn against the open handle.
func (b *Backend) withDB(fn func(db *sql.DB) error) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.db == nil {
		return types.ErrStoreClosed
	}
	return fn(b.db)
}

// timestamp returns the current time in the stored textual format.
func (b *Backend) timestamp() string {
	return types.FormatTimestamp(b.now())
}

// generateUUID generates a new UUID v7 for prompt IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
