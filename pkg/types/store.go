package types

import "context"

// Store is the durable source of truth for prompts, tags, and their
// associations. Every mutating call runs in a single transaction: it either
// commits in full or leaves no trace.
//
// Lookups that miss report found=false rather than an error.
type Store interface {
	// LoadAll returns every prompt with its tags, ordered by title using the
	// store's case-sensitive collation.
	LoadAll(ctx context.Context) ([]*Prompt, error)

	// LoadByID returns the prompt with the given ID.
	LoadByID(ctx context.Context, id string) (*Prompt, bool, error)

	// Save inserts or updates p and replaces its entire tag association set
	// with tags. An empty ID is assigned a fresh one. Timestamps and, on
	// insert, the favorite flag are set by the store and written back to p.
	Save(ctx context.Context, p *Prompt, tags Tags) error

	// SaveAll saves every entry inside one transaction.
	SaveAll(ctx context.Context, entries []Entry) error

	// Delete removes the prompt and its associations. Deleting an unknown ID
	// is not an error; found reports whether anything was removed.
	Delete(ctx context.Context, id string) (found bool, err error)

	// ToggleFavorite stores the negation of current, the value the caller
	// last observed.
	ToggleFavorite(ctx context.Context, id string, current bool) (found bool, err error)

	// Duplicate copies the prompt and its tags under a new ID with a
	// " (Copy)" title suffix and a cleared favorite flag.
	Duplicate(ctx context.Context, id string) (newID string, found bool, err error)

	// AllTags returns every Tag row, ordered by category then name.
	AllTags(ctx context.Context) ([]Tag, error)

	// Close releases the underlying database handle. Idempotent.
	Close() error
}

// Entry pairs a prompt with the full tag set it should be saved with.
type Entry struct {
	Prompt *Prompt
	Tags   Tags
}
