package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/promptlib/pkg/types"
)

// steppingClock returns a time source that advances one second per call.
func steppingClock(start time.Time) func() time.Time {
	var n int64
	return func() time.Time {
		return start.Add(time.Duration(atomic.AddInt64(&n, 1)) * time.Second)
	}
}

func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b, err := Open(
		types.Config{DataDir: t.TempDir()},
		WithClock(steppingClock(time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC))),
	)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

func TestOpen_CreatesDatabaseFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	b, err := Open(types.Config{DataDir: dir})
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, filepath.Join(dir, types.DefaultDBFile), b.Path())
	_, err = os.Stat(b.Path())
	assert.NoError(t, err, "database file should exist")
}

func TestOpen_RejectsInvalidConfig(t *testing.T) {
	_, err := Open(types.Config{})
	assert.ErrorIs(t, err, types.ErrInvalidConfig)
}

func TestOpen_KeepsExistingData(t *testing.T) {
	cfg := types.Config{DataDir: t.TempDir(), DBFile: "catalog.db"}
	ctx := context.Background()

	b, err := Open(cfg)
	require.NoError(t, err)
	p := types.NewPrompt("Persisted")
	require.NoError(t, b.Save(ctx, p, types.Tags{"Domain": {"legal"}}))
	require.NoError(t, b.Close())

	b, err = Open(cfg)
	require.NoError(t, err)
	defer b.Close()

	got, found, err := b.LoadByID(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Persisted", got.Title)
	assert.Equal(t, types.Tags{"Domain": {"legal"}}, got.Tags)
}

func TestClose_Idempotent(t *testing.T) {
	b, err := Open(types.Config{DataDir: t.TempDir()})
	require.NoError(t, err)

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	_, err = b.LoadAll(context.Background())
	assert.ErrorIs(t, err, types.ErrStoreClosed)

	err = b.Save(context.Background(), types.NewPrompt("late"), nil)
	assert.ErrorIs(t, err, types.ErrStoreClosed)
}

func TestForeignKeysEnabled(t *testing.T) {
	b := newTestBackend(t)

	var on int
	require.NoError(t, b.db.QueryRow("PRAGMA foreign_keys").Scan(&on))
	assert.Equal(t, 1, on)
}
