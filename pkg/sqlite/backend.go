// Package sqlite provides the public API for the SQLite prompt store.
// This package exposes the factory function for opening a store while
// keeping implementation details internal.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/promptlib/internal/sqlite"
	"github.com/mesh-intelligence/promptlib/pkg/types"
)

// Open opens (creating if needed) the SQLite store described by cfg.
// A nil logger discards log output.
//
// Example:
//
//	store, err := sqlite.Open(types.Config{DataDir: ".promptlib"}, logger)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
func Open(cfg types.Config, logger *zap.Logger) (types.Store, error) {
	b, err := sqlite.Open(cfg, sqlite.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return b, nil
}
