package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Config holds the storage location for a Store.
type Config struct {
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
	DBFile  string `json:"db_file" yaml:"db_file" mapstructure:"db_file"`
}

// DefaultDBFile is the database file name used when Config.DBFile is empty.
const DefaultDBFile = "prompts.db"

// Validate checks that the Config is well-formed.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DBFile) == "" && strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("%w: data_dir and db_file are both empty", ErrInvalidConfig)
	}
	if strings.HasSuffix(c.DBFile, string(filepath.Separator)) {
		return fmt.Errorf("%w: db_file %q names a directory", ErrInvalidConfig, c.DBFile)
	}
	return nil
}

// DBPath returns the database file path. An absolute DBFile wins; a relative
// one is placed inside DataDir.
func (c Config) DBPath() string {
	file := c.DBFile
	if file == "" {
		file = DefaultDBFile
	}
	if filepath.IsAbs(file) || c.DataDir == "" {
		return file
	}
	return filepath.Join(c.DataDir, file)
}
