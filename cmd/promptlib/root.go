// Root command for the promptlib CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/promptlib/internal/catalog"
	"github.com/mesh-intelligence/promptlib/internal/observability"
	"github.com/mesh-intelligence/promptlib/internal/paths"
	"github.com/mesh-intelligence/promptlib/pkg/sqlite"
	"github.com/mesh-intelligence/promptlib/pkg/types"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagLogLevel  string
	flagJSON      bool
)

// Loaded by PersistentPreRunE so all subcommands can use them.
var (
	cfg    *appConfig
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "promptlib",
	Short: "promptlib is a catalog of reusable AI prompts",
	Long: `promptlib stores reusable AI prompts with a fixed tag taxonomy.
Prompts can be searched, filtered by tag, copied, exported, and imported,
from the command line or over HTTP with "promptlib serve".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return systemError(fmt.Errorf("resolve config dir: %w", err))
		}
		c, err := loadConfig(configDir)
		if err != nil {
			return systemError(err)
		}
		c.applyCommandDefaults(cmd.Name() == "serve")
		if flagLogLevel != "" {
			c.Logging.Level = flagLogLevel
		}

		l, err := observability.NewLogger(c.Logging)
		if err != nil {
			return userError(fmt.Errorf("logging: %w", err))
		}
		cfg, logger = c, l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		observability.Sync(logger)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: platform data dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(duplicateCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(serveCmd)
}

// resolveDataDir applies --data-dir > config.yaml data_dir >
// PROMPTLIB_DATA_DIR > platform default.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, cfg.DataDir)
}

// storeConfig returns the storage settings for the resolved data directory.
func storeConfig() (types.Config, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}
	return types.Config{DataDir: dataDir, DBFile: cfg.DBFile}, nil
}

// openCatalog opens the store and wraps it in a Catalog. The caller must
// call the returned close function.
func openCatalog() (*catalog.Catalog, func(), error) {
	sc, err := storeConfig()
	if err != nil {
		return nil, nil, systemError(err)
	}
	store, err := sqlite.Open(sc, logger)
	if err != nil {
		return nil, nil, systemError(fmt.Errorf("open store: %w", err))
	}
	closeFn := func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing store failed", zap.Error(err))
		}
	}
	return catalog.New(store, logger), closeFn, nil
}
