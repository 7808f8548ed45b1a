// Init command for the promptlib CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/promptlib/internal/paths"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize promptlib configuration and storage",
	Long: `Create the configuration directory with a default config.yaml, then
create the prompt database in the data directory. Running init again is
harmless.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// PersistentPreRunE already created the config dir and file.
		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return systemError(err)
		}

		_, closeFn, err := openCatalog()
		if err != nil {
			return err
		}
		closeFn()

		sc, err := storeConfig()
		if err != nil {
			return systemError(err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "promptlib initialized")
		fmt.Fprintln(out, "  config:  ", configPath(configDir))
		fmt.Fprintln(out, "  database:", sc.DBPath())
		return nil
	},
}
