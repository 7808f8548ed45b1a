// Version command for the promptlib CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/promptlib/pkg/types"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the promptlib version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "promptlib %s (taxonomy %s)\n", version, types.TaxonomyVersion)
	},
}
