// Tags command for the promptlib CLI.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/promptlib/internal/catalog"
	"github.com/mesh-intelligence/promptlib/internal/output"
	"github.com/mesh-intelligence/promptlib/pkg/types"
)

var tagsLayout string

var tagsCmd = &cobra.Command{
	Use:   "tags [category]",
	Short: "Show the tag options for each category",
	Long: `Show the selectable values per taxonomy category: the built-in values
plus any value already attached to a stored prompt. Give a category name to
show only that category. --layout edit groups categories the way the edit
form does; the default groups them for browsing.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groups, err := tagGroups(tagsLayout)
		if err != nil {
			return userError(err)
		}
		only := ""
		if len(args) == 1 {
			name, ok := lookupCategory(args[0])
			if !ok {
				return userError(fmt.Errorf("%w: %q (valid: %s)",
					types.ErrUnknownCategory, args[0], strings.Join(types.Categories(), ", ")))
			}
			only = name
		}

		cat, closeFn, err := openCatalog()
		if err != nil {
			return err
		}
		defer closeFn()

		opts, err := cat.EffectiveTagOptions(cmd.Context())
		if err != nil {
			return classify(err)
		}

		if flagJSON {
			if only != "" {
				opts = catalog.TagOptions{only: opts[only]}
			}
			return printJSON(cmd.OutOrStdout(), opts)
		}
		fmt.Fprintln(cmd.OutOrStdout(), output.TagOptions(opts, groups, only))
		return nil
	},
}

// lookupCategory resolves a category name case-insensitively.
func lookupCategory(name string) (string, bool) {
	for _, c := range types.Categories() {
		if strings.EqualFold(c, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return "", false
}

// tagGroups returns the category grouping for a --layout value.
func tagGroups(layout string) ([]types.Group, error) {
	switch strings.ToLower(strings.TrimSpace(layout)) {
	case "", "filter":
		return types.FilterGroups(), nil
	case "edit":
		return types.EditGroups(), nil
	}
	return nil, fmt.Errorf("unknown layout %q (valid: filter, edit)", layout)
}

func init() {
	tagsCmd.Flags().StringVar(&tagsLayout, "layout", "filter", "category grouping: filter or edit")
}
