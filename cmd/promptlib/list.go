// List, show, and copy commands for the promptlib CLI.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/promptlib/internal/output"
	"github.com/mesh-intelligence/promptlib/internal/query"
	"github.com/mesh-intelligence/promptlib/pkg/types"
)

var (
	listFavorites bool
	listTags      []string
	listQuery     string
	listSort      string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List prompts with optional filters",
	Long: `List prompts. Filters combine with AND:

  --favorites          only favorite prompts
  --tag Category=value prompts carrying every given tag (repeatable)
  --query text         case-insensitive match on title, use case, description,
                       and content fields

Example:
  promptlib list --tag "Task Type=debugging" --tag "Tone=formal" --sort newest`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filters, err := types.ParseTagPairs(listTags)
		if err != nil {
			return userError(err)
		}
		mode, err := query.ParseSortMode(listSort)
		if err != nil {
			return userError(err)
		}

		cat, closeFn, err := openCatalog()
		if err != nil {
			return err
		}
		defer closeFn()

		prompts, err := cat.Search(cmd.Context(), query.Options{
			FavoritesOnly: listFavorites,
			TagFilters:    filters,
			Query:         listQuery,
			Sort:          mode,
		})
		if err != nil {
			return classify(err)
		}

		if flagJSON {
			if prompts == nil {
				prompts = []*types.Prompt{}
			}
			return printJSON(cmd.OutOrStdout(), prompts)
		}
		fmt.Fprintln(cmd.OutOrStdout(), output.PromptTable(prompts))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Display a prompt with full details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, closeFn, err := openCatalog()
		if err != nil {
			return err
		}
		defer closeFn()

		p, found, err := cat.GetPrompt(cmd.Context(), args[0])
		if err != nil {
			return classify(err)
		}
		if !found {
			return notFound(args[0])
		}

		if flagJSON {
			return printJSON(cmd.OutOrStdout(), p)
		}
		fmt.Fprint(cmd.OutOrStdout(), output.PromptDetail(p))
		return nil
	},
}

var copyCmd = &cobra.Command{
	Use:   "copy <id>",
	Short: "Print a prompt's copy-ready text",
	Long: `Print the text a user pastes into an AI tool: the instructions of a
standard prompt, or the non-empty structured sections joined by separators.
Pipe it to your clipboard tool, e.g. "promptlib copy ID | pbcopy".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, closeFn, err := openCatalog()
		if err != nil {
			return err
		}
		defer closeFn()

		text, found, err := cat.CopyText(cmd.Context(), args[0])
		if err != nil {
			return classify(err)
		}
		if !found {
			return notFound(args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listFavorites, "favorites", false, "only favorite prompts")
	listCmd.Flags().StringArrayVar(&listTags, "tag", nil, `tag filter "Category=value" (repeatable)`)
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "text search")
	listCmd.Flags().StringVar(&listSort, "sort", string(query.DefaultSort), "sort: "+sortHelp())
}

// sortHelp lists the accepted --sort keys.
func sortHelp() string {
	modes := query.SortModes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}
