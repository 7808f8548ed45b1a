// Delete, favorite, and duplicate commands for the promptlib CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a prompt and its tag associations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, closeFn, err := openCatalog()
		if err != nil {
			return err
		}
		defer closeFn()

		found, err := cat.DeletePrompt(cmd.Context(), args[0])
		if err != nil {
			return classify(err)
		}
		if !found {
			return notFound(args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted prompt: %s\n", args[0])
		return nil
	},
}

var favoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Toggle a prompt's favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		cat, closeFn, err := openCatalog()
		if err != nil {
			return err
		}
		defer closeFn()

		p, found, err := cat.GetPrompt(cmd.Context(), id)
		if err != nil {
			return classify(err)
		}
		if !found {
			return notFound(id)
		}
		if _, err := cat.ToggleFavorite(cmd.Context(), id, p.IsFavorite); err != nil {
			return classify(err)
		}

		if flagJSON {
			return printJSON(cmd.OutOrStdout(), map[string]any{"id": id, "is_favorite": !p.IsFavorite})
		}
		if p.IsFavorite {
			fmt.Fprintf(cmd.OutOrStdout(), "Removed from favorites: %s\n", id)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Added to favorites: %s\n", id)
		}
		return nil
	},
}

var duplicateCmd = &cobra.Command{
	Use:   "duplicate <id>",
	Short: "Copy a prompt and its tags under a new ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, closeFn, err := openCatalog()
		if err != nil {
			return err
		}
		defer closeFn()

		newID, found, err := cat.DuplicatePrompt(cmd.Context(), args[0])
		if err != nil {
			return classify(err)
		}
		if !found {
			return notFound(args[0])
		}
		if flagJSON {
			return printJSON(cmd.OutOrStdout(), map[string]string{"id": newID})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Duplicated %s as %s\n", args[0], newID)
		return nil
	},
}
