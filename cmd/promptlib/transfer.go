// Export and import commands for the promptlib CLI.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/promptlib/internal/codec"
)

var (
	exportOutput string
	exportFormat string
	importFormat string
)

var formatNames = func() string {
	names := make([]string, 0, len(codec.Formats()))
	for _, f := range codec.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}()

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every prompt with its tags",
	Long: `Export the whole catalog. Without --output the document goes to stdout.
With --output the file is replaced atomically and the format defaults to the
file extension (.json, .jsonl, .yaml), falling back to json.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := exportFormatFor(exportOutput, exportFormat)
		if err != nil {
			return userError(err)
		}

		cat, closeFn, err := openCatalog()
		if err != nil {
			return err
		}
		defer closeFn()

		if exportOutput == "" {
			if _, err := cat.Export(cmd.Context(), cmd.OutOrStdout(), f); err != nil {
				return classify(err)
			}
			return nil
		}

		n, err := cat.ExportFile(cmd.Context(), exportOutput, f)
		if err != nil {
			return classify(err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d prompt(s) to %s\n", n, exportOutput)
		return nil
	},
}

// exportFormatFor picks the export format: the flag, else the output file
// extension, else the default.
func exportFormatFor(path, flag string) (codec.Format, error) {
	if flag != "" {
		return codec.ParseFormat(flag)
	}
	if path != "" {
		if f, ok := codec.FormatFromPath(path); ok {
			return f, nil
		}
	}
	return codec.DefaultFormat, nil
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import prompts from an export file",
	Long: `Import prompts from a json, jsonl, or yaml document. The format comes
from --format, else the file extension, else the file content. Every record
is stored as a new prompt; the import is all-or-nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var f codec.Format
		if importFormat != "" {
			parsed, err := codec.ParseFormat(importFormat)
			if err != nil {
				return userError(err)
			}
			f = parsed
		}

		cat, closeFn, err := openCatalog()
		if err != nil {
			return err
		}
		defer closeFn()

		n, err := cat.ImportFile(cmd.Context(), args[0], f)
		if err != nil {
			return classify(err)
		}
		if flagJSON {
			return printJSON(cmd.OutOrStdout(), map[string]int{"imported": n})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d prompt(s)\n", n)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "format: "+formatNames)
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "format: "+formatNames+" (default: detect)")
}
