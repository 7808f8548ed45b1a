// Add and edit commands for the promptlib CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/promptlib/pkg/types"
)

// promptFlags holds the field flags shared by add and edit.
type promptFlags struct {
	title        string
	promptType   string
	useCase      string
	description  string
	usageNotes   string
	version      string
	persona      string
	context      string
	task         string
	style        string
	variables    string
	instructions string
	tags         []string
}

// fieldFlag binds a flag name to a prompt field.
type fieldFlag struct {
	name  string
	usage string
	value func(f *promptFlags) *string
	field func(p *types.Prompt) *string
}

var fieldFlags = []fieldFlag{
	{"title", "prompt title", func(f *promptFlags) *string { return &f.title }, func(p *types.Prompt) *string { return &p.Title }},
	{"use-case", "what the prompt is for", func(f *promptFlags) *string { return &f.useCase }, func(p *types.Prompt) *string { return &p.UseCase }},
	{"description", "longer description", func(f *promptFlags) *string { return &f.description }, func(p *types.Prompt) *string { return &p.Description }},
	{"usage-notes", "notes on using the prompt", func(f *promptFlags) *string { return &f.usageNotes }, func(p *types.Prompt) *string { return &p.UsageNotes }},
	{"version", "prompt version label", func(f *promptFlags) *string { return &f.version }, func(p *types.Prompt) *string { return &p.Version }},
	{"persona", "structured: persona section", func(f *promptFlags) *string { return &f.persona }, func(p *types.Prompt) *string { return &p.Persona }},
	{"context", "structured: context section", func(f *promptFlags) *string { return &f.context }, func(p *types.Prompt) *string { return &p.Context }},
	{"task", "structured: task section", func(f *promptFlags) *string { return &f.task }, func(p *types.Prompt) *string { return &p.Task }},
	{"style", "structured: style section", func(f *promptFlags) *string { return &f.style }, func(p *types.Prompt) *string { return &p.Style }},
	{"variables", "structured: variables section", func(f *promptFlags) *string { return &f.variables }, func(p *types.Prompt) *string { return &p.Variables }},
	{"instructions", "standard: full prompt text", func(f *promptFlags) *string { return &f.instructions }, func(p *types.Prompt) *string { return &p.Instructions }},
}

// register adds the field flags to cmd.
func (f *promptFlags) register(cmd *cobra.Command) {
	for _, ff := range fieldFlags {
		cmd.Flags().StringVar(ff.value(f), ff.name, "", ff.usage)
	}
	cmd.Flags().StringVar(&f.promptType, "type", "", "prompt type: structured or standard")
	cmd.Flags().StringArrayVar(&f.tags, "tag", nil, `tag "Category=value" (repeatable)`)
}

// apply copies every flag the user set onto p.
func (f *promptFlags) apply(cmd *cobra.Command, p *types.Prompt) {
	for _, ff := range fieldFlags {
		if cmd.Flags().Changed(ff.name) {
			*ff.field(p) = *ff.value(f)
		}
	}
	if cmd.Flags().Changed("type") {
		p.PromptType = types.PromptType(f.promptType)
	}
}

var (
	addFlags             promptFlags
	addVariablesTemplate bool

	editFlags     promptFlags
	editClearTags bool
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new prompt",
	Long: `Create a new prompt. Structured prompts are built from persona, context,
task, style, and variables sections; standard prompts carry their whole text
in --instructions.

Example:
  promptlib add --title "Bug Triage" --type standard \
    --instructions "Find the root cause." \
    --tag "Task Type=debugging" --tag "Complexity=intermediate"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := types.ParseTagPairs(addFlags.tags)
		if err != nil {
			return userError(err)
		}

		p := types.NewPrompt("")
		addFlags.apply(cmd, p)
		if addVariablesTemplate && p.PromptType == types.PromptStructured && p.Variables == "" {
			p.Variables = types.VariablesTemplate
		}

		cat, closeFn, err := openCatalog()
		if err != nil {
			return err
		}
		defer closeFn()

		advisories, err := cat.SavePrompt(cmd.Context(), p, tags)
		if err != nil {
			return classify(err)
		}
		printAdvisories(cmd.ErrOrStderr(), advisories)

		if flagJSON {
			return printJSON(cmd.OutOrStdout(), p)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created prompt: %s\n", p.ID)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update fields of an existing prompt",
	Long: `Update an existing prompt. Only flags given on the command line change.
Any --tag replaces the prompt's whole tag set; --clear-tags removes every tag.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if editClearTags && len(editFlags.tags) > 0 {
			return userError(fmt.Errorf("--tag and --clear-tags cannot be combined"))
		}
		newTags, err := types.ParseTagPairs(editFlags.tags)
		if err != nil {
			return userError(err)
		}

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

		tags := p.Tags
		switch {
		case editClearTags:
			tags = types.Tags{}
		case cmd.Flags().Changed("tag"):
			tags = newTags
		}
		editFlags.apply(cmd, p)

		advisories, err := cat.SavePrompt(cmd.Context(), p, tags)
		if err != nil {
			return classify(err)
		}
		printAdvisories(cmd.ErrOrStderr(), advisories)

		if flagJSON {
			return printJSON(cmd.OutOrStdout(), p)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated prompt: %s\n", p.ID)
		return nil
	},
}

func init() {
	addFlags.register(addCmd)
	addCmd.Flags().BoolVar(&addVariablesTemplate, "variables-template", false, "prefill variables with a placeholder line")
	_ = addCmd.MarkFlagRequired("title")

	editFlags.register(editCmd)
	editCmd.Flags().BoolVar(&editClearTags, "clear-tags", false, "remove every tag")
}
