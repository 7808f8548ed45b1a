// Package output renders prompts and tag options for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/mesh-intelligence/promptlib/pkg/types"
)

// favoriteMark flags favorite prompts in list views.
const favoriteMark = "★"

// JSON renders v as indented JSON.
func JSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// PromptTable renders a prompt list as a table with a count footer.
func PromptTable(prompts []*types.Prompt) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"", "ID", "Title", "Type", "Tags", "Last Modified"})

	for _, p := range prompts {
		fav := ""
		if p.IsFavorite {
			fav = favoriteMark
		}
		t.AppendRow(table.Row{fav, p.ID, p.Title, string(p.PromptType), p.Tags.Len(), p.LastModified})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d prompt(s)", len(prompts)), "", "", ""})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: 48},
		{Number: 5, Align: text.AlignRight},
	})
	return t.Render()
}

// PromptDetail renders one prompt: metadata, content sections for its
// type, and tags grouped by category.
func PromptDetail(p *types.Prompt) string {
	meta := table.NewWriter()
	meta.SetStyle(table.StyleRounded)
	meta.AppendRow(table.Row{"ID", p.ID})
	meta.AppendRow(table.Row{"Title", p.Title})
	meta.AppendRow(table.Row{"Type", string(p.PromptType)})
	meta.AppendRow(table.Row{"Version", p.Version})
	meta.AppendRow(table.Row{"Favorite", yesNo(p.IsFavorite)})
	optionalRow(meta, "Use Case", p.UseCase)
	optionalRow(meta, "Description", p.Description)
	optionalRow(meta, "Usage Notes", p.UsageNotes)
	meta.AppendRow(table.Row{"Created", p.CreatedAt})
	meta.AppendRow(table.Row{"Modified", p.LastModified})
	meta.SetColumnConfigs([]table.ColumnConfig{{Number: 2, WidthMax: 72}})

	var b strings.Builder
	b.WriteString(meta.Render())
	b.WriteString("\n")

	if body := p.CopyText(); body != "" {
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n")
	}

	if p.Tags.Len() > 0 {
		b.WriteString("\n")
		b.WriteString(TagTable(p.Tags))
		b.WriteString("\n")
	}
	return b.String()
}

// TagTable renders a tag map as category/value rows, categories in registry
// order followed by any others alphabetically.
func TagTable(tags types.Tags) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Category", "Values"})
	for _, category := range orderedCategories(tags) {
		t.AppendRow(table.Row{category, strings.Join(tags[category], ", ")})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, WidthMax: 72}})
	return t.Render()
}

// TagOptions renders effective options grouped the way browsing surfaces
// group them. A non-empty only limits output to that category.
func TagOptions(opts map[string][]string, groups []types.Group, only string) string {
	var parts []string
	for _, g := range groups {
		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetTitle(g.Name)
		t.AppendHeader(table.Row{"Category", "Options"})
		rows := 0
		for _, category := range g.Categories {
			if only != "" && !strings.EqualFold(only, category) {
				continue
			}
			t.AppendRow(table.Row{category, strings.Join(opts[category], ", ")})
			rows++
		}
		if rows == 0 {
			continue
		}
		t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, WidthMax: 80}})
		parts = append(parts, t.Render())
	}
	return strings.Join(parts, "\n\n")
}

// Advisories renders tag advisories as warning lines.
func Advisories(advisories []types.Advisory) string {
	lines := make([]string, 0, len(advisories))
	for _, a := range advisories {
		lines = append(lines, "warning: "+a.Message)
	}
	return strings.Join(lines, "\n")
}

func optionalRow(t table.Writer, label, value string) {
	if value != "" {
		t.AppendRow(table.Row{label, value})
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// orderedCategories lists tags' categories in registry order, then the
// ones outside the registry sorted.
func orderedCategories(tags types.Tags) []string {
	var out []string
	for _, category := range types.Categories() {
		if len(tags[category]) > 0 {
			out = append(out, category)
		}
	}
	for _, category := range tags.Categories() {
		if !types.IsCategory(category) && len(tags[category]) > 0 {
			out = append(out, category)
		}
	}
	return out
}
