package types

import (
	"fmt"
	"strings"
	"time"
)

// PromptType selects which content fields a prompt uses.
type PromptType string

// Prompt types. Structured prompts use the persona/context/task/style/
// variables fields; standard prompts use instructions only.
const (
	PromptStructured PromptType = "structured"
	PromptStandard   PromptType = "standard"
)

// Valid reports whether pt is a recognized prompt type.
func (pt PromptType) Valid() bool {
	return pt == PromptStructured || pt == PromptStandard
}

// ParsePromptType accepts a prompt type in any letter case.
func ParsePromptType(s string) (PromptType, error) {
	pt := PromptType(strings.ToLower(strings.TrimSpace(s)))
	if !pt.Valid() {
		return "", fmt.Errorf("%w: %q (valid: structured, standard)", ErrInvalidPromptType, s)
	}
	return pt, nil
}

// Entity defaults.
const (
	DefaultVersion    = "v1.0"
	DefaultPromptType = PromptStructured

	// VariablesTemplate is the placeholder offered for new structured prompts.
	VariablesTemplate = "# {VAR_NAME}: Description of variable"

	// CopySuffix is appended to the title of a duplicated prompt.
	CopySuffix = " (Copy)"
)

// TimestampLayout is the stored textual timestamp format. Values are always
// UTC.
const TimestampLayout = "2006-01-02 15:04:05 UTC"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Prompt is a reusable prompt record. Fields unused by the active type are
// kept as empty strings.
type Prompt struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	PromptType   PromptType `json:"prompt_type"`
	UseCase      string     `json:"use_case"`
	Description  string     `json:"description"`
	UsageNotes   string     `json:"usage_notes"`
	Version      string     `json:"version"`
	Persona      string     `json:"persona"`
	Context      string     `json:"context"`
	Task         string     `json:"task"`
	Style        string     `json:"style"`
	Variables    string     `json:"variables"`
	Instructions string     `json:"instructions"`
	IsFavorite   bool       `json:"is_favorite"`
	CreatedAt    string     `json:"created_at"`
	LastModified string     `json:"last_modified"`
	Tags         Tags       `json:"tags"`
}

// NewPrompt returns a prompt with entity defaults and the given title.
func NewPrompt(title string) *Prompt {
	return &Prompt{
		Title:      title,
		PromptType: DefaultPromptType,
		Version:    DefaultVersion,
		Tags:       Tags{},
	}
}

// Clone returns a deep copy of p.
func (p *Prompt) Clone() *Prompt {
	c := *p
	c.Tags = p.Tags.Clone()
	return &c
}

// copySeparator joins the sections of a structured prompt's copy text.
const copySeparator = "\n\n---\n\n"

// structuredSections lists the structured content fields in render order.
var structuredSections = []struct {
	header string
	value  func(*Prompt) string
}{
	{"### PERSONA", func(p *Prompt) string { return p.Persona }},
	{"### CONTEXT", func(p *Prompt) string { return p.Context }},
	{"### TASK", func(p *Prompt) string { return p.Task }},
	{"### STYLE", func(p *Prompt) string { return p.Style }},
	{"### VARIABLES", func(p *Prompt) string { return p.Variables }},
}

// CopyText renders the text that is copied or shared for the prompt.
// Standard prompts yield their instructions verbatim. Any other type yields
// the non-empty structured fields, each under its section header, joined by
// a horizontal-rule separator. Empty fields produce no header.
func (p *Prompt) CopyText() string {
	if p.PromptType == PromptStandard {
		return p.Instructions
	}
	var parts []string
	for _, s := range structuredSections {
		if v := s.value(p); v != "" {
			parts = append(parts, s.header+"\n"+v)
		}
	}
	return strings.Join(parts, copySeparator)
}

// SearchFields returns the fields free-text search looks at.
func (p *Prompt) SearchFields() []string {
	return []string{
		p.Title,
		p.UseCase,
		p.Description,
		p.Instructions,
		p.Task,
		p.Persona,
		p.Context,
	}
}
