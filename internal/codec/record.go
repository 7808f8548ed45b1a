package codec

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/promptlib/pkg/types"
)

// promptRecord is the transport shape of one prompt: the full field set
// flattened alongside its tag map.
type promptRecord struct {
	ID           string              `json:"id" yaml:"id"`
	Title        string              `json:"title" yaml:"title"`
	PromptType   string              `json:"prompt_type" yaml:"prompt_type"`
	UseCase      string              `json:"use_case" yaml:"use_case"`
	Description  string              `json:"description" yaml:"description"`
	UsageNotes   string              `json:"usage_notes" yaml:"usage_notes"`
	Version      string              `json:"version" yaml:"version"`
	Persona      string              `json:"persona" yaml:"persona"`
	Context      string              `json:"context" yaml:"context"`
	Task         string              `json:"task" yaml:"task"`
	Style        string              `json:"style" yaml:"style"`
	Variables    string              `json:"variables" yaml:"variables"`
	Instructions string              `json:"instructions" yaml:"instructions"`
	IsFavorite   flexBool            `json:"is_favorite" yaml:"is_favorite"`
	CreatedAt    string              `json:"created_at" yaml:"created_at"`
	LastModified string              `json:"last_modified" yaml:"last_modified"`
	Tags         map[string][]string `json:"tags" yaml:"tags"`
}

// newRecord returns a record holding entity defaults, so keys missing from
// an imported document keep them.
func newRecord() promptRecord {
	return promptRecord{
		PromptType: string(types.DefaultPromptType),
		Version:    types.DefaultVersion,
	}
}

// toRecord flattens p for export.
func toRecord(p *types.Prompt) promptRecord {
	tags := map[string][]string(p.Tags.Normalize())
	return promptRecord{
		ID:           p.ID,
		Title:        p.Title,
		PromptType:   string(p.PromptType),
		UseCase:      p.UseCase,
		Description:  p.Description,
		UsageNotes:   p.UsageNotes,
		Version:      p.Version,
		Persona:      p.Persona,
		Context:      p.Context,
		Task:         p.Task,
		Style:        p.Style,
		Variables:    p.Variables,
		Instructions: p.Instructions,
		IsFavorite:   flexBool(p.IsFavorite),
		CreatedAt:    p.CreatedAt,
		LastModified: p.LastModified,
		Tags:         tags,
	}
}

// toEntry converts an imported record into a store entry. The record's ID
// and timestamps are dropped; the store assigns fresh ones. A blank
// prompt_type or version takes the default, as a missing key does.
func (r promptRecord) toEntry() (types.Entry, error) {
	pt := types.DefaultPromptType
	if strings.TrimSpace(r.PromptType) != "" {
		var err error
		if pt, err = types.ParsePromptType(r.PromptType); err != nil {
			return types.Entry{}, err
		}
	}
	version := r.Version
	if strings.TrimSpace(version) == "" {
		version = types.DefaultVersion
	}
	tags := types.Tags(r.Tags).Normalize()
	p := &types.Prompt{
		Title:        r.Title,
		PromptType:   pt,
		UseCase:      r.UseCase,
		Description:  r.Description,
		UsageNotes:   r.UsageNotes,
		Version:      version,
		Persona:      r.Persona,
		Context:      r.Context,
		Task:         r.Task,
		Style:        r.Style,
		Variables:    r.Variables,
		Instructions: r.Instructions,
		IsFavorite:   bool(r.IsFavorite),
		Tags:         tags,
	}
	return types.Entry{Prompt: p, Tags: tags}, nil
}

// flexBool decodes a boolean written either as true/false or as the 0/1
// integers older exports used.
type flexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *flexBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = flexBool(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("is_favorite: expected boolean or 0/1, got %s", data)
	}
	return b.setNumber(n.String())
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *flexBool) UnmarshalYAML(node *yaml.Node) error {
	var v bool
	if err := node.Decode(&v); err == nil {
		*b = flexBool(v)
		return nil
	}
	return b.setNumber(node.Value)
}

func (b *flexBool) setNumber(s string) error {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("is_favorite: expected boolean or 0/1, got %q", s)
	}
	*b = n != 0
	return nil
}
