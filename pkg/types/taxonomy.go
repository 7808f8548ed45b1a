package types

// TaxonomyVersion identifies the revision of the built-in tag taxonomy.
// Changing the registry means shipping a new version.
const TaxonomyVersion = "2.0"

// Category names with special handling.
const (
	CategoryTaskType         = "Task Type"
	CategoryComplexity       = "Complexity"
	CategoryAbstractionLevel = "Abstraction Level"
	CategoryStatus           = "Status"
)

// category is one registry entry: a category name and its canonical values.
type category struct {
	Name   string
	Values []string
}

// registry is the built-in taxonomy in display order. Complexity is kept in
// its hierarchical basic-to-expert order; every other list is alphabetical.
var registry = []category{
	{
		Name: "Abstraction Level",
		Values: []string{
			"framework",
			"meta-prompt",
			"ready-to-use",
			"snippet",
			"template",
		},
	},
	{
		Name: "Complexity",
		Values: []string{
			"basic",
			"simple",
			"intermediate",
			"advanced",
			"expert",
		},
	},
	{
		Name: "Language",
		Values: []string{
			"de-DE",
			"en-GB",
			"en-US",
			"es-ES",
			"fr-FR",
			"nb-NO",
			"sv-SE",
		},
	},
	{
		Name: "Task Type",
		Values: []string{
			"analysis",
			"automation",
			"brainstorming",
			"classification",
			"code-generation",
			"comparison",
			"conversation",
			"data-extraction",
			"debugging",
			"decision-support",
			"documentation",
			"editing",
			"evaluation",
			"explanation",
			"generation",
			"planning",
			"question-answering",
			"reasoning",
			"refactoring",
			"research",
			"summarization",
			"transformation",
			"translation",
			"validation",
			"writing",
		},
	},
	{
		Name: "Domain",
		Values: []string{
			"agriculture",
			"business",
			"creative",
			"education",
			"engineering",
			"finance",
			"healthcare",
			"legal",
			"manufacturing",
			"marketing",
			"media",
			"non-profit",
			"real-estate",
			"retail",
			"sales",
			"science",
			"security",
			"software",
			"technology",
			"telecommunications",
		},
	},
	{
		Name: "Function",
		Values: []string{
			"administration",
			"business-development",
			"communications",
			"consulting",
			"customer-support",
			"data-analysis",
			"design",
			"devops",
			"executive",
			"finance-accounting",
			"hr",
			"it-operations",
			"legal-compliance",
			"operations",
			"product-management",
			"project-management",
			"quality-assurance",
			"research-development",
			"sales-marketing",
			"strategy",
			"training",
		},
	},
	{
		Name: "Use Case",
		Values: []string{
			"career-development",
			"code-review",
			"content-creation",
			"cover-letter",
			"crm-management",
			"data-pipeline",
			"email-drafting",
			"interview-prep",
			"job-application",
			"knowledge-management",
			"learning",
			"meeting-notes",
			"networking",
			"onboarding",
			"personal-assistant",
			"presentation",
			"process-automation",
			"proposal-writing",
			"report-generation",
			"resume-cv",
			"seo-optimization",
			"social-media",
			"system-design",
			"team-collaboration",
			"technical-writing",
			"time-management",
			"troubleshooting",
			"workflow-automation",
		},
	},
	{
		Name: "Prompt Technique",
		Values: []string{
			"chain-of-draft",
			"chain-of-thought",
			"constrained-generation",
			"context-stuffing",
			"fabric-pattern",
			"few-shot",
			"instruction-following",
			"iterative-refinement",
			"least-to-most",
			"mega-prompt",
			"meta-prompting",
			"multi-agent",
			"persona-based",
			"RAG",
			"ReAct",
			"reflexion",
			"role-prompting",
			"self-consistency",
			"self-critique",
			"self-refinement",
			"tree-of-thought",
			"zero-shot",
		},
	},
	{
		Name: "Prompt Structure",
		Values: []string{
			"atomic",
			"conditional",
			"conversational",
			"fabric-pattern",
			"hierarchical",
			"modular",
			"nate-prompt",
			"sequential",
			"system-user-assistant",
			"template-based",
		},
	},
	{
		Name: "Input Type",
		Values: []string{
			"audio",
			"code",
			"conversation-history",
			"document",
			"form-data",
			"image",
			"structured-data",
			"text",
			"url",
			"video",
		},
	},
	{
		Name: "Content Source",
		Values: []string{
			"API",
			"blog",
			"book",
			"code-repository",
			"database",
			"documentation",
			"email",
			"general-knowledge",
			"news-article",
			"PDF",
			"podcast",
			"research-paper",
			"RSS-feed",
			"social-media",
			"spreadsheet",
			"transcript",
			"webpage",
			"wiki",
			"YouTube",
		},
	},
	{
		Name: "Output Format",
		Values: []string{
			"bullet-list",
			"checklist",
			"code",
			"CSV",
			"diagram",
			"email",
			"HTML",
			"JSON",
			"JSONL",
			"markdown",
			"numbered-list",
			"plain-text",
			"report",
			"slides",
			"structured-plan",
			"table",
			"XML",
			"YAML",
		},
	},
	{
		Name: "Tone",
		Values: []string{
			"assertive",
			"casual",
			"confident",
			"constructive",
			"diplomatic",
			"direct",
			"empathetic",
			"encouraging",
			"enthusiastic",
			"formal",
			"friendly",
			"humorous",
			"inquisitive",
			"neutral",
			"persuasive",
			"professional",
			"supportive",
			"technical",
			"witty",
		},
	},
	{
		Name: "Audience",
		Values: []string{
			"beginner",
			"child",
			"colleague",
			"customer",
			"developer",
			"executive",
			"expert",
			"general-public",
			"investor",
			"manager",
			"non-technical",
			"recruiter",
			"student",
			"technical",
		},
	},
	{
		Name: "Model Family",
		Values: []string{
			"Claude",
			"DeepSeek",
			"Gemini",
			"GLM",
			"GPT",
			"Grok",
			"Kimi",
			"Llama",
			"Mistral",
			"Qwen",
			"Stable-Diffusion",
		},
	},
	{
		Name: "Model",
		Values: []string{
			"Claude 3 Haiku",
			"Claude 3 Opus",
			"Claude 3 Sonnet",
			"Claude 3.5 Haiku",
			"Claude 3.5 Sonnet",
			"Claude 4 Opus",
			"Claude 4 Sonnet",
			"Claude 4.5 Haiku",
			"Claude 4.5 Opus",
			"Claude 4.5 Sonnet",
			"DeepSeek-R1",
			"DeepSeek-V3",
			"Gemini 2.0 Flash",
			"Gemini 2.5 Flash",
			"Gemini 2.5 Pro",
			"GLM-4",
			"GLM-4V",
			"GPT-3.5 Turbo",
			"GPT-4",
			"GPT-4 Turbo",
			"GPT-4.1",
			"GPT-4.1 mini",
			"GPT-4o",
			"GPT-4o mini",
			"GPT-o1",
			"GPT-o1 mini",
			"GPT-o3",
			"GPT-o3 mini",
			"GPT-o4 mini",
			"Grok-2",
			"Grok-3",
			"Kimi K2",
			"Llama 3.1",
			"Llama 3.2",
			"Llama 3.3",
			"Llama 4 Maverick",
			"Llama 4 Scout",
			"Mistral Large",
			"Mistral Medium",
			"Mistral Small",
			"Model-Agnostic",
			"Qwen 2.5",
			"Qwen 3",
			"Stable Diffusion 3.5",
			"Stable Diffusion XL",
		},
	},
	{
		Name: "Platform",
		Values: []string{
			"Anthropic API",
			"AWS Bedrock",
			"Azure OpenAI",
			"Google AI Studio",
			"Google Vertex AI",
			"Groq",
			"Hugging Face",
			"LangChain",
			"LlamaIndex",
			"NotebookLM",
			"Ollama",
			"OpenAI API",
			"OpenRouter",
			"Perplexity",
			"Replicate",
			"Together AI",
		},
	},
	{
		Name: "Safety & Guardrails",
		Values: []string{
			"bias-mitigation",
			"content-filtering",
			"ethical-guardrails",
			"factual-grounding",
			"hallucination-prevention",
			"jailbreak-prevention",
			"output-validation",
			"pii-protection",
			"prompt-injection-defense",
			"rate-limiting",
			"source-citation",
			"toxicity-filtering",
			"uncertainty-flagging",
		},
	},
	{
		Name: "Quality Attributes",
		Values: []string{
			"accuracy",
			"actionable",
			"clarity",
			"completeness",
			"conciseness",
			"consistency",
			"creativity",
			"depth",
			"objectivity",
			"originality",
			"relevance",
			"reproducibility",
			"specificity",
			"structured",
		},
	},
	{
		Name: "Status",
		Values: []string{
			"archived",
			"deprecated",
			"draft",
			"experimental",
			"production",
			"review",
			"stable",
			"testing",
		},
	},
}

// registryIndex maps a category name to its position in registry.
var registryIndex = func() map[string]int {
	m := make(map[string]int, len(registry))
	for i, c := range registry {
		m[c.Name] = i
	}
	return m
}()

// singleValueCategories allow at most one selected value per prompt. This is
// a contract for editing surfaces; the store does not enforce it.
var singleValueCategories = []string{
	CategoryComplexity,
	CategoryAbstractionLevel,
	CategoryStatus,
}

// requiredCategories are expected on every prompt. Advisory only.
var requiredCategories = []string{
	CategoryTaskType,
	CategoryComplexity,
	CategoryAbstractionLevel,
}

// Categories returns the registry's category names in display order.
func Categories() []string {
	out := make([]string, len(registry))
	for i, c := range registry {
		out[i] = c.Name
	}
	return out
}

// ValuesOf returns a copy of the canonical values for category, or nil when
// the category is not in the registry.
func ValuesOf(category string) []string {
	i, ok := registryIndex[category]
	if !ok {
		return nil
	}
	return append([]string(nil), registry[i].Values...)
}

// IsCategory reports whether name is a registry category.
func IsCategory(name string) bool {
	_, ok := registryIndex[name]
	return ok
}

// IsSingleValue reports whether category allows at most one value.
func IsSingleValue(category string) bool {
	for _, c := range singleValueCategories {
		if c == category {
			return true
		}
	}
	return false
}

// SingleValueCategories returns the categories limited to one value.
func SingleValueCategories() []string {
	return append([]string(nil), singleValueCategories...)
}

// RequiredCategories returns the categories every prompt is expected to tag.
func RequiredCategories() []string {
	return append([]string(nil), requiredCategories...)
}

// KeepsRegistryOrder reports whether category's option list must keep the
// registry's hand-authored order instead of being sorted.
func KeepsRegistryOrder(category string) bool {
	return category == CategoryComplexity
}

// Group is a named set of categories shown together by browsing surfaces.
type Group struct {
	Name       string
	Categories []string
}

// filterGroups is the grouping used when browsing and filtering.
var filterGroups = []Group{
	{"Task & Domain", []string{"Task Type", "Domain", "Function", "Use Case"}},
	{"Technique & Format", []string{"Prompt Technique", "Prompt Structure", "Input Type", "Output Format", "Content Source"}},
	{"Model & Platform", []string{"Model Family", "Model", "Platform", "Language"}},
	{"Quality & Management", []string{"Tone", "Audience", "Complexity", "Abstraction Level", "Safety & Guardrails", "Quality Attributes", "Status"}},
}

// editGroups is the grouping used when editing a prompt's tags.
var editGroups = []Group{
	{"Core", []string{"Task Type", "Domain", "Function", "Use Case"}},
	{"Methodology", []string{"Prompt Technique", "Prompt Structure", "Complexity", "Abstraction Level"}},
	{"Format", []string{"Input Type", "Output Format", "Content Source", "Language"}},
	{"Model", []string{"Model Family", "Model", "Platform"}},
	{"Quality", []string{"Tone", "Audience", "Safety & Guardrails", "Quality Attributes", "Status"}},
}

// FilterGroups returns the browsing category groups.
func FilterGroups() []Group {
	return cloneGroups(filterGroups)
}

// EditGroups returns the editing category groups.
func EditGroups() []Group {
	return cloneGroups(editGroups)
}

func cloneGroups(in []Group) []Group {
	out := make([]Group, len(in))
	for i, g := range in {
		out[i] = Group{Name: g.Name, Categories: append([]string(nil), g.Categories...)}
	}
	return out
}
