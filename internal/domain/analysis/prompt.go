package analysis

import (
	"fmt"
	"strings"

	"github.com/medclip/medclip/internal/domain/template"
)

// PromptContext is everything stored per storage code that the prompt folds
// in alongside the request toggles.
type PromptContext struct {
	Templates   []template.Template
	IgnoreRules []string
	ProfileText string
}

// BuildSystemPrompt composes the system prompt from the analysis toggles and
// the caller's stored context.
func BuildSystemPrompt(opts Options, pc PromptContext) string {
	var b strings.Builder

	b.WriteString("You are a medical documentation assistant. You review clinical note text ")
	b.WriteString("written by a physician and return corrections as JSON.\n\n")

	b.WriteString("Check the note for the following problem classes:\n")
	checks := checkList(opts)
	for _, c := range checks {
		fmt.Fprintf(&b, "- %s\n", c)
	}
	b.WriteString("\n")

	switch depth(opts) {
	case DepthBrief:
		b.WriteString("Report only the most significant issues. Keep every explanation to one short sentence.\n")
	case DepthDetailed:
		b.WriteString("Report every issue you find, including minor style problems. Explain each correction.\n")
	default:
		b.WriteString("Report clear issues with brief explanations. Skip purely stylistic nitpicks.\n")
	}

	if opts.IncludeSuggestions {
		b.WriteString("Also propose improvements to the note's clarity and completeness in a \"suggestions\" array.\n")
	}

	if pc.ProfileText != "" {
		b.WriteString("\nAbout the author of the note:\n")
		b.WriteString(pc.ProfileText)
		b.WriteString("\n")
	}

	if len(pc.IgnoreRules) > 0 {
		b.WriteString("\nDo NOT flag any of the following; the author uses them intentionally:\n")
		for _, r := range pc.IgnoreRules {
			fmt.Fprintf(&b, "- %s\n", r)
		}
	}

	if len(pc.Templates) > 0 {
		b.WriteString("\nThe author writes notes from these templates. Text matching a template skeleton is intentional structure, not an error:\n")
		for _, t := range pc.Templates {
			name := t.Name
			if name == "" {
				name = t.ID
			}
			fmt.Fprintf(&b, "--- template %q ---\n%s\n", name, t.Text)
		}
	}

	b.WriteString("\nRespond with a single JSON object, no markdown fences, shaped as:\n")
	b.WriteString(`{"corrected_text": "<the full corrected note>", "issues": [{"type": "<class>", "original": "<text>", "corrected": "<text>", "explanation": "<why>"}]`)
	if opts.IncludeSuggestions {
		b.WriteString(`, "suggestions": ["<suggestion>"]`)
	}
	b.WriteString("}\n")

	return b.String()
}

// BuildUserPrompt wraps the note text for the model.
func BuildUserPrompt(text string) string {
	return "Review this clinical note:\n\n" + text
}

func checkList(opts Options) []string {
	// With no toggle set everything is checked; toggles narrow the scope.
	all := !opts.Grammar && !opts.Spelling && !opts.Punctuation
	var checks []string
	if all || opts.Spelling {
		checks = append(checks, "spelling mistakes, including drug and anatomical names")
	}
	if all || opts.Grammar {
		checks = append(checks, "grammatical errors")
	}
	if all || opts.Punctuation {
		checks = append(checks, "punctuation errors")
	}
	checks = append(checks, "medically inconsistent or ambiguous statements")
	return checks
}

func depth(opts Options) string {
	switch opts.Depth {
	case DepthBrief, DepthDetailed:
		return opts.Depth
	default:
		return DepthStandard
	}
}
