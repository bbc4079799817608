// Package analysis turns free-form medical note text into a structured
// correction result by way of a single model call.
package analysis

import "github.com/medclip/medclip/internal/llm"

const (
	DepthBrief    = "brief"
	DepthStandard = "standard"
	DepthDetailed = "detailed"
)

// Options are the per-request analysis toggles.
type Options struct {
	// Depth is one of brief, standard or detailed. Empty means standard.
	Depth              string `json:"depth,omitempty"`
	IncludeSuggestions bool   `json:"include_suggestions,omitempty"`
	Grammar            bool   `json:"grammar,omitempty"`
	Spelling           bool   `json:"spelling,omitempty"`
	Punctuation        bool   `json:"punctuation,omitempty"`
	ThinkingBudget     int    `json:"thinking_budget,omitempty"`
}

// Request is the analyze call payload. StorageCode is optional; when present
// the stored templates, ignore rules and profile text are folded into the
// prompt.
type Request struct {
	StorageCode string  `json:"storage_code,omitempty"`
	Text        string  `json:"text"`
	Model       string  `json:"model,omitempty"`
	Options     Options `json:"options"`
}

// Issue is a single problem the model found in the note.
type Issue struct {
	Type        string `json:"type"`
	Original    string `json:"original"`
	Corrected   string `json:"corrected"`
	Explanation string `json:"explanation,omitempty"`
}

// Result is the parsed model answer plus usage accounting.
type Result struct {
	CorrectedText string       `json:"corrected_text"`
	Issues        []Issue      `json:"issues"`
	Suggestions   []string     `json:"suggestions,omitempty"`
	Warnings      []string     `json:"warnings,omitempty"`
	Usage         llm.Response `json:"usage"`
}
