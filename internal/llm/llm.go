// Package llm defines the gateway to the hosted model vendors. Each vendor
// engine shapes requests for its own wire API but reports results in the
// common Response form so callers can merge usage and cost across calls.
package llm

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Image is a base64-encoded image attachment.
type Image struct {
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

// Request is a single completion request, vendor-agnostic.
type Request struct {
	Model  string
	System string
	User   string
	Images []Image

	MaxTokens int
	// ThinkingBudget is the vendor-specific token allowance for extended
	// reasoning before the final answer. Zero disables it.
	ThinkingBudget int
}

// Response is the merged result of a completion call.
type Response struct {
	Text         string        `json:"text"`
	Model        string        `json:"model"`
	InputTokens  int           `json:"input_tokens"`
	OutputTokens int           `json:"output_tokens"`
	CostUSD      float64       `json:"cost_usd"`
	Elapsed      time.Duration `json:"-"`
	ElapsedMS    int64         `json:"elapsed_ms"`
	StopReason   string        `json:"stop_reason,omitempty"`
}

// Add merges another response's usage, cost and timing into r. Used by the
// two-stage pipeline to report combined totals.
func (r *Response) Add(other Response) {
	r.InputTokens += other.InputTokens
	r.OutputTokens += other.OutputTokens
	r.CostUSD += other.CostUSD
	r.Elapsed += other.Elapsed
	r.ElapsedMS += other.ElapsedMS
}

type Engine interface {
	Name() string
	Complete(ctx context.Context, req Request) (Response, error)
}

// Engines holds the configured vendor engines. Either may be nil when the
// corresponding API key is not configured.
type Engines struct {
	Anthropic Engine
	OpenAI    Engine
}

var ErrNoEngine = errors.New("no engine configured for model")

// ForModel routes a model name to its vendor engine: "claude-*" goes to
// Anthropic, everything else to OpenAI.
func (e *Engines) ForModel(model string) (Engine, error) {
	if strings.HasPrefix(model, "claude-") {
		if e.Anthropic == nil {
			return nil, ErrNoEngine
		}
		return e.Anthropic, nil
	}
	if e.OpenAI == nil {
		return nil, ErrNoEngine
	}
	return e.OpenAI, nil
}
