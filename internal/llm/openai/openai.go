// Package openai implements the llm.Engine for the GPT responses API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/medclip/medclip/internal/llm"
)

const defaultBaseURL = "https://api.openai.com"

type Engine struct {
	apiKey  string
	model   string
	baseURL string
	httpc   *http.Client
}

func New(apiKey, model string) *Engine {
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 300 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConnsPerHost:   10,
	}

	return &Engine{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 0, Transport: tr},
	}
}

// WithBaseURL overrides the API base URL (used by tests).
func (e *Engine) WithBaseURL(u string) *Engine {
	if u != "" {
		e.baseURL = strings.TrimSuffix(u, "/")
	}
	return e
}

// WithHTTPClient overrides the internal HTTP client.
func (e *Engine) WithHTTPClient(c *http.Client) *Engine {
	if c != nil {
		e.httpc = c
	}
	return e
}

func (e *Engine) Name() string { return "openai" }

type contentPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

type inputMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type responsesRequest struct {
	Model           string         `json:"model"`
	Input           []inputMessage `json:"input"`
	MaxOutputTokens int            `json:"max_output_tokens,omitempty"`
	Reasoning       *reasoning     `json:"reasoning,omitempty"`
}

type reasoning struct {
	Effort string `json:"effort"`
}

type responsesEnvelope struct {
	Model      string `json:"model"`
	Status     string `json:"status"`
	OutputText string `json:"output_text"`
	Output     []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	IncompleteDetails *struct {
		Reason string `json:"reason"`
	} `json:"incomplete_details"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// effortForBudget maps the vendor-agnostic thinking budget onto the
// responses API's discrete reasoning effort levels.
func effortForBudget(budget int) string {
	switch {
	case budget <= 0:
		return ""
	case budget < 4096:
		return "low"
	case budget < 16384:
		return "medium"
	default:
		return "high"
	}
}

func (e *Engine) Complete(ctx context.Context, req llm.Request) (llm.Response, error) {
	if e.apiKey == "" {
		return llm.Response{}, fmt.Errorf("openai: API key is empty")
	}

	model := req.Model
	if model == "" {
		model = e.model
	}

	var userContent []contentPart
	for _, img := range req.Images {
		userContent = append(userContent, contentPart{
			Type:     "input_image",
			ImageURL: "data:" + img.MediaType + ";base64," + img.Data,
		})
	}
	userContent = append(userContent, contentPart{Type: "input_text", Text: req.User})

	input := make([]inputMessage, 0, 2)
	if req.System != "" {
		input = append(input, inputMessage{
			Role:    "system",
			Content: []contentPart{{Type: "input_text", Text: req.System}},
		})
	}
	input = append(input, inputMessage{Role: "user", Content: userContent})

	body := responsesRequest{
		Model:           model,
		Input:           input,
		MaxOutputTokens: req.MaxTokens,
	}
	if effort := effortForBudget(req.ThinkingBudget); effort != "" {
		body.Reasoning = &reasoning{Effort: effort}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return llm.Response{}, fmt.Errorf("openai: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		e.baseURL+"/v1/responses", bytes.NewReader(payload))
	if err != nil {
		return llm.Response{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+e.apiKey)

	start := time.Now()
	resp, err := e.httpc.Do(httpReq)
	if err != nil {
		return llm.Response{}, fmt.Errorf("openai: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return llm.Response{}, fmt.Errorf("openai: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return llm.Response{}, fmt.Errorf("openai %d: %s", resp.StatusCode, truncate(raw, 1024))
	}

	var env responsesEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return llm.Response{}, fmt.Errorf("openai: bad response JSON: %w", err)
	}

	text := strings.TrimSpace(env.OutputText)
	if text == "" {
		text = extractOutputText(env)
	}
	if text == "" {
		return llm.Response{}, fmt.Errorf("openai: empty output; body=%s", truncate(raw, 1024))
	}

	stopReason := env.Status
	if env.IncompleteDetails != nil {
		stopReason = env.IncompleteDetails.Reason
	}

	elapsed := time.Since(start)
	return llm.Response{
		Text:         text,
		Model:        env.Model,
		InputTokens:  env.Usage.InputTokens,
		OutputTokens: env.Usage.OutputTokens,
		CostUSD:      llm.Cost(model, env.Usage.InputTokens, env.Usage.OutputTokens),
		Elapsed:      elapsed,
		ElapsedMS:    elapsed.Milliseconds(),
		StopReason:   stopReason,
	}, nil
}

// extractOutputText walks the output array when the convenience field is
// absent. Both `output_text` and `text` part types are seen in practice.
func extractOutputText(env responsesEnvelope) string {
	var b strings.Builder
	for _, o := range env.Output {
		for _, c := range o.Content {
			if strings.TrimSpace(c.Text) == "" {
				continue
			}
			if c.Type == "output_text" || c.Type == "text" || c.Type == "" {
				if b.Len() > 0 {
					b.WriteByte('\n')
				}
				b.WriteString(c.Text)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
