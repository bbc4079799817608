// Package anthropic implements the llm.Engine for the Claude messages API.
package anthropic

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

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"

	defaultMaxTokens = 4096
)

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
		TLSHandshakeTimeout: 10 * time.Second,
		// Extended thinking can take minutes before the first byte arrives.
		ResponseHeaderTimeout: 300 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConnsPerHost:   10,
	}

	return &Engine{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		// Timeout 0: the request context bounds the call instead.
		httpc: &http.Client{Timeout: 0, Transport: tr},
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

func (e *Engine) Name() string { return "anthropic" }

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`

	Source *imageSource `json:"source,omitempty"`
}

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
	Thinking  *thinking `json:"thinking,omitempty"`
}

type thinking struct {
	Type         string `json:"type"`
	BudgetTokens int    `json:"budget_tokens"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Model      string `json:"model"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (e *Engine) Complete(ctx context.Context, req llm.Request) (llm.Response, error) {
	if e.apiKey == "" {
		return llm.Response{}, fmt.Errorf("anthropic: API key is empty")
	}

	model := req.Model
	if model == "" {
		model = e.model
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	var content []contentBlock
	for _, img := range req.Images {
		content = append(content, contentBlock{
			Type: "image",
			Source: &imageSource{
				Type:      "base64",
				MediaType: img.MediaType,
				Data:      img.Data,
			},
		})
	}
	content = append(content, contentBlock{Type: "text", Text: req.User})

	body := messagesRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    req.System,
		Messages:  []message{{Role: "user", Content: content}},
	}
	if req.ThinkingBudget > 0 {
		body.Thinking = &thinking{Type: "enabled", BudgetTokens: req.ThinkingBudget}
		// max_tokens must exceed the thinking budget
		if body.MaxTokens <= req.ThinkingBudget {
			body.MaxTokens = req.ThinkingBudget + defaultMaxTokens
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return llm.Response{}, fmt.Errorf("anthropic: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		e.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return llm.Response{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", e.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	start := time.Now()
	resp, err := e.httpc.Do(httpReq)
	if err != nil {
		return llm.Response{}, fmt.Errorf("anthropic: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return llm.Response{}, fmt.Errorf("anthropic: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return llm.Response{}, fmt.Errorf("anthropic %d: %s", resp.StatusCode, truncate(raw, 1024))
	}

	var mr messagesResponse
	if err := json.Unmarshal(raw, &mr); err != nil {
		return llm.Response{}, fmt.Errorf("anthropic: bad response JSON: %w", err)
	}

	// Thinking blocks precede the answer; keep text blocks only.
	var b strings.Builder
	for _, block := range mr.Content {
		if block.Type != "text" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(block.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return llm.Response{}, fmt.Errorf("anthropic: empty output; body=%s", truncate(raw, 1024))
	}

	elapsed := time.Since(start)
	return llm.Response{
		Text:         text,
		Model:        mr.Model,
		InputTokens:  mr.Usage.InputTokens,
		OutputTokens: mr.Usage.OutputTokens,
		CostUSD:      llm.Cost(model, mr.Usage.InputTokens, mr.Usage.OutputTokens),
		Elapsed:      elapsed,
		ElapsedMS:    elapsed.Milliseconds(),
		StopReason:   mr.StopReason,
	}, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
