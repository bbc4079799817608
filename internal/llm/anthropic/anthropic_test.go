package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/medclip/medclip/internal/llm"
)

func stubServer(t *testing.T, handler http.HandlerFunc) (*Engine, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	eng := New("test-key", "claude-sonnet-4-20250514").WithBaseURL(srv.URL)
	return eng, srv
}

func TestComplete_Success(t *testing.T) {
	var gotReq map[string]any
	eng, _ := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing anthropic-version header")
		}
		json.NewDecoder(r.Body).Decode(&gotReq)

		json.NewEncoder(w).Encode(map[string]any{
			"content":     []map[string]any{{"type": "text", "text": "hello"}},
			"model":       "claude-sonnet-4-20250514",
			"stop_reason": "end_turn",
			"usage":       map[string]int{"input_tokens": 100, "output_tokens": 50},
		})
	})

	resp, err := eng.Complete(context.Background(), llm.Request{
		System: "be brief",
		User:   "hi",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "hello" {
		t.Errorf("expected text 'hello', got %q", resp.Text)
	}
	if resp.InputTokens != 100 || resp.OutputTokens != 50 {
		t.Errorf("unexpected usage: %d/%d", resp.InputTokens, resp.OutputTokens)
	}
	if resp.CostUSD <= 0 {
		t.Errorf("expected positive cost, got %f", resp.CostUSD)
	}
	if gotReq["system"] != "be brief" {
		t.Errorf("system prompt not forwarded: %v", gotReq["system"])
	}
}

func TestComplete_SkipsThinkingBlocks(t *testing.T) {
	eng, _ := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{
				{"type": "thinking", "text": "internal reasoning"},
				{"type": "text", "text": "answer"},
			},
			"usage": map[string]int{"input_tokens": 1, "output_tokens": 1},
		})
	})

	resp, err := eng.Complete(context.Background(), llm.Request{User: "q", ThinkingBudget: 2048})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "answer" {
		t.Errorf("expected thinking block dropped, got %q", resp.Text)
	}
}

func TestComplete_ThinkingRaisesMaxTokens(t *testing.T) {
	var gotReq messagesRequest
	eng, _ := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{{"type": "text", "text": "ok"}},
			"usage":   map[string]int{"input_tokens": 1, "output_tokens": 1},
		})
	})

	_, err := eng.Complete(context.Background(), llm.Request{
		User:           "q",
		MaxTokens:      1024,
		ThinkingBudget: 8192,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotReq.Thinking == nil || gotReq.Thinking.BudgetTokens != 8192 {
		t.Fatalf("thinking budget not forwarded: %+v", gotReq.Thinking)
	}
	if gotReq.MaxTokens <= gotReq.Thinking.BudgetTokens {
		t.Errorf("max_tokens (%d) must exceed thinking budget (%d)", gotReq.MaxTokens, gotReq.Thinking.BudgetTokens)
	}
}

func TestComplete_ImagesPrecedeText(t *testing.T) {
	var gotReq messagesRequest
	eng, _ := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{{"type": "text", "text": "ok"}},
			"usage":   map[string]int{"input_tokens": 1, "output_tokens": 1},
		})
	})

	_, err := eng.Complete(context.Background(), llm.Request{
		User:   "what does this show?",
		Images: []llm.Image{{MediaType: "image/jpeg", Data: "aGVsbG8="}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := gotReq.Messages[0].Content
	if len(content) != 2 {
		t.Fatalf("expected 2 content blocks, got %d", len(content))
	}
	if content[0].Type != "image" || content[0].Source.MediaType != "image/jpeg" {
		t.Errorf("expected image block first, got %+v", content[0])
	}
	if content[1].Type != "text" {
		t.Errorf("expected text block last, got %+v", content[1])
	}
}

func TestComplete_UpstreamError(t *testing.T) {
	eng, _ := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"type":"rate_limit_error"}}`))
	})

	_, err := eng.Complete(context.Background(), llm.Request{User: "q"})
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("expected status code in error, got %v", err)
	}
}

func TestComplete_EmptyOutput(t *testing.T) {
	eng, _ := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{},
			"usage":   map[string]int{"input_tokens": 1, "output_tokens": 0},
		})
	})

	if _, err := eng.Complete(context.Background(), llm.Request{User: "q"}); err == nil {
		t.Error("expected error for empty output")
	}
}

func TestComplete_NoAPIKey(t *testing.T) {
	eng := New("", "claude-sonnet-4")
	if _, err := eng.Complete(context.Background(), llm.Request{User: "q"}); err == nil {
		t.Error("expected error when API key is empty")
	}
}
