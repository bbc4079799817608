package analysis

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func post(h *Handler, body string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, h.Analyze(e.NewContext(req, rec))
}

func TestHandler_Analyze(t *testing.T) {
	engine := &fakeEngine{name: "anthropic", text: `{"corrected_text":"ok","issues":[]}`}
	svc, _, _ := newTestService(engine)
	h := NewHandler(svc)

	rec, err := post(h, `{"text":"note","model":"claude-sonnet-4-20250514"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result Result
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if result.CorrectedText != "ok" {
		t.Errorf("unexpected result: %+v", result)
	}
	if result.Usage.InputTokens != 100 {
		t.Errorf("expected usage in response, got %+v", result.Usage)
	}
}

func TestHandler_Analyze_EmptyText(t *testing.T) {
	engine := &fakeEngine{name: "anthropic", text: "{}"}
	svc, _, _ := newTestService(engine)
	h := NewHandler(svc)

	_, err := post(h, `{"text":""}`)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}
