package template

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() *Handler {
	return NewHandler(newTestService())
}

func call(h func(echo.Context) error, method, code, body string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("code")
	c.SetParamValues(code)
	return rec, h(c)
}

func TestHandler_PutThenGet(t *testing.T) {
	h := newTestHandler()

	rec, err := call(h.Put, http.MethodPut, "code1", `[{"id":"t1","text":"hello"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	rec, err = call(h.Get, http.MethodGet, "code1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []Template
	json.Unmarshal(rec.Body.Bytes(), &got)
	if len(got) != 1 || got[0].ID != "t1" {
		t.Errorf("unexpected templates: %+v", got)
	}
}

func TestHandler_MergeReturnsMerged(t *testing.T) {
	h := newTestHandler()

	call(h.Put, http.MethodPut, "code1", `[{"id":"t1","text":"a"}]`)
	rec, err := call(h.Merge, http.MethodPost, "code1", `[{"id":"t2","text":"b"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []Template
	json.Unmarshal(rec.Body.Bytes(), &got)
	if len(got) != 2 {
		t.Errorf("expected 2 merged templates, got %+v", got)
	}
}

func TestHandler_PutInvalidBody(t *testing.T) {
	h := newTestHandler()

	_, err := call(h.Put, http.MethodPut, "code1", `{"not":"an array"}`)
	if err == nil {
		t.Error("expected error for non-array body")
	}
}

func TestHandler_Delete(t *testing.T) {
	h := newTestHandler()

	call(h.Put, http.MethodPut, "code1", `[{"id":"t1","text":"a"}]`)
	rec, err := call(h.Delete, http.MethodDelete, "code1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}

type failingRepo struct{}

func (failingRepo) Get(context.Context, string) ([]Template, error) {
	return nil, errors.New("connection refused")
}

func (failingRepo) Put(context.Context, string, []Template) error {
	return errors.New("connection refused")
}

func (failingRepo) Delete(context.Context, string) error {
	return errors.New("connection refused")
}

func TestHandler_RepoFailureIsServerError(t *testing.T) {
	h := NewHandler(NewService(failingRepo{}))

	for name, fn := range map[string]func(echo.Context) error{
		"get":    h.Get,
		"put":    h.Put,
		"delete": h.Delete,
	} {
		_, err := call(fn, http.MethodPost, "code1", `[]`)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusInternalServerError {
			t.Errorf("%s: expected 500 for repo failure, got %v", name, err)
		}
	}
}

func TestHandler_InvalidCodeIsBadRequest(t *testing.T) {
	h := newTestHandler()

	_, err := call(h.Get, http.MethodGet, "bad code", "")
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid storage code, got %v", err)
	}
}
