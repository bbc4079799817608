package settings

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

func call(h func(echo.Context) error, method, body string, params ...string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	names := make([]string, 0, len(params)/2)
	values := make([]string, 0, len(params)/2)
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return rec, h(c)
}

func TestHandler_PutGet(t *testing.T) {
	h := NewHandler(newTestService())

	if _, err := call(h.Put, http.MethodPut, `{"fontSize":14}`, "code", "code1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, err := call(h.Get, http.MethodGet, "", "code", "code1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"fontSize":14}` {
		t.Errorf("unexpected body: %s", got)
	}
}

func TestHandler_GetMissing(t *testing.T) {
	h := NewHandler(newTestService())

	_, err := call(h.Get, http.MethodGet, "", "code", "code1")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_PutInvalidJSON(t *testing.T) {
	h := NewHandler(newTestService())

	if _, err := call(h.Put, http.MethodPut, `not json`, "code", "code1"); err == nil {
		t.Error("expected error for invalid JSON body")
	}
}

func TestHandler_Delete(t *testing.T) {
	h := NewHandler(newTestService())

	call(h.Put, http.MethodPut, `{}`, "code", "code1")
	rec, err := call(h.Delete, http.MethodDelete, "", "code", "code1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}

	if _, err := call(h.Get, http.MethodGet, "", "code", "code1"); err == nil {
		t.Error("expected 404 after delete")
	}
}

type failingRepo struct{}

func (failingRepo) Get(context.Context, string) (json.RawMessage, error) {
	return nil, errors.New("connection refused")
}

func (failingRepo) Put(context.Context, string, json.RawMessage) error {
	return errors.New("connection refused")
}

func (failingRepo) Delete(context.Context, string) error {
	return errors.New("connection refused")
}

func TestHandler_RepoFailureIsServerError(t *testing.T) {
	h := NewHandler(NewService(failingRepo{}))

	_, err := call(h.Get, http.MethodGet, "", "code", "code1")
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusInternalServerError {
		t.Errorf("get: expected 500 for repo failure, got %v", err)
	}

	_, err = call(h.Put, http.MethodPut, `{}`, "code", "code1")
	if !errors.As(err, &he) || he.Code != http.StatusInternalServerError {
		t.Errorf("put: expected 500 for repo failure, got %v", err)
	}
}

func TestHandler_InvalidJSONIsBadRequest(t *testing.T) {
	h := NewHandler(newTestService())

	_, err := call(h.Put, http.MethodPut, `{not json`, "code", "code1")
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed payload, got %v", err)
	}
}
