package ignorerule

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
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

func TestHandler_CreateListDelete(t *testing.T) {
	h := NewHandler(newTestService())

	rec, err := call(h.Create, http.MethodPost, `{"rule_text":"ignore BP shorthand"}`, "code", "code1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	var created Rule
	json.Unmarshal(rec.Body.Bytes(), &created)

	rec, err = call(h.List, http.MethodGet, "", "code", "code1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var rules []*Rule
	json.Unmarshal(rec.Body.Bytes(), &rules)
	if len(rules) != 1 || rules[0].RuleText != "ignore BP shorthand" {
		t.Errorf("unexpected rules: %+v", rules)
	}

	if _, err := call(h.Delete, http.MethodDelete, "", "code", "code1", "id", created.ID.String()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := call(h.Delete, http.MethodDelete, "", "code", "code1", "id", created.ID.String()); err == nil {
		t.Error("expected 404 deleting twice")
	}
}

func TestHandler_DeleteBadID(t *testing.T) {
	h := NewHandler(newTestService())

	_, err := call(h.Delete, http.MethodDelete, "", "code", "code1", "id", "not-a-uuid")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
	_, err = call(h.Delete, http.MethodDelete, "", "code", "code1", "id", uuid.NewString())
	if he, ok = err.(*echo.HTTPError); !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_Profile(t *testing.T) {
	h := NewHandler(newTestService())

	_, err := call(h.GetProfile, http.MethodGet, "", "code", "code1")
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404 before profile is stored, got %v", err)
	}

	if _, err := call(h.PutProfile, http.MethodPut, `{"text":"GP registrar"}`, "code", "code1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, err := call(h.GetProfile, http.MethodGet, "", "code", "code1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var p Profile
	json.Unmarshal(rec.Body.Bytes(), &p)
	if p.Text != "GP registrar" {
		t.Errorf("unexpected profile: %+v", p)
	}
}

type failingRepo struct{}

func (failingRepo) List(context.Context, string) ([]*Rule, error) {
	return nil, errors.New("connection refused")
}

func (failingRepo) Create(context.Context, *Rule) error {
	return errors.New("connection refused")
}

func (failingRepo) Delete(context.Context, string, uuid.UUID) error {
	return errors.New("connection refused")
}

func (failingRepo) GetProfile(context.Context, string) (*Profile, error) {
	return nil, errors.New("connection refused")
}

func (failingRepo) PutProfile(context.Context, *Profile) error {
	return errors.New("connection refused")
}

func TestHandler_RepoFailureIsServerError(t *testing.T) {
	h := NewHandler(NewService(failingRepo{}))

	_, err := call(h.List, http.MethodGet, "", "code", "code1")
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusInternalServerError {
		t.Errorf("list: expected 500 for repo failure, got %v", err)
	}

	_, err = call(h.Create, http.MethodPost, `{"rule_text":"x"}`, "code", "code1")
	if !errors.As(err, &he) || he.Code != http.StatusInternalServerError {
		t.Errorf("create: expected 500 for repo failure, got %v", err)
	}
}

func TestHandler_CreateEmptyRuleIsBadRequest(t *testing.T) {
	h := NewHandler(newTestService())

	_, err := call(h.Create, http.MethodPost, `{"rule_text":""}`, "code", "code1")
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty rule_text, got %v", err)
	}
}
