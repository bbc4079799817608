package ignorerule

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func newTestService() *Service {
	return NewService(NewRepoMem())
}

func TestService_CreateAndList(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	rule, err := svc.Create(ctx, "code1", "keep abbreviation HTN")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rule.ID == uuid.Nil {
		t.Error("expected generated rule id")
	}
	if rule.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	rules, err := svc.List(ctx, "code1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rules) != 1 || rules[0].RuleText != "keep abbreviation HTN" {
		t.Errorf("unexpected rules: %+v", rules)
	}
}

func TestService_CreateRequiresText(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Create(context.Background(), "code1", ""); err == nil {
		t.Error("expected error for empty rule text")
	}
}

func TestService_Delete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	rule, _ := svc.Create(ctx, "code1", "x")
	if err := svc.Delete(ctx, "code1", rule.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rules, _ := svc.List(ctx, "code1")
	if len(rules) != 0 {
		t.Errorf("expected empty list after delete, got %+v", rules)
	}
}

func TestService_DeleteMissing(t *testing.T) {
	svc := newTestService()
	if err := svc.Delete(context.Background(), "code1", uuid.New()); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_CodesIsolated(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.Create(ctx, "code1", "a")
	rules, _ := svc.List(ctx, "code2")
	if len(rules) != 0 {
		t.Errorf("expected code2 empty, got %+v", rules)
	}
}

func TestService_Profile(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.GetProfile(ctx, "code1"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound before put, got %v", err)
	}

	if _, err := svc.PutProfile(ctx, "code1", "cardiology registrar"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, err := svc.GetProfile(ctx, "code1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Text != "cardiology registrar" {
		t.Errorf("unexpected profile: %+v", p)
	}
}

func TestService_ProfileText_MissingIsEmpty(t *testing.T) {
	svc := newTestService()

	text, err := svc.ProfileText(context.Background(), "code1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "" {
		t.Errorf("expected empty profile text, got %q", text)
	}
}

func TestService_RuleTexts(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.Create(ctx, "code1", "first")
	svc.Create(ctx, "code1", "second")

	texts, err := svc.RuleTexts(ctx, "code1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(texts) != 2 || texts[0] != "first" || texts[1] != "second" {
		t.Errorf("unexpected texts: %+v", texts)
	}
}
