package template

import (
	"context"
	"testing"
)

func newTestService() *Service {
	return NewService(NewRepoMem())
}

func TestService_PutGet(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	set := []Template{
		{ID: "t1", Name: "SOAP", Text: "S:\nO:\nA:\nP:"},
		{ID: "t2", Text: "Follow-up in 2 weeks"},
	}
	if err := svc.Put(ctx, "code1", set); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.Get(ctx, "code1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "t1" || got[1].ID != "t2" {
		t.Errorf("unexpected set: %+v", got)
	}
}

func TestService_GetUnknownCodeIsEmpty(t *testing.T) {
	svc := newTestService()

	got, err := svc.Get(context.Background(), "nothing-here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty set, got %+v", got)
	}
}

func TestService_PutRequiresIDs(t *testing.T) {
	svc := newTestService()

	err := svc.Put(context.Background(), "code1", []Template{{Text: "no id"}})
	if err == nil {
		t.Error("expected error for template without id")
	}
}

func TestService_InvalidCode(t *testing.T) {
	svc := newTestService()

	if _, err := svc.Get(context.Background(), "bad code!"); err == nil {
		t.Error("expected error for invalid storage code")
	}
}

func TestService_Merge_DedupesByID(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.Put(ctx, "code1", []Template{
		{ID: "t1", Text: "original"},
		{ID: "t2", Text: "keep me"},
	})

	merged, err := svc.Merge(ctx, "code1", []Template{
		{ID: "t1", Text: "updated"},
		{ID: "t3", Text: "new"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(merged) != 3 {
		t.Fatalf("expected 3 templates, got %d", len(merged))
	}
	// Conflict replaces in place without reordering.
	if merged[0].ID != "t1" || merged[0].Text != "updated" {
		t.Errorf("expected t1 updated in place, got %+v", merged[0])
	}
	if merged[1].ID != "t2" {
		t.Errorf("expected t2 to keep position, got %+v", merged[1])
	}
	if merged[2].ID != "t3" || merged[2].Text != "new" {
		t.Errorf("expected t3 appended, got %+v", merged[2])
	}
}

func TestService_Merge_IntoEmpty(t *testing.T) {
	svc := newTestService()

	merged, err := svc.Merge(context.Background(), "fresh", []Template{{ID: "t1", Text: "x"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(merged) != 1 {
		t.Errorf("expected 1 template, got %d", len(merged))
	}
}

func TestService_Delete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.Put(ctx, "code1", []Template{{ID: "t1", Text: "x"}})
	if err := svc.Delete(ctx, "code1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := svc.Get(ctx, "code1")
	if len(got) != 0 {
		t.Errorf("expected empty after delete, got %+v", got)
	}
}
