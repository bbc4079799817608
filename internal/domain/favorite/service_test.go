package favorite

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

	if err := svc.Put(ctx, "code1", []string{"a", "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.Get(ctx, "code1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "a" {
		t.Errorf("unexpected list: %+v", got)
	}
}

func TestService_Merge_DedupesByText(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.Put(ctx, "code1", []string{"a", "b"})
	merged, err := svc.Merge(ctx, "code1", []string{"b", "c", "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a", "b", "c"}
	if len(merged) != len(want) {
		t.Fatalf("expected %v, got %v", want, merged)
	}
	for i := range want {
		if merged[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], merged[i])
		}
	}
}

func TestService_DeleteAt(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.Put(ctx, "code1", []string{"a", "b", "c"})
	remaining, err := svc.DeleteAt(ctx, "code1", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(remaining) != 2 || remaining[0] != "a" || remaining[1] != "c" {
		t.Errorf("unexpected list after delete: %+v", remaining)
	}
}

func TestService_DeleteAt_OutOfRange(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	svc.Put(ctx, "code1", []string{"a"})
	if _, err := svc.DeleteAt(ctx, "code1", 5); err == nil {
		t.Error("expected error for out-of-range index")
	}
	if _, err := svc.DeleteAt(ctx, "code1", -1); err == nil {
		t.Error("expected error for negative index")
	}

	// The list must be unchanged after a failed delete.
	got, _ := svc.Get(ctx, "code1")
	if len(got) != 1 {
		t.Errorf("expected list unchanged, got %+v", got)
	}
}

func TestService_InvalidCode(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Get(context.Background(), ""); err == nil {
		t.Error("expected error for empty storage code")
	}
}
