package audit

import (
	"context"
	"testing"
	"time"
)

func TestAppendStampsIDAndTime(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	svc.clock = func() time.Time { return time.Unix(1700000000, 0) }

	err := svc.LogAccessDenied(context.Background(), "sid-1", "client", "/dashboard", "/empresa", "10.0.0.1")
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events := repo.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.ID == "" {
		t.Fatalf("event must get an id")
	}
	if !e.CreatedAt.Equal(time.Unix(1700000000, 0).UTC()) {
		t.Fatalf("unexpected timestamp %v", e.CreatedAt)
	}
	if e.Type != EventTypeAccessDenied || e.Target != "/empresa" {
		t.Fatalf("unexpected event %+v", e)
	}
}

func TestAppendRejectsMissingType(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if err := svc.Append(context.Background(), Event{}); err != ErrInvalidEvent {
		t.Fatalf("expected ErrInvalidEvent, got %v", err)
	}
}

func TestNilServiceIsSafe(t *testing.T) {
	var svc *Service
	if err := svc.LogLogout(context.Background(), "sid", "acme", "10.0.0.1"); err != nil {
		t.Fatalf("nil service must be a no-op, got %v", err)
	}
}
