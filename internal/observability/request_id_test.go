package observability

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestNewRequestIDReturnsUUID(t *testing.T) {
	id := NewRequestID()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected valid UUID, got %q: %v", id, err)
	}
}

func TestRequestIDFromHeader(t *testing.T) {
	t.Run("keeps caller uuid", func(t *testing.T) {
		want := "6f1c2a8e-3b0d-4c55-9d7e-0a1b2c3d4e5f"
		if got := RequestIDFromHeader(want); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	})

	t.Run("replaces non uuid", func(t *testing.T) {
		got := RequestIDFromHeader("not-a-uuid")
		if got == "not-a-uuid" {
			t.Fatal("expected a generated request id")
		}
		if _, err := uuid.Parse(got); err != nil {
			t.Fatalf("expected valid UUID, got %q: %v", got, err)
		}
	})
}

func TestRequestIDContextRoundTrip(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "abc-123")

	if got := RequestIDFromContext(ctx); got != "abc-123" {
		t.Fatalf("expected %q, got %q", "abc-123", got)
	}
}

func TestRequestIDFromContextWhenMissingOrWrongType(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		if got := RequestIDFromContext(context.Background()); got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})

	t.Run("wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), RequestIDKey, 42)
		if got := RequestIDFromContext(ctx); got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})
}
