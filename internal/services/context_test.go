package services

import (
	"context"
	"testing"
)

func TestVideoIDRoundTrip(t *testing.T) {
	ctx := WithVideoID(context.Background(), "abc123")
	id, ok := VideoIDFromContext(ctx)
	if !ok || id != "abc123" {
		t.Fatalf("expected video id round trip, got %q ok=%v", id, ok)
	}
	if _, ok := VideoIDFromContext(context.Background()); ok {
		t.Fatal("expected absent video id on fresh context")
	}
}

func TestWithVideoIDIgnoresEmpty(t *testing.T) {
	ctx := WithVideoID(context.Background(), "")
	if _, ok := VideoIDFromContext(ctx); ok {
		t.Fatal("empty video id must not be stored")
	}
}

func TestOperationRoundTrip(t *testing.T) {
	ctx := WithOperation(context.Background(), "unified")
	op, ok := OperationFromContext(ctx)
	if !ok || op != "unified" {
		t.Fatalf("expected operation round trip, got %q ok=%v", op, ok)
	}
}

func TestEnsureRequestID(t *testing.T) {
	ctx, id := EnsureRequestID(context.Background())
	if id == "" {
		t.Fatal("expected a minted request id")
	}
	got, ok := RequestIDFromContext(ctx)
	if !ok || got != id {
		t.Fatalf("expected stored request id %q, got %q ok=%v", id, got, ok)
	}

	ctx2, id2 := EnsureRequestID(ctx)
	if id2 != id {
		t.Fatalf("expected existing request id to be reused, got %q want %q", id2, id)
	}
	if ctx2 != ctx {
		t.Fatal("expected unchanged context when request id already present")
	}
}
