package runid

import (
	"context"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	ctx, id := NewContext(context.Background())
	got, ok := FromContext(ctx)
	if !ok || got != id {
		t.Fatalf("expected %q from context, got %q ok=%v", id, got, ok)
	}
	if _, ok := FromContext(context.Background()); ok {
		t.Fatalf("unexpected id in empty context")
	}
}

func TestIDsDiffer(t *testing.T) {
	_, a := NewContext(context.Background())
	_, b := NewContext(context.Background())
	if a == b {
		t.Fatalf("two runs share the id %q", a)
	}
}
