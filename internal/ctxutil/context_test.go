package ctxutil

import (
	"context"
	"testing"
)

func TestRequestIDContext(t *testing.T) {
	t.Parallel()

	t.Run("empty context", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		if requestID, ok := GetRequestID(ctx); ok || requestID != "" {
			t.Errorf("expected not found, got %q ok=%v", requestID, ok)
		}
	})

	t.Run("with request ID", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		expected := "req-abc-123"
		ctx = WithRequestID(ctx, expected)
		requestID, ok := GetRequestID(ctx)
		if !ok || requestID != expected {
			t.Errorf("expected requestID %s, got %s ok=%v", expected, requestID, ok)
		}
	})

	t.Run("empty request ID is still found", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		ctx = WithRequestID(ctx, "")
		requestID, ok := GetRequestID(ctx)
		if !ok || requestID != "" {
			t.Errorf("expected empty requestID with ok=true, got %q ok=%v", requestID, ok)
		}
	})
}
