package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"asrscore/internal/services"
)

func TestWithContextAttachesRunFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx := services.WithComponent(context.Background(), "score")
	ctx = services.WithRunID(ctx, "run-9")
	WithContext(ctx, logger).Info("scored")

	out := buf.String()
	if !strings.Contains(out, "[score]") {
		t.Fatalf("expected component from context, got %q", out)
	}
	if !strings.Contains(out, "run_id: run-9") {
		t.Fatalf("expected run id from context, got %q", out)
	}
}

func TestWithContextWithoutFieldsReturnsLogger(t *testing.T) {
	logger := NewNop()
	if got := WithContext(context.Background(), logger); got != logger {
		t.Fatal("expected the original logger when context carries no fields")
	}
}
