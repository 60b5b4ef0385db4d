package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewConsoleLoggerPromotesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("scoring split",
		slog.String(FieldComponent, "score"),
		slog.String(FieldUtteranceID, "utt000001"),
		slog.Int("n_refs", 2),
	)

	out := buf.String()
	if !strings.Contains(out, "[score] scoring split") {
		t.Fatalf("expected component header, got %q", out)
	}
	if !strings.Contains(out, "utterance_id: utt000001") {
		t.Fatalf("expected utterance field, got %q", out)
	}
	if !strings.Contains(out, "n_refs: 2") {
		t.Fatalf("expected attr field, got %q", out)
	}
}

func TestNewConsoleLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record should be suppressed, got %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn record missing, got %q", out)
	}
}

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("report written", slog.Float64("wer", 0.125))
	out := buf.String()
	if !strings.Contains(out, `"wer":0.125`) {
		t.Fatalf("expected JSON attr, got %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestGroupedAttrsFlattenWithDots(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.With(slog.Group("ref", slog.String("variant", "with_disfluency"))).Info("built")
	if !strings.Contains(buf.String(), "ref.variant: with_disfluency") {
		t.Fatalf("expected grouped attr, got %q", buf.String())
	}
}
