package main

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"asrscore/internal/score"
)

type recordedLog struct {
	level   slog.Level
	message string
}

type recordingHandler struct {
	records *[]recordedLog
}

func (h recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h recordingHandler) Handle(_ context.Context, r slog.Record) error {
	*h.records = append(*h.records, recordedLog{level: r.Level, message: r.Message})
	return nil
}

func (h recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h recordingHandler) WithGroup(string) slog.Handler      { return h }

func TestReportProblemsSeparatesDataAndInternalFailures(t *testing.T) {
	var records []recordedLog
	logger := slog.New(recordingHandler{records: &records})

	problems := []error{
		&score.MissingHypothesisError{ID: "u1"},
		errors.New("alignment backend crashed"),
	}
	err := reportProblems(logger, problems, 1)

	var partial *partialFailureError
	if !errors.As(err, &partial) {
		t.Fatalf("expected partial failure, got %v", err)
	}
	if partial.excluded != 1 {
		t.Fatalf("excluded = %d, want 1", partial.excluded)
	}
	if exitCode(err) != 2 {
		t.Fatalf("exitCode = %d, want 2", exitCode(err))
	}

	if len(records) != 2 {
		t.Fatalf("logged %d records, want 2", len(records))
	}
	if records[0].level != slog.LevelWarn {
		t.Fatalf("data problem logged at %v, want WARN", records[0].level)
	}
	if records[0].message != "utterance excluded" {
		t.Fatalf("unexpected message %q", records[0].message)
	}
	if records[1].level != slog.LevelError {
		t.Fatalf("internal problem logged at %v, want ERROR", records[1].level)
	}
}

func TestReportProblemsWithoutExclusions(t *testing.T) {
	var records []recordedLog
	logger := slog.New(recordingHandler{records: &records})

	if err := reportProblems(logger, nil, 0); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("logged %d records, want 0", len(records))
	}
}
