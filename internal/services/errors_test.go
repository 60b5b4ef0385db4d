package services_test

import (
	"errors"
	"fmt"
	"testing"

	"asrscore/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := fmt.Errorf("exit status 1")
	err := services.Wrap(services.ErrExternalTool, "sclite", "align", "ref1 pass", base)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped base error, got %v", err)
	}
	want := "external tool error: sclite: align: ref1 pass: exit status 1"
	if err.Error() != want {
		t.Fatalf("unexpected message: got %q want %q", err.Error(), want)
	}
}

func TestWrapWithoutMarkerDefaultsToExternalTool(t *testing.T) {
	err := services.Wrap(nil, "sclite", "align", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
}

func TestWrapTrimsEmptyParts(t *testing.T) {
	err := services.Wrap(services.ErrValidation, "", " ", "", nil)
	if err.Error() != "validation error: service failure" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestIsInputError(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{services.Wrap(services.ErrSchema, "manifest", "load", "missing column", nil), true},
		{services.Wrap(services.ErrConfiguration, "config", "load", "", nil), true},
		{services.Wrap(services.ErrNotFound, "score", "match", "", nil), true},
		{services.Wrap(services.ErrTimeout, "sclite", "align", "", nil), false},
		{services.Wrap(services.ErrExternalTool, "sclite", "align", "", nil), false},
	}
	for _, tc := range cases {
		if got := services.IsInputError(tc.err); got != tc.want {
			t.Fatalf("IsInputError(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
