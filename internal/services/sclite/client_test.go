package sclite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"asrscore/internal/services"
)

func TestNewCLIWithBinary(t *testing.T) {
	cli := NewCLI(WithBinary("/opt/sctk/bin/sclite"))
	if cli.binary != "/opt/sctk/bin/sclite" {
		t.Fatalf("expected binary override to be applied, got %q", cli.binary)
	}
}

func TestCLIAlignRequiresPaths(t *testing.T) {
	cli := NewCLI()
	if _, err := cli.Align(context.Background(), "", "/tmp/hyp.trn"); err == nil {
		t.Fatal("expected error when reference trn is empty")
	}
	if _, err := cli.Align(context.Background(), "/tmp/ref.trn", ""); err == nil {
		t.Fatal("expected error when hypothesis trn is empty")
	}
}

func stubCommand(t *testing.T, mode string, capture *[]string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		if capture != nil {
			*capture = append([]string(nil), args...)
		}
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "SCLITE_HELPER_MODE="+mode)
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestCLIAlignPassesTRNArguments(t *testing.T) {
	var captured []string
	stubCommand(t, "success", &captured)

	dir := t.TempDir()
	hypTRN := filepath.Join(dir, "hyp.trn")
	if err := os.WriteFile(hypTRN+".sgml", []byte(sampleSGML), 0o644); err != nil {
		t.Fatalf("seeding sgml: %v", err)
	}

	cli := NewCLI()
	sgmlPath, err := cli.Align(context.Background(), filepath.Join(dir, "ref.trn"), hypTRN)
	if err != nil {
		t.Fatalf("Align returned error: %v", err)
	}
	if sgmlPath != hypTRN+".sgml" {
		t.Fatalf("sgml path = %q", sgmlPath)
	}

	want := []string{"-r", filepath.Join(dir, "ref.trn"), "trn", "-h", hypTRN, "trn", "-i", "wsj", "-o", "sgml"}
	if len(captured) != len(want) {
		t.Fatalf("captured args %v, want %v", captured, want)
	}
	for i := range want {
		if captured[i] != want[i] {
			t.Fatalf("arg %d = %q, want %q", i, captured[i], want[i])
		}
	}
}

func TestCLIAlignFailureWrapsExternalTool(t *testing.T) {
	stubCommand(t, "fail", nil)

	cli := NewCLI()
	_, err := cli.Align(context.Background(), "/tmp/ref.trn", "/tmp/hyp.trn")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external-tool error, got %v", err)
	}
}

func TestCLIAlignMissingOutput(t *testing.T) {
	stubCommand(t, "success", nil)

	dir := t.TempDir()
	cli := NewCLI()
	_, err := cli.Align(context.Background(), filepath.Join(dir, "ref.trn"), filepath.Join(dir, "hyp.trn"))
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external-tool error for missing SGML, got %v", err)
	}
}

func TestCLIAlignTimeout(t *testing.T) {
	stubCommand(t, "sleep", nil)

	cli := NewCLI(WithTimeout(25 * time.Millisecond))
	_, err := cli.Align(context.Background(), "/tmp/ref.trn", "/tmp/hyp.trn")
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestEngineAlignEndToEnd(t *testing.T) {
	stubCommand(t, "success", nil)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "hyp.trn.sgml"), []byte(sampleSGML), 0o644); err != nil {
		t.Fatalf("seeding sgml: %v", err)
	}

	engine := NewEngine(NewCLI(), WithWorkDir(dir))
	pairs, err := engine.Align(context.Background(),
		[]string{"HELLO THEIR", "BLUE SKY"},
		[]string{"HELLO THERE FRIEND", "UNK SKY"})
	if err != nil {
		t.Fatalf("Align returned error: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("got %d pairs, want 2", len(pairs))
	}

	first := pairs[0].Word
	if first.Correct != 1 || first.Substitutions != 1 || first.Deletions != 1 || first.Insertions != 0 {
		t.Fatalf("first word result = %+v", first)
	}
	// UNK resolution makes the second utterance a perfect match.
	second := pairs[1].Word
	if second.Errors() != 0 || second.Correct != 2 {
		t.Fatalf("second word result = %+v", second)
	}
	if pairs[1].Char.Errors() != 0 {
		t.Fatalf("second char result = %+v", pairs[1].Char)
	}
}

func TestEngineAlignLengthMismatch(t *testing.T) {
	engine := NewEngine(NewCLI())
	if _, err := engine.Align(context.Background(), []string{"a"}, nil); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	switch os.Getenv("SCLITE_HELPER_MODE") {
	case "fail":
		fmt.Fprintln(os.Stderr, "sclite: unable to parse input")
		os.Exit(1)
	case "sleep":
		time.Sleep(2 * time.Second)
	}
	os.Exit(0)
}
