package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"asrscore/internal/config"
)

func TestLoadDefaultsWhenConfigAbsent(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantCache := filepath.Join(tempHome, ".local", "share", "asrscore", "cache")
	if cfg.Paths.CacheDir != wantCache {
		t.Fatalf("unexpected cache dir: got %q want %q", cfg.Paths.CacheDir, wantCache)
	}
	if cfg.Scorer.Engine != config.EngineBuiltin {
		t.Fatalf("unexpected engine: %q", cfg.Scorer.Engine)
	}
	if cfg.Scorer.HypColumn != "raw_hypos" {
		t.Fatalf("unexpected hyp column: %q", cfg.Scorer.HypColumn)
	}
	if !cfg.Scorer.ClipErrors {
		t.Fatal("expected clip_errors enabled by default")
	}
	if cfg.Normalizer.UnknownToken != "UNK" {
		t.Fatalf("unexpected unknown token: %q", cfg.Normalizer.UnknownToken)
	}
	if cfg.Normalizer.MaxHypWords != 512 || cfg.Normalizer.MaxHypTokenChars != 64 {
		t.Fatalf("unexpected hypothesis limits: %d words, %d chars",
			cfg.Normalizer.MaxHypWords, cfg.Normalizer.MaxHypTokenChars)
	}
	if len(cfg.Normalizer.KeepParenPrefixes) != 0 {
		t.Fatalf("expected empty keep prefixes, got %v", cfg.Normalizer.KeepParenPrefixes)
	}
	if cfg.Latency.SpeechStartColumn != "mfa_speech_start" {
		t.Fatalf("unexpected speech start column: %q", cfg.Latency.SpeechStartColumn)
	}
	if cfg.Latency.FinalEvent != config.FinalEventLastPartial {
		t.Fatalf("unexpected final event mode: %q", cfg.Latency.FinalEvent)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadParsesFileAndNormalizesPrefixes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[normalizer]",
		`keep_paren_prefixes = ["CS", "assistant:"]`,
		"[scorer]",
		`engine = "SCLITE"`,
		"workers = 4",
		"[latency]",
		`final_event = "explicit_final"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.Scorer.Engine != config.EngineSclite {
		t.Fatalf("expected sclite engine, got %q", cfg.Scorer.Engine)
	}
	if cfg.Scorer.Workers != 4 {
		t.Fatalf("expected 4 workers, got %d", cfg.Scorer.Workers)
	}
	want := []string{"cs:", "assistant:"}
	if len(cfg.Normalizer.KeepParenPrefixes) != len(want) {
		t.Fatalf("unexpected keep prefixes: %v", cfg.Normalizer.KeepParenPrefixes)
	}
	for i, p := range want {
		if cfg.Normalizer.KeepParenPrefixes[i] != p {
			t.Fatalf("keep prefix %d: got %q want %q", i, cfg.Normalizer.KeepParenPrefixes[i], p)
		}
	}
	if cfg.Latency.FinalEvent != config.FinalEventExplicit {
		t.Fatalf("unexpected final event mode: %q", cfg.Latency.FinalEvent)
	}
}

func TestLoadRejectsUnknownEngine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[scorer]\nengine = \"hand\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown engine")
	}
}

func TestLoadRejectsUnknownFinalEventMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[latency]\nfinal_event = \"middle\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown final event mode")
	}
}

func TestEnsureDirectoriesCreatesPaths(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkDir = filepath.Join(base, "work")
	cfg.Paths.CacheDir = filepath.Join(base, "cache")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.WorkDir, cfg.Paths.CacheDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
}
