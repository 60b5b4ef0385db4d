package testsupport

import (
	"path/filepath"
	"testing"

	"asrscore/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkDir = filepath.Join(base, "work")
	cfg.Paths.CacheDir = filepath.Join(base, "cache")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithEngine overrides the alignment backend on the test config.
func WithEngine(engine string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Scorer.Engine = engine
	}
}

// WithHypColumn overrides the hypothesis column on the test config.
func WithHypColumn(column string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Scorer.HypColumn = column
	}
}
