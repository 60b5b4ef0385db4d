package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	WorkDir  string `toml:"work_dir"`
	CacheDir string `toml:"cache_dir"`
	LogDir   string `toml:"log_dir"`
}

// Normalizer contains text normalization settings.
type Normalizer struct {
	// KeepParenPrefixes lists annotator tags whose parenthesized spans keep
	// their interior text even when parentheses removal is requested. The
	// dataset's documented tag vocabulary decides the contents; empty by
	// default so tagged spans are treated like any other parenthesized span.
	KeepParenPrefixes []string `toml:"keep_paren_prefixes"`
	// ParenPrefixes lists tags stripped from parenthesized spans that are kept.
	ParenPrefixes []string `toml:"paren_prefixes"`
	// UnknownToken replaces untagged curly-braced spans.
	UnknownToken string `toml:"unknown_token"`
	// MaxHypWords truncates hypotheses to this many tokens. Zero disables.
	MaxHypWords int `toml:"max_hyp_words"`
	// MaxHypTokenChars truncates individual hypothesis tokens. Zero disables.
	MaxHypTokenChars int `toml:"max_hyp_token_chars"`
	// CorrectionsPath points at an optional per-utterance correction CSV.
	CorrectionsPath string `toml:"corrections_path"`
}

// Scorer contains alignment and aggregation settings.
type Scorer struct {
	// Engine selects the alignment backend: "builtin" or "sclite".
	Engine string `toml:"engine"`
	// Workers bounds the per-utterance worker pool. Zero means NumCPU.
	Workers int `toml:"workers"`
	// HypColumn is the hypothesis CSV column holding predicted text.
	HypColumn string `toml:"hyp_column"`
	// ClipErrors caps per-utterance errors at the reference length, matching
	// the competition scoring convention of clipping utterance WER at 1.0.
	ClipErrors bool `toml:"clip_errors"`
	// ScliteBinary names or paths the sclite executable.
	ScliteBinary string `toml:"sclite_binary"`
	// ScliteTimeout bounds a single sclite invocation, in seconds.
	ScliteTimeout int `toml:"sclite_timeout"`
}

// Latency contains streaming latency settings.
type Latency struct {
	// SpeechStartColumn names the speech-onset timestamp column.
	SpeechStartColumn string `toml:"speech_start_column"`
	// FinalEvent selects the TTLT endpoint: "last_partial" uses the final
	// partial event, "explicit_final" uses the event flagged final.
	FinalEvent string `toml:"final_event"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for asrscore.
type Config struct {
	Paths      Paths      `toml:"paths"`
	Normalizer Normalizer `toml:"normalizer"`
	Scorer     Scorer     `toml:"scorer"`
	Latency    Latency    `toml:"latency"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/asrscore/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("asrscore.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the toolkit writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.WorkDir, c.Paths.CacheDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

// ExpandPath expands ~ and environment variables and resolves to an absolute path.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	pathValue = os.ExpandEnv(pathValue)
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
