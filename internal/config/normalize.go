package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeNormalizer(); err != nil {
		return err
	}
	c.normalizeScorer()
	c.normalizeLatency()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = ExpandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = ExpandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeNormalizer() error {
	c.Normalizer.UnknownToken = strings.TrimSpace(c.Normalizer.UnknownToken)
	if c.Normalizer.UnknownToken == "" {
		c.Normalizer.UnknownToken = defaultUnknownToken
	}
	c.Normalizer.ParenPrefixes = normalizePrefixes(c.Normalizer.ParenPrefixes)
	c.Normalizer.KeepParenPrefixes = normalizePrefixes(c.Normalizer.KeepParenPrefixes)
	if strings.TrimSpace(c.Normalizer.CorrectionsPath) != "" {
		expanded, err := ExpandPath(c.Normalizer.CorrectionsPath)
		if err != nil {
			return fmt.Errorf("normalizer.corrections_path: %w", err)
		}
		c.Normalizer.CorrectionsPath = expanded
	}
	return nil
}

func (c *Config) normalizeScorer() {
	c.Scorer.Engine = strings.ToLower(strings.TrimSpace(c.Scorer.Engine))
	if c.Scorer.Engine == "" {
		c.Scorer.Engine = defaultEngine
	}
	c.Scorer.HypColumn = strings.TrimSpace(c.Scorer.HypColumn)
	if c.Scorer.HypColumn == "" {
		c.Scorer.HypColumn = defaultHypColumn
	}
	c.Scorer.ScliteBinary = strings.TrimSpace(c.Scorer.ScliteBinary)
	if c.Scorer.ScliteBinary == "" {
		c.Scorer.ScliteBinary = defaultScliteBinary
	}
	if c.Scorer.ScliteTimeout <= 0 {
		c.Scorer.ScliteTimeout = defaultScliteTimeout
	}
	if c.Scorer.Workers < 0 {
		c.Scorer.Workers = 0
	}
}

func (c *Config) normalizeLatency() {
	c.Latency.SpeechStartColumn = strings.TrimSpace(c.Latency.SpeechStartColumn)
	if c.Latency.SpeechStartColumn == "" {
		c.Latency.SpeechStartColumn = defaultSpeechStartColumn
	}
	c.Latency.FinalEvent = strings.ToLower(strings.TrimSpace(c.Latency.FinalEvent))
	if c.Latency.FinalEvent == "" {
		c.Latency.FinalEvent = defaultFinalEvent
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func normalizePrefixes(prefixes []string) []string {
	out := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if !strings.HasSuffix(p, ":") {
			p += ":"
		}
		out = append(out, p)
	}
	return out
}
