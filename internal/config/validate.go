package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScorer(); err != nil {
		return err
	}
	if err := c.validateLatency(); err != nil {
		return err
	}
	if err := c.validateNormalizer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateScorer() error {
	switch c.Scorer.Engine {
	case EngineBuiltin, EngineSclite:
	default:
		return fmt.Errorf("scorer.engine must be %q or %q, got %q", EngineBuiltin, EngineSclite, c.Scorer.Engine)
	}
	if c.Scorer.Workers < 0 {
		return errors.New("scorer.workers must not be negative")
	}
	return nil
}

func (c *Config) validateLatency() error {
	switch c.Latency.FinalEvent {
	case FinalEventLastPartial, FinalEventExplicit:
	default:
		return fmt.Errorf("latency.final_event must be %q or %q, got %q", FinalEventLastPartial, FinalEventExplicit, c.Latency.FinalEvent)
	}
	return nil
}

func (c *Config) validateNormalizer() error {
	if c.Normalizer.MaxHypWords < 0 {
		return errors.New("normalizer.max_hyp_words must not be negative")
	}
	if c.Normalizer.MaxHypTokenChars < 0 {
		return errors.New("normalizer.max_hyp_token_chars must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}
