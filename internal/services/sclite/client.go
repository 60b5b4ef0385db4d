package sclite

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"asrscore/internal/services"
)

var commandContext = exec.CommandContext

// Option configures the CLI wrapper.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithTimeout bounds a single sclite invocation. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(c *CLI) {
		c.timeout = timeout
	}
}

// CLI wraps the sclite command-line tool.
type CLI struct {
	binary  string
	timeout time.Duration
}

// NewCLI constructs a CLI wrapper using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "sclite"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Align runs sclite over a reference/hypothesis trn pair and returns the path
// of the generated SGML alignment. sclite writes its output next to the
// hypothesis file, so the hypothesis path must be writable.
func (c *CLI) Align(ctx context.Context, refTRN, hypTRN string) (string, error) {
	if refTRN == "" {
		return "", errors.New("reference trn path required")
	}
	if hypTRN == "" {
		return "", errors.New("hypothesis trn path required")
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{"-r", refTRN, "trn", "-h", hypTRN, "trn", "-i", "wsj", "-o", "sgml"}
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &ExternalToolTimeout{Tool: c.binary, Timeout: c.timeout, Err: err}
		}
		return "", services.Wrap(services.ErrExternalTool, "sclite", "align",
			strings.TrimSpace(string(output)), err)
	}

	sgmlPath := hypTRN + ".sgml"
	if _, err := os.Stat(sgmlPath); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "sclite", "align",
			"sclite exited cleanly but produced no SGML output", err)
	}
	return sgmlPath, nil
}
