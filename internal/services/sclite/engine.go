package sclite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"asrscore/internal/align"
	"asrscore/internal/refs"
	"asrscore/internal/score"
	"asrscore/internal/services"
)

// Engine scores through the sclite backend. It satisfies the scoring
// pipeline's engine contract: parallel hypothesis/reference slices in,
// alignment pairs out in input order.
type Engine struct {
	cli     *CLI
	workDir string
	unknown string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithWorkDir keeps trn and SGML artifacts in a fixed directory instead of a
// temp dir, useful for inspecting sclite output after a run.
func WithWorkDir(dir string) EngineOption {
	return func(e *Engine) {
		e.workDir = dir
	}
}

// WithUnknownToken overrides the annotator unknown-word token.
func WithUnknownToken(token string) EngineOption {
	return func(e *Engine) {
		if token != "" {
			e.unknown = token
		}
	}
}

// NewEngine constructs an Engine around a CLI wrapper.
func NewEngine(cli *CLI, opts ...EngineOption) *Engine {
	engine := &Engine{cli: cli, unknown: "UNK"}
	for _, opt := range opts {
		opt(engine)
	}
	return engine
}

// Align writes both sides as trn files, runs sclite, and parses the SGML
// alignment back into per-utterance results. Character-level counts are
// recomputed in-process from the reconstructed texts since sclite only aligns
// words.
func (e *Engine) Align(ctx context.Context, hyps, refTexts []string) ([]align.Pair, error) {
	if len(hyps) != len(refTexts) {
		return nil, fmt.Errorf("align: %d hypotheses vs %d references", len(hyps), len(refTexts))
	}
	pairs := make([]align.Pair, len(hyps))
	if len(hyps) == 0 {
		return pairs, nil
	}

	dir := e.workDir
	if dir == "" {
		tempDir, err := os.MkdirTemp("", "asrscore-sclite-*")
		if err != nil {
			return nil, fmt.Errorf("create sclite work dir: %w", err)
		}
		defer os.RemoveAll(tempDir)
		dir = tempDir
	} else if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sclite work dir: %w", err)
	}

	refEntries := make([]refs.Entry, len(refTexts))
	hypEntries := make([]refs.Entry, len(hyps))
	for i := range hyps {
		tag := refs.Tag(i)
		refEntries[i] = refs.Entry{Tag: tag, Text: refTexts[i]}
		hypEntries[i] = refs.Entry{Tag: tag, Text: hyps[i]}
	}

	refPath := filepath.Join(dir, "ref.trn")
	hypPath := filepath.Join(dir, "hyp.trn")
	if err := refs.WriteTRN(refPath, refEntries); err != nil {
		return nil, err
	}
	if err := refs.WriteTRN(hypPath, hypEntries); err != nil {
		return nil, err
	}

	sgmlPath, err := e.cli.Align(ctx, refPath, hypPath)
	if err != nil {
		return nil, err
	}
	alignments, err := parseSGMLFile(sgmlPath, e.unknown)
	if err != nil {
		return nil, err
	}
	if len(alignments) != len(hyps) {
		return nil, services.Wrap(services.ErrExternalTool, "sclite", "align",
			fmt.Sprintf("SGML holds %d alignments for %d utterances", len(alignments), len(hyps)), nil)
	}

	seen := make(map[int]bool, len(alignments))
	for _, alignment := range alignments {
		index, err := tagIndex(alignment.Tag)
		if err != nil || index < 0 || index >= len(hyps) || seen[index] {
			return nil, services.Wrap(services.ErrExternalTool, "sclite", "align",
				fmt.Sprintf("unexpected PATH tag %q", alignment.Tag), err)
		}
		seen[index] = true
		pairs[index] = align.Strings(alignment.Hyp, alignment.Ref)
	}
	return pairs, nil
}

// tagIndex recovers the zero-based utterance index from a sequential trn tag.
func tagIndex(tag string) (int, error) {
	digits := strings.TrimPrefix(strings.ToLower(tag), "utt")
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("parse trn tag %q: %w", tag, err)
	}
	return n - 1, nil
}

var _ score.Engine = (*Engine)(nil)
