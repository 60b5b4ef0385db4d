package score

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"asrscore/internal/logging"
	"asrscore/internal/manifest"
	"asrscore/internal/normalize"
	"asrscore/internal/refs"
)

const (
	variantWith    = refs.VariantWithDisfluency
	variantWithout = refs.VariantWithoutDisfluency
)

// Scorer evaluates one submission against a reference set.
type Scorer struct {
	normalizer *normalize.Normalizer
	engine     Engine
	logger     *slog.Logger
	workers    int
	clipErrors bool
	breakdown  bool
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithLogger attaches a logger for progress and summary records.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scorer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithWorkers bounds the normalization worker pool. Zero means NumCPU.
func WithWorkers(workers int) Option {
	return func(s *Scorer) {
		s.workers = workers
	}
}

// WithClipErrors caps per-utterance errors at the reference length.
func WithClipErrors(clip bool) Option {
	return func(s *Scorer) {
		s.clipErrors = clip
	}
}

// WithBreakdown includes the per-utterance selection list in the report.
func WithBreakdown(breakdown bool) Option {
	return func(s *Scorer) {
		s.breakdown = breakdown
	}
}

// New constructs a Scorer.
func New(normalizer *normalize.Normalizer, engine Engine, opts ...Option) *Scorer {
	s := &Scorer{
		normalizer: normalizer,
		engine:     engine,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score normalizes hypotheses, aligns each against both reference variants,
// and aggregates min-two-refs WER/CER. Unmatched ids and per-utterance
// normalization failures are excluded and reported; the batch always
// completes. A nil report is returned only when the alignment engine itself
// fails, with partial errors preserved.
func (s *Scorer) Score(ctx context.Context, hypotheses []manifest.Hypothesis, set *refs.Set) (*Report, []error) {
	var errs []error
	excluded := 0

	byID := manifest.HypothesesByID(hypotheses)
	referenced := make(map[string]struct{}, set.Len())

	ids := make([]string, 0, set.Len())
	raws := make([]string, 0, set.Len())
	ref1 := make([]string, 0, set.Len())
	ref2 := make([]string, 0, set.Len())
	for i, entry := range set.WithDisfluency {
		referenced[entry.ID] = struct{}{}
		raw, ok := byID[entry.ID]
		if !ok {
			errs = append(errs, &MissingHypothesisError{ID: entry.ID})
			excluded++
			continue
		}
		ids = append(ids, entry.ID)
		raws = append(raws, raw)
		ref1 = append(ref1, entry.Text)
		ref2 = append(ref2, set.WithoutDisfluency[i].Text)
	}
	for _, hyp := range hypotheses {
		if _, ok := referenced[hyp.ID]; !ok {
			errs = append(errs, &MissingReferenceError{ID: hyp.ID})
			excluded++
		}
	}

	normalized, normErrs := s.normalizeAll(ctx, ids, raws)
	if len(normErrs) > 0 {
		errs = append(errs, normErrs...)
	}

	// Drop utterances whose hypothesis failed normalization, keeping the
	// remaining slices parallel and in manifest order.
	keptIDs := make([]string, 0, len(ids))
	keptHyps := make([]string, 0, len(ids))
	keptRef1 := make([]string, 0, len(ids))
	keptRef2 := make([]string, 0, len(ids))
	for i := range ids {
		if normalized[i].failed {
			excluded++
			continue
		}
		keptIDs = append(keptIDs, ids[i])
		keptHyps = append(keptHyps, normalized[i].text)
		keptRef1 = append(keptRef1, ref1[i])
		keptRef2 = append(keptRef2, ref2[i])
	}

	pairs1, err := s.engine.Align(ctx, keptHyps, keptRef1)
	if err != nil {
		errs = append(errs, err)
		return nil, errs
	}
	pairs2, err := s.engine.Align(ctx, keptHyps, keptRef2)
	if err != nil {
		errs = append(errs, err)
		return nil, errs
	}

	selections := make([]Selection, len(keptIDs))
	for i, id := range keptIDs {
		selections[i] = choose(id, pairs1[i], pairs2[i])
	}

	report := aggregate(selections, excluded, s.clipErrors, s.breakdown)
	s.logger.Info("submission scored",
		slog.String(logging.FieldComponent, "score"),
		slog.Int("n_utterances", report.NUtterances),
		slog.Int("n_excluded", report.NExcluded),
		slog.Float64("wer", report.WER),
		slog.Float64("cer", report.CER),
	)
	return report, errs
}

type normResult struct {
	text   string
	failed bool
}

// normalizeAll runs hypothesis normalization on a bounded worker pool,
// preserving input order.
func (s *Scorer) normalizeAll(ctx context.Context, ids, raws []string) ([]normResult, []error) {
	results := make([]normResult, len(raws))
	if len(raws) == 0 {
		return results, nil
	}

	workers := s.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(raws) {
		workers = len(raws)
	}

	errSlots := make([]error, len(raws))
	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				text, err := s.normalizer.NormalizeHypothesis(raws[i])
				if err != nil {
					errSlots[i] = err
					results[i] = normResult{failed: true}
					continue
				}
				results[i] = normResult{text: text}
			}
		}()
	}

feed:
	for i := range raws {
		select {
		case indices <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(indices)
	wg.Wait()

	var errs []error
	for i, err := range errSlots {
		if err != nil {
			errs = append(errs, fmt.Errorf("utterance %s: %w", ids[i], err))
		}
	}
	return results, errs
}
