package latency

import (
	"log/slog"
	"sort"
	"strings"

	"asrscore/internal/logging"
	"asrscore/internal/services"
)

// TTLT endpoint modes. Last-partial takes the timestamp of the final partial
// event; explicit-final takes the last event flagged as a final result,
// falling back to the last event when the submission never sets the flag.
const (
	FinalLastPartial = "last_partial"
	FinalExplicit    = "explicit_final"
)

// Result is the per-utterance latency pair, in seconds.
type Result struct {
	ID   string  `json:"id"`
	TTFT float64 `json:"ttft"`
	TTLT float64 `json:"ttlt"`
}

// Report is the corpus-level latency summary.
type Report struct {
	TTFTMean    float64  `json:"ttft_mean"`
	TTFTMedian  float64  `json:"ttft_median"`
	TTFTP90     float64  `json:"ttft_p90"`
	TTLTMean    float64  `json:"ttlt_mean"`
	TTLTMedian  float64  `json:"ttlt_median"`
	TTLTP90     float64  `json:"ttlt_p90"`
	NUtterances int      `json:"n_utterances"`
	NExcluded   int      `json:"n_excluded"`
	NAnomalous  int      `json:"n_anomalous"`
	Utterances  []Result `json:"utterances,omitempty"`
}

// Computer derives latency metrics from partial-event streams.
type Computer struct {
	finalEvent string
	breakdown  bool
	logger     *slog.Logger
}

// Option configures a Computer.
type Option func(*Computer)

// WithFinalEvent selects the TTLT endpoint mode.
func WithFinalEvent(mode string) Option {
	return func(c *Computer) {
		if mode != "" {
			c.finalEvent = mode
		}
	}
}

// WithBreakdown includes per-utterance results in the report.
func WithBreakdown(breakdown bool) Option {
	return func(c *Computer) {
		c.breakdown = breakdown
	}
}

// WithLogger attaches a logger for the run summary.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Computer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New constructs a Computer.
func New(opts ...Option) *Computer {
	c := &Computer{
		finalEvent: FinalLastPartial,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compute measures TTFT and TTLT for every utterance present in both inputs.
// Utterances without a speech-start entry or without events are excluded and
// reported. Negative latencies are kept as-is and counted as anomalies so
// clock skew in the source data stays visible.
func (c *Computer) Compute(streams []Stream, speechStarts map[string]float64) (*Report, []error) {
	var errs []error
	var results []Result
	excluded := 0
	anomalous := 0

	for _, stream := range streams {
		if len(stream.Events) == 0 {
			errs = append(errs, services.Wrap(services.ErrValidation, "latency", "compute",
				"utterance "+stream.ID+" has no partial events", nil))
			excluded++
			continue
		}
		start, ok := speechStarts[stream.ID]
		if !ok {
			errs = append(errs, &MissingAlignmentError{ID: stream.ID})
			excluded++
			continue
		}

		result := Result{
			ID:   stream.ID,
			TTFT: firstToken(stream.Events).Time - start,
			TTLT: c.finalToken(stream.Events).Time - start,
		}
		if result.TTFT < 0 || result.TTLT < 0 {
			anomalous++
		}
		results = append(results, result)
	}

	report := summarize(results, excluded, anomalous, c.breakdown)
	c.logger.Info("latency computed",
		slog.String(logging.FieldComponent, "latency"),
		slog.Int("n_utterances", report.NUtterances),
		slog.Int("n_excluded", report.NExcluded),
		slog.Int("n_anomalous", report.NAnomalous),
		slog.Float64("ttft_median", report.TTFTMedian),
		slog.Float64("ttlt_median", report.TTLTMedian),
	)
	return report, errs
}

// firstToken returns the first partial carrying text. Empty partials are
// keep-alives from the streaming transport, not tokens. When every partial is
// empty the last event stands in so the utterance still gets a measurement.
func firstToken(events []Event) Event {
	for _, event := range events {
		if strings.TrimSpace(event.Text) != "" {
			return event
		}
	}
	return events[len(events)-1]
}

func (c *Computer) finalToken(events []Event) Event {
	if c.finalEvent == FinalExplicit {
		for i := len(events) - 1; i >= 0; i-- {
			if events[i].Final {
				return events[i]
			}
		}
	}
	return events[len(events)-1]
}

func summarize(results []Result, excluded, anomalous int, breakdown bool) *Report {
	ttft := make([]float64, len(results))
	ttlt := make([]float64, len(results))
	for i, result := range results {
		ttft[i] = result.TTFT
		ttlt[i] = result.TTLT
	}
	sort.Float64s(ttft)
	sort.Float64s(ttlt)

	report := &Report{
		TTFTMean:    mean(ttft),
		TTFTMedian:  percentile(ttft, 0.5),
		TTFTP90:     percentile(ttft, 0.9),
		TTLTMean:    mean(ttlt),
		TTLTMedian:  percentile(ttlt, 0.5),
		TTLTP90:     percentile(ttlt, 0.9),
		NUtterances: len(results),
		NExcluded:   excluded,
		NAnomalous:  anomalous,
	}
	if breakdown {
		report.Utterances = results
	}
	return report
}

func mean(sorted []float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	return sum / float64(len(sorted))
}

// percentile interpolates linearly between the two nearest ranks of a sorted
// sample, matching numpy's default percentile method.
func percentile(sorted []float64, p float64) float64 {
	switch len(sorted) {
	case 0:
		return 0
	case 1:
		return sorted[0]
	}
	rank := p * float64(len(sorted)-1)
	lo := int(rank)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
