// Package latency computes streaming latency metrics for a submission.
//
// A streaming submission emits timestamped partial transcripts per utterance.
// Against the forced-alignment speech onset, time-to-first-token is the gap to
// the first partial carrying text and time-to-last-token is the gap to the
// final result. Both are summarized as mean, median, and p90 over the split.
package latency
