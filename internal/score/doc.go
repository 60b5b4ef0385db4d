// Package score runs the evaluation pipeline for one submission: hypothesis
// normalization, alignment against both reference variants, and min-two-refs
// aggregation to corpus WER/CER.
//
// Per-utterance work is independent and runs on a bounded worker pool; output
// order is restored to manifest order before aggregation so reports are
// reproducible. Per-utterance failures exclude the utterance and are
// collected; a batch always completes with partial results and the error list.
package score
