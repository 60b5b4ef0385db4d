// Package normalize canonicalizes transcripts into the comparable form the
// alignment scorer consumes.
//
// Reference text carries annotator markup: bracketed notes, curly-braced
// unclear spans, tagged parenthesized spans, and emphasis markers. Markup is
// resolved before the shared normalization rules run. Hypothesis text is model
// output and skips markup resolution; any leftover brackets are stripped as
// punctuation.
//
// Rule order is fixed and significant. Unbalanced markup spans fail the
// utterance with a NormalizationError instead of producing silently mangled
// references; the batch continues without it.
package normalize
