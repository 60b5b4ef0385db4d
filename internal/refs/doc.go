// Package refs builds and persists the per-split reference transcript files.
//
// Each split yields two trn files, one per reference variant, with one line
// per utterance in manifest order: "{normalized_text} (utt%06d)". The
// alignment tool requires its own id format, so utterances get fixed-width
// sequential tags; the tag-to-real-id mapping stays in the Set for reporting.
package refs
