// Package align computes edit-distance alignments between hypothesis and
// reference token sequences.
//
// The dynamic program minimizes total edit operations with unit costs and
// breaks ties by preferring fewer substitutions, then fewer insertions, then
// fewer deletions — the scoring-tool convention, needed because several
// alignments can share an edit count while attributing errors differently.
// Word-level and character-level alignments are computed independently; the
// character level treats every rune of the normalized string, spaces
// included, as a unit.
package align
