package refs

import (
	"fmt"

	"asrscore/internal/manifest"
	"asrscore/internal/normalize"
	"asrscore/internal/services"
)

// Reference variant names, in selection order.
const (
	VariantWithDisfluency    = "with_disfluency"
	VariantWithoutDisfluency = "without_disfluency"
)

// Entry is one reference line: a synthetic alignment tag, the real utterance
// id, and the normalized text.
type Entry struct {
	Tag  string
	ID   string
	Text string
}

// Set holds both reference variants for a split, in manifest order.
type Set struct {
	WithDisfluency    []Entry
	WithoutDisfluency []Entry
}

// Tag formats the fixed-width sequential alignment tag for a row index.
func Tag(index int) string {
	return fmt.Sprintf("utt%06d", index+1)
}

// Build converts manifest rows into the two reference variants. The manifest
// columns are already normalized at split-preparation time; Build validates
// and indexes them. A row missing a reference variant fails the build.
func Build(utterances []manifest.Utterance) (*Set, error) {
	set := &Set{
		WithDisfluency:    make([]Entry, 0, len(utterances)),
		WithoutDisfluency: make([]Entry, 0, len(utterances)),
	}
	for i, utt := range utterances {
		if utt.ID == "" {
			return nil, services.Wrap(services.ErrValidation, "refs", "build",
				fmt.Sprintf("row %d has empty utterance id", i+1), nil)
		}
		if utt.WithDisfluency == "" && utt.WithoutDisfluency == "" && utt.Text != "" {
			return nil, services.Wrap(services.ErrValidation, "refs", "build",
				fmt.Sprintf("utterance %s has no normalized reference variants", utt.ID), nil)
		}
		tag := Tag(i)
		set.WithDisfluency = append(set.WithDisfluency, Entry{Tag: tag, ID: utt.ID, Text: utt.WithDisfluency})
		set.WithoutDisfluency = append(set.WithoutDisfluency, Entry{Tag: tag, ID: utt.ID, Text: utt.WithoutDisfluency})
	}
	return set, nil
}

// BuildFromRaw normalizes raw manifest text with the given normalizer and
// builds both variants in one pass. Utterances with malformed markup are
// skipped and their errors returned alongside the partial set.
func BuildFromRaw(n *normalize.Normalizer, utterances []manifest.Utterance) (*Set, []error) {
	set := &Set{
		WithDisfluency:    make([]Entry, 0, len(utterances)),
		WithoutDisfluency: make([]Entry, 0, len(utterances)),
	}
	var errs []error
	for _, utt := range utterances {
		withDisfl, err := n.Normalize(utt.ID, utt.Text, false)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		withoutDisfl, err := n.Normalize(utt.ID, utt.Text, true)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		tag := Tag(len(set.WithDisfluency))
		set.WithDisfluency = append(set.WithDisfluency, Entry{Tag: tag, ID: utt.ID, Text: withDisfl})
		set.WithoutDisfluency = append(set.WithoutDisfluency, Entry{Tag: tag, ID: utt.ID, Text: withoutDisfl})
	}
	return set, errs
}

// Variant returns the entries for a named variant.
func (s *Set) Variant(name string) ([]Entry, error) {
	switch name {
	case VariantWithDisfluency:
		return s.WithDisfluency, nil
	case VariantWithoutDisfluency:
		return s.WithoutDisfluency, nil
	default:
		return nil, fmt.Errorf("unknown reference variant %q", name)
	}
}

// TagToID returns the synthetic-tag to real-id mapping for reporting.
func (s *Set) TagToID() map[string]string {
	mapping := make(map[string]string, len(s.WithDisfluency))
	for _, entry := range s.WithDisfluency {
		mapping[entry.Tag] = entry.ID
	}
	return mapping
}

// Len returns the number of utterances in the set.
func (s *Set) Len() int {
	return len(s.WithDisfluency)
}
