package score

import "asrscore/internal/align"

// Selection records the chosen reference variant and its alignment counts for
// one utterance.
type Selection struct {
	ID      string       `json:"id"`
	Variant string       `json:"variant"`
	Word    align.Result `json:"word"`
	Char    align.Result `json:"char"`
}

// Report is the corpus-level metrics output.
type Report struct {
	WER         float64     `json:"wer"`
	CER         float64     `json:"cer"`
	NUtterances int         `json:"n_utterances"`
	NExcluded   int         `json:"n_excluded"`
	Utterances  []Selection `json:"utterances,omitempty"`
}

// choose picks the reference variant with the lower word error count for one
// utterance. Ties fall to the lower character error count, then to variant
// order. The choice is made once on word-level error and reused for character
// aggregation.
func choose(id string, withDisfl, withoutDisfl align.Pair) Selection {
	pick := func(variant string, pair align.Pair) Selection {
		return Selection{ID: id, Variant: variant, Word: pair.Word, Char: pair.Char}
	}
	first := withDisfl.Word.Errors()
	second := withoutDisfl.Word.Errors()
	switch {
	case first < second:
		return pick(variantWith, withDisfl)
	case second < first:
		return pick(variantWithout, withoutDisfl)
	case withoutDisfl.Char.Errors() < withDisfl.Char.Errors():
		return pick(variantWithout, withoutDisfl)
	default:
		return pick(variantWith, withDisfl)
	}
}

// aggregate sums selected per-utterance counts into corpus WER/CER. With clip
// enabled, per-utterance errors are capped at the reference length so a single
// runaway hypothesis cannot push its utterance error rate past 1.0.
func aggregate(selections []Selection, nExcluded int, clip, breakdown bool) *Report {
	var wordErrs, wordTotal, charErrs, charTotal int
	for _, sel := range selections {
		wordErrs += clippedErrors(sel.Word, clip)
		wordTotal += sel.Word.ReferenceLength()
		charErrs += clippedErrors(sel.Char, clip)
		charTotal += sel.Char.ReferenceLength()
	}

	report := &Report{
		NUtterances: len(selections),
		NExcluded:   nExcluded,
	}
	if wordTotal > 0 {
		report.WER = float64(wordErrs) / float64(wordTotal)
	}
	if charTotal > 0 {
		report.CER = float64(charErrs) / float64(charTotal)
	}
	if breakdown {
		report.Utterances = selections
	}
	return report
}

func clippedErrors(r align.Result, clip bool) int {
	errs := r.Errors()
	if clip && r.ReferenceLength() > 0 && errs > r.ReferenceLength() {
		return r.ReferenceLength()
	}
	return errs
}
