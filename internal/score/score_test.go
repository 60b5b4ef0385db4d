package score

import (
	"context"
	"errors"
	"testing"

	"asrscore/internal/align"
	"asrscore/internal/manifest"
	"asrscore/internal/normalize"
	"asrscore/internal/refs"
	"asrscore/internal/services"
)

func wordPair(subs, ins, dels, correct int) align.Pair {
	return align.Pair{Word: align.Result{
		Substitutions: subs,
		Insertions:    ins,
		Deletions:     dels,
		Correct:       correct,
	}}
}

func TestChoosePrefersFewerWordErrors(t *testing.T) {
	withDisfl := wordPair(1, 0, 0, 4)
	withoutDisfl := wordPair(0, 0, 2, 3)

	sel := choose("u1", withDisfl, withoutDisfl)
	if sel.Variant != refs.VariantWithDisfluency {
		t.Fatalf("choose picked %s, want %s", sel.Variant, refs.VariantWithDisfluency)
	}
	if got := sel.Word.Errors(); got != 1 {
		t.Fatalf("selected word errors = %d, want 1", got)
	}
}

func TestChooseTieFallsToCharErrors(t *testing.T) {
	withDisfl := wordPair(1, 0, 0, 4)
	withDisfl.Char = align.Result{Substitutions: 5, Correct: 20}
	withoutDisfl := wordPair(0, 1, 0, 5)
	withoutDisfl.Char = align.Result{Substitutions: 2, Correct: 23}

	sel := choose("u1", withDisfl, withoutDisfl)
	if sel.Variant != refs.VariantWithoutDisfluency {
		t.Fatalf("choose picked %s, want %s on char tie-break", sel.Variant, refs.VariantWithoutDisfluency)
	}
}

func TestChooseFullTiePrefersWithDisfluency(t *testing.T) {
	withDisfl := wordPair(1, 0, 0, 4)
	withoutDisfl := wordPair(1, 0, 0, 4)

	sel := choose("u1", withDisfl, withoutDisfl)
	if sel.Variant != refs.VariantWithDisfluency {
		t.Fatalf("choose picked %s, want first variant on full tie", sel.Variant)
	}
}

func TestAggregateClipsRunawayUtterance(t *testing.T) {
	// One word of reference, three errors of hypothesis.
	runaway := Selection{ID: "u1", Variant: refs.VariantWithDisfluency,
		Word: align.Result{Substitutions: 1, Insertions: 2}}
	clean := Selection{ID: "u2", Variant: refs.VariantWithDisfluency,
		Word: align.Result{Correct: 3}}

	clipped := aggregate([]Selection{runaway, clean}, 0, true, false)
	if want := 1.0 / 4.0; clipped.WER != want {
		t.Fatalf("clipped WER = %v, want %v", clipped.WER, want)
	}

	raw := aggregate([]Selection{runaway, clean}, 0, false, false)
	if want := 3.0 / 4.0; raw.WER != want {
		t.Fatalf("unclipped WER = %v, want %v", raw.WER, want)
	}
}

func TestAggregateEmptySelections(t *testing.T) {
	report := aggregate(nil, 2, true, false)
	if report.WER != 0 || report.CER != 0 {
		t.Fatalf("empty aggregate produced WER=%v CER=%v, want zeros", report.WER, report.CER)
	}
	if report.NExcluded != 2 {
		t.Fatalf("NExcluded = %d, want 2", report.NExcluded)
	}
}

func testSet(t *testing.T, utterances []manifest.Utterance) *refs.Set {
	t.Helper()
	set, err := refs.Build(utterances)
	if err != nil {
		t.Fatalf("building reference set: %v", err)
	}
	return set
}

func TestScoreSelectsBetterVariantPerUtterance(t *testing.T) {
	set := testSet(t, []manifest.Utterance{
		{ID: "u1", Text: "hello world this is fine",
			WithDisfluency:    "HELLO WORLD THIS IS FINE",
			WithoutDisfluency: "HELLO WORLD THIS IS FINE"},
		{ID: "u2", Text: "um hello there",
			WithDisfluency:    "UM HELLO THERE",
			WithoutDisfluency: "HELLO THERE"},
		{ID: "u3", Text: "good day",
			WithDisfluency:    "GOOD DAY",
			WithoutDisfluency: "GOOD DAY"},
	})
	hypotheses := []manifest.Hypothesis{
		{ID: "u1", Text: "hello world this is fine"},
		{ID: "u2", Text: "hello there"},
		{ID: "u3", Text: "good night"},
	}

	scorer := New(normalize.New(), &BuiltinEngine{Workers: 2}, WithBreakdown(true))
	report, errs := scorer.Score(context.Background(), hypotheses, set)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if report.NUtterances != 3 || report.NExcluded != 0 {
		t.Fatalf("counts = (%d, %d), want (3, 0)", report.NUtterances, report.NExcluded)
	}

	// u2 scores clean against the disfluency-free variant, so the only word
	// error in the corpus is the u3 substitution over 5+2+2 reference words.
	if want := 1.0 / 9.0; report.WER != want {
		t.Fatalf("WER = %v, want %v", report.WER, want)
	}
	byID := make(map[string]Selection, len(report.Utterances))
	for _, sel := range report.Utterances {
		byID[sel.ID] = sel
	}
	if byID["u2"].Variant != refs.VariantWithoutDisfluency {
		t.Fatalf("u2 variant = %s, want %s", byID["u2"].Variant, refs.VariantWithoutDisfluency)
	}
	if byID["u1"].Word.Errors() != 0 || byID["u3"].Word.Errors() != 1 {
		t.Fatalf("per-utterance errors u1=%d u3=%d, want 0 and 1",
			byID["u1"].Word.Errors(), byID["u3"].Word.Errors())
	}
}

func TestScoreExcludesUnmatchedIDs(t *testing.T) {
	set := testSet(t, []manifest.Utterance{
		{ID: "u1", Text: "hello", WithDisfluency: "HELLO", WithoutDisfluency: "HELLO"},
		{ID: "u2", Text: "goodbye", WithDisfluency: "GOODBYE", WithoutDisfluency: "GOODBYE"},
	})
	hypotheses := []manifest.Hypothesis{
		{ID: "u1", Text: "hello"},
		{ID: "stray", Text: "noise"},
	}

	scorer := New(normalize.New(), &BuiltinEngine{})
	report, errs := scorer.Score(context.Background(), hypotheses, set)
	if report == nil {
		t.Fatal("expected partial report despite exclusions")
	}
	if report.NUtterances != 1 || report.NExcluded != 2 {
		t.Fatalf("counts = (%d, %d), want (1, 2)", report.NUtterances, report.NExcluded)
	}
	if report.WER != 0 {
		t.Fatalf("WER = %v, exclusions must not contribute error mass", report.WER)
	}

	var missingHyp *MissingHypothesisError
	var missingRef *MissingReferenceError
	for _, err := range errs {
		switch {
		case errors.As(err, &missingHyp):
		case errors.As(err, &missingRef):
		}
		if !errors.Is(err, services.ErrNotFound) {
			t.Fatalf("exclusion error %v does not match ErrNotFound", err)
		}
	}
	if missingHyp == nil || missingHyp.ID != "u2" {
		t.Fatalf("missing hypothesis error = %+v, want id u2", missingHyp)
	}
	if missingRef == nil || missingRef.ID != "stray" {
		t.Fatalf("missing reference error = %+v, want id stray", missingRef)
	}
}

func TestScoreCanceledContext(t *testing.T) {
	set := testSet(t, []manifest.Utterance{
		{ID: "u1", Text: "hello", WithDisfluency: "HELLO", WithoutDisfluency: "HELLO"},
	})
	hypotheses := []manifest.Hypothesis{{ID: "u1", Text: "hello"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	scorer := New(normalize.New(), &BuiltinEngine{})
	report, errs := scorer.Score(ctx, hypotheses, set)
	if report != nil {
		t.Fatalf("expected nil report on canceled context, got %+v", report)
	}
	found := false
	for _, err := range errs {
		if errors.Is(err, context.Canceled) {
			found = true
		}
	}
	if !found {
		t.Fatalf("errors %v do not include context.Canceled", errs)
	}
}
