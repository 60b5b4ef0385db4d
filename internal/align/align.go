package align

import "strings"

// Result holds per-utterance error attribution for one alignment.
//
// Invariants: Correct+Substitutions+Deletions equals the reference length and
// Correct+Substitutions+Insertions equals the hypothesis length.
type Result struct {
	Correct       int `json:"correct"`
	Substitutions int `json:"substitutions"`
	Insertions    int `json:"insertions"`
	Deletions     int `json:"deletions"`
}

// Errors returns the total edit operations S+I+D.
func (r Result) Errors() int {
	return r.Substitutions + r.Insertions + r.Deletions
}

// ReferenceLength returns the aligned reference length N.
func (r Result) ReferenceLength() int {
	return r.Correct + r.Substitutions + r.Deletions
}

// HypothesisLength returns the aligned hypothesis length.
func (r Result) HypothesisLength() int {
	return r.Correct + r.Substitutions + r.Insertions
}

// Pair bundles the word-level and character-level results for one utterance.
type Pair struct {
	Word Result `json:"word"`
	Char Result `json:"char"`
}

// Strings aligns two normalized transcript strings at word and character level.
func Strings(hyp, ref string) Pair {
	return Pair{
		Word: Tokens(strings.Fields(hyp), strings.Fields(ref)),
		Char: Tokens([]rune(hyp), []rune(ref)),
	}
}

// cell tracks the best alignment reaching a DP state. Ordering is
// lexicographic over (errors, substitutions, insertions, deletions).
type cell struct {
	errs int
	subs int
	ins  int
	dels int
	corr int
}

func (c cell) better(other cell) bool {
	if c.errs != other.errs {
		return c.errs < other.errs
	}
	if c.subs != other.subs {
		return c.subs < other.subs
	}
	if c.ins != other.ins {
		return c.ins < other.ins
	}
	return c.dels < other.dels
}

// Tokens aligns a hypothesis token sequence against a reference token
// sequence, minimizing edit operations with the package tie-breaking order.
func Tokens[T comparable](hyp, ref []T) Result {
	prev := make([]cell, len(hyp)+1)
	curr := make([]cell, len(hyp)+1)

	for j := 1; j <= len(hyp); j++ {
		prev[j] = cell{errs: j, ins: j}
	}

	for i := 1; i <= len(ref); i++ {
		curr[0] = cell{errs: i, dels: i}
		for j := 1; j <= len(hyp); j++ {
			best := prev[j-1]
			if ref[i-1] == hyp[j-1] {
				best.corr++
			} else {
				best.errs++
				best.subs++
			}

			del := prev[j]
			del.errs++
			del.dels++
			if del.better(best) {
				best = del
			}

			ins := curr[j-1]
			ins.errs++
			ins.ins++
			if ins.better(best) {
				best = ins
			}

			curr[j] = best
		}
		prev, curr = curr, prev
	}

	final := prev[len(hyp)]
	return Result{
		Correct:       final.corr,
		Substitutions: final.subs,
		Insertions:    final.ins,
		Deletions:     final.dels,
	}
}
