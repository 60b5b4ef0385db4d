package score

import (
	"fmt"

	"asrscore/internal/services"
)

// MissingHypothesisError reports a reference utterance with no hypothesis.
// The utterance is excluded from corpus totals, never scored as zero error.
type MissingHypothesisError struct {
	ID string
}

func (e *MissingHypothesisError) Error() string {
	return fmt.Sprintf("utterance %s has no hypothesis", e.ID)
}

func (e *MissingHypothesisError) Is(target error) bool {
	return target == services.ErrNotFound
}

// MissingReferenceError reports a hypothesis id absent from the reference set.
type MissingReferenceError struct {
	ID string
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("hypothesis %s has no reference", e.ID)
}

func (e *MissingReferenceError) Is(target error) bool {
	return target == services.ErrNotFound
}
