package normalize

import (
	"fmt"

	"asrscore/internal/services"
)

// NormalizationError reports malformed annotator markup in a transcript. The
// offending span is quoted so the source row can be inspected and fixed.
type NormalizationError struct {
	UtteranceID string
	Span        string
	Reason      string
}

func (e *NormalizationError) Error() string {
	if e.UtteranceID == "" {
		return fmt.Sprintf("normalize: %s in span %q", e.Reason, e.Span)
	}
	return fmt.Sprintf("normalize %s: %s in span %q", e.UtteranceID, e.Reason, e.Span)
}

// Is allows classification via errors.Is(err, services.ErrValidation).
func (e *NormalizationError) Is(target error) bool {
	return target == services.ErrValidation
}
