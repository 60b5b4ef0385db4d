package latency

import (
	"fmt"

	"asrscore/internal/services"
)

// MissingAlignmentError reports an utterance with partial events but no
// speech-start entry in the forced-alignment table. The utterance is excluded
// from aggregates, never treated as zero latency.
type MissingAlignmentError struct {
	ID string
}

func (e *MissingAlignmentError) Error() string {
	return fmt.Sprintf("utterance %s has no speech-start alignment", e.ID)
}

func (e *MissingAlignmentError) Is(target error) bool {
	return target == services.ErrNotFound
}
