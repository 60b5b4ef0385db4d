package main

import (
	"fmt"
	"log/slog"

	"asrscore/internal/services"
)

// partialFailureError reports a run that produced a report while excluding
// utterances. It maps to exit code 2 rather than 1 so callers can distinguish
// a degraded report from rejected input.
type partialFailureError struct {
	excluded int
}

func (e *partialFailureError) Error() string {
	return fmt.Sprintf("report produced with %d utterance(s) excluded", e.excluded)
}

// reportProblems logs every per-utterance problem and converts a non-empty
// exclusion count into a partial failure. Data problems (missing ids,
// malformed markup) log at warn; anything else is an internal failure and
// logs at error.
func reportProblems(logger *slog.Logger, problems []error, excluded int) error {
	for _, problem := range problems {
		if services.IsInputError(problem) {
			logger.Warn("utterance excluded", slog.String("reason", problem.Error()))
		} else {
			logger.Error("utterance excluded", slog.String("reason", problem.Error()))
		}
	}
	if excluded > 0 {
		return &partialFailureError{excluded: excluded}
	}
	return nil
}
