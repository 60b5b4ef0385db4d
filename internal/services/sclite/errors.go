package sclite

import (
	"fmt"
	"time"

	"asrscore/internal/services"
)

// ExternalToolTimeout reports an sclite invocation that ran past its bound.
// The run is a hard failure; there is no automatic retry.
type ExternalToolTimeout struct {
	Tool    string
	Timeout time.Duration
	Err     error
}

func (e *ExternalToolTimeout) Error() string {
	return fmt.Sprintf("%s did not finish within %s", e.Tool, e.Timeout)
}

func (e *ExternalToolTimeout) Unwrap() error {
	return e.Err
}

func (e *ExternalToolTimeout) Is(target error) bool {
	return target == services.ErrTimeout
}
