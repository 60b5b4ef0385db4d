package manifest

import (
	"fmt"

	"asrscore/internal/services"
)

// SchemaError reports a required column missing from an input table.
type SchemaError struct {
	Table  string
	Column string
	Header []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: required column %q not in header %v", e.Table, e.Column, e.Header)
}

// Is allows classification via errors.Is(err, services.ErrSchema).
func (e *SchemaError) Is(target error) bool {
	return target == services.ErrSchema
}
