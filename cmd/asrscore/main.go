package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	err := cmd.Execute()
	if err == nil {
		return
	}
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps command failures to the evaluation exit convention: 2 when a
// report was produced but utterances were excluded, 1 for everything else.
func exitCode(err error) int {
	var partial *partialFailureError
	if errors.As(err, &partial) {
		return 2
	}
	return 1
}
