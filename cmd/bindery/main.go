package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"bindery/internal/handoff"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		var exitErr *handoff.ExitError
		if errors.As(err, &exitErr) {
			// Forwarding handoff: the server already ran; mirror its code.
			os.Exit(exitErr.Code)
		}
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
