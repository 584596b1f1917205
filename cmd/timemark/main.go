package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"timemark/internal/status"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(report(err, os.Stdout, os.Stderr))
	}
}

// report prints err and returns the process exit code. User-state statuses
// (nothing selected, no media loaded) are normal outcomes surfaced as a
// message, not failures.
func report(err error, stdout, stderr io.Writer) int {
	if status.IsUserStatus(err) {
		fmt.Fprintln(stdout, err)
		return 0
	}
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, err)
	}
	return 1
}
