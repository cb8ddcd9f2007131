package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"

	"ptalk-server/api/ptalk"
)

var unknownCommandPattern = regexp.MustCompile(`unknown command "([^"]+)"`)

// Dependencies wires runtime services.
type Dependencies struct {
	API     ptalk.PTalkAPI
	Stdin   io.Reader
	Version string
}

var errVersionShown = fmt.Errorf("version shown")

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return ""
}

// Execute runs the CLI with injected dependencies and returns the exit code.
func Execute(ctx context.Context, args []string, deps Dependencies, stdout io.Writer, stderr io.Writer) int {
	cmd := NewRootCommand(deps)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil || err == errVersionShown {
		return 0
	}
	var controlled *exitError
	if errors.As(err, &controlled) {
		return controlled.code
	}

	if matches := unknownCommandPattern.FindStringSubmatch(err.Error()); len(matches) > 1 {
		_, _ = fmt.Fprintf(stderr, "No such command '%s'\n", matches[1])
		return 2
	}

	if msg := err.Error(); msg != "" {
		_, _ = fmt.Fprintln(stderr, msg)
	}
	return 1
}
