package run

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"unicode/utf8"

	"github.com/clipfetch/clipfetch/pkg/logger"
)

var log = logger.Get("Runner")

// maxErrorOutput bounds the diagnostic excerpt attached to a failed
// invocation. The tail is kept because the tools being wrapped emit
// their actual error last, after pages of progress output.
const maxErrorOutput = 2000

type (
	// Runner executes a single external tool invocation and classifies
	// the outcome. Arguments are passed as a discrete list and are never
	// interpreted by a shell.
	Runner interface {
		Run(ctx context.Context, args []string) (string, error)
	}

	processRunner struct{}
)

// ExternalToolError is returned when a spawned tool terminates with a
// non-zero exit code (or cannot be spawned at all, in which case
// ExitCode is -1). Output holds the trailing portion of the combined
// stdout/stderr stream.
type ExternalToolError struct {
	ExitCode int
	Output   string
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("external tool exited with code %d: %s", e.ExitCode, e.Output)
}

func NewRunner() Runner {
	return &processRunner{}
}

// Run spawns the command described by args and blocks until it exits.
// Stdout and stderr are captured interleaved as one stream; the tools
// we wrap report progress and errors on either stream interchangeably.
// A failed invocation is reported immediately, never retried.
func (runner *processRunner) Run(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "", errors.New("cannot run empty invocation")
	}

	log.Debugf("Spawning %v\n", args)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		combined := truncateTail(string(output), maxErrorOutput)

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Warnf("Invocation of %s failed with exit code %d\n", args[0], exitErr.ExitCode())
			return "", &ExternalToolError{ExitCode: exitErr.ExitCode(), Output: combined}
		}

		// Spawn failure (e.g. binary missing from PATH) rather than a
		// tool-reported error.
		log.Warnf("Invocation of %s could not be spawned: %s\n", args[0], err.Error())
		if combined == "" {
			combined = err.Error()
		}
		return "", &ExternalToolError{ExitCode: -1, Output: combined}
	}

	return string(output), nil
}

// truncateTail keeps at most limit bytes from the end of output,
// advancing past any partial rune left at the cut point so the result
// remains valid UTF-8.
func truncateTail(output string, limit int) string {
	if len(output) <= limit {
		return output
	}

	cut := len(output) - limit
	for cut < len(output) && !utf8.RuneStart(output[cut]) {
		cut++
	}

	return output[cut:]
}
