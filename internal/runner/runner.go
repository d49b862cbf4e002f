// Package runner invokes the fecoding helper script and captures its output.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/mattjoyce/fecoding/internal/log"
	"github.com/mattjoyce/fecoding/internal/protocol"
)

const (
	// UnknownFile is passed as --filepath for buffers without a file.
	UnknownFile = "?"

	// maxLoggedOutput caps the amount of script output copied into log records.
	maxLoggedOutput = 64 * 1024
)

// Invocation describes one run of the helper script.
type Invocation struct {
	Interpreter string // node binary, bare name or path
	Script      string // path to scripts/bin.js
	Action      string
	ActionArg   string
	ConfigPath  string
	FilePath    string // "" is sent as UnknownFile
	TempPath    string
}

// Argv returns the command line. Flag names and order are what bin.js parses.
func (inv Invocation) Argv() []string {
	filePath := inv.FilePath
	if filePath == "" {
		filePath = UnknownFile
	}
	return []string{
		inv.Interpreter,
		inv.Script,
		inv.Action,
		"--args", inv.ActionArg,
		"--confpath", inv.ConfigPath,
		"--filepath", filePath,
		"--temppath", inv.TempPath,
	}
}

// ExecutionError reports a run that produced no usable output: the
// interpreter is missing, the process could not start, or the output has no
// sentinel.
type ExecutionError struct {
	Op     string
	Argv   []string
	Output []byte
	Err    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("command %s %s: %v", quoteArgv(e.Argv), e.Op, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Runner executes invocations synchronously.
type Runner struct {
	exec   Executor
	debug  bool
	logger *slog.Logger
}

// New creates a Runner. With debug set, command lines and raw output are logged.
func New(exec Executor, debug bool) *Runner {
	return &Runner{
		exec:   exec,
		debug:  debug,
		logger: log.WithComponent("runner"),
	}
}

// Run executes inv and returns its combined output. The call blocks until the
// script exits. The exit status is not inspected; output without the sentinel
// is an *ExecutionError wrapping protocol.ErrSentinelMissing.
func (r *Runner) Run(ctx context.Context, inv Invocation) ([]byte, error) {
	argv := inv.Argv()
	logger := r.logger.With("action", inv.Action)

	interpreter, err := r.exec.LookPath(inv.Interpreter)
	if err != nil {
		logger.Error("node.js interpreter not found", "interpreter", inv.Interpreter, "error", err)
		return nil, &ExecutionError{Op: "locate interpreter", Argv: argv, Err: err}
	}
	argv[0] = interpreter

	if r.debug {
		logger.Info("fecoding command", "command", quoteArgv(argv))
	}

	out, err := r.exec.CombinedOutput(ctx, argv[0], argv[1:])
	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case ctx.Err() != nil:
			// a killed script also reports *exec.ExitError, cancellation wins
			logger.Warn("script interrupted", "error", ctx.Err())
			return out, &ExecutionError{Op: "interrupted", Argv: argv, Output: out, Err: ctx.Err()}
		case errors.As(err, &exitErr):
			logger.Warn("script exited with non-zero status", "exit_code", exitErr.ExitCode())
		default:
			logger.Error("failed to spawn script", "error", err)
			return out, &ExecutionError{Op: "spawn", Argv: argv, Output: out, Err: err}
		}
	}

	if r.debug {
		logger.Info("script output", "output", truncateOutput(out))
	}

	switch n := protocol.CountSentinels(out); {
	case n == 0:
		logger.Error("script created invalid output", "output", truncateOutput(out))
		return out, &ExecutionError{Op: "created invalid output", Argv: argv, Output: out, Err: protocol.ErrSentinelMissing}
	case n > 1:
		logger.Warn("output sentinel appears more than once, using the first", "count", n)
	}

	return out, nil
}

func quoteArgv(argv []string) string {
	if len(argv) == 0 {
		return `""`
	}
	return `"` + strings.Join(argv, `" "`) + `"`
}

func truncateOutput(out []byte) string {
	if len(out) > maxLoggedOutput {
		return string(out[:maxLoggedOutput])
	}
	return string(out)
}
