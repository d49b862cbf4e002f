package runner

import (
	"context"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// terminationGracePeriod is how long a cancelled script has to exit after
// SIGTERM before it is killed and its output pipe is closed.
const terminationGracePeriod = time.Second

//go:generate mockgen -destination=mocks/mock_executor.go -package=mocks github.com/mattjoyce/fecoding/internal/runner Executor

// Executor spawns external programs.
type Executor interface {
	// LookPath resolves an executable. Bare names are searched in PATH, paths
	// are checked directly.
	LookPath(file string) (string, error)

	// CombinedOutput runs name with args and returns stdout and stderr
	// interleaved. A non-zero exit is reported as *exec.ExitError alongside
	// the captured output.
	CombinedOutput(ctx context.Context, name string, args []string) ([]byte, error)
}

// SystemExecutor runs programs through os/exec with the current environment.
type SystemExecutor struct{}

var _ Executor = SystemExecutor{}

func (SystemExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (SystemExecutor) CombinedOutput(ctx context.Context, name string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	// node resolves its own modules the way a login shell would
	cmd.Env = os.Environ()
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	// a grandchild still holding the pipe must not keep Wait blocked
	cmd.WaitDelay = terminationGracePeriod
	return cmd.CombinedOutput()
}
