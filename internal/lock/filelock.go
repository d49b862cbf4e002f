// Package lock serializes fecoding runs that target the same file.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mattjoyce/fecoding/internal/config"
)

// filePrefix names lock files. It differs from the temp file prefix so a
// sweep never removes a held lock.
const filePrefix = ".fecoding-lock-"

// ErrLocked reports that another process holds the lock.
var ErrLocked = errors.New("file is locked by another fecoding run")

// FileLock is an exclusive lock on a target file, implemented as a PID file
// plus flock(2) in a lock directory. The lock lives as long as the file
// descriptor stays open.
type FileLock struct {
	path   string
	target string
	f      *os.File
}

// PathFor returns the lock file used for target inside dir.
func PathFor(dir, target string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolve target path: %w", err)
	}
	return filepath.Join(dir, filePrefix+config.HashString(abs, 16)), nil
}

// Acquire takes the lock for target without blocking. It fails with an error
// wrapping ErrLocked when another process holds it.
func Acquire(dir, target string) (*FileLock, error) {
	if dir == "" {
		return nil, fmt.Errorf("lock directory is empty")
	}
	lockPath, err := PathFor(dir, target)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()
		if errors.Is(err, syscall.EWOULDBLOCK) {
			return nil, fmt.Errorf("%w: %s (held by pid %s)", ErrLocked, target, holder(lockPath))
		}
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	release := func() {
		_ = syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
		_ = f.Close()
	}
	if err := f.Truncate(0); err != nil {
		release()
		return nil, fmt.Errorf("truncate lock file: %w", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		release()
		return nil, fmt.Errorf("seek lock file: %w", err)
	}
	if _, err := fmt.Fprintf(f, "%d\n", os.Getpid()); err != nil {
		release()
		return nil, fmt.Errorf("write pid: %w", err)
	}
	if err := f.Sync(); err != nil {
		release()
		return nil, fmt.Errorf("sync lock file: %w", err)
	}

	return &FileLock{path: lockPath, target: target, f: f}, nil
}

func holder(lockPath string) string {
	b, err := os.ReadFile(lockPath)
	if err != nil || len(strings.TrimSpace(string(b))) == 0 {
		return "unknown"
	}
	return strings.TrimSpace(string(b))
}

func (l *FileLock) Path() string { return l.path }

func (l *FileLock) Target() string { return l.target }

// Release unlocks and closes the lock file. The file itself is left in place;
// removing it would let a waiting process lock a different inode.
func (l *FileLock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	_ = syscall.Flock(int(l.f.Fd()), syscall.LOCK_UN)
	err := l.f.Close()
	l.f = nil
	return err
}
