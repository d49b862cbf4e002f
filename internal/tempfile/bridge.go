// Package tempfile hands buffer text to the helper script through files in
// the plugin directory.
package tempfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mattjoyce/fecoding/internal/config"
)

// Prefix starts the name of every temp file the bridge creates.
const Prefix = ".__fecodingtemp__"

// SweepReport summarizes a sweep run.
type SweepReport struct {
	DeletedFiles int
}

// Bridge writes buffer text to per-invocation files inside dir.
//
// dir is the plugin installation directory rather than the system temp
// directory so the script finds the files under a stable location. Each call
// to Write gets its own file, so concurrent commands never share one.
type Bridge struct {
	dir   string
	now   func() time.Time
	newID func() string
}

// New creates a bridge rooted at dir.
func New(dir string) (*Bridge, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, fmt.Errorf("temp file directory is empty")
	}

	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return nil, fmt.Errorf("resolve temp file directory: %w", err)
	}

	return &Bridge{
		dir:   abs,
		now:   time.Now,
		newID: uuid.NewString,
	}, nil
}

// Dir returns the directory temp files are written to.
func (b *Bridge) Dir() string {
	return b.dir
}

// Write stores text as UTF-8 in a new temp file and returns its path. owner
// identifies the buffer (usually its file name) and is hashed into the name.
func (b *Bridge) Write(owner, text string) (string, error) {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return "", fmt.Errorf("create temp file directory: %w", err)
	}

	path := filepath.Join(b.dir, b.name(owner))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := f.WriteString(text); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close temp file: %w", err)
	}

	return path, nil
}

// Remove deletes a file created by Write. A file that is already gone is not
// an error. Paths outside the bridge directory are refused.
func (b *Bridge) Remove(path string) error {
	if err := b.owns(path); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove temp file: %w", err)
	}
	return nil
}

// Sweep removes temp files older than olderThan, left behind when a host was
// killed while the script was running.
func (b *Bridge) Sweep(ctx context.Context, olderThan time.Duration) (SweepReport, error) {
	if err := ctx.Err(); err != nil {
		return SweepReport{}, err
	}
	if olderThan <= 0 {
		return SweepReport{}, fmt.Errorf("olderThan must be positive")
	}

	entries, err := os.ReadDir(b.dir)
	if os.IsNotExist(err) {
		return SweepReport{}, nil
	}
	if err != nil {
		return SweepReport{}, fmt.Errorf("read temp file directory: %w", err)
	}

	cutoff := b.now().Add(-olderThan)
	report := SweepReport{}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), Prefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return report, fmt.Errorf("read temp file info %q: %w", entry.Name(), err)
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(b.dir, entry.Name())); err != nil && !os.IsNotExist(err) {
			return report, fmt.Errorf("remove temp file %q: %w", entry.Name(), err)
		}
		report.DeletedFiles++
	}

	return report, nil
}

func (b *Bridge) name(owner string) string {
	if owner == "" {
		owner = "scratch"
	}
	return Prefix + "-" + config.HashString(owner, 12) + "-" + b.newID()
}

func (b *Bridge) owns(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve temp file path: %w", err)
	}
	if filepath.Dir(abs) != b.dir {
		return fmt.Errorf("temp file %q is outside %q", path, b.dir)
	}
	if !strings.HasPrefix(filepath.Base(abs), Prefix) {
		return fmt.Errorf("temp file %q does not carry the %s prefix", path, Prefix)
	}
	return nil
}
