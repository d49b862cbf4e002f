package editor

import (
	"fmt"
	"os"
	"slices"
	"sync"
)

// Buffer is an in-memory document implementing Editor. The CLI loads a file
// into a Buffer, runs a command against it, and saves it back.
type Buffer struct {
	mu        sync.Mutex
	path      string
	text      []rune
	selection []Region
	viewport  Point
	folds     []Region
	opened    []string
	dirty     bool
	notifier  Notifier
}

var _ Editor = (*Buffer)(nil)

// NewBuffer creates a buffer holding text. path may be empty for a scratch
// buffer. A nil notifier discards messages and declines confirmations.
func NewBuffer(path, text string, n Notifier) *Buffer {
	if n == nil {
		n = discardNotifier{}
	}
	return &Buffer{
		path:      path,
		text:      []rune(text),
		selection: []Region{{A: 0, B: 0}},
		notifier:  n,
	}
}

// OpenBuffer loads the file at path.
func OpenBuffer(path string, n Notifier) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open buffer: %w", err)
	}
	return NewBuffer(path, string(data), n), nil
}

// String returns the whole buffer text.
func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.text)
}

// Dirty reports whether the buffer changed since it was loaded or saved.
func (b *Buffer) Dirty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dirty
}

// Save writes the buffer back to its file, keeping the file mode.
func (b *Buffer) Save() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.path == "" {
		return fmt.Errorf("buffer has no file name")
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(b.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(b.path, []byte(string(b.text)), mode); err != nil {
		return fmt.Errorf("save buffer: %w", err)
	}
	b.dirty = false
	return nil
}

// Opened returns the files requested through OpenFile, in order.
func (b *Buffer) Opened() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.opened...)
}

func (b *Buffer) FileName() string {
	return b.path
}

func (b *Buffer) Size() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.text)
}

func (b *Buffer) clamp(r Region) (int, int) {
	begin := min(max(r.Begin(), 0), len(b.text))
	end := min(max(r.End(), 0), len(b.text))
	return begin, end
}

func (b *Buffer) Text(r Region) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	begin, end := b.clamp(r)
	return string(b.text[begin:end])
}

// Replace swaps the text in r. Folds touching r are dropped.
func (b *Buffer) Replace(r Region, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	begin, end := b.clamp(r)
	repl := []rune(text)
	b.text = slices.Concat(b.text[:begin], repl, b.text[end:])
	b.dirty = true

	delta := len(repl) - (end - begin)
	kept := b.folds[:0]
	for _, f := range b.folds {
		switch {
		case f.End() <= begin:
			kept = append(kept, f)
		case f.Begin() >= end:
			kept = append(kept, Region{A: f.Begin() + delta, B: f.End() + delta})
		}
	}
	b.folds = kept
}

func (b *Buffer) Selection() []Region {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Region(nil), b.selection...)
}

func (b *Buffer) SetSelection(regions []Region) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selection = append([]Region(nil), regions...)
}

func (b *Buffer) ViewportPosition() Point {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.viewport
}

func (b *Buffer) SetViewportPosition(p Point) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.viewport = p
}

func (b *Buffer) FoldedRegions() []Region {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Region(nil), b.folds...)
}

// Fold hides r. Empty regions and regions overlapping an existing fold are ignored.
func (b *Buffer) Fold(r Region) {
	b.mu.Lock()
	defer b.mu.Unlock()

	begin, end := b.clamp(r)
	if begin == end {
		return
	}
	nr := Region{A: begin, B: end}
	for _, f := range b.folds {
		if f.Intersects(nr) {
			return
		}
	}
	b.folds = append(b.folds, nr)
	slices.SortFunc(b.folds, func(x, y Region) int { return x.Begin() - y.Begin() })
}

// Unfold removes every fold intersecting r.
func (b *Buffer) Unfold(r Region) {
	b.mu.Lock()
	defer b.mu.Unlock()

	kept := b.folds[:0]
	for _, f := range b.folds {
		if !f.Intersects(r) {
			kept = append(kept, f)
		}
	}
	b.folds = kept
}

func (b *Buffer) OpenFile(path string) {
	b.mu.Lock()
	b.opened = append(b.opened, path)
	b.mu.Unlock()
}

func (b *Buffer) ShowModal(msg string) { b.notifier.ShowModal(msg) }
func (b *Buffer) ShowStatus(msg string) { b.notifier.ShowStatus(msg) }
func (b *Buffer) ErrorDialog(msg string) { b.notifier.ErrorDialog(msg) }
func (b *Buffer) ConfirmDialog(msg string) bool { return b.notifier.ConfirmDialog(msg) }

type discardNotifier struct{}

func (discardNotifier) ShowModal(string) {}
func (discardNotifier) ShowStatus(string) {}
func (discardNotifier) ErrorDialog(string) {}
func (discardNotifier) ConfirmDialog(string) bool { return false }
