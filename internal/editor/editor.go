// Package editor defines the editor operations fecoding needs and a headless,
// file-backed implementation of them.
//
// Offsets are character (rune) offsets, as editors report them.
package editor

//go:generate mockgen -destination=mocks/mock_editor.go -package=mocks github.com/mattjoyce/fecoding/internal/editor Editor

// Region is a span of text between A and B. A may be greater than B for
// selections made backwards.
type Region struct {
	A, B int
}

// Begin returns the smaller offset.
func (r Region) Begin() int {
	return min(r.A, r.B)
}

// End returns the larger offset.
func (r Region) End() int {
	return max(r.A, r.B)
}

// Len returns the number of characters covered.
func (r Region) Len() int {
	return r.End() - r.Begin()
}

// Empty reports whether the region covers no characters.
func (r Region) Empty() bool {
	return r.A == r.B
}

// Intersects reports whether r and o share at least one character.
func (r Region) Intersects(o Region) bool {
	return r.Begin() < o.End() && o.Begin() < r.End()
}

// Point is a viewport scroll position.
type Point struct {
	X, Y float64
}

// Notifier shows messages to the user.
type Notifier interface {
	ShowModal(msg string)
	ShowStatus(msg string)
	ErrorDialog(msg string)
	ConfirmDialog(msg string) bool
}

// Editor is the view of an open document fecoding reads from and writes to.
type Editor interface {
	// FileName returns the file backing the buffer, or "" for scratch buffers.
	FileName() string
	Size() int
	Text(r Region) string
	Replace(r Region, text string)

	Selection() []Region
	SetSelection(regions []Region)

	ViewportPosition() Point
	SetViewportPosition(p Point)

	FoldedRegions() []Region
	Fold(r Region)
	Unfold(r Region)

	OpenFile(path string)

	Notifier
}

// Snapshot is the view state captured before a command runs and restored after
// the buffer is rewritten.
type Snapshot struct {
	Selection []Region
	Viewport  Point
	// Folded holds the text of folded regions. Offsets shift when the buffer is
	// rewritten, so folds are located again by text.
	Folded []string
}

// Capture records the selection, scroll position and folded text of ed.
func Capture(ed Editor) Snapshot {
	sel := ed.Selection()
	snap := Snapshot{
		Selection: append([]Region(nil), sel...),
		Viewport:  ed.ViewportPosition(),
	}
	for _, r := range ed.FoldedRegions() {
		snap.Folded = append(snap.Folded, ed.Text(r))
	}
	return snap
}

// Whole returns the region covering the entire buffer.
func Whole(ed Editor) Region {
	return Region{A: 0, B: ed.Size()}
}
