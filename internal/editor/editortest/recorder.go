// Package editortest provides helpers for tests that drive an editor.Buffer.
package editortest

import "sync"

// Recorder is an editor.Notifier that keeps every message it is shown.
type Recorder struct {
	mu       sync.Mutex
	Confirm  bool // answer returned by ConfirmDialog
	Modals   []string
	Statuses []string
	Errors   []string
	Confirms []string
}

func (r *Recorder) ShowModal(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Modals = append(r.Modals, msg)
}

func (r *Recorder) ShowStatus(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Statuses = append(r.Statuses, msg)
}

func (r *Recorder) ErrorDialog(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, msg)
}

func (r *Recorder) ConfirmDialog(msg string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Confirms = append(r.Confirms, msg)
	return r.Confirm
}

// Silent reports whether nothing at all was shown.
func (r *Recorder) Silent() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Modals)+len(r.Statuses)+len(r.Errors)+len(r.Confirms) == 0
}
