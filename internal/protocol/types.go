package protocol

import (
	"bytes"
	"encoding/json"
)

// Sentinel marks the end of diagnostics and the start of the JSON payload.
const Sentinel = "*** Fecoding output json ***"

var sentinelBytes = []byte(Sentinel)

// Action is the closed set of editor actions the script can request.
type Action int

const (
	ActionUnknown Action = iota
	ActionShowMessage
	ActionStatusMessage
	ActionOpenFile
	ActionUpdateView
)

var actionTags = map[string]Action{
	"show_message":   ActionShowMessage,
	"status_message": ActionStatusMessage,
	"open_file":      ActionOpenFile,
	"update_view":    ActionUpdateView,
}

// ParseAction maps a wire tag to an Action.
func ParseAction(tag string) (Action, bool) {
	a, ok := actionTags[tag]
	return a, ok
}

func (a Action) String() string {
	switch a {
	case ActionShowMessage:
		return "show_message"
	case ActionStatusMessage:
		return "status_message"
	case ActionOpenFile:
		return "open_file"
	case ActionUpdateView:
		return "update_view"
	default:
		return "unknown"
	}
}

// Envelope is the JSON object printed after the sentinel.
type Envelope struct {
	Flag    json.RawMessage `json:"flag,omitempty"` // presence matters, value does not
	Action  string          `json:"action,omitempty"`
	Content string          `json:"content,omitempty"`
	Message string          `json:"message,omitempty"`

	// Raw is the decoded JSON object as received.
	Raw json.RawMessage `json:"-"`
}

// HasFlag reports whether the envelope carries a non-null flag. Envelopes
// without one are ignored.
func (e *Envelope) HasFlag() bool {
	if e == nil {
		return false
	}
	flag := bytes.TrimSpace(e.Flag)
	return len(flag) > 0 && !bytes.Equal(flag, []byte("null"))
}

// Kind resolves the action tag. ok is false when the tag is empty or unknown.
func (e *Envelope) Kind() (Action, bool) {
	if e == nil || e.Action == "" {
		return ActionUnknown, false
	}
	return ParseAction(e.Action)
}
