package dispatch

import (
	"log/slog"

	"github.com/mattjoyce/fecoding/internal/editor"
	"github.com/mattjoyce/fecoding/internal/log"
	"github.com/mattjoyce/fecoding/internal/protocol"
)

// Outcome reports what Dispatch did with an envelope.
type Outcome int

const (
	// OutcomeIgnored means the envelope was invalid or lacked a required field.
	OutcomeIgnored Outcome = iota
	OutcomeNotified
	OutcomeOpened
	OutcomeUpdated
	// OutcomeUnchanged means update_view content equaled the current text.
	OutcomeUnchanged
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNotified:
		return "notified"
	case OutcomeOpened:
		return "opened"
	case OutcomeUpdated:
		return "updated"
	case OutcomeUnchanged:
		return "unchanged"
	default:
		return "ignored"
	}
}

// Target is the editor state an envelope is applied to.
type Target struct {
	Editor editor.Editor
	// Region is the text the script was given: the first selection for
	// selection-only actions, otherwise the whole buffer.
	Region        editor.Region
	SelectionOnly bool
	Snapshot      editor.Snapshot
}

// Dispatcher applies envelopes to editors.
type Dispatcher struct {
	logger *slog.Logger
}

// New creates a Dispatcher.
func New() *Dispatcher {
	return &Dispatcher{logger: log.WithComponent("dispatch")}
}

// Dispatch performs the action requested by env against t.Editor.
func (d *Dispatcher) Dispatch(env *protocol.Envelope, t Target) Outcome {
	if !env.HasFlag() {
		d.logger.Warn("invalid output flag")
		return OutcomeIgnored
	}

	action, ok := env.Kind()
	if !ok {
		d.logger.Warn("invalid output action", "action", env.Action)
		return OutcomeIgnored
	}
	logger := d.logger.With("action", action.String())

	ed := t.Editor
	switch action {
	case protocol.ActionShowMessage:
		msg := env.Message
		if msg == "" {
			msg = env.Content
		}
		if msg == "" {
			logger.Warn("envelope has no message")
			return OutcomeIgnored
		}
		ed.ShowModal(msg)
		return OutcomeNotified

	case protocol.ActionStatusMessage:
		if env.Message == "" {
			logger.Warn("envelope has no message")
			return OutcomeIgnored
		}
		ed.ShowStatus(env.Message)
		return OutcomeNotified

	case protocol.ActionOpenFile:
		if env.Content == "" {
			logger.Warn("envelope has no file to open")
			return OutcomeIgnored
		}
		ed.OpenFile(env.Content)
		return OutcomeOpened

	case protocol.ActionUpdateView:
		if env.Content == "" {
			logger.Warn("envelope has no content")
			return OutcomeIgnored
		}
		return d.updateView(logger, env.Content, t)
	}

	return OutcomeIgnored
}

func (d *Dispatcher) updateView(logger *slog.Logger, content string, t Target) Outcome {
	ed := t.Editor
	if ed.Text(t.Region) == content {
		logger.Debug("content unchanged, skipping replace")
		return OutcomeUnchanged
	}

	ed.Replace(t.Region, content)
	refold(ed, t.Snapshot.Folded)
	ed.SetViewportPosition(t.Snapshot.Viewport)

	// A selection-only run leaves no selection behind: the old offsets no
	// longer describe the replaced text.
	if t.SelectionOnly {
		ed.SetSelection(nil)
	} else {
		ed.SetSelection(t.Snapshot.Selection)
	}

	logger.Info("view updated", "chars", len([]rune(content)))
	return OutcomeUpdated
}
