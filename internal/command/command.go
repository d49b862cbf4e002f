// Package command runs one fecoding action against an editor: it hands the
// buffer text to the helper script and applies the script's answer.
package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mattjoyce/fecoding/internal/config"
	"github.com/mattjoyce/fecoding/internal/dispatch"
	"github.com/mattjoyce/fecoding/internal/editor"
	"github.com/mattjoyce/fecoding/internal/log"
	"github.com/mattjoyce/fecoding/internal/protocol"
	"github.com/mattjoyce/fecoding/internal/runner"
	"github.com/mattjoyce/fecoding/internal/tempfile"
)

// Messages shown when the helper script cannot be run.
const (
	MsgNodeNotFound = "Node.js was not found in the default path. Please specify the location."
	MsgNodeRequired = "You won't be able to use this plugin without specifying the path to node.js."
)

// Skip reasons reported in Result.Skipped.
const (
	SkipDisabled       = "disabled"
	SkipEmptySelection = "empty selection"
)

// Result describes a finished command.
type Result struct {
	Action  string
	Outcome dispatch.Outcome
	// Skipped is set when the script was not run at all.
	Skipped string
}

// Command wires settings, temp files, the script runner and the dispatcher.
type Command struct {
	cfg        *config.Config
	resolver   *config.Resolver
	bridge     *tempfile.Bridge
	runner     *runner.Runner
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
}

// New creates a Command for cfg. Processes are started through exec.
func New(cfg *config.Config, exec runner.Executor) (*Command, error) {
	bridge, err := tempfile.New(cfg.PluginDir)
	if err != nil {
		return nil, fmt.Errorf("temp file bridge: %w", err)
	}
	return &Command{
		cfg:        cfg,
		resolver:   config.NewResolver(cfg, config.CurrentPlatform()),
		bridge:     bridge,
		runner:     runner.New(exec, cfg.Debug),
		dispatcher: dispatch.New(),
		logger:     log.WithComponent("command"),
	}, nil
}

// Run executes action with actionArg against ed. An empty action runs the
// save action.
func (c *Command) Run(ctx context.Context, ed editor.Editor, action, actionArg string) error {
	_, err := c.Execute(ctx, ed, action, actionArg)
	return err
}

// OnPreSave runs the save action when do_on_save is enabled.
func (c *Command) OnPreSave(ctx context.Context, ed editor.Editor) error {
	if !c.cfg.DoOnSave {
		return nil
	}
	return c.Run(ctx, ed, c.cfg.SaveAction, "")
}

// Execute is Run reporting what happened.
//
// Only settings and execution failures are returned, after the user has been
// told about them. Undecodable output is logged and dropped, and an envelope
// that is not a JSON object is treated as an empty one.
func (c *Command) Execute(ctx context.Context, ed editor.Editor, action, actionArg string) (Result, error) {
	if action == "" {
		action = c.cfg.SaveAction
	}
	res := Result{Action: action}
	logger := c.logger.With("action", action, "file", ed.FileName())

	if !c.resolver.IsEnabled(action) {
		logger.Info("action disabled in settings")
		res.Skipped = SkipDisabled
		return res, nil
	}

	selectionOnly := c.resolver.IsSelectionOnly(action)
	region := editor.Whole(ed)
	if selectionOnly {
		sel := ed.Selection()
		if len(sel) == 0 || sel[0].Empty() {
			logger.Debug("selection-only action with empty selection")
			res.Skipped = SkipEmptySelection
			return res, nil
		}
		region = sel[0]
	}

	snapshot := editor.Capture(ed)

	interpreter, err := c.resolver.InterpreterPath()
	if err != nil {
		return res, c.fail(ed, action, err)
	}

	tempPath, err := c.bridge.Write(ed.FileName(), ed.Text(region))
	if err != nil {
		return res, fmt.Errorf("write temp file: %w", err)
	}
	defer func() {
		if err := c.bridge.Remove(tempPath); err != nil {
			logger.Warn("failed to remove temp file", "path", tempPath, "error", err)
		}
	}()

	inv := runner.Invocation{
		Interpreter: interpreter,
		Script:      c.cfg.ScriptFile(),
		Action:      action,
		ActionArg:   actionArg,
		ConfigPath:  c.cfg.SourcePath,
		FilePath:    ed.FileName(),
		TempPath:    tempPath,
	}
	out, err := c.runner.Run(ctx, inv)
	if err != nil {
		return res, c.fail(ed, action, err)
	}

	env, err := protocol.Parse(out)
	if err != nil {
		var malformed *protocol.MalformedEnvelopeError
		if !errors.As(err, &malformed) {
			logger.Error("failed to read script output", "error", err)
			return res, nil
		}
		logger.Warn("malformed output envelope, treating as empty", "error", err)
	}

	res.Outcome = c.dispatcher.Dispatch(env, dispatch.Target{
		Editor:        ed,
		Region:        region,
		SelectionOnly: selectionOnly,
		Snapshot:      snapshot,
	})
	logger.Debug("command finished", "outcome", res.Outcome.String())
	return res, nil
}

// fail reports err to the user. Settings and execution errors offer to open
// the settings file so the node.js path can be fixed.
func (c *Command) fail(ed editor.Editor, action string, err error) error {
	var cfgErr *config.ConfigError
	var execErr *runner.ExecutionError
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.logger.Info("command interrupted", "action", action)
	case errors.As(err, &cfgErr), errors.As(err, &execErr):
		if ed.ConfirmDialog(MsgNodeNotFound) {
			ed.OpenFile(c.settingsFile())
		} else {
			ed.ErrorDialog(MsgNodeRequired)
		}
	}
	return fmt.Errorf("run %s: %w", action, err)
}

func (c *Command) settingsFile() string {
	if c.cfg.SourcePath != "" {
		return c.cfg.SourcePath
	}
	return filepath.Join(c.cfg.PluginDir, config.SettingsFilename)
}
