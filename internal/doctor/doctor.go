// Package doctor validates fecoding settings and the environment the helper
// script runs in.
package doctor

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mattjoyce/fecoding/internal/config"
	"github.com/mattjoyce/fecoding/internal/runner"
	"github.com/mattjoyce/fecoding/internal/tempfile"
)

// Result holds the outcome of a validation run.
type Result struct {
	Valid       bool    `json:"valid"`
	Platform    string  `json:"platform"`
	Interpreter string  `json:"interpreter,omitempty"`
	Script      string  `json:"script"`
	Fingerprint string  `json:"fingerprint,omitempty"`
	Errors      []Issue `json:"errors,omitempty"`
	Warnings    []Issue `json:"warnings,omitempty"`
}

// Issue describes a single validation error or warning.
type Issue struct {
	Category string `json:"category"`
	Message  string `json:"message"`
	Field    string `json:"field,omitempty"`
}

// Doctor validates a loaded config against the local machine.
type Doctor struct {
	cfg      *config.Config
	resolver *config.Resolver
	exec     runner.Executor
}

// New creates a Doctor. exec resolves the interpreter the same way a run does.
func New(cfg *config.Config, resolver *config.Resolver, exec runner.Executor) *Doctor {
	return &Doctor{cfg: cfg, resolver: resolver, exec: exec}
}

// Validate runs all checks and returns a result.
func (d *Doctor) Validate() *Result {
	r := &Result{
		Valid:    true,
		Platform: d.resolver.Platform(),
		Script:   d.cfg.ScriptFile(),
	}

	d.validateInterpreter(r)
	d.validateScript(r)
	d.validatePluginDir(r)
	d.warnUnknownPlatforms(r)
	d.warnSaveAction(r)
	d.warnPluginSettings(r)
	d.fingerprint(r)

	r.Valid = len(r.Errors) == 0
	return r
}

func (d *Doctor) addError(r *Result, category, field, msg string) {
	r.Errors = append(r.Errors, Issue{Category: category, Field: field, Message: msg})
}

func (d *Doctor) addWarning(r *Result, category, field, msg string) {
	r.Warnings = append(r.Warnings, Issue{Category: category, Field: field, Message: msg})
}

// validateInterpreter checks node_path for this platform and that it resolves.
func (d *Doctor) validateInterpreter(r *Result) {
	field := "node_path." + r.Platform
	path, err := d.resolver.InterpreterPath()
	if err != nil {
		d.addError(r, "interpreter", field, fmt.Sprintf("node.js path is not set for platform %q", r.Platform))
		return
	}

	resolved, err := d.exec.LookPath(path)
	if err != nil {
		d.addError(r, "interpreter", field, fmt.Sprintf("node.js not found at %q: %v", path, err))
		return
	}
	r.Interpreter = resolved
}

// validateScript checks that the helper script exists.
func (d *Doctor) validateScript(r *Result) {
	info, err := os.Stat(r.Script)
	switch {
	case err != nil:
		d.addError(r, "script", "script_path", fmt.Sprintf("helper script not found: %s", r.Script))
	case info.IsDir():
		d.addError(r, "script", "script_path", fmt.Sprintf("helper script is a directory: %s", r.Script))
	}
}

// validatePluginDir checks that temp files can be written where the script
// expects them.
func (d *Doctor) validatePluginDir(r *Result) {
	bridge, err := tempfile.New(d.cfg.PluginDir)
	if err != nil {
		d.addError(r, "plugin_dir", "plugin_dir", err.Error())
		return
	}
	path, err := bridge.Write("doctor", "")
	if err != nil {
		d.addError(r, "plugin_dir", "plugin_dir", fmt.Sprintf("plugin directory is not writable: %v", err))
		return
	}
	if err := bridge.Remove(path); err != nil {
		d.addWarning(r, "plugin_dir", "plugin_dir", fmt.Sprintf("could not remove write-check file: %v", err))
	}
}

// warnUnknownPlatforms flags node_path keys no platform will ever read.
func (d *Doctor) warnUnknownPlatforms(r *Result) {
	known := map[string]bool{config.PlatformOSX: true, config.PlatformLinux: true, config.PlatformWindows: true}
	for _, platform := range sortedKeys(d.cfg.NodePath) {
		if !known[platform] {
			d.addWarning(r, "interpreter", "node_path."+platform,
				fmt.Sprintf("unknown platform %q (expected osx, linux or windows)", platform))
		}
	}
}

func (d *Doctor) warnSaveAction(r *Result) {
	if d.cfg.DoOnSave && !d.resolver.IsEnabled(d.cfg.SaveAction) {
		d.addWarning(r, "save", "plugins."+d.cfg.SaveAction+".enabled",
			fmt.Sprintf("do_on_save is set but save action %q is disabled", d.cfg.SaveAction))
	}
}

func (d *Doctor) warnPluginSettings(r *Result) {
	for _, name := range sortedKeys(d.cfg.Plugins) {
		pc := d.cfg.Plugins[name]
		if !pc.IsEnabled() && pc.DoOnlySelection {
			d.addWarning(r, "plugins", "plugins."+name,
				fmt.Sprintf("action %q is disabled; do_only_selection has no effect", name))
		}
	}
}

func (d *Doctor) fingerprint(r *Result) {
	sum, err := d.cfg.Fingerprint()
	if err != nil {
		d.addWarning(r, "settings", "", fmt.Sprintf("cannot fingerprint settings: %v", err))
		return
	}
	r.Fingerprint = sum
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FormatHuman returns a human-readable validation report.
func FormatHuman(r *Result) string {
	var b strings.Builder

	if r.Valid && len(r.Warnings) == 0 {
		b.WriteString("Settings valid.\n")
	}

	if r.Valid && len(r.Warnings) > 0 {
		b.WriteString("Settings valid")
		fmt.Fprintf(&b, " (%d warning(s))\n", len(r.Warnings))
	}

	if !r.Valid {
		fmt.Fprintf(&b, "Settings invalid (%d error(s), %d warning(s))\n", len(r.Errors), len(r.Warnings))
	}

	if r.Interpreter != "" {
		fmt.Fprintf(&b, "  node:     %s\n", r.Interpreter)
	}
	if r.Script != "" {
		fmt.Fprintf(&b, "  script:   %s\n", r.Script)
	}
	if r.Fingerprint != "" {
		fmt.Fprintf(&b, "  settings: blake3:%s\n", r.Fingerprint[:min(16, len(r.Fingerprint))])
	}

	for _, e := range r.Errors {
		if e.Field != "" {
			fmt.Fprintf(&b, "  ERROR [%s] %s: %s\n", e.Category, e.Field, e.Message)
		} else {
			fmt.Fprintf(&b, "  ERROR [%s] %s\n", e.Category, e.Message)
		}
	}
	for _, w := range r.Warnings {
		if w.Field != "" {
			fmt.Fprintf(&b, "  WARN  [%s] %s: %s\n", w.Category, w.Field, w.Message)
		} else {
			fmt.Fprintf(&b, "  WARN  [%s] %s\n", w.Category, w.Message)
		}
	}

	return b.String()
}

// FormatJSON returns the result as indented JSON.
func FormatJSON(r *Result) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
