package config

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/mattjoyce/fecoding/internal/log"
)

// ErrNotSet reports a setting that is missing for the requested key.
var ErrNotSet = errors.New("not set")

// ConfigError describes a setting that cannot be used as configured.
// The usual cause is node_path missing for the current platform.
type ConfigError struct {
	Key      string // settings key, e.g. "node_path"
	Platform string
	Err      error
}

func (e *ConfigError) Error() string {
	if e.Platform != "" {
		return fmt.Sprintf("%s for platform %q: %v", e.Key, e.Platform, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// CurrentPlatform maps runtime.GOOS to a node_path key.
func CurrentPlatform() string {
	return platformFor(runtime.GOOS)
}

func platformFor(goos string) string {
	switch goos {
	case "darwin":
		return PlatformOSX
	case "windows":
		return PlatformWindows
	default:
		return PlatformLinux
	}
}

// Resolver answers per-platform and per-action questions from a loaded Config.
type Resolver struct {
	cfg      *Config
	platform string
	logger   *slog.Logger
}

// NewResolver creates a Resolver for platform (see CurrentPlatform).
func NewResolver(cfg *Config, platform string) *Resolver {
	return &Resolver{
		cfg:      cfg,
		platform: platform,
		logger:   log.WithComponent("config"),
	}
}

// Platform returns the platform the resolver answers for.
func (r *Resolver) Platform() string {
	return r.platform
}

// InterpreterPath returns the configured node path for the resolver's platform.
func (r *Resolver) InterpreterPath() (string, error) {
	return r.InterpreterPathFor(r.platform)
}

// InterpreterPathFor returns the configured node path for platformID.
func (r *Resolver) InterpreterPathFor(platformID string) (string, error) {
	path := strings.TrimSpace(r.cfg.NodePath[platformID])
	if path == "" {
		err := &ConfigError{Key: "node_path", Platform: platformID, Err: ErrNotSet}
		r.logger.Error("node.js path is not configured", "platform", platformID, "settings", r.cfg.SourcePath)
		return "", err
	}
	r.logger.Info("using node.js path", "platform", platformID, "path", path)
	return path, nil
}

// ActionConfig returns the plugin settings for action, if any.
func (r *Resolver) ActionConfig(action string) (PluginConf, bool) {
	pc, ok := r.cfg.Plugins[action]
	return pc, ok
}

// IsSelectionOnly reports whether action works on the active selection only.
func (r *Resolver) IsSelectionOnly(action string) bool {
	pc, ok := r.ActionConfig(action)
	return ok && pc.DoOnlySelection
}

// IsEnabled reports whether action may run. Actions without settings are enabled.
func (r *Resolver) IsEnabled(action string) bool {
	pc, ok := r.ActionConfig(action)
	return !ok || pc.IsEnabled()
}
