package config

import "time"

// SettingsFilename is the settings file shipped next to the helper script.
const SettingsFilename = "Fecoding.sublime-settings"

// Platform identifiers used as keys of node_path.
const (
	PlatformOSX     = "osx"
	PlatformLinux   = "linux"
	PlatformWindows = "windows"
)

// Config represents the fecoding settings file.
//
// The file is usually the JSON settings file installed with the plugin; YAML is
// accepted as well since the loader parses both.
type Config struct {
	NodePath   map[string]string     `yaml:"node_path"`
	Plugins    map[string]PluginConf `yaml:"plugins,omitempty"`
	DoOnSave   bool                  `yaml:"do_on_save"`
	Debug      bool                  `yaml:"debug"`
	PluginDir  string                `yaml:"plugin_dir,omitempty"`  // defaults to the settings file directory
	ScriptPath string                `yaml:"script_path,omitempty"` // relative to PluginDir
	SaveAction string                `yaml:"save_action,omitempty"` // action run by the pre-save hook
	LogLevel   string                `yaml:"log_level,omitempty"`
	TempMaxAge time.Duration         `yaml:"temp_max_age,omitempty"` // sweep threshold for stale temp files

	// SourcePath is the absolute path the config was loaded from. It is handed
	// to the helper script as --confpath.
	SourcePath string `yaml:"-"`
}

// PluginConf holds per-action settings, keyed by action name in Config.Plugins.
type PluginConf struct {
	DoOnlySelection bool  `yaml:"do_only_selection"`
	Enabled         *bool `yaml:"enabled,omitempty"` // nil means enabled

	// Options keeps keys the helper script reads itself (it gets the whole file).
	Options map[string]any `yaml:",inline"`
}

// IsEnabled reports whether the action may run. Defaults to true.
func (p PluginConf) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

// Defaults returns a Config with sensible defaults.
func Defaults() *Config {
	return &Config{
		NodePath: map[string]string{
			PlatformOSX:     "/usr/local/bin/node",
			PlatformLinux:   "/usr/bin/node",
			PlatformWindows: `C:\Program Files\nodejs\node.exe`,
		},
		Plugins:    make(map[string]PluginConf),
		ScriptPath: "scripts/bin.js",
		SaveAction: "save",
		LogLevel:   "info",
		TempMaxAge: time.Hour,
	}
}
