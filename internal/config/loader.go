package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads and parses the settings file at configPath.
// A directory is accepted and resolved to the settings file inside it.
func Load(configPath string) (*Config, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %q: %w", configPath, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %s\n"+
			"Hint: Check the path or run with --config flag", absPath)
	}
	if info.IsDir() {
		absPath = filepath.Join(absPath, SettingsFilename)
		if _, err := os.Stat(absPath); err != nil {
			return nil, fmt.Errorf("directory provided but %s not found: %s", SettingsFilename, absPath)
		}
	}

	cfg, err := loadConfigFile(absPath)
	if err != nil {
		return nil, err
	}
	cfg.SourcePath = absPath

	cfg = applyConfigDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes settings from memory. baseDir stands in for the settings file
// directory when resolving plugin_dir.
func Parse(data []byte, baseDir string) (*Config, error) {
	cfg, err := decode(data)
	if err != nil {
		return nil, err
	}
	if baseDir != "" {
		cfg.SourcePath = filepath.Join(baseDir, SettingsFilename)
	}
	cfg = applyConfigDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Discover finds the settings file by checking standard locations.
// Priority order: $FECODING_CONFIG, ./Fecoding.sublime-settings, the directory of the executable.
func Discover() (string, error) {
	if path := os.Getenv("FECODING_CONFIG"); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if _, err := os.Stat(SettingsFilename); err == nil {
		return SettingsFilename, nil
	}

	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), SettingsFilename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no settings found (checked: $FECODING_CONFIG, ./%s, executable directory)", SettingsFilename)
}

// ScriptFile returns the absolute path of the helper script.
func (c *Config) ScriptFile() string {
	if filepath.IsAbs(c.ScriptPath) {
		return c.ScriptPath
	}
	return filepath.Join(c.PluginDir, filepath.FromSlash(c.ScriptPath))
}

func loadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return decode(data)
}

func decode(data []byte) (*Config, error) {
	// Settings files are JSON with // comments; YAML is a superset of plain JSON.
	interpolated := interpolateEnv(stripLineComments(string(data)))

	var cfg Config
	if err := yaml.Unmarshal([]byte(interpolated), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &cfg, nil
}

func applyConfigDefaults(cfg *Config) *Config {
	defaults := Defaults()

	if cfg.NodePath == nil {
		cfg.NodePath = make(map[string]string)
	}
	if cfg.Plugins == nil {
		cfg.Plugins = make(map[string]PluginConf)
	}
	if cfg.ScriptPath == "" {
		cfg.ScriptPath = defaults.ScriptPath
	}
	if cfg.SaveAction == "" {
		cfg.SaveAction = defaults.SaveAction
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}
	if cfg.TempMaxAge == 0 {
		cfg.TempMaxAge = defaults.TempMaxAge
	}
	if cfg.PluginDir == "" && cfg.SourcePath != "" {
		cfg.PluginDir = filepath.Dir(cfg.SourcePath)
	}

	return cfg
}

// interpolateEnv replaces ${VAR} with environment variable values.
// Undefined variables are left as-is (not expanded).
func interpolateEnv(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		return match
	})
}

// stripLineComments removes // comments that are not inside a quoted string.
func stripLineComments(input string) string {
	lines := strings.Split(input, "\n")
	for i, line := range lines {
		inString := false
		escaped := false
		for j := 0; j < len(line); j++ {
			c := line[j]
			switch {
			case escaped:
				escaped = false
			case c == '\\' && inString:
				escaped = true
			case c == '"':
				inString = !inString
			case c == '/' && !inString && j+1 < len(line) && line[j+1] == '/':
				lines[i] = line[:j]
				j = len(line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

// validate performs basic validation on the configuration.
func validate(cfg *Config) error {
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return fmt.Errorf("log_level must be one of: debug, info, warn, error (got %q)", cfg.LogLevel)
	}

	if strings.TrimSpace(cfg.ScriptPath) == "" {
		return fmt.Errorf("script_path is required")
	}

	if strings.TrimSpace(cfg.SaveAction) == "" {
		return fmt.Errorf("save_action must not be blank")
	}

	if cfg.TempMaxAge < 0 {
		return fmt.Errorf("temp_max_age must not be negative")
	}

	for name := range cfg.Plugins {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("plugins: action name must not be empty")
		}
	}

	for platform, path := range cfg.NodePath {
		if envVarPattern.MatchString(path) {
			matches := envVarPattern.FindStringSubmatch(path)
			return fmt.Errorf("node_path.%s: environment variable ${%s} is not set", platform, matches[1])
		}
	}

	return nil
}
