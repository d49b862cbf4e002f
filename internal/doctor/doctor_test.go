package doctor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/mattjoyce/fecoding/internal/config"
	"github.com/mattjoyce/fecoding/internal/log"
	"github.com/mattjoyce/fecoding/internal/runner/mocks"
)

func TestMain(m *testing.M) {
	log.Setup("ERROR") // Suppress logs in tests
	os.Exit(m.Run())
}

// validConfig returns settings loaded from a temp plugin directory holding
// the helper script.
func validConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "scripts"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "scripts", "bin.js"), []byte("// bin"), 0o644); err != nil {
		t.Fatal(err)
	}
	settings := `{
  "node_path": {"osx": "/usr/local/bin/node", "linux": "/usr/bin/node", "windows": "C:\\node\\node.exe"},
  "plugins": {"format": {"do_only_selection": false}}
}`
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFilename), []byte(settings), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return cfg
}

// newDoctor builds a Doctor whose interpreter lookup succeeds unless lookErr
// is set.
func newDoctor(t *testing.T, cfg *config.Config, lookErr error) *Doctor {
	t.Helper()
	ctrl := gomock.NewController(t)
	exec := mocks.NewMockExecutor(ctrl)
	exec.EXPECT().LookPath(gomock.Any()).DoAndReturn(func(p string) (string, error) {
		if lookErr != nil {
			return "", lookErr
		}
		return p, nil
	}).AnyTimes()
	return New(cfg, config.NewResolver(cfg, config.PlatformLinux), exec)
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig(t)
	r := newDoctor(t, cfg, nil).Validate()
	if !r.Valid {
		t.Fatalf("expected valid, got errors: %v", r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", r.Warnings)
	}
	if r.Interpreter != "/usr/bin/node" {
		t.Fatalf("Interpreter = %q", r.Interpreter)
	}
	if len(r.Fingerprint) != 64 {
		t.Fatalf("Fingerprint = %q, want 64 hex chars", r.Fingerprint)
	}

	matches, _ := filepath.Glob(filepath.Join(cfg.PluginDir, ".__fecodingtemp__*"))
	if len(matches) != 0 {
		t.Fatalf("write-check temp files left behind: %v", matches)
	}
}

func TestValidate_NodePathMissing(t *testing.T) {
	cfg := validConfig(t)
	delete(cfg.NodePath, config.PlatformLinux)
	r := newDoctor(t, cfg, nil).Validate()
	if r.Valid {
		t.Fatal("expected invalid")
	}
	assertHasError(t, r, "interpreter", "not set")
}

func TestValidate_NodeNotFound(t *testing.T) {
	cfg := validConfig(t)
	r := newDoctor(t, cfg, errors.New("no such file or directory")).Validate()
	if r.Valid {
		t.Fatal("expected invalid")
	}
	assertHasError(t, r, "interpreter", "not found")
	if r.Interpreter != "" {
		t.Fatalf("Interpreter = %q, want empty", r.Interpreter)
	}
}

func TestValidate_ScriptMissing(t *testing.T) {
	cfg := validConfig(t)
	cfg.ScriptPath = "scripts/missing.js"
	r := newDoctor(t, cfg, nil).Validate()
	assertHasError(t, r, "script", "not found")
}

func TestValidate_ScriptIsDirectory(t *testing.T) {
	cfg := validConfig(t)
	cfg.ScriptPath = "scripts"
	r := newDoctor(t, cfg, nil).Validate()
	assertHasError(t, r, "script", "directory")
}

func TestValidate_PluginDirNotWritable(t *testing.T) {
	cfg := validConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	// a regular file where the directory should be
	cfg.PluginDir = filepath.Join(blocker, "plugin")
	r := newDoctor(t, cfg, nil).Validate()
	assertHasError(t, r, "plugin_dir", "not writable")
}

func TestValidate_UnknownPlatformWarning(t *testing.T) {
	cfg := validConfig(t)
	cfg.NodePath["freebsd"] = "/usr/local/bin/node"
	r := newDoctor(t, cfg, nil).Validate()
	if !r.Valid {
		t.Fatalf("expected valid, got errors: %v", r.Errors)
	}
	assertHasWarning(t, r, "interpreter", "freebsd")
}

func TestValidate_SaveActionDisabled(t *testing.T) {
	cfg := validConfig(t)
	disabled := false
	cfg.DoOnSave = true
	cfg.Plugins["save"] = config.PluginConf{Enabled: &disabled, DoOnlySelection: true}
	r := newDoctor(t, cfg, nil).Validate()
	assertHasWarning(t, r, "save", "disabled")
	assertHasWarning(t, r, "plugins", "do_only_selection")
}

func TestValidate_NoFingerprintWithoutFile(t *testing.T) {
	cfg := validConfig(t)
	cfg.SourcePath = ""
	r := newDoctor(t, cfg, nil).Validate()
	assertHasWarning(t, r, "settings", "fingerprint")
}

func TestFormatJSON(t *testing.T) {
	r := &Result{
		Valid:  false,
		Errors: []Issue{{Category: "test", Message: "bad thing"}},
	}
	out, err := FormatJSON(r)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "bad thing") {
		t.Fatalf("expected JSON to contain error message, got: %s", out)
	}
}

func TestFormatHuman_Valid(t *testing.T) {
	r := &Result{Valid: true, Interpreter: "/usr/bin/node", Fingerprint: strings.Repeat("ab", 32)}
	out := FormatHuman(r)
	if !strings.Contains(out, "valid") {
		t.Fatalf("expected 'valid' in output, got: %s", out)
	}
	if !strings.Contains(out, "blake3:abababababababab\n") {
		t.Fatalf("expected short fingerprint in output, got: %s", out)
	}
}

func TestFormatHuman_Errors(t *testing.T) {
	r := &Result{
		Valid:  false,
		Errors: []Issue{{Category: "test", Field: "x.y", Message: "broken"}},
	}
	out := FormatHuman(r)
	if !strings.Contains(out, "ERROR") || !strings.Contains(out, "broken") {
		t.Fatalf("expected error in output, got: %s", out)
	}
}

// --- helpers ---

func assertHasError(t *testing.T, r *Result, category, substring string) {
	t.Helper()
	for _, e := range r.Errors {
		if e.Category == category && strings.Contains(e.Message, substring) {
			return
		}
	}
	t.Fatalf("expected error with category=%q containing %q, got: %v", category, substring, r.Errors)
}

func assertHasWarning(t *testing.T, r *Result, category, substring string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Category == category && strings.Contains(w.Message, substring) {
			return
		}
	}
	t.Fatalf("expected warning with category=%q containing %q, got: %v", category, substring, r.Warnings)
}
