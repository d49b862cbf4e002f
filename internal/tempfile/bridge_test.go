package tempfile

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mattjoyce/fecoding/internal/config"
)

func newTestBridge(t *testing.T) *Bridge {
	t.Helper()
	b, err := New(filepath.Join(t.TempDir(), "plugin"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return b
}

func TestWriteRoundTrip(t *testing.T) {
	b := newTestBridge(t)

	inputs := []string{
		"",
		"plain ascii\n",
		"var s = 'héllo wörld';\n// 日本語のコメント\n",
		"emoji 🚀 and tabs\t\r\n",
	}

	for _, text := range inputs {
		path, err := b.Write("/src/app.js", text)
		if err != nil {
			t.Fatalf("Write(%q) error = %v", text, err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != text {
			t.Fatalf("round trip = %q, want %q", got, text)
		}

		if err := b.Remove(path); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatalf("temp file still present after Remove: %v", err)
		}
	}
}

func TestWritePathsAreUniquePerInvocation(t *testing.T) {
	b := newTestBridge(t)

	first, err := b.Write("/src/app.js", "one")
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	second, err := b.Write("/src/app.js", "two")
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	other, err := b.Write("/src/other.js", "three")
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if first == second {
		t.Fatalf("two invocations share temp path %q", first)
	}
	if filepath.Dir(first) != b.Dir() {
		t.Fatalf("temp file %q not in %q", first, b.Dir())
	}
	if !strings.HasPrefix(filepath.Base(first), Prefix) {
		t.Fatalf("temp file %q missing prefix", first)
	}

	// same owner shares the hash segment, different owners do not
	ownerSeg := func(p string) string { return strings.Split(filepath.Base(p), "-")[1] }
	if ownerSeg(first) != ownerSeg(second) {
		t.Fatalf("owner segment differs for the same buffer: %q vs %q", first, second)
	}
	if ownerSeg(first) == ownerSeg(other) {
		t.Fatalf("owner segment equal for different buffers: %q vs %q", first, other)
	}

	got, _ := os.ReadFile(first)
	if string(got) != "one" {
		t.Fatalf("first temp file overwritten: %q", got)
	}
}

func TestWriteOwnerSegmentMatchesConfigHash(t *testing.T) {
	b := newTestBridge(t)

	for owner, hashed := range map[string]string{"/src/app.js": "/src/app.js", "": "scratch"} {
		path, err := b.Write(owner, "x")
		if err != nil {
			t.Fatalf("Write(%q) error = %v", owner, err)
		}
		want := Prefix + "-" + config.HashString(hashed, 12) + "-"
		if !strings.HasPrefix(filepath.Base(path), want) {
			t.Fatalf("temp file %q, want prefix %q", filepath.Base(path), want)
		}
	}
}

func TestRemoveRefusesForeignPaths(t *testing.T) {
	b := newTestBridge(t)

	foreign := filepath.Join(t.TempDir(), Prefix+"-x")
	if err := os.WriteFile(foreign, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := b.Remove(foreign); err == nil {
		t.Fatal("Remove() accepted a path outside the bridge directory")
	}

	if err := os.MkdirAll(b.Dir(), 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	settings := filepath.Join(b.Dir(), "Fecoding.sublime-settings")
	if err := os.WriteFile(settings, []byte("{}"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := b.Remove(settings); err == nil {
		t.Fatal("Remove() accepted a file without the temp prefix")
	}
	if _, err := os.Stat(settings); err != nil {
		t.Fatalf("settings file was touched: %v", err)
	}

	// already removed is fine
	if err := b.Remove(filepath.Join(b.Dir(), Prefix+"-gone")); err != nil {
		t.Fatalf("Remove(missing) error = %v", err)
	}
}

func TestSweep(t *testing.T) {
	b := newTestBridge(t)
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	stale, err := b.Write("a", "old")
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	fresh, err := b.Write("b", "new")
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	unrelated := filepath.Join(b.Dir(), "bin.js")
	if err := os.WriteFile(unrelated, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	old := now.Add(-3 * time.Hour)
	for _, p := range []string{stale, unrelated} {
		if err := os.Chtimes(p, old, old); err != nil {
			t.Fatalf("Chtimes() error = %v", err)
		}
	}
	if err := os.Chtimes(fresh, now, now); err != nil {
		t.Fatalf("Chtimes() error = %v", err)
	}

	report, err := b.Sweep(context.Background(), time.Hour)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if report.DeletedFiles != 1 {
		t.Fatalf("DeletedFiles = %d, want 1", report.DeletedFiles)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("stale temp file survived sweep")
	}
	for _, p := range []string{fresh, unrelated} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("%s removed by sweep: %v", p, err)
		}
	}

	if _, err := b.Sweep(context.Background(), 0); err == nil {
		t.Fatal("Sweep(0) should fail")
	}
}

func TestSweepMissingDirectory(t *testing.T) {
	b := newTestBridge(t)
	report, err := b.Sweep(context.Background(), time.Hour)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if report.DeletedFiles != 0 {
		t.Fatalf("DeletedFiles = %d, want 0", report.DeletedFiles)
	}
}

func TestNewRejectsEmptyDir(t *testing.T) {
	if _, err := New("  "); err == nil {
		t.Fatal("New() accepted a blank directory")
	}
}
