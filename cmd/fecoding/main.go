package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mattjoyce/fecoding/internal/command"
	"github.com/mattjoyce/fecoding/internal/config"
	"github.com/mattjoyce/fecoding/internal/doctor"
	"github.com/mattjoyce/fecoding/internal/editor"
	"github.com/mattjoyce/fecoding/internal/lock"
	"github.com/mattjoyce/fecoding/internal/log"
	"github.com/mattjoyce/fecoding/internal/runner"
	"github.com/mattjoyce/fecoding/internal/tempfile"
	"github.com/mattjoyce/fecoding/internal/tui"
)

var (
	version   = "0.1.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// lockDir holds per-file locks shared by every fecoding process on the host.
var lockDir = filepath.Join(os.TempDir(), "fecoding-locks")

func main() {
	// settings may lower or raise this once loaded
	log.Setup("INFO")
	os.Exit(runCLI(os.Args[1:]))
}

func runCLI(cliArgs []string) int {
	if len(cliArgs) < 1 {
		printUsage()
		return 1
	}

	cmd := cliArgs[0]
	args := cliArgs[1:]

	switch cmd {
	case "run":
		if hasHelpFlag(args) {
			printRunHelp()
			return 0
		}
		return runRun(args)
	case "save":
		if hasHelpFlag(args) {
			printSaveHelp()
			return 0
		}
		return runSave(args)
	case "doctor":
		if hasHelpFlag(args) {
			printDoctorHelp()
			return 0
		}
		return runDoctor(args)
	case "sweep":
		if hasHelpFlag(args) {
			printSweepHelp()
			return 0
		}
		return runSweep(args)
	case "version", "--version":
		return runVersion(args)
	case "help", "--help", "-h":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		return 1
	}
}

// --- run / save ---

type runOptions struct {
	configPath string
	actionArg  string
	selection  string
	dryRun     bool
	yes        bool
}

func runRun(args []string) int {
	var opts runOptions

	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "Path to settings file or plugin directory")
	fs.StringVar(&opts.actionArg, "args", "", "Argument passed to the action")
	fs.StringVar(&opts.selection, "selection", "", "Selection as start:end character offsets")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "Print the result instead of writing the file")
	fs.BoolVar(&opts.yes, "yes", false, "Answer yes to confirmation prompts")
	flagArgs, positionals := splitFlagsAndPositionals(args, map[string]bool{
		"--config":    true,
		"--args":      true,
		"--selection": true,
	})
	if err := fs.Parse(flagArgs); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}

	var action, file string
	switch len(positionals) {
	case 1:
		file = positionals[0]
	case 2:
		action, file = positionals[0], positionals[1]
	default:
		fmt.Fprintln(os.Stderr, "Usage: fecoding run [flags] [action] <file>")
		return 1
	}

	return withBuffer(opts, file, func(ctx context.Context, cmd *command.Command, buf *editor.Buffer) error {
		res, err := cmd.Execute(ctx, buf, action, opts.actionArg)
		logger := log.WithAction(res.Action)
		if res.Skipped != "" {
			logger.Info("action skipped", "reason", res.Skipped)
		} else if err == nil {
			logger.Debug("action finished", "outcome", res.Outcome.String())
		}
		return err
	})
}

func runSave(args []string) int {
	var opts runOptions

	fs := flag.NewFlagSet("save", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "Path to settings file or plugin directory")
	fs.BoolVar(&opts.dryRun, "dry-run", false, "Print the result instead of writing the file")
	fs.BoolVar(&opts.yes, "yes", false, "Answer yes to confirmation prompts")
	flagArgs, positionals := splitFlagsAndPositionals(args, map[string]bool{"--config": true})
	if err := fs.Parse(flagArgs); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}
	if len(positionals) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: fecoding save [flags] <file>")
		return 1
	}

	return withBuffer(opts, positionals[0], func(ctx context.Context, cmd *command.Command, buf *editor.Buffer) error {
		return cmd.OnPreSave(ctx, buf)
	})
}

// withBuffer loads settings and file, runs fn under the file lock, and writes
// the buffer back when it changed.
func withBuffer(opts runOptions, file string, fn func(context.Context, *command.Command, *editor.Buffer) error) int {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load settings: %v\n", err)
		return 1
	}
	logger := log.WithComponent("main")

	fileLock, err := lock.Acquire(lockDir, file)
	if err != nil {
		logger.Error("failed to lock file", "file", file, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer fileLock.Release()
	logger.Debug("acquired file lock", "file", fileLock.Target(), "lock", fileLock.Path())

	// with --dry-run stdout carries only the resulting buffer
	notices := io.Writer(os.Stdout)
	if opts.dryRun {
		notices = os.Stderr
	}

	console := newConsole(notices, opts.yes)
	buf, err := editor.OpenBuffer(file, console)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.selection != "" {
		sel, err := parseSelection(opts.selection)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
			return 1
		}
		buf.SetSelection([]editor.Region{sel})
	}

	cmd, err := command.New(cfg, runner.SystemExecutor{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := fn(ctx, cmd, buf)

	// a headless buffer cannot open files; report them instead
	for _, path := range buf.Opened() {
		fmt.Fprintf(notices, "open: %s\n", path)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		return 1
	}

	if !buf.Dirty() {
		return 0
	}
	if opts.dryRun {
		fmt.Fprint(os.Stdout, buf.String())
		return 0
	}
	if err := buf.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	logger.Info("file updated", "file", file)
	return 0
}

func newConsole(out io.Writer, yes bool) *tui.Console {
	opts := []tui.Option{tui.AssumeYes(yes)}
	if info, err := os.Stdin.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
		opts = append(opts, tui.WithInput(os.Stdin))
	}
	return tui.NewConsole(out, opts...)
}

// parseSelection reads "start:end" character offsets.
func parseSelection(s string) (editor.Region, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return editor.Region{}, fmt.Errorf("selection %q: want start:end", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(a))
	if err != nil {
		return editor.Region{}, fmt.Errorf("selection start: %w", err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(b))
	if err != nil {
		return editor.Region{}, fmt.Errorf("selection end: %w", err)
	}
	if start < 0 || end < 0 {
		return editor.Region{}, fmt.Errorf("selection %q: offsets must not be negative", s)
	}
	return editor.Region{A: start, B: end}, nil
}

func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		discovered, err := config.Discover()
		if err != nil {
			return nil, err
		}
		configPath = discovered
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log.SetLevel(cfg.LogLevel)
	if fp, err := cfg.Fingerprint(); err == nil {
		log.WithComponent("main").Debug("settings loaded", "path", cfg.SourcePath, "blake3", fp)
	}
	return cfg, nil
}

// --- doctor / sweep ---

func runDoctor(args []string) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to settings file or plugin directory")
	jsonOut := fs.Bool("json", false, "Output the report as JSON")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load settings: %v\n", err)
		return 1
	}

	resolver := config.NewResolver(cfg, config.CurrentPlatform())
	result := doctor.New(cfg, resolver, runner.SystemExecutor{}).Validate()

	if *jsonOut {
		out, err := doctor.FormatJSON(result)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render report: %v\n", err)
			return 1
		}
		fmt.Println(out)
	} else {
		fmt.Print(doctor.FormatHuman(result))
	}

	if !result.Valid {
		return 1
	}
	return 0
}

func runSweep(args []string) int {
	fs := flag.NewFlagSet("sweep", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to settings file or plugin directory")
	olderThan := fs.Duration("older-than", 0, "Remove temp files older than this (default: temp_max_age)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load settings: %v\n", err)
		return 1
	}
	age := cfg.TempMaxAge
	if *olderThan > 0 {
		age = *olderThan
	}

	bridge, err := tempfile.New(cfg.PluginDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	report, err := bridge.Sweep(context.Background(), age)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Sweep failed: %v\n", err)
		return 1
	}
	fmt.Printf("Removed %d stale temp file(s) from %s\n", report.DeletedFiles, bridge.Dir())
	return 0
}

// --- version ---

type versionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

func runVersion(args []string) int {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "Output version metadata as JSON")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Flag error: %v\n", err)
		return 1
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "Usage: fecoding version [--json]")
		return 1
	}

	info := currentVersionInfo()

	if *jsonOut {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render version JSON: %v\n", err)
			return 1
		}
		fmt.Println(string(data))
		return 0
	}

	fmt.Printf("fecoding %s\n", info.Version)
	fmt.Printf("commit: %s\n", info.Commit)
	fmt.Printf("built_at: %s\n", info.BuildTime)
	return 0
}

func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:   strings.TrimSpace(version),
		Commit:    "unknown",
		BuildTime: "unknown",
	}

	if info.Version == "" {
		info.Version = "0.0.0-dev"
	}

	resolvedCommit := strings.TrimSpace(gitCommit)
	if resolvedCommit == "" || resolvedCommit == "unknown" {
		resolvedCommit = strings.TrimSpace(readBuildSetting("vcs.revision"))
	}
	if resolvedCommit != "" {
		info.Commit = shortenCommit(resolvedCommit)
	}

	resolvedBuildTime := strings.TrimSpace(buildDate)
	if resolvedBuildTime == "" || resolvedBuildTime == "unknown" {
		resolvedBuildTime = strings.TrimSpace(readBuildSetting("vcs.time"))
	}
	if normalized, ok := normalizeBuildTimeUTC(resolvedBuildTime); ok {
		info.BuildTime = normalized
	}

	return info
}

func shortenCommit(commit string) string {
	if len(commit) <= 12 {
		return commit
	}
	return commit[:12]
}

func normalizeBuildTimeUTC(raw string) (string, bool) {
	if raw == "" || raw == "unknown" {
		return "", false
	}

	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return "", false
	}

	return t.UTC().Format(time.RFC3339), true
}

func readBuildSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}
	return ""
}

// --- helpers ---

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}

// splitFlagsAndPositionals lets flags follow positionals. takesValue lists
// flags whose value is the next argument.
func splitFlagsAndPositionals(args []string, takesValue map[string]bool) ([]string, []string) {
	flags := make([]string, 0, len(args))
	positionals := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			positionals = append(positionals, arg)
			continue
		}

		flags = append(flags, arg)
		if strings.Contains(arg, "=") {
			continue
		}
		if takesValue[arg] && i+1 < len(args) {
			i++
			flags = append(flags, args[i])
		}
	}

	return flags, positionals
}

func printUsage() {
	fmt.Print(`fecoding - run the fecoding formatter and linter on files

Usage:
  fecoding <command> [flags]

Commands:
  run [action] <file>   Run an action (default: save_action) and apply its result
  save <file>           Run the pre-save hook (when do_on_save is set) and save
  doctor                Validate settings, node.js and the helper script
  sweep                 Remove stale temp files from the plugin directory
  version               Show version information
  help                  Show this help message

Settings are read from --config, $FECODING_CONFIG, ./Fecoding.sublime-settings
or the directory of the executable.

Use 'fecoding <command> --help' for command flags.
`)
}

func printRunHelp() {
	fmt.Println("Usage: fecoding run [--config PATH] [--args ARG] [--selection A:B] [--dry-run] [--yes] [action] <file>")
	fmt.Println("Runs the helper script on <file> and applies the answer: update the file, show a message or open a file.")
}

func printSaveHelp() {
	fmt.Println("Usage: fecoding save [--config PATH] [--dry-run] [--yes] <file>")
	fmt.Println("Runs save_action on <file> when do_on_save is enabled.")
}

func printDoctorHelp() {
	fmt.Println("Usage: fecoding doctor [--config PATH] [--json]")
	fmt.Println("Exits non-zero when the settings cannot be used.")
}

func printSweepHelp() {
	fmt.Println("Usage: fecoding sweep [--config PATH] [--older-than DURATION]")
}
