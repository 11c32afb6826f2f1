// Package main is the entry point for the astra CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/darkawower/astra/internal/apperr"
	"github.com/darkawower/astra/internal/config"
	"github.com/darkawower/astra/internal/core"
	"github.com/darkawower/astra/internal/platform"
	"github.com/darkawower/astra/internal/ui"
	"github.com/darkawower/astra/internal/wallpaper"

	_ "github.com/darkawower/astra/internal/platform/darwin"
	_ "github.com/darkawower/astra/internal/platform/linux"
	_ "github.com/darkawower/astra/internal/platform/windows"
)

// app holds what every command shares for one invocation.
type app struct {
	stdout   io.Writer
	out      *ui.Output
	logger   zerolog.Logger
	verbose  bool
	quiet    bool
	platform platform.Platform
	dirs     *config.Dirs

	// engineOpts are appended after the defaults.
	engineOpts []core.Option
}

func newApp(stdout io.Writer) *app {
	return &app{
		stdout: stdout,
		out:    ui.NewOutput(stdout),
		logger: zerolog.Nop(),
	}
}

func main() {
	a := newApp(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		a.reportError(err)
		stop()
		os.Exit(1)
	}
}

// setup builds the logger once flags are parsed.
func (a *app) setup() {
	level := zerolog.WarnLevel
	if a.verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        a.stdout,
		TimeFormat: "15:04:05",
		NoColor:    !a.out.IsTerminal(),
		FormatLevel: func(i any) string {
			return strings.ToUpper(fmt.Sprintf("%-5s", i))
		},
	}
	a.logger = zerolog.New(writer).Level(level).With().Timestamp().Logger()
	a.out.SetVerbose(a.verbose)
	a.out.SetQuiet(a.quiet)

	if a.platform == nil {
		a.platform = platform.Current()
	}
}

func (a *app) directories() (config.Dirs, error) {
	if a.dirs != nil {
		return *a.dirs, nil
	}
	dirs, err := config.DefaultDirs()
	if err != nil {
		return config.Dirs{}, apperr.Wrap(apperr.OS, err)
	}
	a.dirs = &dirs
	return dirs, nil
}

// loadConfig reads the user config. A broken file is reported and replaced
// by the empty config.
func (a *app) loadConfig() (*config.UserConfig, error) {
	dirs, err := a.directories()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dirs.ConfigFile())
	if err != nil {
		a.out.Warning("Ignoring invalid config file %s: %v", shortenPath(dirs.ConfigFile()), err)
	}
	return cfg, nil
}

func (a *app) newEngine() (*core.Engine, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	dirs, err := a.directories()
	if err != nil {
		return nil, err
	}

	opts := []core.Option{
		core.WithPlatform(a.platform),
		core.WithLogger(a.logger),
		core.WithStore(wallpaper.NewStore(dirs.Data, a.logger)),
		core.WithLastRun(dirs.StateFile()),
	}
	return core.New(cfg, append(opts, a.engineOpts...)...)
}

// errorLine renders err as "<kind> error: <message>".
func errorLine(err error) string {
	kind := apperr.KindOf(err)
	if kind == "" {
		return "error: " + err.Error()
	}
	return fmt.Sprintf("%s error: %s", kind, err)
}

// errorHint suggests a next step for errors the user can act on.
func errorHint(err error) string {
	switch apperr.KindOf(err) {
	case apperr.ConfigParse:
		return "run `astra config --open` to fix the config file"
	case apperr.Parse:
		return "run `astra --help` to see accepted values"
	case apperr.Network:
		return "check your internet connection or pick another generator"
	case apperr.Scheduler:
		return "run again with --verbose to see the scheduler output"
	default:
		return ""
	}
}

func (a *app) reportError(err error) {
	if hint := errorHint(err); hint != "" {
		a.out.ErrorWithHint(errorLine(err), hint)
		return
	}
	a.out.Error("%s", errorLine(err))
}

// shortenPath shortens a path for display.
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+string(os.PathSeparator)) {
		return "~" + path[len(home):]
	}
	return path
}
