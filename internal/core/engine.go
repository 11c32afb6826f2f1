// Package core ties configuration, generators, the image store and the
// platform together.
package core

import (
	"context"
	"fmt"
	"image"
	"math/rand/v2"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/darkawower/astra/internal/apperr"
	"github.com/darkawower/astra/internal/config"
	"github.com/darkawower/astra/internal/frequency"
	"github.com/darkawower/astra/internal/generator"
	"github.com/darkawower/astra/internal/platform"
	"github.com/darkawower/astra/internal/provider"
	"github.com/darkawower/astra/internal/state"
	"github.com/darkawower/astra/internal/theme"
	"github.com/darkawower/astra/internal/wallpaper"
)

// Engine runs one astra invocation.
type Engine struct {
	config     *config.UserConfig
	platform   platform.Platform
	logger     zerolog.Logger
	rng        *rand.Rand
	now        func() time.Time
	store      *wallpaper.Store
	setter     wallpaper.Setter
	statePath  string
	executable string
	spotlight  *provider.Spotlight
}

// Option is a function that configures the Engine.
type Option func(*Engine)

// WithPlatform replaces the detected platform.
func WithPlatform(p platform.Platform) Option {
	return func(e *Engine) {
		e.platform = p
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRand sets the random source shared by every generator.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithClock replaces time.Now for due-time checks and the last-run file.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithStore sets the wallpaper store.
func WithStore(store *wallpaper.Store) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLastRun sets the path of the last-run file.
func WithLastRun(path string) Option {
	return func(e *Engine) {
		e.statePath = path
	}
}

// WithExecutable sets the command registered with the scheduler.
func WithExecutable(path string) Option {
	return func(e *Engine) {
		e.executable = path
	}
}

// WithSpotlight sets the Spotlight client.
func WithSpotlight(client *provider.Spotlight) Option {
	return func(e *Engine) {
		e.spotlight = client
	}
}

// New creates an Engine for cfg. Unset collaborators default to the current
// platform and the OS directories.
func New(cfg *config.UserConfig, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = &config.UserConfig{}
	}

	e := &Engine{
		config: cfg,
		logger: zerolog.Nop(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.platform == nil {
		e.platform = platform.Current()
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.spotlight == nil {
		e.spotlight = provider.NewSpotlight()
	}

	if e.store == nil || e.statePath == "" {
		dirs, err := config.DefaultDirs()
		if err != nil {
			return nil, apperr.Wrap(apperr.OS, err)
		}
		if e.store == nil {
			e.store = wallpaper.NewStore(dirs.Data, e.logger)
		}
		if e.statePath == "" {
			e.statePath = dirs.StateFile()
		}
	}

	e.setter = wallpaper.NewSetter(e.platform.Wallpaper())

	return e, nil
}

// Platform returns the platform in use.
func (e *Engine) Platform() platform.Platform {
	return e.platform
}

// Config returns the user config.
func (e *Engine) Config() *config.UserConfig {
	return e.config
}

// Store returns the wallpaper store.
func (e *Engine) Store() *wallpaper.Store {
	return e.store
}

// Themes returns the built-in themes and the user themes.
func (e *Engine) Themes() (builtIn, user []theme.Theme) {
	return theme.BuiltIn(), e.config.UserThemes()
}

// Generator builds the generator for kind. With respect set the user config
// supplies options, preferences and themes; otherwise defaults apply and
// mode drives the solid generator.
func (e *Engine) Generator(kind generator.Kind, mode generator.SolidMode, respect bool) (generator.Generator, error) {
	deps := generator.Deps{
		Platform: e.platform,
		Rand:     e.rng,
		Logger:   e.logger.With().Str("generator", kind.String()).Logger(),
	}

	var themes []theme.Theme
	if respect {
		themes = e.config.UserThemes()
	}

	switch kind {
	case generator.Julia:
		opts := generator.DefaultJuliaOptions()
		if respect {
			opts = e.config.JuliaOptions()
		}
		return generator.NewJulia(deps, opts, themes), nil
	case generator.Solid:
		var opts generator.SolidOptions
		if respect {
			opts = e.config.SolidOptions()
		}
		return generator.NewSolid(deps, mode, opts, themes), nil
	case generator.Spotlight:
		var opts generator.SpotlightOptions
		if respect {
			opts = e.config.SpotlightOptions()
		}
		return generator.NewSpotlight(deps, e.spotlight, opts, themes), nil
	default:
		return nil, apperr.New(apperr.Parse, "unknown generator %q", kind)
	}
}

// Generate produces one image with the chosen generator.
func (e *Engine) Generate(ctx context.Context, kind generator.Kind, mode generator.SolidMode, respect bool) (image.Image, error) {
	gen, err := e.Generator(kind, mode, respect)
	if err != nil {
		return nil, err
	}

	e.logger.Debug().Str("generator", kind.String()).Bool("respect", respect).Msg("Generating wallpaper")
	img, err := gen.Generate(ctx)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Apply saves img and sets it as the wallpaper as opts allow.
func (e *Engine) Apply(kind generator.Kind, img image.Image, opts ApplyOptions) (*Result, error) {
	bounds := img.Bounds()
	result := &Result{
		Kind:   kind,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}

	if opts.NoUpdate && opts.NoSave {
		result.At = e.now()
		return result, nil
	}

	path, err := e.store.Save(kind.String(), img)
	if err != nil {
		return nil, err
	}
	result.Path = path
	result.Saved = true
	e.logger.Info().Str("path", path).Msg("Saved wallpaper")

	if !opts.NoUpdate {
		if err := e.setter.Set(path); err != nil {
			return nil, err
		}
		result.Applied = true
		e.logger.Info().Str("path", path).Msg("Updated wallpaper")
	}

	result.At = e.now()
	return result, nil
}

// Clean deletes wallpapers older than olderThan, or all of them when it is
// nil. deleteDir also removes the directory in the latter case.
func (e *Engine) Clean(olderThan *frequency.Frequency, deleteDir bool) (int, error) {
	if olderThan != nil && !olderThan.IsZero() {
		return e.store.DeleteOlderThan(*olderThan)
	}
	return e.store.DeleteAll(deleteDir)
}

func (e *Engine) job() (platform.Job, error) {
	if e.executable == "" {
		exe, err := platform.Executable()
		if err != nil {
			return platform.Job{}, apperr.Wrap(apperr.OS, err)
		}
		e.executable = exe
	}

	job := platform.Job{Command: e.executable}
	if e.config.Frequency != nil {
		job.Frequency = *e.config.Frequency
	}
	return job, nil
}

// HandleFrequency keeps the scheduled job in line with the configured
// frequency and reports whether this invocation should update the
// wallpaper.
func (e *Engine) HandleFrequency() (bool, error) {
	sched := e.platform.Scheduler()
	if !sched.IsSupported() {
		e.logger.Info().Str("platform", e.platform.Name()).Msg("Scheduling is not supported on this platform")
		return true, nil
	}

	job, err := e.job()
	if err != nil {
		return false, err
	}

	if job.Frequency.IsZero() {
		if err := sched.Uninstall(job); err != nil {
			return false, schedulerErr("failed to uninstall scheduled job", err)
		}
		return true, nil
	}

	status, err := sched.Status(job)
	if err != nil {
		return false, schedulerErr("failed to query scheduled job", err)
	}

	if want := sched.Schedule(job); !status.Installed || status.Schedule != want {
		e.logger.Info().
			Str("frequency", job.Frequency.String()).
			Str("schedule", want).
			Msg("Installing scheduled job")
		if err := sched.Install(job); err != nil {
			return false, schedulerErr("failed to install scheduled job", err)
		}
	}

	if sched.Heartbeat() <= 0 {
		return true, nil
	}

	st, err := state.Load(e.statePath)
	if err != nil {
		return false, apperr.Wrap(apperr.OS, err)
	}

	due := cron.Every(job.Frequency.Duration()).Next(st.LastRunTime())
	now := e.now()
	if now.Before(due) {
		e.logger.Info().
			Time("last_run", st.LastRunTime()).
			Time("due", due).
			Msg("Wallpaper update not due yet")
		return false, nil
	}
	return true, nil
}

func schedulerErr(msg string, err error) error {
	if apperr.KindOf(err) != "" {
		return err
	}
	return apperr.Wrap(apperr.Scheduler, fmt.Errorf("%s: %w", msg, err))
}

// pickKind chooses uniformly from the configured generators, or from every
// generator when none are configured.
func (e *Engine) pickKind() generator.Kind {
	kinds := e.config.Generators
	if len(kinds) == 0 {
		kinds = generator.Kinds
	}
	return kinds[e.rng.IntN(len(kinds))]
}

// Run is the default invocation: clean, honor the schedule, then generate,
// save and set a wallpaper from a random generator.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if e.config.AutoClean != nil && !e.config.AutoClean.IsZero() {
		n, err := e.store.DeleteOlderThan(*e.config.AutoClean)
		if err != nil {
			return nil, err
		}
		e.logger.Info().Int("deleted", n).Str("older_than", e.config.AutoClean.String()).Msg("Cleaned old wallpapers")
	}

	proceed, err := e.HandleFrequency()
	if err != nil {
		return nil, err
	}
	if !proceed {
		return &Result{Skipped: true, At: e.now()}, nil
	}

	kind := e.pickKind()
	img, err := e.Generate(ctx, kind, generator.RandomMode(), true)
	if err != nil {
		return nil, err
	}

	result, err := e.Apply(kind, img, ApplyOptions{})
	if err != nil {
		return nil, err
	}

	if sched := e.platform.Scheduler(); sched.IsSupported() && sched.Heartbeat() > 0 {
		st := state.New(e.statePath)
		st.MarkRun(e.now())
		if err := st.Save(); err != nil {
			return nil, apperr.Wrap(apperr.OS, err)
		}
	}

	return result, nil
}
