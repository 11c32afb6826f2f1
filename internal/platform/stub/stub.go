// Package stub provides an in-memory platform that records every side effect.
// It stands in for the OS in engine and command tests.
package stub

import (
	"errors"
	"sync"
	"time"

	"github.com/darkawower/astra/internal/platform"
)

// Platform implements platform.Platform without touching the system.
type Platform struct {
	mu sync.Mutex

	// Width and Height are reported by Display.
	Width, Height int
	// DisplayErr makes Resolution fail.
	DisplayErr error

	// Dark selects the reported theme.
	Dark bool
	// ThemeErr makes Detect fail.
	ThemeErr error

	// WallpaperErr makes Set fail.
	WallpaperErr error
	wallpapers   []string

	// SchedulerUnsupported makes the scheduler report IsSupported false.
	SchedulerUnsupported bool
	// HeartbeatInterval is returned by Heartbeat.
	HeartbeatInterval time.Duration
	installed         *platform.Job
	installs          int
	uninstalls        int

	opened []string
}

// New creates a stub platform reporting a 1920x1080 light desktop.
func New() *Platform {
	return &Platform{Width: 1920, Height: 1080}
}

func (p *Platform) Name() string                         { return "stub" }
func (p *Platform) IsSupported() bool                    { return true }
func (p *Platform) Display() platform.DisplayService     { return displayService{p} }
func (p *Platform) Wallpaper() platform.WallpaperService { return wallpaperService{p} }
func (p *Platform) Theme() platform.ThemeService         { return themeService{p} }
func (p *Platform) Scheduler() platform.SchedulerService { return schedulerService{p} }
func (p *Platform) Editor() platform.EditorService       { return editorService{p} }

var _ platform.Platform = (*Platform)(nil)

// Wallpapers returns every path passed to Set, oldest first.
func (p *Platform) Wallpapers() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.wallpapers...)
}

// Installed returns the registered job, if any.
func (p *Platform) Installed() (platform.Job, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.installed == nil {
		return platform.Job{}, false
	}
	return *p.installed, true
}

// Installs counts Install calls.
func (p *Platform) Installs() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.installs
}

// Uninstalls counts Uninstall calls that removed a job.
func (p *Platform) Uninstalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.uninstalls
}

// Opened returns every path passed to the editor.
func (p *Platform) Opened() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.opened...)
}

type displayService struct{ p *Platform }

func (s displayService) Resolution() (int, int, error) {
	if s.p.DisplayErr != nil {
		return 0, 0, s.p.DisplayErr
	}
	return s.p.Width, s.p.Height, nil
}

type wallpaperService struct{ p *Platform }

func (s wallpaperService) Set(path string) error {
	if s.p.WallpaperErr != nil {
		return s.p.WallpaperErr
	}
	s.p.mu.Lock()
	defer s.p.mu.Unlock()
	s.p.wallpapers = append(s.p.wallpapers, path)
	return nil
}

type themeService struct{ p *Platform }

func (s themeService) Detect() (platform.Theme, error) {
	if s.p.ThemeErr != nil {
		return platform.ThemeLight, s.p.ThemeErr
	}
	if s.p.Dark {
		return platform.ThemeDark, nil
	}
	return platform.ThemeLight, nil
}

type schedulerService struct{ p *Platform }

func (s schedulerService) IsSupported() bool { return !s.p.SchedulerUnsupported }

func (s schedulerService) Install(job platform.Job) error {
	if s.p.SchedulerUnsupported {
		return platform.ErrUnsupported
	}
	s.p.mu.Lock()
	defer s.p.mu.Unlock()
	s.p.installed = &job
	s.p.installs++
	return nil
}

func (s schedulerService) Uninstall(job platform.Job) error {
	if s.p.SchedulerUnsupported {
		return platform.ErrUnsupported
	}
	s.p.mu.Lock()
	defer s.p.mu.Unlock()
	if s.p.installed != nil {
		s.p.installed = nil
		s.p.uninstalls++
	}
	return nil
}

func (s schedulerService) Status(job platform.Job) (platform.SchedulerStatus, error) {
	if s.p.SchedulerUnsupported {
		return platform.SchedulerStatus{}, platform.ErrUnsupported
	}
	s.p.mu.Lock()
	defer s.p.mu.Unlock()
	if s.p.installed == nil {
		return platform.SchedulerStatus{}, nil
	}
	return platform.SchedulerStatus{Installed: true, Schedule: s.Schedule(*s.p.installed)}, nil
}

func (s schedulerService) Schedule(job platform.Job) string {
	if s.p.HeartbeatInterval > 0 {
		return job.Command
	}
	return job.Command + " " + job.Frequency.String()
}

func (s schedulerService) Heartbeat() time.Duration { return s.p.HeartbeatInterval }

type editorService struct{ p *Platform }

func (s editorService) Open(path string) error {
	if path == "" {
		return errors.New("no path to open")
	}
	s.p.mu.Lock()
	defer s.p.mu.Unlock()
	s.p.opened = append(s.p.opened, path)
	return nil
}
