// Package linux provides Linux (GNOME + systemd) platform implementations.
package linux

import "github.com/darkawower/astra/internal/platform"

func init() {
	platform.Register("linux", func() platform.Platform {
		return New()
	})
}

// Platform implements platform.Platform for Linux.
type Platform struct {
	display   *DisplayService
	wallpaper *WallpaperService
	theme     *ThemeService
	scheduler *SchedulerService
	editor    *EditorService
}

// New creates a Linux platform that runs real commands.
func New() *Platform {
	return NewWithExecutor(platform.DefaultExecutor{})
}

// NewWithExecutor creates a Linux platform that runs commands through exec.
func NewWithExecutor(exec platform.Executor) *Platform {
	return &Platform{
		display:   &DisplayService{exec: exec},
		wallpaper: &WallpaperService{exec: exec},
		theme:     &ThemeService{exec: exec},
		scheduler: NewSchedulerService(exec),
		editor:    &EditorService{},
	}
}

// Name returns the platform identifier.
func (p *Platform) Name() string {
	return "linux"
}

// IsSupported returns true; GNOME desktops are supported.
func (p *Platform) IsSupported() bool {
	return true
}

func (p *Platform) Display() platform.DisplayService {
	return p.display
}

func (p *Platform) Wallpaper() platform.WallpaperService {
	return p.wallpaper
}

func (p *Platform) Theme() platform.ThemeService {
	return p.theme
}

func (p *Platform) Scheduler() platform.SchedulerService {
	return p.scheduler
}

func (p *Platform) Editor() platform.EditorService {
	return p.editor
}

var _ platform.Platform = (*Platform)(nil)
