// Package darwin provides macOS-specific platform implementations.
package darwin

import "github.com/darkawower/astra/internal/platform"

func init() {
	platform.Register("darwin", func() platform.Platform {
		return New()
	})
}

// Platform implements platform.Platform for macOS.
type Platform struct {
	display   *DisplayService
	wallpaper *WallpaperService
	theme     *ThemeService
	scheduler *SchedulerService
	editor    *EditorService
}

// New creates a new macOS platform instance.
func New() *Platform {
	return NewWithExecutor(platform.DefaultExecutor{})
}

// NewWithExecutor creates a macOS platform that runs commands through exec.
func NewWithExecutor(exec platform.Executor) *Platform {
	return &Platform{
		display:   NewDisplayService(exec),
		wallpaper: NewWallpaperService(exec),
		theme:     NewThemeService(exec),
		scheduler: NewSchedulerService(exec),
		editor:    &EditorService{},
	}
}

// Name returns the platform identifier.
func (p *Platform) Name() string {
	return "darwin"
}

// IsSupported returns true as macOS is fully supported.
func (p *Platform) IsSupported() bool {
	return true
}

// Display returns the screen information service.
func (p *Platform) Display() platform.DisplayService {
	return p.display
}

// Wallpaper returns the wallpaper management service.
func (p *Platform) Wallpaper() platform.WallpaperService {
	return p.wallpaper
}

// Theme returns the theme detection service.
func (p *Platform) Theme() platform.ThemeService {
	return p.theme
}

// Scheduler returns the launchd agent service.
func (p *Platform) Scheduler() platform.SchedulerService {
	return p.scheduler
}

// Editor returns the text editor launcher.
func (p *Platform) Editor() platform.EditorService {
	return p.editor
}

// Compile-time check that Platform implements platform.Platform.
var _ platform.Platform = (*Platform)(nil)
