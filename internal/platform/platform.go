// Package platform provides OS-agnostic abstractions for system operations.
package platform

import "time"

// Theme represents the system color theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Platform provides access to OS-specific services.
type Platform interface {
	// Name returns the platform identifier (e.g., "darwin", "linux", "windows").
	Name() string

	// IsSupported returns true if this platform is fully supported.
	IsSupported() bool

	// Display returns the screen information service.
	Display() DisplayService

	// Wallpaper returns the wallpaper management service.
	Wallpaper() WallpaperService

	// Theme returns the theme detection service.
	Theme() ThemeService

	// Scheduler returns the background task scheduler service.
	Scheduler() SchedulerService

	// Editor returns the text editor launcher.
	Editor() EditorService
}

// DisplayService reports the primary display geometry.
type DisplayService interface {
	// Resolution returns the width and height of the primary display in pixels.
	Resolution() (width, height int, err error)
}

// WallpaperService manages desktop wallpaper.
type WallpaperService interface {
	// Set sets the desktop wallpaper to the specified image path.
	Set(path string) error
}

// ThemeService detects system color theme.
type ThemeService interface {
	// Detect returns the current system theme (light or dark).
	Detect() (Theme, error)
}

// EditorService opens files for editing.
type EditorService interface {
	// Open opens path in $EDITOR or the platform default editor.
	Open(path string) error
}

// SchedulerService manages the periodic job that re-invokes the binary.
type SchedulerService interface {
	// IsSupported returns true if scheduling is supported on this platform.
	IsSupported() bool

	// Install registers the job, replacing any previous registration.
	Install(job Job) error

	// Uninstall removes the job. Removing an absent job succeeds.
	Uninstall(job Job) error

	// Status reports the current registration of the job.
	Status(job Job) (SchedulerStatus, error)

	// Schedule returns the native schedule descriptor Install would register
	// for job. A job whose Status.Schedule equals it is up to date.
	Schedule(job Job) string

	// Heartbeat is the fixed wake-up interval used when the scheduler cannot
	// express the job frequency natively, zero otherwise. A non-zero heartbeat
	// means the binary must check elapsed time itself.
	Heartbeat() time.Duration
}

// SchedulerStatus represents the current state of a scheduled job.
type SchedulerStatus struct {
	// Installed indicates whether the job is registered.
	Installed bool

	// Schedule is the native descriptor currently registered, if known.
	Schedule string
}
