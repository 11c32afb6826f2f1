package platform

import (
	"errors"
	"runtime"
	"sync"
	"time"
)

var ErrUnsupported = errors.New("operation not supported on this platform")

type platformBuilder func() Platform

var (
	registry     = make(map[string]platformBuilder)
	registryLock sync.RWMutex
)

// Register makes a platform builder available for osName.
func Register(osName string, builder platformBuilder) {
	registryLock.Lock()
	defer registryLock.Unlock()
	registry[osName] = builder
}

var (
	current     Platform
	currentOnce sync.Once
)

// Current returns the platform registered for runtime.GOOS.
func Current() Platform {
	currentOnce.Do(func() {
		current = newPlatform()
	})
	return current
}

func newPlatform() Platform {
	registryLock.RLock()
	defer registryLock.RUnlock()

	if builder, ok := registry[runtime.GOOS]; ok {
		return builder()
	}

	return &unsupportedPlatform{name: runtime.GOOS}
}

type unsupportedPlatform struct {
	name string
}

func (p *unsupportedPlatform) Name() string                { return p.name }
func (p *unsupportedPlatform) IsSupported() bool           { return false }
func (p *unsupportedPlatform) Display() DisplayService     { return unsupportedDisplay{} }
func (p *unsupportedPlatform) Wallpaper() WallpaperService { return unsupportedWallpaper{} }
func (p *unsupportedPlatform) Theme() ThemeService         { return unsupportedTheme{} }
func (p *unsupportedPlatform) Scheduler() SchedulerService { return unsupportedScheduler{} }
func (p *unsupportedPlatform) Editor() EditorService       { return unsupportedEditor{} }

type unsupportedDisplay struct{}

func (unsupportedDisplay) Resolution() (int, int, error) { return 0, 0, ErrUnsupported }

type unsupportedWallpaper struct{}

func (unsupportedWallpaper) Set(path string) error { return ErrUnsupported }

type unsupportedTheme struct{}

func (unsupportedTheme) Detect() (Theme, error) { return ThemeLight, nil }

type unsupportedScheduler struct{}

func (unsupportedScheduler) IsSupported() bool     { return false }
func (unsupportedScheduler) Install(job Job) error   { return ErrUnsupported }
func (unsupportedScheduler) Uninstall(job Job) error { return ErrUnsupported }
func (unsupportedScheduler) Status(job Job) (SchedulerStatus, error) {
	return SchedulerStatus{}, ErrUnsupported
}
func (unsupportedScheduler) Schedule(job Job) string  { return "" }
func (unsupportedScheduler) Heartbeat() time.Duration { return 0 }

type unsupportedEditor struct{}

func (unsupportedEditor) Open(path string) error { return OpenInEditor(path) }

// SetPlatform overrides the current platform.
func SetPlatform(p Platform) {
	currentOnce.Do(func() {})
	current = p
}

// ResetPlatform clears any override so Current detects again.
func ResetPlatform() {
	currentOnce = sync.Once{}
	current = nil
}
