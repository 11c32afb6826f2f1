package darwin

import (
	"context"
	"strings"

	"github.com/darkawower/astra/internal/platform"
)

// ThemeService implements platform.ThemeService for macOS.
type ThemeService struct {
	exec platform.Executor
}

// NewThemeService creates a new macOS theme service.
func NewThemeService(exec platform.Executor) *ThemeService {
	return &ThemeService{exec: exec}
}

// Detect returns the current system theme by reading AppleInterfaceStyle.
func (s *ThemeService) Detect() (platform.Theme, error) {
	output, err := s.exec.Run(context.Background(), "defaults", "read", "-g", "AppleInterfaceStyle")
	if err != nil {
		// The key does not exist in light mode
		return platform.ThemeLight, nil
	}

	if strings.EqualFold(strings.TrimSpace(string(output)), "dark") {
		return platform.ThemeDark, nil
	}

	return platform.ThemeLight, nil
}
