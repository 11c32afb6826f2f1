package linux

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/darkawower/astra/internal/platform"
)

var geometryRe = regexp.MustCompile(`(\d+)x(\d+)\+\d+\+\d+`)

// DisplayService reads the primary output geometry from xrandr.
type DisplayService struct {
	exec platform.Executor
}

// Resolution implements platform.DisplayService.
func (s *DisplayService) Resolution() (int, int, error) {
	out, err := s.exec.Run(context.Background(), "xrandr", "--current")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query xrandr: %w (output: %s)", err, string(out))
	}
	return parseXrandr(string(out))
}

// parseXrandr prefers the "connected primary" output and falls back to the
// first connected output with a geometry.
func parseXrandr(output string) (int, int, error) {
	var fallback []string
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, " connected") {
			continue
		}
		m := geometryRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if strings.Contains(line, " connected primary ") {
			return atoiPair(m[1], m[2])
		}
		if fallback == nil {
			fallback = m
		}
	}
	if fallback != nil {
		return atoiPair(fallback[1], fallback[2])
	}
	return 0, 0, fmt.Errorf("no connected display found in xrandr output")
}

func atoiPair(a, b string) (int, int, error) {
	w, err := strconv.Atoi(a)
	if err != nil {
		return 0, 0, err
	}
	h, err := strconv.Atoi(b)
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

// ThemeService reads the GNOME color scheme.
type ThemeService struct {
	exec platform.Executor
}

// Detect implements platform.ThemeService.
func (s *ThemeService) Detect() (platform.Theme, error) {
	out, err := s.exec.Run(context.Background(), "gsettings", "get", "org.gnome.desktop.interface", "color-scheme")
	if err != nil {
		return platform.ThemeLight, fmt.Errorf("failed to read color scheme: %w (output: %s)", err, string(out))
	}
	if strings.Contains(string(out), "prefer-dark") {
		return platform.ThemeDark, nil
	}
	return platform.ThemeLight, nil
}

// WallpaperService sets the GNOME background for both color schemes.
type WallpaperService struct {
	exec platform.Executor
}

// Set implements platform.WallpaperService.
func (s *WallpaperService) Set(path string) error {
	uri := "file://" + path
	for _, key := range []string{"picture-uri", "picture-uri-dark"} {
		out, err := s.exec.Run(context.Background(), "gsettings", "set", "org.gnome.desktop.background", key, uri)
		if err != nil {
			return fmt.Errorf("failed to set %s: %w (output: %s)", key, err, string(out))
		}
	}
	return nil
}

// EditorService opens files in $EDITOR, defaulting to vim.
type EditorService struct{}

// Open implements platform.EditorService.
func (s *EditorService) Open(path string) error {
	return platform.OpenInEditor(path, "vim")
}
