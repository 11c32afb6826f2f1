// Package theme holds the color themes used to paint generated wallpapers
// and resolves whether the dark variant applies.
package theme

import (
	"fmt"
	"strings"

	"github.com/darkawower/astra/internal/colors"
	"github.com/darkawower/astra/internal/platform"
)

// Theme is a named list of anchor colors with an optional dark variant.
type Theme struct {
	Name       string
	Colors     []colors.Color
	DarkColors []colors.Color
}

// SupportsDarkMode reports whether the theme defines dark anchors.
func (t Theme) SupportsDarkMode() bool {
	return len(t.DarkColors) > 0
}

// ColorsFor returns the dark anchors when dark is set and available,
// otherwise the light anchors.
func (t Theme) ColorsFor(dark bool) []colors.Color {
	if dark && t.SupportsDarkMode() {
		return t.DarkColors
	}
	return t.Colors
}

// AverageColor is the quadratic mean of the anchors selected by dark.
func (t Theme) AverageColor(dark bool) colors.Color {
	return colors.QuadraticMean(t.ColorsFor(dark))
}

// Palette builds the escape-time palette for the selected anchors.
func (t Theme) Palette(dark bool) []colors.Color {
	return colors.BuildPalette(colors.PaletteSize, t.ColorsFor(dark))
}

// Appearance selects light or dark anchors.
type Appearance string

const (
	AppearanceAuto  Appearance = "auto"
	AppearanceLight Appearance = "light"
	AppearanceDark  Appearance = "dark"
)

// UnmarshalText accepts "Auto", "Light", or "Dark" in any case.
func (a *Appearance) UnmarshalText(text []byte) error {
	switch v := Appearance(strings.ToLower(strings.TrimSpace(string(text)))); v {
	case AppearanceAuto, AppearanceLight, AppearanceDark:
		*a = v
		return nil
	default:
		return fmt.Errorf("invalid appearance: %s (must be Auto, Light, or Dark)", text)
	}
}

// Detector resolves an Appearance to a dark-mode flag.
type Detector struct {
	appearance Appearance
	svc        platform.ThemeService
}

// NewDetector creates a detector that consults svc in auto mode.
func NewDetector(appearance Appearance, svc platform.ThemeService) *Detector {
	return &Detector{
		appearance: appearance,
		svc:        svc,
	}
}

// Dark reports whether dark anchors should be used.
func (d *Detector) Dark() (bool, error) {
	switch d.appearance {
	case AppearanceLight:
		return false, nil
	case AppearanceDark:
		return true, nil
	default:
		if d.svc == nil {
			return false, nil
		}
		current, err := d.svc.Detect()
		if err != nil {
			return false, fmt.Errorf("failed to detect dark mode: %w", err)
		}
		return current == platform.ThemeDark, nil
	}
}
