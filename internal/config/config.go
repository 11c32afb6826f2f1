// Package config locates the application directories and loads the user's
// JSON configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/darkawower/astra/internal/apperr"
	"github.com/darkawower/astra/internal/colors"
	"github.com/darkawower/astra/internal/frequency"
	"github.com/darkawower/astra/internal/generator"
	"github.com/darkawower/astra/internal/theme"
)

// FileName is the config file inside the config directory.
const FileName = "config.json"

// UserConfig is the user's configuration. Every field is optional.
type UserConfig struct {
	AutoClean    *frequency.Frequency `mapstructure:"auto_clean"`
	Frequency    *frequency.Frequency `mapstructure:"frequency"`
	Generators   []generator.Kind     `mapstructure:"generators"`
	JuliaGen     *JuliaGen            `mapstructure:"julia_gen"`
	SolidGen     *SolidGen            `mapstructure:"solid_gen"`
	SpotlightGen *SpotlightGen        `mapstructure:"spotlight_gen"`
	Themes       []ThemeConfig        `mapstructure:"themes"`
}

// JuliaGen overrides the fractal generator defaults.
type JuliaGen struct {
	Appearance              *theme.Appearance `mapstructure:"appearance"`
	ComplexNumbers          [][]float64       `mapstructure:"complex_numbers"`
	StartingSampleThreshold *int              `mapstructure:"starting_sample_threshold"`
	RespectColorThemes      *bool             `mapstructure:"respect_color_themes"`
}

// SolidGen overrides the solid color generator defaults.
type SolidGen struct {
	PreferredDefaultColors []colors.Name  `mapstructure:"preferred_default_colors"`
	PreferredRGBColors     []colors.Color `mapstructure:"preferred_rgb_colors"`
	RespectColorThemes     *bool          `mapstructure:"respect_color_themes"`
}

// SpotlightGen overrides the Spotlight query.
type SpotlightGen struct {
	Country            *string `mapstructure:"country"`
	Locale             *string `mapstructure:"locale"`
	RespectColorThemes *bool   `mapstructure:"respect_color_themes"`
}

// ThemeConfig is a user-defined theme.
type ThemeConfig struct {
	Name           string         `mapstructure:"name"`
	Colors         []colors.Color `mapstructure:"colors"`
	DarkModeColors []colors.Color `mapstructure:"dark_mode_colors"`
}

// Load reads the config at path. A missing file is an empty config. Any
// read, decode, or validation failure returns an empty config together with
// an apperr.ConfigParse error, so callers can warn and carry on.
func Load(path string) (*UserConfig, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return &UserConfig{}, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return &UserConfig{}, apperr.Wrap(apperr.ConfigParse, fmt.Errorf("failed to read config file: %w", err))
	}

	var cfg UserConfig
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		colorHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return &UserConfig{}, apperr.Wrap(apperr.ConfigParse, fmt.Errorf("failed to parse config file: %w", err))
	}

	if err := cfg.Validate(); err != nil {
		return &UserConfig{}, apperr.Wrap(apperr.ConfigParse, err)
	}

	return &cfg, nil
}

// colorHookFunc decodes [r, g, b] arrays into colors.Color.
func colorHookFunc() mapstructure.DecodeHookFuncType {
	colorType := reflect.TypeOf(colors.Color{})
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != colorType || (f.Kind() != reflect.Slice && f.Kind() != reflect.Array) {
			return data, nil
		}

		rv := reflect.ValueOf(data)
		if rv.Len() != 3 {
			return nil, fmt.Errorf("color must have 3 components, got %d", rv.Len())
		}

		var rgb [3]uint8
		for i := range rgb {
			n, err := channel(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			rgb[i] = n
		}
		return colors.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
	}
}

func channel(v any) (uint8, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		return 0, fmt.Errorf("color component %v is not a number", v)
	}
	if f < 0 || f > 255 || f != float64(int(f)) {
		return 0, fmt.Errorf("color component %v out of range 0-255", v)
	}
	return uint8(f), nil
}

// Validate checks constraints the decoder cannot express.
func (c *UserConfig) Validate() error {
	if j := c.JuliaGen; j != nil {
		if t := j.StartingSampleThreshold; t != nil && (*t < 1 || *t > 255) {
			return fmt.Errorf("julia_gen.starting_sample_threshold must be between 1 and 255, got %d", *t)
		}
		for i, pair := range j.ComplexNumbers {
			if len(pair) != 2 {
				return fmt.Errorf("julia_gen.complex_numbers[%d] must be a [re, im] pair", i)
			}
		}
	}

	for i, t := range c.Themes {
		if t.Name == "" {
			return fmt.Errorf("themes[%d]: name is required", i)
		}
		if len(t.Colors) == 0 {
			return fmt.Errorf("themes[%d] (%s): colors must not be empty", i, t.Name)
		}
	}

	return nil
}

// UserThemes converts the configured themes.
func (c *UserConfig) UserThemes() []theme.Theme {
	themes := make([]theme.Theme, 0, len(c.Themes))
	for _, t := range c.Themes {
		themes = append(themes, theme.Theme{
			Name:       t.Name,
			Colors:     t.Colors,
			DarkColors: t.DarkModeColors,
		})
	}
	return themes
}

// JuliaOptions overlays julia_gen on the defaults.
func (c *UserConfig) JuliaOptions() generator.JuliaOptions {
	opts := generator.DefaultJuliaOptions()
	j := c.JuliaGen
	if j == nil {
		return opts
	}

	if j.Appearance != nil {
		opts.Appearance = *j.Appearance
	}
	if len(j.ComplexNumbers) > 0 {
		opts.ComplexNumbers = make([]complex128, len(j.ComplexNumbers))
		for i, pair := range j.ComplexNumbers {
			opts.ComplexNumbers[i] = complex(pair[0], pair[1])
		}
	}
	if j.StartingSampleThreshold != nil {
		opts.Threshold = *j.StartingSampleThreshold
	}
	opts.RespectThemes = deref(j.RespectColorThemes)
	return opts
}

// SolidOptions converts solid_gen.
func (c *UserConfig) SolidOptions() generator.SolidOptions {
	s := c.SolidGen
	if s == nil {
		return generator.SolidOptions{}
	}
	return generator.SolidOptions{
		PreferredNames: s.PreferredDefaultColors,
		PreferredRGB:   s.PreferredRGBColors,
		RespectThemes:  deref(s.RespectColorThemes),
	}
}

// SpotlightOptions converts spotlight_gen.
func (c *UserConfig) SpotlightOptions() generator.SpotlightOptions {
	s := c.SpotlightGen
	if s == nil {
		return generator.SpotlightOptions{}
	}
	return generator.SpotlightOptions{
		Country:       deref(s.Country),
		Locale:        deref(s.Locale),
		RespectThemes: deref(s.RespectColorThemes),
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// EnsureFile creates an empty "{}" config at path when none exists. It
// reports whether the file was created.
func EnsureFile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, apperr.Wrap(apperr.OS, fmt.Errorf("failed to stat config file: %w", err))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, apperr.Wrap(apperr.OS, fmt.Errorf("failed to create config directory: %w", err))
	}
	if err := os.WriteFile(path, []byte("{}\n"), 0644); err != nil {
		return false, apperr.Wrap(apperr.OS, fmt.Errorf("failed to create config file: %w", err))
	}
	return true, nil
}
