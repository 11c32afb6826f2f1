package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkawower/astra/internal/apperr"
	"github.com/darkawower/astra/internal/colors"
	"github.com/darkawower/astra/internal/fractal"
	"github.com/darkawower/astra/internal/generator"
	"github.com/darkawower/astra/internal/theme"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const fullConfig = `{
  "auto_clean": "2w",
  "frequency": "1h",
  "generators": ["julia", "solid"],
  "julia_gen": {
    "appearance": "Dark",
    "complex_numbers": [[-0.4, 0.6], [0.285, 0.01]],
    "starting_sample_threshold": 150,
    "respect_color_themes": true
  },
  "solid_gen": {
    "preferred_default_colors": ["Teal", "NavyBlue"],
    "preferred_rgb_colors": [[1, 2, 3]],
    "respect_color_themes": false
  },
  "spotlight_gen": {
    "country": "DE",
    "locale": "de-DE",
    "respect_color_themes": true
  },
  "themes": [
    {
      "name": "Ocean",
      "colors": [[0, 0, 255], [0, 128, 255]],
      "dark_mode_colors": [[0, 0, 64]]
    },
    {
      "name": "Plain",
      "colors": [[200, 200, 200]]
    }
  ]
}`

func TestLoad_Full(t *testing.T) {
	cfg, err := Load(writeConfig(t, fullConfig))
	require.NoError(t, err)

	require.NotNil(t, cfg.AutoClean)
	assert.Equal(t, "2w", cfg.AutoClean.String())
	assert.Equal(t, uint64(14*86400), cfg.AutoClean.Seconds())
	require.NotNil(t, cfg.Frequency)
	assert.Equal(t, "1h", cfg.Frequency.String())
	assert.Equal(t, []generator.Kind{generator.Julia, generator.Solid}, cfg.Generators)

	julia := cfg.JuliaOptions()
	assert.Equal(t, theme.AppearanceDark, julia.Appearance)
	assert.Equal(t, []complex128{complex(-0.4, 0.6), complex(0.285, 0.01)}, julia.ComplexNumbers)
	assert.Equal(t, 150, julia.Threshold)
	assert.True(t, julia.RespectThemes)

	solid := cfg.SolidOptions()
	assert.Equal(t, []colors.Name{colors.Teal, colors.NavyBlue}, solid.PreferredNames)
	assert.Equal(t, []colors.Color{{R: 1, G: 2, B: 3}}, solid.PreferredRGB)
	assert.False(t, solid.RespectThemes)

	spotlight := cfg.SpotlightOptions()
	assert.Equal(t, generator.SpotlightOptions{Country: "DE", Locale: "de-DE", RespectThemes: true}, spotlight)

	themes := cfg.UserThemes()
	require.Len(t, themes, 2)
	assert.Equal(t, "Ocean", themes[0].Name)
	assert.Equal(t, []colors.Color{{B: 255}, {G: 128, B: 255}}, themes[0].Colors)
	assert.True(t, themes[0].SupportsDarkMode())
	assert.False(t, themes[1].SupportsDarkMode())
}

func TestLoad_EmptyObject(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}"))
	require.NoError(t, err)
	assert.Equal(t, &UserConfig{}, cfg)

	julia := cfg.JuliaOptions()
	assert.Equal(t, theme.AppearanceAuto, julia.Appearance)
	assert.Equal(t, fractal.ComplexNumbers, julia.ComplexNumbers)
	assert.Equal(t, fractal.DefaultThreshold, julia.Threshold)
	assert.Equal(t, generator.SolidOptions{}, cfg.SolidOptions())
	assert.Equal(t, generator.SpotlightOptions{}, cfg.SpotlightOptions())
	assert.Empty(t, cfg.UserThemes())
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, &UserConfig{}, cfg)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `{"frequency": `},
		{"bad frequency", `{"frequency": "0d"}`},
		{"bad generator", `{"generators": ["bing"]}`},
		{"bad appearance", `{"julia_gen": {"appearance": "Dim"}}`},
		{"threshold too high", `{"julia_gen": {"starting_sample_threshold": 300}}`},
		{"threshold zero", `{"julia_gen": {"starting_sample_threshold": 0}}`},
		{"complex not a pair", `{"julia_gen": {"complex_numbers": [[1, 2, 3]]}}`},
		{"unknown color name", `{"solid_gen": {"preferred_default_colors": ["Mauve"]}}`},
		{"rgb out of range", `{"solid_gen": {"preferred_rgb_colors": [[256, 0, 0]]}}`},
		{"rgb too short", `{"solid_gen": {"preferred_rgb_colors": [[1, 2]]}}`},
		{"theme without colors", `{"themes": [{"name": "Empty", "colors": []}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Equal(t, apperr.ConfigParse, apperr.KindOf(err))
			assert.Equal(t, &UserConfig{}, cfg)
		})
	}
}

func TestEnsureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	created, err := EnsureFile(path)
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(data))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &UserConfig{}, cfg)

	require.NoError(t, os.WriteFile(path, []byte(`{"frequency": "1d"}`), 0644))
	created, err = EnsureFile(path)
	require.NoError(t, err)
	assert.False(t, created)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1d")
}

func TestDirsFor(t *testing.T) {
	env := func(vars map[string]string) func(string) string {
		return func(k string) string { return vars[k] }
	}
	home := filepath.Join("/", "home", "me")

	tests := []struct {
		name string
		goos string
		vars map[string]string
		want Dirs
	}{
		{
			name: "linux defaults",
			goos: "linux",
			want: Dirs{
				Config: filepath.Join(home, ".config", "astra"),
				Data:   filepath.Join(home, ".local", "share", "astra"),
			},
		},
		{
			name: "linux xdg",
			goos: "linux",
			vars: map[string]string{"XDG_CONFIG_HOME": "/xdg/config", "XDG_DATA_HOME": "/xdg/data"},
			want: Dirs{
				Config: filepath.Join("/xdg/config", "astra"),
				Data:   filepath.Join("/xdg/data", "astra"),
			},
		},
		{
			name: "darwin",
			goos: "darwin",
			want: Dirs{
				Config: filepath.Join(home, "Library", "Application Support", "dev.CharlieKarafotias.Astra"),
				Data:   filepath.Join(home, "Library", "Application Support", "dev.CharlieKarafotias.Astra"),
			},
		},
		{
			name: "windows",
			goos: "windows",
			vars: map[string]string{"APPDATA": "/appdata"},
			want: Dirs{
				Config: filepath.Join("/appdata", "CharlieKarafotias", "Astra", "config"),
				Data:   filepath.Join("/appdata", "CharlieKarafotias", "Astra", "data"),
			},
		},
		{
			name: "overrides",
			goos: "linux",
			vars: map[string]string{EnvConfigDir: "/cfg", EnvDataDir: "/data"},
			want: Dirs{Config: "/cfg", Data: "/data"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dirsFor(tt.goos, home, env(tt.vars)))
		})
	}
}

func TestDirs_Files(t *testing.T) {
	d := Dirs{Config: "/c", Data: "/d"}
	assert.Equal(t, filepath.Join("/c", "config.json"), d.ConfigFile())
	assert.Equal(t, filepath.Join("/d", "last_exec.txt"), d.StateFile())
}
