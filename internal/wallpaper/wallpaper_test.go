package wallpaper

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkawower/astra/internal/apperr"
	"github.com/darkawower/astra/internal/colors"
	"github.com/darkawower/astra/internal/frequency"
	"github.com/darkawower/astra/internal/platform/stub"
)

var fixedNow = time.Unix(1_700_000_000, 0)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir(), zerolog.Nop(), WithClock(func() time.Time { return fixedNow }))
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
}

func TestStore_Dir(t *testing.T) {
	s := newTestStore(t)
	assert.NoDirExists(t, s.Path())

	dir, err := s.Dir()
	require.NoError(t, err)
	assert.Equal(t, DirName, filepath.Base(dir))
	assert.DirExists(t, dir)
}

func TestStore_Save(t *testing.T) {
	s := newTestStore(t)

	path, err := s.Save("solid", colors.Fill(3, 2, colors.Color{R: 1, G: 2, B: 3}))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.Path(), "solid_1700000000.png"), path)

	ts, ok := Timestamp(filepath.Base(path))
	require.True(t, ok)
	assert.Equal(t, fixedNow.Unix(), ts)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := colors.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
}

func TestStore_SaveFailure(t *testing.T) {
	root := t.TempDir()
	// A file where the wallpapers directory should be.
	require.NoError(t, os.WriteFile(filepath.Join(root, DirName), nil, 0644))
	s := NewStore(root, zerolog.Nop())

	_, err := s.Save("julia", colors.Fill(1, 1, colors.Color{}))
	require.Error(t, err)
	assert.Equal(t, apperr.OS, apperr.KindOf(err))
}

func TestStore_DeleteAll(t *testing.T) {
	s := newTestStore(t)
	touch(t, s.Path(), "julia_1.png")
	touch(t, s.Path(), "notes.txt")

	n, err := s.DeleteAll(false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.DirExists(t, s.Path())

	entries, err := os.ReadDir(s.Path())
	require.NoError(t, err)
	assert.Empty(t, entries)

	touch(t, s.Path(), "solid_2.png")
	n, err = s.DeleteAll(true)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoDirExists(t, s.Path())

	n, err = s.DeleteAll(true)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_DeleteOlderThan(t *testing.T) {
	s := newTestStore(t)
	day := int64(86400)
	old := fmt.Sprintf("julia_%d.png", fixedNow.Unix()-8*day)
	boundary := fmt.Sprintf("spotlight_%d.png", fixedNow.Unix()-7*day)
	recent := fmt.Sprintf("solid_%d.png", fixedNow.Unix()-day)
	for _, name := range []string{old, boundary, recent, "readme.txt", "julia_.png"} {
		touch(t, s.Path(), name)
	}

	n, err := s.DeleteOlderThan(parseFrequency(t, "7d"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.NoFileExists(t, filepath.Join(s.Path(), old))
	assert.NoFileExists(t, filepath.Join(s.Path(), boundary))
	assert.FileExists(t, filepath.Join(s.Path(), recent))
	assert.FileExists(t, filepath.Join(s.Path(), "readme.txt"))
	assert.FileExists(t, filepath.Join(s.Path(), "julia_.png"))
}

func TestStore_DeleteOlderThan_MissingDir(t *testing.T) {
	n, err := newTestStore(t).DeleteOlderThan(parseFrequency(t, "1d"))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		name string
		want int64
		ok   bool
	}{
		{"julia_1700000000.png", 1700000000, true},
		{"my_solid_5.png", 5, true},
		{"julia_1700000000.jpg", 0, false},
		{"julia_abc.png", 0, false},
		{"readme.txt", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Timestamp(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetter(t *testing.T) {
	p := stub.New()
	setter := NewSetter(p.Wallpaper())

	require.NoError(t, setter.Set("relative.png"))
	got := p.Wallpapers()
	require.Len(t, got, 1)
	assert.True(t, filepath.IsAbs(got[0]))

	p.WallpaperErr = errors.New("osascript failed")
	err := setter.Set("/abs.png")
	require.Error(t, err)
	assert.Equal(t, apperr.OS, apperr.KindOf(err))
}

func parseFrequency(t *testing.T, s string) frequency.Frequency {
	t.Helper()
	f, err := frequency.Parse(s)
	require.NoError(t, err)
	return f
}
