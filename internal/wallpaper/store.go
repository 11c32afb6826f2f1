package wallpaper

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/darkawower/astra/internal/apperr"
	"github.com/darkawower/astra/internal/frequency"
)

// DirName is the subdirectory of the data directory holding wallpapers.
const DirName = "Wallpapers"

var timestampRe = regexp.MustCompile(`_(\d+)\.png$`)

// Store keeps generated wallpapers as <prefix>_<unix-seconds>.png files.
type Store struct {
	dataDir string
	logger  zerolog.Logger
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a store under dataDir.
func NewStore(dataDir string, logger zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		dataDir: dataDir,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the wallpapers directory without creating it.
func (s *Store) Path() string {
	return filepath.Join(s.dataDir, DirName)
}

// Dir creates the wallpapers directory when absent and returns it.
func (s *Store) Dir() (string, error) {
	dir := s.Path()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", apperr.Wrap(apperr.OS, fmt.Errorf("failed to create wallpaper directory: %w", err))
	}
	return dir, nil
}

// Save encodes img as PNG named after prefix and the current time.
func (s *Store) Save(prefix string, img image.Image) (string, error) {
	dir, err := s.Dir()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%d.png", prefix, s.now().Unix()))
	f, err := os.Create(path)
	if err != nil {
		return "", apperr.Wrap(apperr.ImageSave, fmt.Errorf("failed to create %s: %w", path, err))
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", apperr.Wrap(apperr.ImageSave, fmt.Errorf("failed to encode %s: %w", path, err))
	}
	if err := f.Close(); err != nil {
		return "", apperr.Wrap(apperr.ImageSave, fmt.Errorf("failed to write %s: %w", path, err))
	}

	s.logger.Debug().Str("path", path).Msg("Saved wallpaper")
	return path, nil
}

// DeleteAll removes every file in the wallpapers directory and, with
// deleteDir, the directory itself. It returns the number of files removed.
func (s *Store) DeleteAll(deleteDir bool) (int, error) {
	dir := s.Path()
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, apperr.Wrap(apperr.OS, fmt.Errorf("failed to read wallpaper directory: %w", err))
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return removed, apperr.Wrap(apperr.OS, fmt.Errorf("failed to remove %s: %w", e.Name(), err))
		}
		removed++
	}

	if deleteDir {
		if err := os.RemoveAll(dir); err != nil {
			return removed, apperr.Wrap(apperr.OS, fmt.Errorf("failed to remove wallpaper directory: %w", err))
		}
	}

	s.logger.Debug().Int("removed", removed).Bool("directory", deleteDir).Msg("Deleted wallpapers")
	return removed, nil
}

// DeleteOlderThan removes wallpapers whose timestamp is at least age old.
// Files not named <prefix>_<digits>.png are never removed.
func (s *Store) DeleteOlderThan(age frequency.Frequency) (int, error) {
	dir := s.Path()
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, apperr.Wrap(apperr.OS, fmt.Errorf("failed to read wallpaper directory: %w", err))
	}

	now := s.now().Unix()
	maxAge := age.Seconds()
	removed := 0

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		ts, ok := Timestamp(e.Name())
		if !ok {
			s.logger.Warn().Str("file", e.Name()).Msg("Skipping file without a timestamp")
			continue
		}
		if ts > now || uint64(now-ts) < maxAge {
			continue
		}

		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			return removed, apperr.Wrap(apperr.OS, fmt.Errorf("failed to remove %s: %w", e.Name(), err))
		}
		s.logger.Debug().Str("file", e.Name()).Msg("Deleted old wallpaper")
		removed++
	}

	return removed, nil
}

// Timestamp extracts the Unix time from a saved wallpaper file name.
func Timestamp(name string) (int64, bool) {
	m := timestampRe.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	ts, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return ts, true
}
