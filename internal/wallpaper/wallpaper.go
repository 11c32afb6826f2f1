// Package wallpaper stores generated images and hands them to the desktop.
package wallpaper

import (
	"path/filepath"

	"github.com/darkawower/astra/internal/apperr"
	"github.com/darkawower/astra/internal/platform"
)

// Setter applies an image file as the desktop wallpaper.
type Setter interface {
	// Set sets the wallpaper to the specified path on every desktop.
	Set(path string) error
}

// platformSetter wraps platform.WallpaperService to implement Setter.
type platformSetter struct {
	svc platform.WallpaperService
}

// NewSetter creates a setter backed by svc.
func NewSetter(svc platform.WallpaperService) Setter {
	return &platformSetter{svc: svc}
}

// Set resolves path to an absolute path before handing it to the platform.
func (s *platformSetter) Set(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return apperr.Wrap(apperr.OS, err)
	}
	if err := s.svc.Set(absPath); err != nil {
		return apperr.Wrap(apperr.OS, err)
	}
	return nil
}
