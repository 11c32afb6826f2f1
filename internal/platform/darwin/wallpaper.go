package darwin

import (
	"context"
	"fmt"
	"strings"

	"github.com/darkawower/astra/internal/platform"
)

// WallpaperService implements platform.WallpaperService for macOS.
type WallpaperService struct {
	exec platform.Executor
}

// NewWallpaperService creates a new macOS wallpaper service.
func NewWallpaperService(exec platform.Executor) *WallpaperService {
	return &WallpaperService{exec: exec}
}

// Set sets the picture of every desktop using AppleScript.
func (s *WallpaperService) Set(path string) error {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(path)
	script := fmt.Sprintf(`tell application "System Events"
		tell every desktop
			set picture to "%s"
		end tell
	end tell`, escaped)

	if output, err := s.exec.Run(context.Background(), "osascript", "-e", script); err != nil {
		return fmt.Errorf("failed to set wallpaper: %w (output: %s)", err, string(output))
	}
	return nil
}

// EditorService opens files in $EDITOR or TextEdit.
type EditorService struct{}

// Open implements platform.EditorService.
func (s *EditorService) Open(path string) error {
	return platform.OpenInEditor(path, "open", "-t")
}
