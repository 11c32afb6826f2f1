package windows

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/darkawower/astra/internal/platform"
)

var modeRe = regexp.MustCompile(`(\d+)\s*x\s*(\d+)`)

func powershell(ctx context.Context, exec platform.Executor, script string) ([]byte, error) {
	return exec.Run(ctx, "powershell", "-NoProfile", "-NonInteractive", "-Command", script)
}

// quote wraps s in a single-quoted PowerShell literal.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// DisplayService reads video modes from Win32_VideoController.
type DisplayService struct {
	exec platform.Executor
}

// Resolution implements platform.DisplayService. With several adapters the
// largest mode wins.
func (s *DisplayService) Resolution() (int, int, error) {
	out, err := powershell(context.Background(), s.exec,
		"Get-CimInstance Win32_VideoController | Select-Object -ExpandProperty VideoModeDescription")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query video controllers: %w (output: %s)", err, string(out))
	}
	return parseVideoModes(string(out))
}

func parseVideoModes(output string) (int, int, error) {
	bestW, bestH := 0, 0
	for _, m := range modeRe.FindAllStringSubmatch(output, -1) {
		w, errW := strconv.Atoi(m[1])
		h, errH := strconv.Atoi(m[2])
		if errW != nil || errH != nil {
			continue
		}
		if w*h > bestW*bestH {
			bestW, bestH = w, h
		}
	}
	if bestW == 0 {
		return 0, 0, fmt.Errorf("no video mode found")
	}
	return bestW, bestH, nil
}

// ThemeService reads the personalization registry key.
type ThemeService struct {
	exec platform.Executor
}

const personalizeKey = `HKCU:\Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`

// Detect implements platform.ThemeService.
func (s *ThemeService) Detect() (platform.Theme, error) {
	out, err := powershell(context.Background(), s.exec,
		fmt.Sprintf("Get-ItemPropertyValue -Path %s -Name SystemUsesLightTheme", quote(personalizeKey)))
	if err != nil {
		return platform.ThemeLight, fmt.Errorf("failed to read theme: %w (output: %s)", err, string(out))
	}
	if strings.TrimSpace(string(out)) == "0" {
		return platform.ThemeDark, nil
	}
	return platform.ThemeLight, nil
}

// WallpaperService calls SystemParametersInfo through PowerShell.
type WallpaperService struct {
	exec platform.Executor
}

const setWallpaperScript = `Add-Type -TypeDefinition 'using System.Runtime.InteropServices; public class Wallpaper { [DllImport("user32.dll", CharSet = CharSet.Auto)] public static extern int SystemParametersInfo(int uAction, int uParam, string lpvParam, int fuWinIni); }'; [void][Wallpaper]::SystemParametersInfo(20, 0, %s, 3)`

// Set implements platform.WallpaperService.
func (s *WallpaperService) Set(path string) error {
	out, err := powershell(context.Background(), s.exec, fmt.Sprintf(setWallpaperScript, quote(path)))
	if err != nil {
		return fmt.Errorf("failed to set wallpaper: %w (output: %s)", err, string(out))
	}
	return nil
}

// EditorService opens files in $EDITOR or the associated application.
type EditorService struct {
	exec platform.Executor
}

// Open implements platform.EditorService.
func (s *EditorService) Open(path string) error {
	if os.Getenv("EDITOR") != "" {
		return platform.OpenInEditor(path)
	}
	out, err := powershell(context.Background(), s.exec, "Start-Process -FilePath "+quote(path))
	if err != nil {
		return fmt.Errorf("failed to open %s: %w (output: %s)", path, err, string(out))
	}
	return nil
}
