package darwin

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/darkawower/astra/internal/apperr"
	"github.com/darkawower/astra/internal/frequency"
	"github.com/darkawower/astra/internal/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockExecutor struct {
	calls   []string
	runFunc func(name string, args ...string) ([]byte, error)
}

func (m *mockExecutor) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.calls = append(m.calls, name+" "+strings.Join(args, " "))
	if m.runFunc != nil {
		return m.runFunc(name, args...)
	}
	return nil, nil
}

const printOutput = `gui/501/dev.CharlieKarafotias.Astra = {
	active count = 0
	path = /Users/me/Library/LaunchAgents/dev.CharlieKarafotias.Astra.plist
	type = LaunchAgent
	state = not running

	program = /usr/local/bin/astra
	inherited environment = {
	}

	run interval = 600 seconds
	properties = runatload
}
`

func TestPlatformInterface(t *testing.T) {
	p := NewWithExecutor(&mockExecutor{})

	var _ platform.Platform = p

	assert.Equal(t, "darwin", p.Name())
	assert.True(t, p.IsSupported())
	assert.NotNil(t, p.Display())
	assert.NotNil(t, p.Wallpaper())
	assert.NotNil(t, p.Theme())
	assert.NotNil(t, p.Scheduler())
	assert.NotNil(t, p.Editor())
}

func TestThemeService(t *testing.T) {
	dark := &mockExecutor{runFunc: func(string, ...string) ([]byte, error) { return []byte("Dark\n"), nil }}
	theme, err := NewThemeService(dark).Detect()
	require.NoError(t, err)
	assert.Equal(t, platform.ThemeDark, theme)

	missingKey := &mockExecutor{runFunc: func(string, ...string) ([]byte, error) {
		return []byte("The domain/default pair does not exist"), errors.New("exit status 1")
	}}
	theme, err = NewThemeService(missingKey).Detect()
	require.NoError(t, err)
	assert.Equal(t, platform.ThemeLight, theme)
}

func TestParseDisplays(t *testing.T) {
	output := `Graphics/Displays:

    Apple M1 Pro:

      Chipset Model: Apple M1 Pro
      Displays:
        DELL U2720Q:
          Resolution: 3840 x 2160 (2160p/4K UHD 1 - Ultra High Definition)
          UI Looks like: 1920 x 1080 @ 60.00Hz
        Color LCD:
          Display Type: Built-in Liquid Retina XDR Display
          Resolution: 3024 x 1964 Retina
          Main Display: Yes
`
	w, h, err := parseDisplays(output)
	require.NoError(t, err)
	assert.Equal(t, 3024, w)
	assert.Equal(t, 1964, h)

	w, h, err = parseDisplays("Resolution: 1440 x 900\n")
	require.NoError(t, err)
	assert.Equal(t, 1440, w)
	assert.Equal(t, 900, h)

	_, _, err = parseDisplays("Graphics/Displays:\n")
	assert.Error(t, err)
}

func TestWallpaperService_Set(t *testing.T) {
	exec := &mockExecutor{}
	require.NoError(t, NewWallpaperService(exec).Set(`/tmp/a "quoted".png`))

	require.Len(t, exec.calls, 1)
	assert.True(t, strings.HasPrefix(exec.calls[0], "osascript -e "))
	assert.Contains(t, exec.calls[0], `set picture to "/tmp/a \"quoted\".png"`)
}

func testJob(t *testing.T) platform.Job {
	t.Helper()
	f, err := frequency.Parse("1h")
	require.NoError(t, err)
	return platform.Job{Command: "/usr/local/bin/astra", Frequency: f}
}

func TestSchedulerService_Install(t *testing.T) {
	dir := t.TempDir()
	exec := &mockExecutor{}
	svc := NewSchedulerServiceAt(exec, dir, "501")

	require.NoError(t, svc.Install(testJob(t)))

	plistPath := filepath.Join(dir, "dev.CharlieKarafotias.Astra.plist")
	data, err := os.ReadFile(plistPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "<string>dev.CharlieKarafotias.Astra</string>")
	assert.Contains(t, content, "<key>Program</key>\n    <string>/usr/local/bin/astra</string>")
	assert.Contains(t, content, "<integer>600</integer>")
	assert.Contains(t, content, "<key>RunAtLoad</key>\n    <true/>")

	assert.Equal(t, []string{"launchctl bootstrap gui/501 " + plistPath}, exec.calls)
}

func TestSchedulerService_ReinstallBootsOutFirst(t *testing.T) {
	dir := t.TempDir()
	exec := &mockExecutor{}
	svc := NewSchedulerServiceAt(exec, dir, "501")
	plistPath := filepath.Join(dir, "dev.CharlieKarafotias.Astra.plist")

	require.NoError(t, svc.Install(testJob(t)))
	first, _ := os.ReadFile(plistPath)
	require.NoError(t, svc.Install(testJob(t)))
	second, _ := os.ReadFile(plistPath)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{
		"launchctl bootstrap gui/501 " + plistPath,
		"launchctl bootout gui/501 " + plistPath,
		"launchctl bootstrap gui/501 " + plistPath,
	}, exec.calls)
}

func TestSchedulerService_BootstrapFailure(t *testing.T) {
	exec := &mockExecutor{runFunc: func(name string, args ...string) ([]byte, error) {
		return []byte("Bootstrap failed: 5: Input/output error"), errors.New("exit status 5")
	}}
	err := NewSchedulerServiceAt(exec, t.TempDir(), "501").Install(testJob(t))

	require.Error(t, err)
	assert.Equal(t, apperr.Scheduler, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "Input/output error")
}

func TestSchedulerService_Uninstall(t *testing.T) {
	dir := t.TempDir()
	exec := &mockExecutor{}
	svc := NewSchedulerServiceAt(exec, dir, "501")

	require.NoError(t, svc.Uninstall(testJob(t)))
	assert.Empty(t, exec.calls)

	require.NoError(t, svc.Install(testJob(t)))
	exec.calls = nil
	require.NoError(t, svc.Uninstall(testJob(t)))

	plistPath := filepath.Join(dir, "dev.CharlieKarafotias.Astra.plist")
	assert.Equal(t, []string{"launchctl bootout gui/501 " + plistPath}, exec.calls)
	assert.NoFileExists(t, plistPath)
}

func TestSchedulerService_Status(t *testing.T) {
	job := testJob(t)

	loaded := &mockExecutor{runFunc: func(string, ...string) ([]byte, error) { return []byte(printOutput), nil }}
	svc := NewSchedulerServiceAt(loaded, t.TempDir(), "501")
	status, err := svc.Status(job)
	require.NoError(t, err)
	assert.True(t, status.Installed)
	assert.Equal(t, svc.Schedule(job), status.Schedule)
	assert.Equal(t, []string{"launchctl print gui/501/dev.CharlieKarafotias.Astra"}, loaded.calls)

	stale := &mockExecutor{runFunc: func(string, ...string) ([]byte, error) {
		return []byte(strings.Replace(printOutput, "600 seconds", "300 seconds", 1)), nil
	}}
	status, err = NewSchedulerServiceAt(stale, t.TempDir(), "501").Status(job)
	require.NoError(t, err)
	assert.True(t, status.Installed)
	assert.NotEqual(t, svc.Schedule(job), status.Schedule)

	missing := &mockExecutor{runFunc: func(string, ...string) ([]byte, error) {
		return []byte("Could not find service"), errors.New("exit status 113")
	}}
	status, err = NewSchedulerServiceAt(missing, t.TempDir(), "501").Status(job)
	require.NoError(t, err)
	assert.False(t, status.Installed)
}

func TestSchedulerService_Heartbeat(t *testing.T) {
	svc := NewSchedulerServiceAt(&mockExecutor{}, t.TempDir(), "501")
	assert.True(t, svc.IsSupported())
	assert.Equal(t, 10*time.Minute, svc.Heartbeat())
}
