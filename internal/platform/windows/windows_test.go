package windows

import (
	"context"
	"errors"
	"strings"
	"testing"

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

func TestPlatformInterface(t *testing.T) {
	p := NewWithExecutor(&mockExecutor{})

	assert.Equal(t, "windows", p.Name())
	assert.True(t, p.IsSupported())
	assert.NotNil(t, p.Display())
	assert.NotNil(t, p.Scheduler())
}

func TestParseVideoModes(t *testing.T) {
	tests := []struct {
		name   string
		output string
		w, h   int
		err    bool
	}{
		{"single", "1920 x 1080 x 4294967296 colors\r\n", 1920, 1080, false},
		{"largest wins", "1920 x 1080 x 4294967296 colors\r\n2560 x 1440 x 4294967296 colors\r\n", 2560, 1440, false},
		{"empty", "\r\n", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := parseVideoModes(tt.output)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.w, w)
			assert.Equal(t, tt.h, h)
		})
	}
}

func TestThemeService(t *testing.T) {
	tests := []struct {
		output string
		want   platform.Theme
	}{
		{"0\r\n", platform.ThemeDark},
		{"1\r\n", platform.ThemeLight},
	}

	for _, tt := range tests {
		exec := &mockExecutor{runFunc: func(string, ...string) ([]byte, error) { return []byte(tt.output), nil }}
		theme, err := (&ThemeService{exec: exec}).Detect()
		require.NoError(t, err)
		assert.Equal(t, tt.want, theme)
		assert.Contains(t, exec.calls[0], "SystemUsesLightTheme")
	}
}

func TestWallpaperService_QuotesPath(t *testing.T) {
	exec := &mockExecutor{}
	require.NoError(t, (&WallpaperService{exec: exec}).Set(`C:\Users\o'neil\w.png`))

	require.Len(t, exec.calls, 1)
	assert.Contains(t, exec.calls[0], `SystemParametersInfo(20, 0, 'C:\Users\o''neil\w.png', 3)`)
}

func parseFrequency(t *testing.T, s string) frequency.Frequency {
	t.Helper()
	f, err := frequency.Parse(s)
	require.NoError(t, err)
	return f
}

func TestSchedulerService_Install(t *testing.T) {
	exec := &mockExecutor{}
	svc := NewSchedulerService(exec)
	job := platform.Job{Command: `C:\astra.exe`, Frequency: parseFrequency(t, "2h")}

	require.NoError(t, svc.Install(job))
	assert.Equal(t, []string{
		`schtasks /create /sc HOURLY /tn dev_CharlieKarafotias_Astra /tr "C:\astra.exe" /mo 2 /f`,
	}, exec.calls)
	assert.Equal(t, "2 HOURLY", svc.Schedule(job))
	assert.Zero(t, svc.Heartbeat())
}

func TestSchedulerService_InstallQuotesPathWithSpaces(t *testing.T) {
	var args []string
	exec := &mockExecutor{runFunc: func(name string, a ...string) ([]byte, error) {
		args = a
		return nil, nil
	}}
	job := platform.Job{Command: `C:\Program Files\Astra\astra.exe`, Frequency: parseFrequency(t, "1d")}

	require.NoError(t, NewSchedulerService(exec).Install(job))

	i := indexOf(args, "/tr")
	require.GreaterOrEqual(t, i, 0)
	require.Less(t, i+1, len(args))
	assert.Equal(t, `"C:\Program Files\Astra\astra.exe"`, args[i+1])
}

func indexOf(args []string, want string) int {
	for i, a := range args {
		if a == want {
			return i
		}
	}
	return -1
}

func TestEditorService_StartProcessQuotesPath(t *testing.T) {
	t.Setenv("EDITOR", "")
	exec := &mockExecutor{}

	require.NoError(t, (&EditorService{exec: exec}).Open(`C:\Users\Me\App Data\config.json`))

	require.Len(t, exec.calls, 1)
	assert.True(t, strings.HasPrefix(exec.calls[0], "powershell -NoProfile -NonInteractive -Command "))
	assert.Contains(t, exec.calls[0], `Start-Process -FilePath 'C:\Users\Me\App Data\config.json'`)
}

func TestSchedulerService_InstallFailure(t *testing.T) {
	exec := &mockExecutor{runFunc: func(string, ...string) ([]byte, error) {
		return []byte("ERROR: Access is denied."), errors.New("exit status 1")
	}}
	err := NewSchedulerService(exec).Install(platform.Job{Command: "astra.exe", Frequency: parseFrequency(t, "1d")})

	require.Error(t, err)
	assert.Equal(t, apperr.Scheduler, apperr.KindOf(err))
}

func TestSchedulerService_Uninstall(t *testing.T) {
	absent := &mockExecutor{runFunc: func(name string, args ...string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	}}
	require.NoError(t, NewSchedulerService(absent).Uninstall(platform.Job{}))
	assert.Len(t, absent.calls, 1)

	present := &mockExecutor{}
	require.NoError(t, NewSchedulerService(present).Uninstall(platform.Job{}))
	assert.Equal(t, []string{
		"schtasks /query /tn dev_CharlieKarafotias_Astra",
		"schtasks /delete /tn dev_CharlieKarafotias_Astra /f",
	}, present.calls)
}

func TestSchedulerService_Status(t *testing.T) {
	job := platform.Job{Command: "astra.exe", Frequency: parseFrequency(t, "1d")}

	status, err := NewSchedulerService(&mockExecutor{}).Status(job)
	require.NoError(t, err)
	assert.True(t, status.Installed)
	assert.Empty(t, status.Schedule)

	missing := &mockExecutor{runFunc: func(string, ...string) ([]byte, error) { return nil, errors.New("exit status 1") }}
	status, err = NewSchedulerService(missing).Status(job)
	require.NoError(t, err)
	assert.False(t, status.Installed)
}
