package linux

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/darkawower/astra/internal/apperr"
	"github.com/darkawower/astra/internal/platform"
)

const (
	serviceUnit = "astra.service"
	timerUnit   = "astra.timer"
)

const serviceTemplate = `[Unit]
Description=Astra Wallpaper Updater

[Service]
Type=oneshot
ExecStart=%s
`

const timerTemplate = `[Unit]
Description=Run Astra Wallpaper Updater on a schedule

[Timer]
OnCalendar=%s
Persistent=true

[Install]
WantedBy=timers.target
`

// SchedulerService manages a systemd user timer.
type SchedulerService struct {
	exec    platform.Executor
	unitDir string
}

// NewSchedulerService writes units under <user-config>/systemd/user.
func NewSchedulerService(exec platform.Executor) *SchedulerService {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return NewSchedulerServiceAt(exec, filepath.Join(dir, "systemd", "user"))
}

// NewSchedulerServiceAt writes units under unitDir.
func NewSchedulerServiceAt(exec platform.Executor, unitDir string) *SchedulerService {
	return &SchedulerService{exec: exec, unitDir: unitDir}
}

func (s *SchedulerService) IsSupported() bool {
	return true
}

// Heartbeat is zero: systemd fires the timer at the configured frequency.
func (s *SchedulerService) Heartbeat() time.Duration {
	return 0
}

// Schedule returns the OnCalendar expression for job.
func (s *SchedulerService) Schedule(job platform.Job) string {
	return job.Frequency.OnCalendar()
}

func (s *SchedulerService) servicePath() string {
	return filepath.Join(s.unitDir, serviceUnit)
}

func (s *SchedulerService) timerPath() string {
	return filepath.Join(s.unitDir, timerUnit)
}

// Install writes both units, reloads the user daemon and enables the timer.
func (s *SchedulerService) Install(job platform.Job) error {
	if err := os.MkdirAll(s.unitDir, 0755); err != nil {
		return apperr.Wrap(apperr.OS, fmt.Errorf("failed to create systemd user directory: %w", err))
	}

	service := fmt.Sprintf(serviceTemplate, execLine(job.Command))
	if err := os.WriteFile(s.servicePath(), []byte(service), 0644); err != nil {
		return apperr.Wrap(apperr.OS, fmt.Errorf("failed to write %s: %w", serviceUnit, err))
	}

	timer := fmt.Sprintf(timerTemplate, s.Schedule(job))
	if err := os.WriteFile(s.timerPath(), []byte(timer), 0644); err != nil {
		return apperr.Wrap(apperr.OS, fmt.Errorf("failed to write %s: %w", timerUnit, err))
	}

	if err := s.systemctl("daemon-reload"); err != nil {
		return err
	}
	return s.systemctl("enable", "--now", timerUnit)
}

// Uninstall disables the timer, deletes both units and reloads the daemon.
// It does nothing when neither unit file exists.
func (s *SchedulerService) Uninstall(job platform.Job) error {
	if !exists(s.timerPath()) && !exists(s.servicePath()) {
		return nil
	}

	if err := s.systemctl("disable", "--now", timerUnit); err != nil {
		return err
	}

	for _, path := range []string{s.timerPath(), s.servicePath()} {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return apperr.Wrap(apperr.OS, fmt.Errorf("failed to remove %s: %w", filepath.Base(path), err))
		}
	}

	return s.systemctl("daemon-reload")
}

// Status reads the installed units. A service pointing at a different
// executable reports an empty Schedule so the caller reinstalls.
func (s *SchedulerService) Status(job platform.Job) (platform.SchedulerStatus, error) {
	status := platform.SchedulerStatus{}

	calendar, err := readUnitKey(s.timerPath(), "OnCalendar")
	if errors.Is(err, fs.ErrNotExist) {
		return status, nil
	}
	if err != nil {
		return status, apperr.Wrap(apperr.OS, fmt.Errorf("failed to read %s: %w", timerUnit, err))
	}

	execStart, err := readUnitKey(s.servicePath(), "ExecStart")
	if errors.Is(err, fs.ErrNotExist) {
		return status, nil
	}
	if err != nil {
		return status, apperr.Wrap(apperr.OS, fmt.Errorf("failed to read %s: %w", serviceUnit, err))
	}

	status.Installed = true
	if parseExecLine(execStart) == job.Command {
		status.Schedule = calendar
	}
	return status, nil
}

var (
	execEscaper   = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "%", "%%", "$", "$$")
	execUnescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`, "%%", "%", "$$", "$")
)

// execLine quotes command for ExecStart. systemd splits the line on
// whitespace and expands % specifiers and $ variables.
func execLine(command string) string {
	return `"` + execEscaper.Replace(command) + `"`
}

// parseExecLine reverses execLine. Unquoted values are returned as is.
func parseExecLine(line string) string {
	if len(line) < 2 || line[0] != '"' || line[len(line)-1] != '"' {
		return line
	}
	return execUnescaper.Replace(line[1 : len(line)-1])
}

func (s *SchedulerService) systemctl(args ...string) error {
	full := append([]string{"--user"}, args...)
	out, err := s.exec.Run(context.Background(), "systemctl", full...)
	if err != nil {
		return apperr.Wrap(apperr.Scheduler,
			fmt.Errorf("systemctl %s failed: %w (output: %s)", strings.Join(full, " "), err, strings.TrimSpace(string(out))))
	}
	return nil
}

// readUnitKey returns the value of the first "key=value" line in a unit file.
func readUnitKey(path, key string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	prefix := key + "="
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, prefix) {
			return strings.TrimPrefix(line, prefix), nil
		}
	}
	return "", scanner.Err()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
