package darwin

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/darkawower/astra/internal/apperr"
	"github.com/darkawower/astra/internal/platform"
)

// heartbeat is the fixed StartInterval of the agent. The binary compares the
// elapsed time since its last run against the configured frequency.
const heartbeat = 10 * time.Minute

const plistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>%s</string>
    <key>Program</key>
    <string>%s</string>
    <key>StartInterval</key>
    <integer>%d</integer>
    <key>RunAtLoad</key>
    <true/>
</dict>
</plist>
`

var (
	intervalRe = regexp.MustCompile(`run interval = (\d+) seconds`)
	programRe  = regexp.MustCompile(`(?m)^\s*program = (.+)$`)
)

// SchedulerService manages a launchd user agent.
type SchedulerService struct {
	exec      platform.Executor
	agentsDir string
	uid       string
}

// NewSchedulerService writes agents to ~/Library/LaunchAgents for the current user.
func NewSchedulerService(exec platform.Executor) *SchedulerService {
	home, _ := os.UserHomeDir()
	return NewSchedulerServiceAt(exec, filepath.Join(home, "Library", "LaunchAgents"), strconv.Itoa(os.Getuid()))
}

// NewSchedulerServiceAt writes agents to agentsDir and targets the gui/<uid> domain.
func NewSchedulerServiceAt(exec platform.Executor, agentsDir, uid string) *SchedulerService {
	return &SchedulerService{exec: exec, agentsDir: agentsDir, uid: uid}
}

func (s *SchedulerService) IsSupported() bool {
	return true
}

// Heartbeat returns the fixed agent interval.
func (s *SchedulerService) Heartbeat() time.Duration {
	return heartbeat
}

// Schedule describes the agent: launchd only ever runs the heartbeat, so the
// descriptor depends on the executable alone.
func (s *SchedulerService) Schedule(job platform.Job) string {
	return describe(job.Command, int(heartbeat.Seconds()))
}

func describe(program string, seconds int) string {
	return fmt.Sprintf("%s every %ds", program, seconds)
}

func (s *SchedulerService) plistPath() string {
	return filepath.Join(s.agentsDir, platform.LaunchdLabel()+".plist")
}

func (s *SchedulerService) domain() string {
	return "gui/" + s.uid
}

// Install writes the agent plist and bootstraps it, replacing a loaded agent.
func (s *SchedulerService) Install(job platform.Job) error {
	plistPath := s.plistPath()

	if err := os.MkdirAll(s.agentsDir, 0755); err != nil {
		return apperr.Wrap(apperr.OS, fmt.Errorf("failed to create LaunchAgents directory: %w", err))
	}

	if _, err := os.Stat(plistPath); err == nil {
		_, _ = s.exec.Run(context.Background(), "launchctl", "bootout", s.domain(), plistPath)
	}

	plistContent := fmt.Sprintf(plistTemplate,
		xmlEscape(platform.LaunchdLabel()),
		xmlEscape(job.Command),
		int(heartbeat.Seconds()),
	)

	if err := os.WriteFile(plistPath, []byte(plistContent), 0644); err != nil {
		return apperr.Wrap(apperr.OS, fmt.Errorf("failed to write plist: %w", err))
	}

	if output, err := s.exec.Run(context.Background(), "launchctl", "bootstrap", s.domain(), plistPath); err != nil {
		return apperr.Wrap(apperr.Scheduler, fmt.Errorf("failed to bootstrap agent: %w (output: %s)", err, strings.TrimSpace(string(output))))
	}

	return nil
}

// Uninstall boots the agent out and removes its plist.
func (s *SchedulerService) Uninstall(job platform.Job) error {
	plistPath := s.plistPath()

	if _, err := os.Stat(plistPath); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	// bootout fails when the agent is not loaded; the plist still goes.
	_, _ = s.exec.Run(context.Background(), "launchctl", "bootout", s.domain(), plistPath)

	if err := os.Remove(plistPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperr.Wrap(apperr.OS, fmt.Errorf("failed to remove plist: %w", err))
	}

	return nil
}

// Status asks launchd for the loaded agent. A failing print means not loaded.
func (s *SchedulerService) Status(job platform.Job) (platform.SchedulerStatus, error) {
	output, err := s.exec.Run(context.Background(), "launchctl", "print", s.domain()+"/"+platform.LaunchdLabel())
	if err != nil {
		return platform.SchedulerStatus{}, nil
	}
	return parsePrint(string(output)), nil
}

func parsePrint(output string) platform.SchedulerStatus {
	status := platform.SchedulerStatus{Installed: true}

	interval := intervalRe.FindStringSubmatch(output)
	program := programRe.FindStringSubmatch(output)
	if interval == nil || program == nil {
		return status
	}

	seconds, _ := strconv.Atoi(interval[1])
	status.Schedule = describe(strings.TrimSpace(program[1]), seconds)
	return status
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
