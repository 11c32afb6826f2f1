package windows

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/darkawower/astra/internal/apperr"
	"github.com/darkawower/astra/internal/platform"
)

// SchedulerService manages a Task Scheduler task through schtasks.
type SchedulerService struct {
	exec platform.Executor
}

// NewSchedulerService creates a schtasks-backed scheduler.
func NewSchedulerService(exec platform.Executor) *SchedulerService {
	return &SchedulerService{exec: exec}
}

func (s *SchedulerService) IsSupported() bool {
	return true
}

// Heartbeat is zero: schtasks expresses the frequency natively.
func (s *SchedulerService) Heartbeat() time.Duration {
	return 0
}

// Schedule returns the /mo and /sc pair Install would pass.
func (s *SchedulerService) Schedule(job platform.Job) string {
	mo, sc := job.Frequency.TaskSchedule()
	return fmt.Sprintf("%d %s", mo, sc)
}

// Install creates the task, overwriting an existing one.
func (s *SchedulerService) Install(job platform.Job) error {
	mo, sc := job.Frequency.TaskSchedule()
	out, err := s.exec.Run(context.Background(), "schtasks", "/create",
		"/sc", string(sc),
		"/tn", platform.TaskName(),
		"/tr", runCommand(job.Command),
		"/mo", strconv.FormatUint(uint64(mo), 10),
		"/f",
	)
	if err != nil {
		return apperr.Wrap(apperr.Scheduler, fmt.Errorf("failed to create task: %w (output: %s)", err, strings.TrimSpace(string(out))))
	}
	return nil
}

// runCommand quotes the executable for /tr. Task Scheduler splits an
// unquoted run string on the first space, which breaks "C:\Program Files".
func runCommand(command string) string {
	return `"` + command + `"`
}

// Uninstall deletes the task when it exists.
func (s *SchedulerService) Uninstall(job platform.Job) error {
	if _, err := s.exec.Run(context.Background(), "schtasks", "/query", "/tn", platform.TaskName()); err != nil {
		return nil
	}
	out, err := s.exec.Run(context.Background(), "schtasks", "/delete", "/tn", platform.TaskName(), "/f")
	if err != nil {
		return apperr.Wrap(apperr.Scheduler, fmt.Errorf("failed to delete task: %w (output: %s)", err, strings.TrimSpace(string(out))))
	}
	return nil
}

// Status reports whether the task exists. The registered schedule is not
// parsed back out of schtasks, so an installed task is always re-created.
func (s *SchedulerService) Status(job platform.Job) (platform.SchedulerStatus, error) {
	if _, err := s.exec.Run(context.Background(), "schtasks", "/query", "/tn", platform.TaskName()); err != nil {
		return platform.SchedulerStatus{}, nil
	}
	return platform.SchedulerStatus{Installed: true}, nil
}
