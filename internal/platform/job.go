package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/darkawower/astra/internal/frequency"
)

// Project identity used for job labels and file names.
const (
	Qualifier    = "dev"
	Organization = "CharlieKarafotias"
	Application  = "Astra"
)

// Job describes the periodic self-invocation.
type Job struct {
	// Command is the absolute path of the executable to run.
	Command string

	// Frequency is how often the job should run.
	Frequency frequency.Frequency
}

// LaunchdLabel is the launchd agent label, e.g. "dev.CharlieKarafotias.Astra".
func LaunchdLabel() string {
	return fmt.Sprintf("%s.%s.%s", Qualifier, Organization, Application)
}

// TaskName is the Windows scheduled task name.
func TaskName() string {
	return fmt.Sprintf("%s_%s_%s", Qualifier, Organization, Application)
}

// Executable returns the resolved path of the running binary.
func Executable() (string, error) {
	path, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable path: %w", err)
	}
	return resolved, nil
}
