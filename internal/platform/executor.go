package platform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Executor runs external commands. Platform services take one so tests can
// record invocations instead of touching the host.
type Executor interface {
	// Run executes name with args and returns combined stdout and stderr.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// DefaultExecutor runs commands with os/exec.
type DefaultExecutor struct{}

// Run implements Executor.
func (DefaultExecutor) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// OpenInEditor runs $EDITOR on path with the terminal attached, falling back
// to fallback (a command line, e.g. "open -t") when $EDITOR is unset.
func OpenInEditor(path string, fallback ...string) error {
	argv := strings.Fields(os.Getenv("EDITOR"))
	if len(argv) == 0 {
		argv = fallback
	}
	if len(argv) == 0 {
		return fmt.Errorf("no editor configured: set $EDITOR")
	}

	args := append([]string{}, argv[1:]...)
	cmd := exec.Command(argv[0], append(args, path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor %s: %w", argv[0], err)
	}
	return nil
}
