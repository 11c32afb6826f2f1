package darwin

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/darkawower/astra/internal/platform"
)

var resolutionRe = regexp.MustCompile(`Resolution:\s*(\d+)\s*x\s*(\d+)`)

// DisplayService reads the main display resolution from system_profiler.
type DisplayService struct {
	exec platform.Executor
}

// NewDisplayService creates a new macOS display service.
func NewDisplayService(exec platform.Executor) *DisplayService {
	return &DisplayService{exec: exec}
}

// Resolution implements platform.DisplayService.
func (s *DisplayService) Resolution() (int, int, error) {
	out, err := s.exec.Run(context.Background(), "system_profiler", "SPDisplaysDataType", "-detailLevel", "mini")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query displays: %w (output: %s)", err, string(out))
	}
	return parseDisplays(string(out))
}

// parseDisplays returns the resolution of the display block marked
// "Main Display: Yes", or the first resolution when none is marked.
func parseDisplays(output string) (int, int, error) {
	var first, last []string
	for _, line := range strings.Split(output, "\n") {
		if m := resolutionRe.FindStringSubmatch(line); m != nil {
			last = m
			if first == nil {
				first = m
			}
			continue
		}
		if strings.Contains(line, "Main Display: Yes") && last != nil {
			return toSize(last)
		}
	}
	if first != nil {
		return toSize(first)
	}
	return 0, 0, fmt.Errorf("no display resolution found")
}

func toSize(m []string) (int, int, error) {
	w, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, err
	}
	h, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}
