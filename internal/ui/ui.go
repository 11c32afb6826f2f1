// Package ui provides terminal output for astra.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/darkawower/astra/internal/colors"
)

// Symbols for different message types
const (
	SymbolSuccess = "✔"
	SymbolError   = "✖"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
	SymbolArrow   = "→"
	SymbolBullet  = "•"
)

type styles struct {
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	info    lipgloss.Style
	muted   lipgloss.Style
	bold    lipgloss.Style
	accent  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		success: r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		failure: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("3")),
		info:    r.NewStyle().Foreground(lipgloss.Color("4")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		bold:    r.NewStyle().Bold(true),
		accent:  r.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// Output wraps an io.Writer with UI utilities.
type Output struct {
	w        io.Writer
	renderer *lipgloss.Renderer
	styles   styles
	tty      bool
	quiet    bool
	verbose  bool
}

// NewOutput creates an Output for w. Colors follow what w supports.
func NewOutput(w io.Writer) *Output {
	r := lipgloss.NewRenderer(w)
	return &Output{
		w:        w,
		renderer: r,
		styles:   newStyles(r),
		tty:      isTerminal(w),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsTerminal reports whether the output is an interactive terminal.
func (o *Output) IsTerminal() bool {
	return o.tty
}

// SetQuiet enables quiet mode (only errors).
func (o *Output) SetQuiet(quiet bool) {
	o.quiet = quiet
}

// SetVerbose enables verbose mode.
func (o *Output) SetVerbose(verbose bool) {
	o.verbose = verbose
}

// Success prints a success message.
func (o *Output) Success(format string, args ...any) {
	if o.quiet {
		return
	}
	fmt.Fprintf(o.w, "%s %s\n", o.styles.success.Render(SymbolSuccess), fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (o *Output) Error(format string, args ...any) {
	fmt.Fprintf(o.w, "%s %s\n", o.styles.failure.Render(SymbolError), fmt.Sprintf(format, args...))
}

// ErrorWithHint prints an error message with a hint.
func (o *Output) ErrorWithHint(err, hint string) {
	fmt.Fprintf(o.w, "%s %s\n", o.styles.failure.Render(SymbolError), err)
	fmt.Fprintf(o.w, "  %s %s\n", o.styles.muted.Render("Hint:"), hint)
}

// Warning prints a warning message.
func (o *Output) Warning(format string, args ...any) {
	if o.quiet {
		return
	}
	fmt.Fprintf(o.w, "%s %s\n", o.styles.warning.Render(SymbolWarning), fmt.Sprintf(format, args...))
}

// Info prints an info message.
func (o *Output) Info(format string, args ...any) {
	if o.quiet {
		return
	}
	fmt.Fprintf(o.w, "%s %s\n", o.styles.info.Render(SymbolInfo), fmt.Sprintf(format, args...))
}

// Print prints a plain message.
func (o *Output) Print(format string, args ...any) {
	if o.quiet {
		return
	}
	fmt.Fprintf(o.w, format+"\n", args...)
}

// Debug prints a debug message (only in verbose mode).
func (o *Output) Debug(format string, args ...any) {
	if !o.verbose {
		return
	}
	fmt.Fprintf(o.w, "%s %s\n", o.styles.muted.Render("[DEBUG]"), fmt.Sprintf(format, args...))
}

// Field prints a labeled field.
func (o *Output) Field(label, value string) {
	if o.quiet {
		return
	}
	fmt.Fprintf(o.w, "  %s %s\n", o.styles.muted.Render(label+":"), value)
}

// Table prints a simple table.
func (o *Output) Table(headers []string, rows [][]string) {
	if o.quiet {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	line := func(cells []string) string {
		var b strings.Builder
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+2))
		}
		return strings.TrimRight(b.String(), " ")
	}

	seps := make([]string, len(widths))
	for i, w := range widths {
		seps[i] = strings.Repeat("-", w)
	}

	fmt.Fprintln(o.w, o.styles.bold.Render(line(headers)))
	fmt.Fprintln(o.w, o.styles.muted.Render(line(seps)))
	for _, row := range rows {
		fmt.Fprintln(o.w, line(row))
	}
}

// Swatch renders a two-cell block of c.
func (o *Output) Swatch(c colors.Color) string {
	return o.renderer.NewStyle().Background(lipgloss.Color(c.Hex())).Render("  ")
}

// Spinner animates a message while a long operation runs. It draws nothing
// unless the output is a terminal, so scheduled runs log cleanly. Verbose
// output also disables it so log lines are not overwritten.
type Spinner struct {
	out      *Output
	message  string
	frames   []string
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
	once     sync.Once
	running  bool
}

// NewSpinner creates a new spinner.
func NewSpinner(out *Output, message string) *Spinner {
	return &Spinner{
		out:      out,
		message:  message,
		frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		interval: 80 * time.Millisecond,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start starts the spinner.
func (s *Spinner) Start() {
	if s.out.quiet || s.out.verbose || !s.out.tty || s.running {
		return
	}
	s.running = true

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			frame := s.frames[i%len(s.frames)]
			fmt.Fprintf(s.out.w, "\r%s %s", s.out.styles.accent.Render(frame), s.message)
			select {
			case <-s.stop:
				fmt.Fprintf(s.out.w, "\r%s\r", strings.Repeat(" ", lipgloss.Width(s.message)+4))
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop stops the spinner. It is safe to call more than once.
func (s *Spinner) Stop() {
	if !s.running {
		return
	}
	s.once.Do(func() {
		close(s.stop)
		<-s.done
	})
}
