// Package logging writes human-readable diagnostics to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xyproto/env/v2"
	"golang.org/x/term"
)

// Logger prints status and error lines, optionally colored with ANSI codes.
// A nil *Logger discards everything.
type Logger struct {
	w     io.Writer
	color bool
	quiet bool
}

// New returns a Logger writing to w.
func New(w io.Writer, color bool) *Logger {
	return &Logger{w: w, color: color}
}

// ColorEnabled reports whether f should receive ANSI colors: it must be a
// terminal and NO_COLOR must be unset.
func ColorEnabled(f *os.File) bool {
	if env.Str("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// SetColor toggles ANSI color output.
func (l *Logger) SetColor(c bool) {
	if l != nil {
		l.color = c
	}
}

// SetQuiet suppresses Infof output. Errors are always written.
func (l *Logger) SetQuiet(q bool) {
	if l != nil {
		l.quiet = q
	}
}

// Infof writes a status line.
func (l *Logger) Infof(format string, args ...any) {
	if l == nil || l.quiet {
		return
	}
	l.line(l.colorize("32", "==>")+" ", format, args...)
}

// Errorf writes an "error: " prefixed line.
func (l *Logger) Errorf(format string, args ...any) {
	if l == nil {
		return
	}
	l.line(l.colorize("31", "error:")+" ", format, args...)
}

// Bold returns s wrapped in bold codes when color is enabled.
func (l *Logger) Bold(s string) string {
	if l == nil {
		return s
	}
	return l.colorize("1", s)
}

func (l *Logger) line(prefix, format string, args ...any) {
	msg := strings.TrimRight(fmt.Sprintf(format, args...), "\n")
	fmt.Fprintf(l.w, "%s%s\n", prefix, msg)
}

func (l *Logger) colorize(code, s string) string {
	if !l.color {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}
