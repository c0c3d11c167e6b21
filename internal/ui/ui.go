// Package ui renders user-facing terminal output: colored tags, warnings,
// and the boxed panels that report the outcome of an auth flow.
//
// Diagnostics (Warn, Error, Info) go to stderr. Results meant for piping
// (tables, panels) are written by callers to stdout.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

var (
	writer io.Writer = os.Stderr
	quiet  bool
)

// SetWriter overrides the diagnostic writer. Nil restores stderr.
func SetWriter(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	writer = w
}

// Writer returns the diagnostic writer.
func Writer() io.Writer {
	return writer
}

// SetQuiet suppresses Info output. Warnings and errors are always shown.
func SetQuiet(q bool) {
	quiet = q
}

// --- Color detection ---

var stdoutColor = detectColor(os.Stdout)
var stderrColor = detectColor(os.Stderr)

func detectColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetColorEnabled overrides color detection (for testing).
func SetColorEnabled(enabled bool) {
	stdoutColor = enabled
	stderrColor = enabled
}

// ColorEnabled reports whether stdout color is enabled.
func ColorEnabled() bool {
	return stdoutColor
}

func ansi(code, s string) string {
	if !stdoutColor {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

func ansiStderr(code, s string) string {
	if !stderrColor {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

// Bold returns s wrapped in bold ANSI codes.
func Bold(s string) string { return ansi("1", s) }

// Dim returns s wrapped in dim ANSI codes.
func Dim(s string) string { return ansi("2", s) }

// Green returns s wrapped in green ANSI codes.
func Green(s string) string { return ansi("32", s) }

// Red returns s wrapped in red ANSI codes.
func Red(s string) string { return ansi("31", s) }

// Yellow returns s wrapped in yellow ANSI codes.
func Yellow(s string) string { return ansi("33", s) }

// Cyan returns s wrapped in cyan ANSI codes.
func Cyan(s string) string { return ansi("36", s) }

// Section writes a bold title with a thin underline.
func Section(w io.Writer, title string) {
	fmt.Fprintln(w, Bold(title))
	fmt.Fprintln(w, Dim(strings.Repeat("─", len(title))))
}

// OKTag returns a green "✓".
func OKTag() string { return Green("✓") }

// FailTag returns a red "✗".
func FailTag() string { return Red("✗") }

// WarnTag returns a yellow "⚠".
func WarnTag() string { return Yellow("⚠") }

// InfoTag returns a cyan "ℹ".
func InfoTag() string { return Cyan("ℹ") }

// Warn prints a user-facing warning.
func Warn(msg string) {
	fmt.Fprintf(writer, "%s %s\n", ansiStderr("33", "Warning:"), msg)
}

// Warnf prints a formatted user-facing warning.
func Warnf(format string, args ...any) {
	Warn(fmt.Sprintf(format, args...))
}

// Error prints a user-facing error.
func Error(msg string) {
	fmt.Fprintf(writer, "%s %s\n", ansiStderr("31", "Error:"), msg)
}

// Errorf prints a formatted user-facing error.
func Errorf(format string, args ...any) {
	Error(fmt.Sprintf(format, args...))
}

// Info prints a user-facing message with no prefix, unless quiet.
func Info(msg string) {
	if quiet {
		return
	}
	fmt.Fprintf(writer, "%s\n", msg)
}

// Infof prints a formatted user-facing message with no prefix, unless quiet.
func Infof(format string, args ...any) {
	Info(fmt.Sprintf(format, args...))
}
