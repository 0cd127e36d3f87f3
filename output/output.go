// Package output provides styled terminal output for Talon.
//
// All tools in the Firebird Suite use this style of reporter for consistent
// UX. It also provides the line sinks that child-process output is forwarded
// through while a tool runs.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	verboseMode bool
)

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	verboseMode = v
}

// IsVerbose reports whether verbose output is enabled.
func IsVerbose() bool {
	return verboseMode
}

// Success prints a success message with 🦅 emoji and green color.
func Success(msg string) {
	fmt.Println(successStyle.Render("🦅 " + msg))
}

// Error prints an error message with ❌ emoji and red color.
func Error(msg string) {
	fmt.Println(errorStyle.Render("❌ " + msg))
}

// Info prints an informational message with ℹ️ emoji and cyan color.
func Info(msg string) {
	fmt.Println(infoStyle.Render("ℹ️  " + msg))
}

// Step prints an indented step message in gray.
func Step(msg string) {
	fmt.Println(stepStyle.Render("   " + msg))
}

// Verbose prints a debug message with 🔍 emoji only if verbose mode is enabled.
func Verbose(msg string) {
	if verboseMode {
		fmt.Println(stepStyle.Render("🔍 " + msg))
	}
}

// LineSink receives one completed line of child-process output at a time.
type LineSink interface {
	WriteLine(line string)
}

// WriterSink forwards lines verbatim to an io.Writer, one line per call
// with a trailing newline. With Passthrough set, lines are written exactly
// as received so ANSI sequences emitted by the child survive.
type WriterSink struct {
	W           io.Writer
	Passthrough bool
	style       *lipgloss.Style
}

// StdoutSink returns the default sink for child standard output.
func StdoutSink() *WriterSink {
	return &WriterSink{W: os.Stdout, Passthrough: true}
}

// StderrSink returns the default sink for child standard error, rendered
// in the reporter's error color when passthrough is off.
func StderrSink(passthrough bool) *WriterSink {
	s := &WriterSink{W: os.Stderr, Passthrough: passthrough}
	if !passthrough {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
		s.style = &style
	}
	return s
}

// WriteLine writes one line to the underlying writer.
func (s *WriterSink) WriteLine(line string) {
	if s.style != nil && !s.Passthrough {
		line = s.style.Render(line)
	}
	fmt.Fprintln(s.W, line)
}
