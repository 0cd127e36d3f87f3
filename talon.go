// Package talon is the command resolution and invocation engine for the
// Firebird Suite. Given a logical tool name and project context it locates
// the concrete executable or portable artifact, escapes its arguments for
// the current shell, launches the child process, and streams its output
// back to the caller.
package talon

// Version is the current Talon version
const Version = "0.3.0"
