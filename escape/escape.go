package escape

import "strings"

// Args escapes and concatenates arguments for process start. Each argument
// is wrapped in double quotes and joined with single spaces, such that the
// child process sees exactly the original argument vector.
//
// Backslash handling follows the C runtime's command-line rules:
//   - a run of n backslashes followed by a quote becomes 2n+1 backslashes
//     and the quote (the quote is escaped, the backslashes survive)
//   - a run of n backslashes at the end of the argument becomes 2n
//     backslashes (the closing quote must not be escaped away)
//   - backslashes anywhere else pass through verbatim
func Args(args []string) string {
	escaped := make([]string, len(args))
	for i, arg := range args {
		escaped[i] = Arg(arg)
	}
	return strings.Join(escaped, " ")
}

// Arg escapes a single argument for process start.
func Arg(arg string) string {
	var sb strings.Builder
	sb.WriteByte('"')

	// Byte-wise scan is safe: multi-byte UTF-8 sequences never contain
	// the '\' or '"' bytes.
	for i := 0; i < len(arg); {
		backslashes := 0
		for i < len(arg) && arg[i] == '\\' {
			backslashes++
			i++
		}

		switch {
		case i == len(arg):
			sb.WriteString(strings.Repeat(`\`, backslashes*2))
		case arg[i] == '"':
			sb.WriteString(strings.Repeat(`\`, backslashes*2+1))
			sb.WriteByte('"')
			i++
		default:
			sb.WriteString(strings.Repeat(`\`, backslashes))
			sb.WriteByte(arg[i])
			i++
		}
	}

	sb.WriteByte('"')
	return sb.String()
}

// CmdArgs escapes and concatenates arguments for a command line that will
// itself be passed through `cmd /S /C "..."`. Every character is prefixed
// with a caret; over-escaping is harmless and neutralizes all cmd
// metacharacters. Embedded quotes become ^"^" so cmd's own parser never
// terminates the outer wrapper early.
func CmdArgs(args []string) string {
	escaped := make([]string, len(args))
	for i, arg := range args {
		escaped[i] = CmdArg(arg)
	}
	return strings.Join(escaped, " ")
}

// CmdArg escapes a single argument for cmd.exe.
func CmdArg(arg string) string {
	var sb strings.Builder
	quoted := NeedsQuotes(arg)
	if quoted {
		sb.WriteString(`^"`)
	}
	for _, r := range arg {
		if r == '"' {
			sb.WriteString(`^"^"`)
		} else {
			sb.WriteByte('^')
			sb.WriteRune(r)
		}
	}
	if quoted {
		sb.WriteString(`^"`)
	}
	return sb.String()
}

// NeedsQuotes reports whether an argument must be surrounded with quotes
// before cmd.exe will treat it as a single token.
func NeedsQuotes(arg string) bool {
	if arg == "" {
		return true
	}
	return strings.ContainsAny(arg, " \t\"&|<>^%()")
}

// IsQuoted reports whether an argument is already surrounded with double
// quotes.
func IsQuoted(arg string) bool {
	return len(arg) >= 2 && arg[0] == '"' && arg[len(arg)-1] == '"'
}

// ShellArgs escapes and concatenates arguments for a POSIX shell.
// Arguments are wrapped in single quotes, with each embedded single quote
// rewritten as quote-backslash-quote-quote. Arguments made purely of
// shell-safe characters pass
// through unquoted.
func ShellArgs(args []string) string {
	escaped := make([]string, len(args))
	for i, arg := range args {
		escaped[i] = ShellArg(arg)
	}
	return strings.Join(escaped, " ")
}

// ShellArg escapes a single argument for a POSIX shell.
func ShellArg(arg string) string {
	if arg != "" && !strings.ContainsFunc(arg, isShellUnsafe) {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

func isShellUnsafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	switch r {
	case '-', '_', '=', '/', '.', ':', '@', '+', ',', '%':
		return false
	}
	return true
}
