package escape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseProcessArgs is a reference parser implementing the C runtime's
// command-line rules: 2n backslashes before a quote collapse to n with the
// quote toggling quoted mode, 2n+1 backslashes before a quote collapse to n
// plus a literal quote, and backslashes anywhere else are literal.
func parseProcessArgs(s string) []string {
	var args []string
	i := 0
	for {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i == len(s) {
			break
		}
		var sb strings.Builder
		inQuotes := false
		for i < len(s) {
			if !inQuotes && (s[i] == ' ' || s[i] == '\t') {
				break
			}
			switch s[i] {
			case '\\':
				n := 0
				for i < len(s) && s[i] == '\\' {
					n++
					i++
				}
				if i < len(s) && s[i] == '"' {
					sb.WriteString(strings.Repeat(`\`, n/2))
					if n%2 == 1 {
						sb.WriteByte('"')
						i++
					}
				} else {
					sb.WriteString(strings.Repeat(`\`, n))
				}
			case '"':
				inQuotes = !inQuotes
				i++
			default:
				sb.WriteByte(s[i])
				i++
			}
		}
		args = append(args, sb.String())
	}
	return args
}

func TestArgsRoundTrip(t *testing.T) {
	cases := [][]string{
		{"hello"},
		{"hello", "world"},
		{"with space"},
		{"two  spaces", "and\ttab"},
		{`quote"inside`},
		{`"fully quoted"`},
		{`trailing\`},
		{`trailing\\`},
		{`\`},
		{`\\\`},
		{`a\"b`},
		{`a\\"b`},
		{`a\\\"b`},
		{""},
		{"", "x", ""},
		{`C:\Program Files\talon`},
		{`path\to\file`, "-v", "--name=talon runner"},
		{"unicode ✓", "émigré"},
		{`mixed "quotes" and \backslashes\`},
	}

	for _, args := range cases {
		escaped := Args(args)
		parsed := parseProcessArgs(escaped)
		require.Equal(t, args, parsed, "round trip failed for %q (escaped: %s)", args, escaped)
	}
}

func TestArgSingle(t *testing.T) {
	assert.Equal(t, `"hello"`, Arg("hello"))
	assert.Equal(t, `""`, Arg(""))
	// Trailing backslash run doubles so the closing quote survives.
	assert.Equal(t, `"c:\dir\\"`, Arg(`c:\dir\`))
	// Backslash run before an embedded quote becomes 2n+1 backslashes.
	assert.Equal(t, `"a\\\"b"`, Arg(`a\"b`))
	assert.Equal(t, `"no\change"`, Arg(`no\change`))
}

func TestCmdArgNeverLeaksQuotes(t *testing.T) {
	cases := []string{
		`plain`,
		`with space`,
		`em"bedded`,
		`"wrapped"`,
		`a & b | c > d`,
		`%PATH%`,
		`caret^already`,
	}

	for _, arg := range cases {
		out := CmdArg(arg)
		// Every quote in the escaped form must be caret-escaped, so cmd's
		// parser can never see a bare quote that terminates /S /C early.
		for i := 0; i < len(out); i++ {
			if out[i] == '"' {
				require.Greater(t, i, 0, "leading bare quote in %q", out)
				assert.Equal(t, byte('^'), out[i-1], "bare quote at %d in %q", i, out)
			}
		}
	}
}

func TestCmdArgsConcatenation(t *testing.T) {
	out := CmdArgs([]string{"a", "b c"})
	assert.Equal(t, `^a ^"^b^ ^c^"`, out)
}

func TestNeedsQuotes(t *testing.T) {
	assert.True(t, NeedsQuotes(""))
	assert.True(t, NeedsQuotes("a b"))
	assert.True(t, NeedsQuotes(`a"b`))
	assert.True(t, NeedsQuotes("a&b"))
	assert.True(t, NeedsQuotes("50%"))
	assert.False(t, NeedsQuotes("plain"))
	assert.False(t, NeedsQuotes(`c:\tools\fb.exe`))
}

func TestIsQuoted(t *testing.T) {
	assert.True(t, IsQuoted(`"abc"`))
	assert.True(t, IsQuoted(`""`))
	assert.False(t, IsQuoted(`"`))
	assert.False(t, IsQuoted(`abc`))
	assert.False(t, IsQuoted(`"abc`))
}

func TestShellArg(t *testing.T) {
	assert.Equal(t, "hello", ShellArg("hello"))
	assert.Equal(t, "--flag=value", ShellArg("--flag=value"))
	assert.Equal(t, "''", ShellArg(""))
	assert.Equal(t, "'with space'", ShellArg("with space"))
	assert.Equal(t, `'don'\''t'`, ShellArg("don't"))
	assert.Equal(t, `'$HOME'`, ShellArg("$HOME"))
	assert.Equal(t, `'a;b'`, ShellArg("a;b"))
}

func TestShellArgs(t *testing.T) {
	assert.Equal(t, `echo 'hello world'`, ShellArgs([]string{"echo", "hello world"}))
}
