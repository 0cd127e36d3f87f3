package resolve

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testComspec = `C:\Windows\System32\cmd.exe`

func windowsPlatform(searchPath ...string) *Platform {
	return &Platform{GOOS: "windows", SearchPath: searchPath, Comspec: testComspec}
}

func posixPlatform() *Platform {
	return &Platform{GOOS: "linux"}
}

func TestCreateSpecPosixPassthrough(t *testing.T) {
	spec := posixPlatform().CreateSpec("/usr/bin/tool", []string{"-v"}, StrategyPath)
	assert.Equal(t, "/usr/bin/tool", spec.Path)
	assert.Equal(t, []string{"-v"}, spec.Args)
	assert.Empty(t, spec.RawCmdLine)
}

func TestCreateSpecWindowsExeDirect(t *testing.T) {
	spec := windowsPlatform().CreateSpec(`C:\tools\fb.exe`, nil, StrategyPath)
	assert.Equal(t, `C:\tools\fb.exe`, spec.Path)
	assert.Empty(t, spec.RawCmdLine)
}

func TestCreateSpecWindowsCmdPrefersExeOnPath(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "fb.exe")
	require.NoError(t, os.WriteFile(exe, []byte("MZ"), 0o755))

	// Which binary runs depends on PATH contents at resolution time: the
	// same-named .exe wins over the script whenever one is present.
	spec := windowsPlatform(dir).CreateSpec(`C:\tools\fb.cmd`, []string{"gen"}, StrategyPath)
	assert.Equal(t, exe, spec.Path)
	assert.Equal(t, []string{"gen"}, spec.Args)
}

func TestCreateSpecWindowsCmdWrapsThroughComspec(t *testing.T) {
	spec := windowsPlatform(t.TempDir()).CreateSpec(`C:\my tools\fb.cmd`, []string{"gen", "a b"}, StrategyPath)

	assert.Equal(t, testComspec, spec.Path)
	require.Len(t, spec.Args, 3)
	assert.Equal(t, "/S", spec.Args[0])
	assert.Equal(t, "/C", spec.Args[1])
	// The command token needed quoting; the arguments are caret-escaped.
	assert.True(t, strings.HasPrefix(spec.Args[2], `"C:\my tools\fb.cmd"`), "got %q", spec.Args[2])
	assert.Contains(t, spec.Args[2], `^g^e^n`)
	assert.NotEmpty(t, spec.RawCmdLine)
	assert.True(t, strings.HasPrefix(spec.RawCmdLine, `"`+testComspec+`" /S /C "`), "got %q", spec.RawCmdLine)
}

func TestWindowsPathParsingOnAnyHost(t *testing.T) {
	p := windowsPlatform()

	// Backslash-separated paths must parse per the target OS even when the
	// test host is not Windows.
	assert.Equal(t, "fb.cmd", p.pathBase(`C:\tools\fb.cmd`))
	assert.Equal(t, "fb.cmd", p.pathBase(`C:/tools/fb.cmd`))
	assert.Equal(t, "fb.cmd", p.pathBase("fb.cmd"))
	assert.Equal(t, ".cmd", p.pathExt(`C:\tools\fb.cmd`))
	assert.Equal(t, "", p.pathExt(`C:\tools.d\fb`))
}

func TestCreateSpecWindowsInterpreterRewraps(t *testing.T) {
	spec := windowsPlatform(t.TempDir()).CreateSpec(testComspec, []string{`C:\tools\fb.bat`, "gen"}, StrategyPath)

	assert.Equal(t, testComspec, spec.Path)
	require.Len(t, spec.Args, 3)
	assert.True(t, strings.HasPrefix(spec.Args[2], `C:\tools\fb.bat`), "got %q", spec.Args[2])
	assert.NotContains(t, spec.Args[2], "cmd.exe")
}

func TestCmdWrapDropsInterpreterArgv0(t *testing.T) {
	p := windowsPlatform(t.TempDir())
	spec := p.cmdWrap(`C:\Windows\System32\cmd.exe`, []string{`C:\tools\fb.bat`, "gen"}, StrategyPath)

	// The interpreter is not double-wrapped: the first argument becomes
	// the command.
	assert.Equal(t, testComspec, spec.Path)
	assert.NotContains(t, spec.Args[2], `cmd.exe" "C:\Windows`)
	assert.True(t, strings.HasPrefix(spec.Args[2], `C:\tools\fb.bat`), "got %q", spec.Args[2])
}

func TestIsExecutableUnix(t *testing.T) {
	dir := t.TempDir()
	executable := filepath.Join(dir, "runnable")
	plain := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(executable, []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.WriteFile(plain, []byte("text"), 0o644))

	p := posixPlatform()
	assert.True(t, p.isExecutable(executable))
	assert.False(t, p.isExecutable(plain))
	assert.False(t, p.isExecutable(dir))
	assert.False(t, p.isExecutable(filepath.Join(dir, "missing")))
}
