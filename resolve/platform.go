package resolve

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/simonhull/firebird-suite/talon/config"
	"github.com/simonhull/firebird-suite/talon/escape"
)

// Platform builds the platform-appropriate Spec for a discovered file.
// On Windows, .cmd and .bat scripts cannot be exec'd directly, so the
// factory either upgrades to a same-named .exe found on PATH or wraps the
// script through `cmd /S /C` with caret escaping. The GOOS field is
// settable so both behaviors can be exercised in tests on any host.
type Platform struct {
	GOOS       string
	SearchPath []string
	Comspec    string // the command interpreter, usually %COMSPEC%
}

// NewPlatform builds the factory for the running OS.
func NewPlatform(settings *config.Settings) *Platform {
	comspec := os.Getenv("COMSPEC")
	if comspec == "" {
		comspec = `C:\Windows\System32\cmd.exe`
	}
	return &Platform{
		GOOS:       runtime.GOOS,
		SearchPath: settings.SearchPath,
		Comspec:    comspec,
	}
}

// CreateSpec turns a discovered file into a runnable Spec.
//
// Note: when a .cmd script has a same-named .exe anywhere on PATH, the
// .exe wins to avoid spawning a second shell layer. Which binary runs
// therefore depends on PATH contents at resolution time; see the package
// tests for the exact preference order.
func (p *Platform) CreateSpec(path string, args []string, strategy Strategy) *Spec {
	if p.GOOS != "windows" {
		return NewSpec(path, args, strategy)
	}

	// A command that resolved to the interpreter itself carries the real
	// script as its first argument; cmdWrap re-splices it.
	if strings.EqualFold(p.pathBase(path), p.pathBase(p.Comspec)) {
		return p.cmdWrap(path, args, strategy)
	}

	ext := strings.ToLower(p.pathExt(path))
	if ext != ".cmd" && ext != ".bat" {
		return NewSpec(path, args, strategy)
	}

	base := strings.TrimSuffix(p.pathBase(path), p.pathExt(path))
	if exe := p.findOnSearchPath(base + ".exe"); exe != "" {
		return NewSpec(exe, args, strategy)
	}

	return p.cmdWrap(path, args, strategy)
}

// cmdWrap builds a `cmd /S /C "..."` invocation around a script.
func (p *Platform) cmdWrap(path string, args []string, strategy Strategy) *Spec {
	// If the resolved executable already is the interpreter, drop it and
	// re-splice the first argument as the command to avoid double-wrapping.
	if strings.EqualFold(p.pathBase(path), p.pathBase(p.Comspec)) && len(args) > 0 {
		path = args[0]
		args = args[1:]
	}

	command := path
	if escape.NeedsQuotes(command) && !escape.IsQuoted(command) {
		command = `"` + command + `"`
	}

	line := command
	if len(args) > 0 {
		line += " " + escape.CmdArgs(args)
	}

	spec := NewSpec(p.Comspec, []string{"/S", "/C", line}, strategy)
	spec.RawCmdLine = `"` + p.Comspec + `" /S /C "` + line + `"`
	return spec
}

// pathBase returns the last element of path using the separator rules of
// p.GOOS, not the host's. Resolver tests exercise Windows paths on any
// host, so host filepath semantics must not leak in here.
func (p *Platform) pathBase(path string) string {
	if p.GOOS == "windows" {
		if i := strings.LastIndexAny(path, `\/`); i >= 0 {
			return path[i+1:]
		}
		return path
	}
	return filepath.Base(path)
}

// pathExt returns the file extension of path's last element, including
// the dot, using the separator rules of p.GOOS.
func (p *Platform) pathExt(path string) string {
	base := p.pathBase(path)
	if i := strings.LastIndex(base, "."); i >= 0 {
		return base[i:]
	}
	return ""
}

func (p *Platform) findOnSearchPath(filename string) string {
	for _, dir := range p.SearchPath {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// isExecutable reports whether a file at path can be launched directly on
// this platform. On Unix that means the exec bit; on Windows existence is
// enough because selection already went through the extension list.
func (p *Platform) isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if p.GOOS == "windows" {
		return true
	}
	return info.Mode()&0o111 != 0
}
