// Package config builds the immutable settings a resolution session runs
// under. Environment variables are read once, here, and threaded explicitly
// through the resolver chain and executor instead of being cached in
// process-wide globals.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Settings holds everything Talon reads from the environment: verbosity
// and ANSI flags, the executable search path, the packages root, and the
// launcher path override. A Settings value is immutable once built.
type Settings struct {
	Verbose         bool
	AnsiPassthrough bool
	SearchPath      []string // directories from PATH, in order
	PathExtensions  []string // candidate executable extensions, in order
	PackagesRoot    string   // root of the tool package store
	HostPath        string   // launcher path override, empty to self-detect
}

// Load reads settings from the environment.
func Load() (*Settings, error) {
	return load(runtime.GOOS)
}

func load(goos string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("TALON")
	v.AutomaticEnv()

	s := &Settings{
		Verbose:         v.GetBool("VERBOSE"),
		AnsiPassthrough: v.GetBool("ANSI_PASSTHRU"),
		SearchPath:      filepath.SplitList(os.Getenv("PATH")),
		PathExtensions:  pathExtensions(goos),
		PackagesRoot:    v.GetString("PACKAGES"),
		HostPath:        v.GetString("HOST_PATH"),
	}

	if s.PackagesRoot == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		s.PackagesRoot = filepath.Join(home, ".talon", "packages")
	}

	return s, nil
}

// pathExtensions returns the executable extensions to try when searching
// directories, most specific first. The empty extension means "the name as
// given". On Windows the list comes from PATHEXT.
func pathExtensions(goos string) []string {
	if goos != "windows" {
		return []string{""}
	}

	pathext := os.Getenv("PATHEXT")
	if pathext == "" {
		pathext = ".COM;.EXE;.BAT;.CMD"
	}

	exts := []string{""}
	for _, ext := range strings.Split(pathext, ";") {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}
