package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectModule(t *testing.T) {
	dir := t.TempDir()
	gomod := `module github.com/example/myapp

go 1.25
`
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0o644); err != nil {
		t.Fatal(err)
	}

	info, err := DetectModule(dir)
	if err != nil {
		t.Fatalf("DetectModule() error = %v", err)
	}

	if info.Path != "github.com/example/myapp" {
		t.Errorf("Path = %q, want %q", info.Path, "github.com/example/myapp")
	}
	if info.GoVersion != "1.25" {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, "1.25")
	}
	if info.Name() != "myapp" {
		t.Errorf("Name() = %q, want %q", info.Name(), "myapp")
	}
}

func TestIdentityManifestNameWins(t *testing.T) {
	dir := t.TempDir()
	manifest := "project:\n  name: flightdeck\n"
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module github.com/example/other\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := Identity(dir); got != "flightdeck" {
		t.Errorf("Identity() = %q, want %q", got, "flightdeck")
	}
}

func TestIdentityModuleFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module github.com/example/myapp\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := Identity(dir); got != "myapp" {
		t.Errorf("Identity() = %q, want %q", got, "myapp")
	}
}

func TestIdentityDirectoryFallback(t *testing.T) {
	dir := t.TempDir()
	if got := Identity(dir); got != filepath.Base(dir) {
		t.Errorf("Identity() = %q, want %q", got, filepath.Base(dir))
	}
}

func TestDetectModuleMissing(t *testing.T) {
	_, err := DetectModule(t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing go.mod")
	}
}

func TestDetectModuleInvalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte("not a modfile {{{"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := DetectModule(dir)
	if err == nil {
		t.Fatal("expected error for invalid go.mod")
	}
}
