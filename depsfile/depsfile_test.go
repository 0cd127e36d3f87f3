package depsfile

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/talon/project"
)

func sampleLock() *project.LockFile {
	return &project.LockFile{
		Version: 1,
		Packages: []project.Package{
			{
				Name:    "firebird-migrate",
				Version: "1.2.0",
				Type:    "tool",
				Artifacts: []project.Artifact{
					{Path: "tools/wasi1/firebird-migrate.wasm", Kind: project.ArtifactPortable, Framework: "wasi1"},
				},
				Dependencies: []string{"yaml-core/2.0.1"},
			},
			{
				Name:    "yaml-core",
				Version: "2.0.1",
				Type:    "library",
				Artifacts: []project.Artifact{
					{Path: "lib/wasi1/yaml-core.wasm", Kind: project.ArtifactPortable},
					{Path: "lib/other/yaml-core.wasm", Kind: project.ArtifactPortable, Framework: "other"},
				},
			},
		},
	}
}

func TestBuild(t *testing.T) {
	lock := sampleLock()
	pkg, ok := lock.Package("firebird-migrate")
	require.True(t, ok)

	f := Build(lock, pkg, "wasi1")
	assert.Equal(t, "firebird-migrate", f.Tool.Name)
	assert.Equal(t, "wasi1", f.Tool.Framework)
	require.Len(t, f.Runtime, 2)
	// Framework-specific artifacts from other frameworks are filtered out.
	assert.Equal(t, []string{"lib/wasi1/yaml-core.wasm"}, f.Runtime[1].Artifacts)
}

func TestGenerateAndLoad(t *testing.T) {
	lock := sampleLock()
	pkg, _ := lock.Package("firebird-migrate")
	target := filepath.Join(t.TempDir(), "gen", Name("firebird-migrate"))

	require.NoError(t, Generate(lock, pkg, "wasi1", target))

	f, err := Load(target)
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", f.Tool.Version)
	require.Len(t, f.Runtime, 2)
}

func TestGenerateIdempotent(t *testing.T) {
	lock := sampleLock()
	pkg, _ := lock.Package("firebird-migrate")
	target := filepath.Join(t.TempDir(), Name("firebird-migrate"))

	require.NoError(t, Generate(lock, pkg, "wasi1", target))
	first, err := os.ReadFile(target)
	require.NoError(t, err)

	require.NoError(t, Generate(lock, pkg, "wasi1", target))
	second, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateConcurrent(t *testing.T) {
	lock := sampleLock()
	pkg, _ := lock.Package("firebird-migrate")
	dir := t.TempDir()
	target := filepath.Join(dir, Name("firebird-migrate"))

	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = Generate(lock, pkg, "wasi1", target)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	// Exactly one valid final file, no leftover temp files.
	f, err := Load(target)
	require.NoError(t, err)
	assert.Equal(t, "firebird-migrate", f.Tool.Name)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGenerateDeterministic(t *testing.T) {
	lock := sampleLock()
	pkg, _ := lock.Package("firebird-migrate")

	t1 := filepath.Join(t.TempDir(), "a.deps.yml")
	t2 := filepath.Join(t.TempDir(), "b.deps.yml")
	require.NoError(t, Generate(lock, pkg, "wasi1", t1))
	require.NoError(t, Generate(lock, pkg, "wasi1", t2))

	d1, _ := os.ReadFile(t1)
	d2, _ := os.ReadFile(t2)
	assert.Equal(t, d1, d2)
}
