package project

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLock = `
version: 1
packages:
  - name: Firebird-Migrate
    version: 1.2.0
    type: tool
    artifacts:
      - path: tools/wasi1/firebird-migrate.wasm
        kind: portable
        framework: wasi1
    dependencies:
      - yaml-core/2.0.1
  - name: yaml-core
    version: 2.0.1
    type: library
    artifacts:
      - path: lib/wasi1/yaml-core.wasm
        kind: portable
    dependencies:
      - strutil/0.9.0
  - name: strutil
    version: 0.9.0
    type: library
  - name: hornbill-lint
    version: 3.0.0
    type: tool
    artifacts:
      - path: tools/any/hornbill-lint
        kind: native
`

func loadSampleLock(t *testing.T) *LockFile {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, LockFileName, sampleLock)
	lf, err := LoadLockFile(dir)
	require.NoError(t, err)
	return lf
}

func TestLoadLockFile(t *testing.T) {
	lf := loadSampleLock(t)
	assert.Equal(t, 1, lf.Version)
	require.Len(t, lf.Packages, 4)
	assert.Equal(t, ArtifactPortable, lf.Packages[0].Artifacts[0].Kind)
	assert.Equal(t, ArtifactNative, lf.Packages[3].Artifacts[0].Kind)
}

func TestLockFilePackageLookupIsCaseInsensitive(t *testing.T) {
	lf := loadSampleLock(t)

	pkg, ok := lf.Package("firebird-migrate")
	require.True(t, ok)
	assert.Equal(t, "Firebird-Migrate", pkg.Name)

	_, ok = lf.Package("nonexistent")
	assert.False(t, ok)
}

func TestLockFileClosure(t *testing.T) {
	lf := loadSampleLock(t)
	pkg, ok := lf.Package("firebird-migrate")
	require.True(t, ok)

	closure := lf.Closure(pkg)
	require.Len(t, closure, 3)
	assert.Equal(t, "Firebird-Migrate", closure[0].Name)
	assert.Equal(t, "yaml-core", closure[1].Name)
	assert.Equal(t, "strutil", closure[2].Name)
}

func TestInstallPath(t *testing.T) {
	got := InstallPath("/root/pkgs", "Firebird-Migrate", "1.2.0")
	want := filepath.Join("/root/pkgs", "firebird-migrate", "1.2.0")
	assert.Equal(t, want, got)
}
