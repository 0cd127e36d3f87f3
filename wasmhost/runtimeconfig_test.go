package wasmhost

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRuntimeConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tool.runtimeconfig.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
host:
  max_memory_pages: 256
  inherit_env: false
`), 0o644))

	rc, err := LoadRuntimeConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(256), rc.Host.MaxMemoryPages)
	require.NotNil(t, rc.Host.InheritEnv)
	assert.False(t, *rc.Host.InheritEnv)
}

func TestLoadRuntimeConfigMissing(t *testing.T) {
	_, err := LoadRuntimeConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestRunWithRuntimeConfig(t *testing.T) {
	rcPath := filepath.Join(t.TempDir(), "tool.runtimeconfig.yml")
	require.NoError(t, os.WriteFile(rcPath, []byte("host:\n  max_memory_pages: 64\n"), 0o644))

	code, err := Run(context.Background(), Options{
		Artifact:      writeArtifact(t, emptyModule),
		RuntimeConfig: rcPath,
		WorkingDir:    t.TempDir(),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}
