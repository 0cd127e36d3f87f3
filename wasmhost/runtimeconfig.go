package wasmhost

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RuntimeConfig carries host-level knobs a package can ship next to its
// artifact as <tool>.runtimeconfig.yml.
type RuntimeConfig struct {
	Host struct {
		// MaxMemoryPages caps guest memory in 64KiB wasm pages.
		// Zero means no cap beyond the wasm maximum.
		MaxMemoryPages uint32 `yaml:"max_memory_pages"`
		// InheritEnv controls whether the host environment is passed
		// through when the caller supplies no explicit environment.
		InheritEnv *bool `yaml:"inherit_env"`
	} `yaml:"host"`
}

// LoadRuntimeConfig reads a runtimeconfig file.
func LoadRuntimeConfig(path string) (*RuntimeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read runtimeconfig: %w", err)
	}
	var rc RuntimeConfig
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse runtimeconfig %s: %w", path, err)
	}
	return &rc, nil
}
