//go:build !windows

package run

import (
	"os/exec"

	"github.com/simonhull/firebird-suite/talon/resolve"
)

// applySysProcAttr is a no-op off Windows; the argv slice is authoritative.
func applySysProcAttr(cmd *exec.Cmd, spec *resolve.Spec) {}
