//go:build windows

package run

import (
	"os/exec"
	"syscall"

	"github.com/simonhull/firebird-suite/talon/resolve"
)

// applySysProcAttr passes the cmd.exe wrap's command line through raw,
// bypassing the argv re-quoting Go would otherwise apply. The escaped
// string was built for cmd's parser and must reach it byte for byte.
func applySysProcAttr(cmd *exec.Cmd, spec *resolve.Spec) {
	if spec.RawCmdLine == "" {
		return
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: spec.RawCmdLine}
}
