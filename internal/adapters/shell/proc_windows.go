//go:build windows

package shell

import (
	"os/exec"
	"strings"
	"syscall"
)

// setCommandLine passes argv to the process verbatim. cmd.exe does not follow
// the CommandLineToArgvW quoting rules os/exec applies by default.
func setCommandLine(cmd *exec.Cmd, argv []string) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: strings.Join(argv, " ")}
}
