//go:build !windows

package shell

import "os/exec"

// setCommandLine is a no-op: argv is passed to execve unchanged.
func setCommandLine(_ *exec.Cmd, _ []string) {}
