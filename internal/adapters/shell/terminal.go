package shell

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/tasker/internal/core/domain"
	"go.trai.ch/zerr"
)

// statusControlCExit is the exit code of a Windows console window closed by its user.
const statusControlCExit = 0xC000013A

// linuxTerminals lists terminal emulators in order of preference, each with
// the flags that make it run a program and block until the window closes.
var linuxTerminals = [][]string{
	{"x-terminal-emulator", "-e"},
	{"gnome-terminal", "--wait", "--"},
	{"konsole", "-e"},
	{"xfce4-terminal", "--disable-server", "-x"},
	{"alacritty", "-e"},
	{"kitty"},
	{"xterm", "-e"},
}

// terminalLaunch is a prepared terminal window invocation.
//
// On POSIX platforms the command runs from a script file that records its
// exit status in statusFile, since terminal emulators do not report the
// status of the program they ran. On Windows only argv is set and its exit
// code is the command's.
type terminalLaunch struct {
	argv       []string
	script     string
	statusFile string
	dir        string
}

// cleanup removes the launch's temporary files.
func (l *terminalLaunch) cleanup() {
	if l.dir != "" {
		_ = os.RemoveAll(l.dir)
	}
}

// exitCode returns the status written by the script. ok is false if the
// window went away before the command finished.
func (l *terminalLaunch) exitCode() (code int, ok bool, err error) {
	data, err := os.ReadFile(l.statusFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, false, nil
		}
		return 0, false, err
	}
	code, err = strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false, err
	}
	return code, true, nil
}

// prepareTerminal builds the invocation that opens a new terminal window
// running command and keeping the window open afterwards.
func (e *Executor) prepareTerminal(command string) (*terminalLaunch, error) {
	if e.goos == "windows" {
		prefix := e.terminal
		if len(prefix) == 0 {
			prefix = []string{"cmd", "/C", "start", `"tasker"`, "/WAIT", "cmd", "/K"}
		}
		return &terminalLaunch{argv: append(slices.Clone(prefix), command)}, nil
	}

	prefix, err := e.posixTerminal(command)
	if err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.With(domain.NewInternalError("failed to resolve working directory", err), "command", command)
	}
	dir, err := os.MkdirTemp("", "tasker-term-")
	if err != nil {
		return nil, zerr.With(domain.NewInternalError("failed to create launch directory", err), "command", command)
	}

	// Terminal.app only runs files ending in .command.
	launch := &terminalLaunch{
		script:     filepath.Join(dir, "launch.command"),
		statusFile: filepath.Join(dir, "status"),
		dir:        dir,
	}
	body := holdScript(cwd, command, launch.statusFile)
	//nolint:gosec // the script must be executable for open(1)
	if err := os.WriteFile(launch.script, []byte(body), 0o700); err != nil {
		launch.cleanup()
		return nil, zerr.With(domain.NewInternalError("failed to write launch script", err), "command", command)
	}

	if e.goos == "darwin" {
		// open blocks until the new Terminal instance quits.
		launch.argv = append(prefix, launch.script)
	} else {
		launch.argv = append(prefix, "/bin/sh", launch.script)
	}
	return launch, nil
}

func (e *Executor) posixTerminal(command string) ([]string, error) {
	if len(e.terminal) > 0 {
		return slices.Clone(e.terminal), nil
	}

	switch e.goos {
	case "darwin":
		return []string{"open", "-W", "-n", "-a", "Terminal"}, nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "illumos":
		for _, candidate := range linuxTerminals {
			if _, err := e.lookPath(candidate[0]); err == nil {
				return slices.Clone(candidate), nil
			}
		}
		return nil, zerr.With(
			domain.NewInternalError("no terminal emulator found, set 'terminal' in .tasker.yaml", nil),
			"command", command,
		)
	default:
		return nil, zerr.With(
			zerr.With(domain.NewInternalError("terminal launch is not supported on this platform", nil), "os", e.goos),
			"command", command,
		)
	}
}

// holdScript runs command from dir, records its status, waits for the user
// before the window closes and exits with that status.
func holdScript(dir, command, statusFile string) string {
	return fmt.Sprintf(`#!/bin/sh
cd %s || exit 1
%s
status=$?
printf '%%s\n' "$status" > %s
printf '\n[tasker] exited with %%s, press Enter to close ' "$status"
read _
exit $status
`, shellQuote(dir), strings.TrimSpace(command), shellQuote(statusFile))
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func isWindowClosedByUser(goos string, code int) bool {
	if goos != "windows" {
		return false
	}
	return uint32(code) == statusControlCExit //nolint:gosec // exit codes are 32-bit on Windows
}
