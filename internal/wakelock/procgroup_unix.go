//go:build unix

package wakelock

import (
	"os/exec"
	"syscall"
)

// ownGroup starts the inhibitor in its own process group so helpers it
// forks (systemd-inhibit runs its command as a child) die with it
func ownGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func killGroup(cmd *exec.Cmd) error {
	err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	if err == syscall.ESRCH {
		return nil
	}
	return err
}
