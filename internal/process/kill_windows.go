//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillGroup force-kills the process tree rooted at pid with taskkill.
// taskkill fails when the process already exited; that is ignored.
func KillGroup(pid int) error {
	if err := checkPID(pid); err != nil {
		return err
	}
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
	return nil
}
