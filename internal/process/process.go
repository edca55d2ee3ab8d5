// Package process terminates the browser process tree left behind by a render.
package process

import (
	"errors"
	"fmt"
)

// ErrInvalidPID is returned for pids that would target this process, its group
// or every process of the user.
var ErrInvalidPID = errors.New("invalid pid")

// checkPID rejects 0, 1 and negative pids: kill(-0) hits our own group and
// kill(-1) every process we may signal.
func checkPID(pid int) error {
	if pid <= 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return nil
}
