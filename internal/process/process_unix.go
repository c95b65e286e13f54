//go:build !windows

package process

import (
	"errors"
	"syscall"
)

func terminateTree(pid int) error {
	err := syscall.Kill(-pid, syscall.SIGKILL)
	if errors.Is(err, syscall.ESRCH) {
		return nil
	}
	return err
}
