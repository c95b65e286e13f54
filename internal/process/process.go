// Package process terminates the Chrome process tree left behind by the
// browser engine.
package process

import (
	"errors"
	"fmt"
)

// ErrInvalidPID is returned for PIDs that would signal the caller's own
// process group or init.
var ErrInvalidPID = errors.New("invalid process id")

// TerminateTree kills pid and every process in its group. Chrome spawns
// renderer and GPU helpers that survive the parent when only it is killed.
func TerminateTree(pid int) error {
	if pid <= 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return terminateTree(pid)
}
