//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

func terminateTree(pid int) error {
	// #nosec G204 -- pid is an integer
	return exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
