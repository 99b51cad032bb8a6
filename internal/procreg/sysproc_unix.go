// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !windows

package procreg

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// Prepare puts the child in its own process group so that ForceKill also
// reaches anything the child spawns. Where the platform supports it, the
// child is also killed when this process dies without running teardown.
func Prepare(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}

	cmd.SysProcAttr.Setpgid = true
	setParentDeathSignal(cmd.SysProcAttr)
}

func forceKill(p *os.Process) error {
	err := syscall.Kill(-p.Pid, syscall.SIGKILL)
	if err == nil {
		return nil
	}

	// No such group: the child was not prepared, or the group is gone.
	if errors.Is(err, syscall.ESRCH) || errors.Is(err, syscall.EPERM) {
		return p.Kill()
	}

	return err
}
