// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package procreg

import (
	"os"
)

// Handle is the part of a child process the registry needs.
type Handle interface {
	// Pid is the operating system process id.
	Pid() int
	// ForceKill sends an unrecoverable termination signal.
	ForceKill() error
}

type processHandle struct {
	p *os.Process
}

// FromProcess wraps a started process. On Unix the whole process group is
// killed, so the command should have been passed through Prepare first.
func FromProcess(p *os.Process) Handle {
	return processHandle{p: p}
}

func (h processHandle) Pid() int {
	return h.p.Pid
}

func (h processHandle) ForceKill() error {
	return forceKill(h.p)
}
