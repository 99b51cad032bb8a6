// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build windows

package procreg

import (
	"os"
	"os/exec"
)

// Prepare is a no-op on Windows.
func Prepare(_ *exec.Cmd) {}

func forceKill(p *os.Process) error {
	return p.Kill()
}
