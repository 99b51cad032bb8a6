// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package invoke

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/matt-FFFFFF/concur/internal/ctxlog"
)

const (
	goosWindows          = "windows"
	commandSwitchWindows = "/C"
	commandSwitchUnix    = "-c"
	cmdExe               = "cmd.exe"
	binSh                = "/bin/sh"
	winSystemRootEnv     = "SystemRoot"
)

// Shell returns the platform shell and the switch that makes it run a command line.
// On Unix $SHELL is used when set, otherwise /bin/sh.
func Shell(ctx context.Context) (string, string) {
	if runtime.GOOS == goosWindows {
		systemRoot := os.Getenv(winSystemRootEnv)
		if systemRoot == "" {
			systemRoot = `C:\Windows`
		}

		return filepath.Join(systemRoot, "System32", cmdExe), commandSwitchWindows
	}

	if shell := os.Getenv("SHELL"); shell != "" {
		ctxlog.Debug(ctx, "using SHELL environment variable", "shell", shell)
		return shell, commandSwitchUnix
	}

	return binSh, commandSwitchUnix
}
