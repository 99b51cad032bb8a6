// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !windows

package signalbroker

import (
	"os"
	"syscall"
)

// Children run in their own process groups, so a terminal hangup only
// reaches this process and must be turned into a teardown.
var termSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	syscall.SIGHUP,
}
