// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build windows

package signalbroker

import (
	"os"
	"syscall"
)

var termSignals = []os.Signal{
	os.Interrupt,
	syscall.SIGTERM,
}
