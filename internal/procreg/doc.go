// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package procreg tracks the child processes of one orchestration run so they
// can be killed together when the run is torn down.
//
// The registry does not own the processes: the scheduler starts and waits for
// them, and unregisters each one on natural exit. ForceKillAll is best effort
// and never fails the caller.
package procreg
