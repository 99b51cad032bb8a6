// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package lifecycle makes sure no child process outlives concur.
//
// A Guard owns the process registry of a run. The host calls Exit to leave
// the process on every normal path and Interrupt when a terminating signal
// arrives. Both kill every registered child before the process exits.
package lifecycle
