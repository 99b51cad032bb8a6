// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package scheduler runs normalised task items as child processes with at
// most Limit items in flight.
//
// Items are admitted in order from a single controller loop. A sequence item
// takes one slot and runs its children one after another, stopping at the
// first failure. After any item fails no further items are admitted, but every
// item already admitted runs to completion. Cancelling the context passed to
// Run stops admission only; killing children is the job of the lifecycle guard.
package scheduler
