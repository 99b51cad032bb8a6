// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package output routes the stdout and stderr of child tasks to the parent.
//
// In buffered mode (the default) each child's output is captured and written
// as one indented block when the child finishes, so blocks from concurrent
// children never interleave. In interleaved mode complete lines are written
// as soon as they arrive, padded with a left margin, and lines from
// concurrent children mix freely.
package output
