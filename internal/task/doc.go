// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package task turns task-group descriptions into a canonical tree of Items.
//
// A description is either a list of task references or an object with a
// "tasks" field holding that list. A reference is a task name, an object with
// "name" and "env" fields, or a nested list. Nested lists become sequence
// items whose children run one after another in a single concurrency slot.
//
// Normalization never fails. Input that is none of the above is kept as an
// invalid item so that the error surfaces when the item is executed.
package task
