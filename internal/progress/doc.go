// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress defines the events the scheduler emits as items start and
// finish, and the Reporter interface that receives them. The TUI is the main
// consumer.
package progress
