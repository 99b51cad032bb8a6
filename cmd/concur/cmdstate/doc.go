// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdstate holds state shared by the concur subcommands: the flags
// passed through to every child, and configuration loading.
package cmdstate
