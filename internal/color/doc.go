// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color decides whether concur itself writes ANSI colour, renders
// coloured strings, and normalises the colour flags forwarded to child tasks.
//
// Colour is disabled when NO_COLOR is set, forced when FORCE_COLOR is set, and
// otherwise follows whether stdout is a terminal (golang.org/x/term).
package color
