// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui renders a live status view of a concur run. Every item of the
// group gets one line, sequence children are nested below their sequence, and
// the view updates as progress events arrive from the scheduler.
//
// The view is drawn inline rather than on the alternate screen and quits on
// its own once the run has finished, leaving the final tree in the terminal.
package tui
