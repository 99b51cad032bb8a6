// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The default logger uses PrettyHandler, which writes a human readable line to
// stderr so that stdout stays reserved for the output of child tasks.
// The level is read from <EXECUTABLE>_LOG_LEVEL, e.g. CONCUR_LOG_LEVEL=DEBUG.
package ctxlog
