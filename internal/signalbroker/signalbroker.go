// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker delivers terminating OS signals to the lifecycle guard.
// By default it listens for every signal whose default action would end the
// process while children are running: interrupt, termination and quit, plus
// hangup outside Windows.
package signalbroker

import (
	"context"
	"os"
	"os/signal"

	"github.com/matt-FFFFFF/concur/internal/ctxlog"
)

// New creates a channel that receives the OS signals that should terminate the process.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "creating signal broker", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}

// Stop stops delivery to ch.
func Stop(ch chan os.Signal) {
	signal.Stop(ch)
}
