// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/concur/internal/ctxlog"
)

// Interrupter is told about the first terminating signal.
// *lifecycle.Guard implements it.
type Interrupter interface {
	Interrupt(sig os.Signal)
}

// Watch hands the first signal received on sigCh to in and returns.
// It also returns when ctx is done or sigCh is closed.
func Watch(ctx context.Context, sigCh <-chan os.Signal, in Interrupter) {
	select {
	case sig, ok := <-sigCh:
		if !ok {
			return
		}

		ctxlog.Info(ctx, "received signal", "signal", sig.String())
		in.Interrupt(sig)

	case <-ctx.Done():
	}
}
