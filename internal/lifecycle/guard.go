// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package lifecycle

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/matt-FFFFFF/concur/internal/ctxlog"
	"github.com/matt-FFFFFF/concur/internal/procreg"
)

// ExitInterrupted is the exit status used for an interrupt without a numeric signal.
const ExitInterrupted = 130

// osExit is replaced in tests.
var osExit = os.Exit

// Guard ties the teardown of a run's children to the exit of the process.
type Guard struct {
	ctx       context.Context
	reg       *procreg.Registry
	mu        sync.Mutex
	hooks     []func()
	hooksOnce sync.Once
	closeOnce sync.Once
	// interrupted holds the exit status of the first Interrupt, zero before.
	interrupted atomic.Int32
}

// New returns a Guard for reg. A nil reg gets a fresh registry.
func New(ctx context.Context, reg *procreg.Registry) *Guard {
	if reg == nil {
		reg = procreg.New()
	}

	return &Guard{
		ctx: ctx,
		reg: reg,
	}
}

// Registry returns the registry the guard tears down.
func (g *Guard) Registry() *procreg.Registry {
	return g.reg
}

// OnTeardownRequested adds fn to the hooks run by the first TriggerTeardown.
func (g *Guard) OnTeardownRequested(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.hooks = append(g.hooks, fn)
}

// TriggerTeardown runs the teardown hooks, once, and then kills every
// registered child. It is safe to call any number of times and from any goroutine.
func (g *Guard) TriggerTeardown() {
	g.hooksOnce.Do(func() {
		g.mu.Lock()
		hooks := g.hooks
		g.mu.Unlock()

		ctxlog.Debug(g.ctx, "teardown requested", "hooks", len(hooks))

		for _, fn := range hooks {
			fn()
		}
	})

	// Kill errors are never surfaced.
	_ = g.reg.ForceKillAll(g.ctx)
}

// Close is the normal-exit handler. It kills every registered child and
// closes the registry so late spawns are killed on registration.
func (g *Guard) Close() {
	g.closeOnce.Do(func() {
		g.reg.Close(g.ctx)
	})
}

// Interrupt tears down and exits with the status for sig, 130 for SIGINT.
// Once Interrupt has been called, every exit through the guard uses the
// status of the first interrupt.
func (g *Guard) Interrupt(sig os.Signal) {
	g.interrupted.CompareAndSwap(0, int32(ExitCode(sig)))

	ctxlog.Warn(g.ctx, "interrupted, killing child processes", "signal", sig.String())

	g.TriggerTeardown()
	g.Close()
	osExit(g.exitCode(0))
}

// Exit runs Close and exits with code, or with the interrupt status if the
// guard was interrupted.
func (g *Guard) Exit(code int) {
	g.Close()
	osExit(g.exitCode(code))
}

func (g *Guard) exitCode(code int) int {
	if c := g.interrupted.Load(); c != 0 {
		return int(c)
	}

	return code
}

// ExitCode returns the conventional exit status for a process ended by sig.
func ExitCode(sig os.Signal) int {
	if s, ok := sig.(syscall.Signal); ok && s > 0 {
		return 128 + int(s)
	}

	return ExitInterrupted
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying g.
func NewContext(ctx context.Context, g *Guard) context.Context {
	return context.WithValue(ctx, contextKey{}, g)
}

// FromContext returns the guard in ctx, or nil.
func FromContext(ctx context.Context) *Guard {
	g, _ := ctx.Value(contextKey{}).(*Guard)
	return g
}
