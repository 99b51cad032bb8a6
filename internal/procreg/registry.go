// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package procreg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/concur/internal/ctxlog"
)

var (
	// ErrRegistryClosed is returned by Register after Close. The handle has
	// already been killed when it is returned.
	ErrRegistryClosed = errors.New("process registry is closed")
)

// Registry is the set of live child processes of one run.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	handles []Handle
	closed  bool
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// Register adds h to the registry.
func (r *Registry) Register(ctx context.Context, h Handle) error {
	r.mu.Lock()

	if r.closed {
		r.mu.Unlock()

		ctxlog.Debug(ctx, "registry closed, killing late process", "pid", h.Pid())
		_ = h.ForceKill()

		return ErrRegistryClosed
	}

	r.handles = append(r.handles, h)
	r.mu.Unlock()

	ctxlog.Debug(ctx, "process registered", "pid", h.Pid())

	return nil
}

// Unregister removes h after it exited on its own. Unknown handles are ignored.
func (r *Registry) Unregister(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, x := range r.handles {
		if x == h {
			r.handles = append(r.handles[:i], r.handles[i+1:]...)
			return
		}
	}
}

// Len is the number of registered handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.handles)
}

// ForceKillAll kills every registered process and empties the registry.
// The table is swapped out under the lock and the kills happen outside it, so
// concurrent Register and Unregister calls never see a half-iterated table.
// The returned error is for diagnostics only; processes that already exited
// are not reported.
func (r *Registry) ForceKillAll(ctx context.Context) error {
	r.mu.Lock()
	victims := r.handles
	r.handles = nil
	r.mu.Unlock()

	var result *multierror.Error

	for _, h := range victims {
		err := h.ForceKill()

		switch {
		case err == nil:
			ctxlog.Debug(ctx, "process killed", "pid", h.Pid())
		case errors.Is(err, os.ErrProcessDone):
			ctxlog.Debug(ctx, "process already done", "pid", h.Pid())
		default:
			result = multierror.Append(result, fmt.Errorf("pid %d: %w", h.Pid(), err))
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		ctxlog.Debug(ctx, "errors while killing processes", "error", err.Error())
		return err
	}

	return nil
}

// Close kills everything still registered and makes later Register calls
// kill their handle immediately.
func (r *Registry) Close(ctx context.Context) {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	_ = r.ForceKillAll(ctx)
}
