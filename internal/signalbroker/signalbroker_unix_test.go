// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !windows

package signalbroker

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/matt-FFFFFF/concur/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DeliversSignal(t *testing.T) {
	ch := New(context.Background(), syscall.SIGUSR1)
	defer Stop(ch)

	p, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, p.Signal(syscall.SIGUSR1))

	select {
	case sig := <-ch:
		require.Equal(t, syscall.SIGUSR1, sig)
	case <-time.After(2 * time.Second):
		t.Fatal("signal not delivered")
	}
}

func TestNew_DefaultSignalsIncludeHangup(t *testing.T) {
	assert.Contains(t, termSignals, syscall.SIGHUP)
}

func TestWatch_HangupInterrupts(t *testing.T) {
	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)
	ch := New(ctx)
	defer Stop(ch)

	in := &interrupts{}
	done := make(chan struct{})

	go func() {
		defer close(done)
		Watch(ctx, ch, in)
	}()

	p, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, p.Signal(syscall.SIGHUP))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after SIGHUP")
	}

	assert.Equal(t, []os.Signal{syscall.SIGHUP}, in.got())
}
