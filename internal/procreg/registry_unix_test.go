// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !windows

package procreg

import (
	"context"
	"os/exec"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_KillsRealProcess(t *testing.T) {
	ctx := context.Background()
	r := New()

	cmd := exec.Command("/bin/sh", "-c", "sleep 30")
	Prepare(cmd)
	require.NoError(t, cmd.Start())

	h := FromProcess(cmd.Process)
	require.NoError(t, r.Register(ctx, h))
	assert.Equal(t, cmd.Process.Pid, h.Pid())

	waitErr := make(chan error, 1)

	go func() {
		waitErr <- cmd.Wait()
	}()

	require.NoError(t, r.ForceKillAll(ctx))

	select {
	case err := <-waitErr:
		var exitErr *exec.ExitError

		require.ErrorAs(t, err, &exitErr)

		status, ok := exitErr.Sys().(syscall.WaitStatus)
		require.True(t, ok)
		assert.True(t, status.Signaled())
		assert.Equal(t, syscall.SIGKILL, status.Signal())
	case <-time.After(5 * time.Second):
		t.Fatal("process was not killed")
	}
}

func TestForceKill_ExitedProcess(t *testing.T) {
	cmd := exec.Command("/bin/sh", "-c", "exit 0")
	Prepare(cmd)
	require.NoError(t, cmd.Start())
	require.NoError(t, cmd.Wait())

	// Errors are allowed here, but it must not panic or hang.
	_ = FromProcess(cmd.Process).ForceKill()
}

func TestPrepare_SetsProcessGroup(t *testing.T) {
	cmd := exec.Command("/bin/true")
	Prepare(cmd)

	require.NotNil(t, cmd.SysProcAttr)
	assert.True(t, cmd.SysProcAttr.Setpgid)
}
