// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package scheduler

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/matt-FFFFFF/concur/internal/ctxlog"
	"github.com/matt-FFFFFF/concur/internal/invoke"
	"github.com/matt-FFFFFF/concur/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingInvoker fails every Command call and counts them.
type countingInvoker struct {
	calls atomic.Int32
}

func (c *countingInvoker) Command(_ context.Context, name string, _ []string) (*exec.Cmd, error) {
	c.calls.Add(1)
	return nil, invoke.ErrUnknownTask
}

func TestNew_InvalidLimit(t *testing.T) {
	for _, limit := range []int{0, -1, -100} {
		inv := &countingInvoker{}
		s, err := New(Config{Limit: limit, Invoker: inv})
		require.ErrorIs(t, err, ErrInvalidLimit)
		assert.Nil(t, s)
		assert.Zero(t, inv.calls.Load())
	}
}

func TestNew_NoInvoker(t *testing.T) {
	_, err := New(Config{Limit: 1})
	require.ErrorIs(t, err, ErrNoInvoker)
}

func TestNew_NormalizesFlags(t *testing.T) {
	tests := []struct {
		name     string
		flags    []string
		expected []string
	}{
		{name: "none", flags: nil, expected: []string{"--color"}},
		{name: "other flags", flags: []string{"--verbose"}, expected: []string{"--verbose", "--color"}},
		{name: "disabled", flags: []string{"--no-color"}, expected: []string{"--no-color"}},
		{name: "pinned", flags: []string{"--color=always"}, expected: []string{"--color=always"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(Config{Limit: 1, Invoker: &countingInvoker{}, Flags: tt.flags})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s.Flags())
		})
	}
}

func TestRun_Empty(t *testing.T) {
	s, err := New(Config{Limit: 2, Invoker: &countingInvoker{}})
	require.NoError(t, err)

	res, err := s.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, res)
	assert.Equal(t, Stats{}, s.Stats())
}

func TestRun_InvalidItemDoesNotSpawn(t *testing.T) {
	inv := &countingInvoker{}
	s, err := New(Config{Limit: 1, Invoker: inv})
	require.NoError(t, err)

	items := task.Normalize([]any{42})

	res, err := s.Run(context.Background(), items)
	require.ErrorIs(t, err, task.ErrMalformedTask)
	require.Len(t, res, 1)
	assert.Equal(t, StatusFailed, res[0].Status)
	assert.Zero(t, inv.calls.Load())
}

func TestRun_EmptyNameDoesNotSpawn(t *testing.T) {
	inv := &countingInvoker{}
	s, err := New(Config{Limit: 1, Invoker: inv})
	require.NoError(t, err)

	_, err = s.Run(context.Background(), []task.Item{task.Leaf("")})
	require.ErrorIs(t, err, task.ErrEmptyName)
	assert.Zero(t, inv.calls.Load())
}

func TestRun_InvokerErrorIsSpawnError(t *testing.T) {
	inv := &countingInvoker{}
	s, err := New(Config{Limit: 1, Invoker: inv})
	require.NoError(t, err)

	res, err := s.Run(context.Background(), []task.Item{task.Leaf("a"), task.Leaf("b")})
	require.ErrorIs(t, err, ErrCouldNotStartProcess)
	require.ErrorIs(t, err, invoke.ErrUnknownTask)

	var te *TaskError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "a", te.Name)
	assert.Equal(t, -1, te.ExitCode)

	assert.Equal(t, StatusFailed, res[0].Status)
	assert.Equal(t, StatusNotStarted, res[1].Status)
	assert.Equal(t, int32(1), inv.calls.Load())
}

func TestRun_CancelledContextAdmitsNothing(t *testing.T) {
	inv := &countingInvoker{}
	s, err := New(Config{Limit: 2, Invoker: inv})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.Run(ctx, []task.Item{task.Leaf("a"), task.Leaf("b")})
	require.ErrorIs(t, err, ErrAdmissionStopped)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, res.NotStarted())
	assert.Zero(t, inv.calls.Load())
	assert.Equal(t, Stats{Total: 2, Pending: 2}, s.Stats())
}

func TestTaskError(t *testing.T) {
	e := &TaskError{Name: "lint", ExitCode: 2, Err: assert.AnError}
	assert.Equal(t, `task "lint" failed with exit code 2`, e.Error())
	require.ErrorIs(t, e, assert.AnError)

	e = &TaskError{Name: "lint", ExitCode: -1, Err: assert.AnError}
	assert.Equal(t, `task "lint" failed: `+assert.AnError.Error(), e.Error())
}

func TestRun_LimitAdvisory(t *testing.T) {
	const advisory = "fewer concurrency slots than tasks"

	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{name: "limit below task count", limit: 1, expected: 1},
		{name: "limit equals task count", limit: 3, expected: 0},
		{name: "limit above task count", limit: 5, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			ctx := ctxlog.New(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

			s, err := New(Config{Limit: tt.limit, Invoker: &countingInvoker{}})
			require.NoError(t, err)

			_, err = s.Run(ctx, task.Normalize([]any{"a", "b", "c"}))
			require.Error(t, err)
			assert.Equal(t, tt.expected, strings.Count(buf.String(), advisory))
		})
	}
}
