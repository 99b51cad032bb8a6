// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettyHandler_Enabled(t *testing.T) {
	h := NewPrettyHandler(&slog.HandlerOptions{Level: slog.LevelInfo})

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandler_NilOptions(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewPrettyHandler(nil, WithDestinationWriter(&buf)))
	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestPrettyHandler_Format(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewPrettyHandler(
		&slog.HandlerOptions{Level: slog.LevelDebug},
		WithDestinationWriter(&buf),
	))
	logger.Info("spawned", "pid", 42)

	line := buf.String()
	require.True(t, strings.HasSuffix(line, "\n"))
	assert.True(t, strings.HasPrefix(line, "["), "line should start with the timestamp")
	assert.Contains(t, line, "INFO: spawned")
	assert.Contains(t, line, `"pid": 42`)
	assert.NotContains(t, line, `"msg"`)
	assert.NotContains(t, line, `"level"`)
}

func TestPrettyHandler_NoAttrs(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewPrettyHandler(nil, WithDestinationWriter(&buf)))
	logger.Warn("bare")

	assert.NotContains(t, buf.String(), "{")
}

func TestPrettyHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewPrettyHandler(nil, WithDestinationWriter(&buf))).
		With("runnableType", "leaf").
		WithGroup("task")
	logger.Warn("failed", "name", "lint")

	out := buf.String()
	assert.Contains(t, out, `"runnableType": "leaf"`)
	assert.Contains(t, out, `"task": {`)
	assert.Contains(t, out, `"name": "lint"`)
}

func TestPrettyHandler_Colour(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewPrettyHandler(nil, WithDestinationWriter(&buf)))
	logger.Error("plain")
	assert.NotContains(t, buf.String(), "\033[")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestPrettyHandler_WriteError(t *testing.T) {
	h := NewPrettyHandler(nil, WithDestinationWriter(failingWriter{}))

	r := slog.Record{Level: slog.LevelError, Message: "boom"}
	err := h.Handle(context.Background(), r)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIoWrite)
}

func TestPrettyHandler_Concurrent(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(NewPrettyHandler(nil, WithDestinationWriter(&buf)))

	var wg sync.WaitGroup

	for i := range 20 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			logger.Warn("line", "n", i)
		}()
	}

	wg.Wait()

	assert.Equal(t, 20, strings.Count(buf.String(), "WARN: line"))
}
