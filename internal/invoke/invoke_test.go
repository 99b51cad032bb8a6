// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package invoke

import (
	"context"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeEnv(t *testing.T) {
	tests := []struct {
		name     string
		base     []string
		overlay  map[string]string
		expected []string
	}{
		{
			name:     "no overlay",
			base:     []string{"A=1", "B=2"},
			expected: []string{"A=1", "B=2"},
		},
		{
			name:     "override in place",
			base:     []string{"A=1", "B=2"},
			overlay:  map[string]string{"A": "x"},
			expected: []string{"A=x", "B=2"},
		},
		{
			name:     "extend sorted",
			base:     []string{"A=1"},
			overlay:  map[string]string{"Z": "z", "C": "c"},
			expected: []string{"A=1", "C=c", "Z=z"},
		},
		{
			name:     "value containing equals",
			base:     []string{"A=b=c"},
			overlay:  map[string]string{"B": "x=y"},
			expected: []string{"A=b=c", "B=x=y"},
		},
		{
			name:     "empty value kept",
			base:     nil,
			overlay:  map[string]string{"EMPTY": ""},
			expected: []string{"EMPTY="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MergeEnv(tt.base, tt.overlay))
		})
	}
}

func TestMergeEnv_DoesNotModifyBase(t *testing.T) {
	base := []string{"A=1"}
	_ = MergeEnv(base, map[string]string{"A": "2"})
	assert.Equal(t, []string{"A=1"}, base)
}

func TestRunner_HostRunner(t *testing.T) {
	r := &Runner{Exec: "grunt", Args: []string{"--gruntfile", "g.js"}, Cwd: "/work"}

	cmd, err := r.Command(context.Background(), "lint", []string{"--color"})
	require.NoError(t, err)
	assert.Equal(t, []string{"grunt", "--gruntfile", "g.js", "lint", "--color"}, cmd.Args)
	assert.Equal(t, "/work", cmd.Dir)
}

func TestRunner_ExecDefinition(t *testing.T) {
	r := &Runner{
		Exec: "host",
		Cwd:  "/work",
		Env:  map[string]string{"RUNNER": "1", "SHARED": "runner"},
		Tasks: map[string]Definition{
			"build": {
				Exec: "make",
				Args: []string{"-j2", "all"},
				Env:  map[string]string{"SHARED": "task"},
				Cwd:  "/src",
			},
		},
	}

	cmd, err := r.Command(context.Background(), "build", []string{"--color"})
	require.NoError(t, err)
	assert.Equal(t, []string{"make", "-j2", "all", "--color"}, cmd.Args)
	assert.Equal(t, "/src", cmd.Dir)
	assert.Contains(t, cmd.Env, "RUNNER=1")
	assert.Contains(t, cmd.Env, "SHARED=task")
}

func TestRunner_CommandLineDefinition(t *testing.T) {
	if runtime.GOOS == goosWindows {
		t.Skip("unix shell only")
	}

	t.Setenv("SHELL", "")

	r := &Runner{
		Tasks: map[string]Definition{
			"echo": {CommandLine: `echo "$0" "$@"`},
		},
	}

	cmd, err := r.Command(context.Background(), "echo", []string{"--color"})
	require.NoError(t, err)
	assert.Equal(t, []string{binSh, "-c", `echo "$0" "$@"`, "echo", "--color"}, cmd.Args)

	out, err := cmd.Output()
	require.NoError(t, err)
	assert.Equal(t, "echo --color\n", string(out))
}

func TestRunner_Errors(t *testing.T) {
	r := &Runner{Tasks: map[string]Definition{"empty": {}}}

	_, err := r.Command(context.Background(), "missing", nil)
	require.ErrorIs(t, err, ErrUnknownTask)

	_, err = r.Command(context.Background(), "empty", nil)
	require.ErrorIs(t, err, ErrEmptyCommandLine)
}

func TestRunner_Names(t *testing.T) {
	r := &Runner{Tasks: map[string]Definition{"b": {}, "a": {}, "c": {}}}
	assert.Equal(t, []string{"a", "b", "c"}, r.Names())
}

func TestInvokerFunc(t *testing.T) {
	var inv Invoker = InvokerFunc(func(_ context.Context, name string, args []string) (*exec.Cmd, error) {
		return exec.Command(name, args...), nil
	})

	cmd, err := inv.Command(context.Background(), "true", []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"true", "x"}, cmd.Args)
}

func TestShell(t *testing.T) {
	if runtime.GOOS == goosWindows {
		t.Skip("unix shell only")
	}

	t.Setenv("SHELL", "/bin/zsh")
	shell, sw := Shell(context.Background())
	assert.Equal(t, "/bin/zsh", shell)
	assert.Equal(t, "-c", sw)

	t.Setenv("SHELL", "")
	shell, _ = Shell(context.Background())
	assert.Equal(t, binSh, shell)
}
