// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package invoke

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"sort"
	"strings"

	"github.com/matt-FFFFFF/concur/internal/ctxlog"
)

var (
	// ErrUnknownTask is returned when a task name has no definition and there is no host runner.
	ErrUnknownTask = errors.New("unknown task")
	// ErrEmptyCommandLine is returned when a command line definition is blank.
	ErrEmptyCommandLine = errors.New("empty command line")
)

// Invoker builds the child process for a task.
type Invoker interface {
	// Command returns an unstarted command that runs the named task with args appended.
	Command(ctx context.Context, name string, args []string) (*exec.Cmd, error)
}

// InvokerFunc adapts a function to the Invoker interface.
type InvokerFunc func(ctx context.Context, name string, args []string) (*exec.Cmd, error)

// Command implements Invoker.
func (f InvokerFunc) Command(ctx context.Context, name string, args []string) (*exec.Cmd, error) {
	return f(ctx, name, args)
}

// Definition describes how one named task is run.
type Definition struct {
	Exec        string            // Executable, searched for in PATH when not a path.
	Args        []string          // Arguments placed before the passthrough flags.
	CommandLine string            // Shell command line, used when Exec is empty.
	Env         map[string]string // Environment overlay for this task.
	Cwd         string            // Working directory, defaults to the runner's.
}

// Runner is the configured Invoker. Tasks with a definition run as defined.
// Any other name is handed to the host runner as `Exec Args... name flags...`.
type Runner struct {
	Exec  string
	Args  []string
	Cwd   string
	Env   map[string]string
	Tasks map[string]Definition
}

var _ Invoker = (*Runner)(nil)

// Command implements Invoker.
func (r *Runner) Command(ctx context.Context, name string, args []string) (*exec.Cmd, error) {
	var (
		cmd *exec.Cmd
		env map[string]string
		cwd = r.Cwd
	)

	def, ok := r.Tasks[name]

	switch {
	case ok && def.Exec != "":
		cmd = exec.Command(def.Exec, slices.Concat(def.Args, args)...) //nolint:gosec
		env, cwd = def.Env, first(def.Cwd, cwd)

	case ok && def.CommandLine != "":
		shell, sw := Shell(ctx)
		// The task name fills $0 so the line can use "$@" for the flags.
		cmd = exec.Command(shell, slices.Concat([]string{sw, def.CommandLine, name}, args)...) //nolint:gosec
		env, cwd = def.Env, first(def.Cwd, cwd)

	case ok:
		return nil, fmt.Errorf("%w: task %q", ErrEmptyCommandLine, name)

	case r.Exec != "":
		cmd = exec.Command(r.Exec, slices.Concat(r.Args, []string{name}, args)...) //nolint:gosec

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTask, name)
	}

	cmd.Dir = cwd
	cmd.Env = MergeEnv(os.Environ(), mergeMaps(r.Env, env))

	ctxlog.Debug(ctx, "built command", "task", name, "path", cmd.Path, "args", cmd.Args[1:], "cwd", cmd.Dir)

	return cmd, nil
}

// Names returns the defined task names in sorted order.
func (r *Runner) Names() []string {
	names := make([]string, 0, len(r.Tasks))
	for k := range r.Tasks {
		names = append(names, k)
	}

	sort.Strings(names)

	return names
}

// MergeEnv overlays key/value pairs on a KEY=VALUE environment. Existing keys
// are replaced in place, new keys are appended in sorted order, and nothing is
// removed. The base slice is not modified.
func MergeEnv(base []string, overlay map[string]string) []string {
	out := slices.Clone(base)
	if len(overlay) == 0 {
		return out
	}

	seen := make(map[string]struct{}, len(overlay))

	for i, kv := range out {
		k, _, _ := strings.Cut(kv, "=")
		if v, ok := overlay[k]; ok {
			out[i] = k + "=" + v
			seen[k] = struct{}{}
		}
	}

	keys := make([]string, 0, len(overlay))

	for k := range overlay {
		if _, ok := seen[k]; !ok {
			keys = append(keys, k)
		}
	}

	sort.Strings(keys)

	for _, k := range keys {
		out = append(out, k+"="+overlay[k])
	}

	return out
}

func mergeMaps(base, over map[string]string) map[string]string {
	if len(over) == 0 {
		return base
	}

	out := make(map[string]string, len(base)+len(over))

	for k, v := range base {
		out[k] = v
	}

	for k, v := range over {
		out[k] = v
	}

	return out
}

func first(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}

	return ""
}
