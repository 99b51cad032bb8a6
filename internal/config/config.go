// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/matt-FFFFFF/concur/internal/invoke"
	"github.com/matt-FFFFFF/concur/internal/task"
)

// DefaultGroup is run when no group is named.
const DefaultGroup = "default"

var (
	// ErrUnknownGroup is returned when a group is not defined in the file.
	ErrUnknownGroup = errors.New("unknown group")
	// ErrNoGroups is returned when a file defines no groups.
	ErrNoGroups = errors.New("no groups defined")
	// ErrInvalidGroup is returned when a group value is neither a list nor an object.
	ErrInvalidGroup = errors.New("invalid group")
)

// File is a parsed configuration file.
type File struct {
	Runner  Runner             `yaml:"runner,omitempty" docdesc:"Host runner invoked as 'exec args... <task> <flags...>' for tasks without a definition"` //nolint:lll
	Tasks   map[string]TaskDef `yaml:"tasks,omitempty" docdesc:"Task definitions keyed by task name"`
	Options Options            `yaml:"options,omitempty" docdesc:"Default options for every group"`
	Groups  map[string]any     `yaml:"groups" docdesc:"Named groups: a list of task references, or an object with 'tasks' and 'options'"` //nolint:lll

	// Path is the file the configuration was read from.
	Path string `yaml:"-"`
}

// Runner is the host task runner.
type Runner struct {
	Exec string            `yaml:"exec" docdesc:"Executable of the host runner"`
	Args []string          `yaml:"args,omitempty" docdesc:"Arguments placed before the task name"`
	Cwd  string            `yaml:"cwd,omitempty" docdesc:"Working directory, relative to the configuration file"`
	Env  map[string]string `yaml:"env,omitempty" docdesc:"Environment variables for every task"`
}

// TaskDef defines how one task is run.
type TaskDef struct {
	Exec        string            `yaml:"exec,omitempty" docdesc:"Executable to run; the passthrough flags are appended to args"`
	Args        []string          `yaml:"args,omitempty" docdesc:"Arguments for exec"`
	CommandLine string            `yaml:"command_line,omitempty" docdesc:"Shell command line, used when exec is empty; flags are available as \"$@\""` //nolint:lll
	Env         map[string]string `yaml:"env,omitempty" docdesc:"Environment variables for this task"`
	Cwd         string            `yaml:"cwd,omitempty" docdesc:"Working directory, relative to the configuration file"`
}

// Options are the scheduler options. Nil fields are unset.
type Options struct {
	Limit               *int  `yaml:"limit,omitempty" docdesc:"Maximum number of items running at once, default 2x CPUs (minimum 2)"`
	LogConcurrentOutput *bool `yaml:"logConcurrentOutput,omitempty" hcl:"log_concurrent_output" docdesc:"Stream child output live instead of one block per task"` //nolint:lll
}

// Merge returns o with every field set in over replacing it.
func (o Options) Merge(over Options) Options {
	if over.Limit != nil {
		o.Limit = over.Limit
	}

	if over.LogConcurrentOutput != nil {
		o.LogConcurrentOutput = over.LogConcurrentOutput
	}

	return o
}

// Resolved are options with defaults applied.
type Resolved struct {
	Limit               int
	LogConcurrentOutput bool
}

// Resolve applies defaults. An explicit limit is kept as is, even when it is
// not positive, so the scheduler can reject it.
func (o Options) Resolve() Resolved {
	r := Resolved{Limit: DefaultLimit()}

	if o.Limit != nil {
		r.Limit = *o.Limit
	}

	if o.LogConcurrentOutput != nil {
		r.LogConcurrentOutput = *o.LogConcurrentOutput
	}

	return r
}

// DefaultLimit is twice the number of CPUs, and at least 2.
func DefaultLimit() int {
	return max(2*runtime.NumCPU(), 2)
}

// Group is a named, normalised list of items with its options.
type Group struct {
	Name    string
	Items   []task.Item
	Options Options
}

// GroupNames returns the group names in sorted order.
func (f *File) GroupNames() []string {
	names := make([]string, 0, len(f.Groups))
	for k := range f.Groups {
		names = append(names, k)
	}

	sort.Strings(names)

	return names
}

// Group returns the named group. Its options are the file options overlaid by
// the group's own.
func (f *File) Group(name string) (*Group, error) {
	if len(f.Groups) == 0 {
		return nil, ErrNoGroups
	}

	spec, ok := f.Groups[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, name)
	}

	g := &Group{
		Name:    name,
		Options: f.Options,
	}

	switch v := spec.(type) {
	case map[string]any:
		if _, ok := v["tasks"]; !ok {
			return nil, fmt.Errorf("%w %q: object without tasks", ErrInvalidGroup, name)
		}

		opts, err := decodeOptions(f.Path, v["options"])
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidGroup, name, err)
		}

		g.Options = g.Options.Merge(opts)
		g.Items = task.Normalize(v)
	case []any, []string, []task.Item:
		g.Items = task.Normalize(v)
	default:
		return nil, fmt.Errorf("%w %q: unexpected %T", ErrInvalidGroup, name, spec)
	}

	return g, nil
}

// Invoker returns the task invoker described by the file.
func (f *File) Invoker() *invoke.Runner {
	r := &invoke.Runner{
		Exec:  f.Runner.Exec,
		Args:  f.Runner.Args,
		Cwd:   f.resolveDir(f.Runner.Cwd),
		Env:   f.Runner.Env,
		Tasks: make(map[string]invoke.Definition, len(f.Tasks)),
	}

	for name, t := range f.Tasks {
		r.Tasks[name] = invoke.Definition{
			Exec:        t.Exec,
			Args:        t.Args,
			CommandLine: t.CommandLine,
			Env:         t.Env,
			Cwd:         f.resolveDir(t.Cwd),
		}
	}

	return r
}

func (f *File) resolveDir(dir string) string {
	if dir == "" || filepath.IsAbs(dir) || f.Path == "" {
		return dir
	}

	return filepath.Join(filepath.Dir(f.Path), dir)
}
