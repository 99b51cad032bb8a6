// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/matt-FFFFFF/concur/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const hclConfig = `
runner {
  exec = "grunt"
  args = ["--gruntfile", "Gruntfile.js"]
}

task "greet" {
  command_line = "echo ${upper(env.CONCUR_TEST_WHO)}"
  env = {
    GREETING = "hi"
  }
}

options {
  limit = 3
}

group "default" {
  tasks = ["lint", ["build", "test"], { name = "deploy", env = { STAGE = "prod", N = 2 } }]
}

group "serial" {
  tasks = ["a", "b"]

  options {
    limit                 = 1
    log_concurrent_output = true
  }
}
`

func TestParse_HCL(t *testing.T) {
	t.Setenv("CONCUR_TEST_WHO", "world")

	f, err := Parse("/work/concur.hcl", []byte(hclConfig))
	require.NoError(t, err)

	assert.Equal(t, "grunt", f.Runner.Exec)
	assert.Equal(t, []string{"--gruntfile", "Gruntfile.js"}, f.Runner.Args)
	assert.Equal(t, "echo WORLD", f.Tasks["greet"].CommandLine)
	assert.Equal(t, map[string]string{"GREETING": "hi"}, f.Tasks["greet"].Env)
	assert.Equal(t, []string{"default", "serial"}, f.GroupNames())

	g, err := f.Group("default")
	require.NoError(t, err)

	expected := []task.Item{
		task.Leaf("lint"),
		task.Sequence(task.Leaf("build"), task.Leaf("test")),
		{Name: "deploy", Kind: task.KindLeaf, Env: map[string]string{"STAGE": "prod", "N": "2"}},
	}
	assert.Equal(t, expected, g.Items)
	assert.Equal(t, Resolved{Limit: 3}, g.Options.Resolve())

	g, err = f.Group("serial")
	require.NoError(t, err)
	assert.Equal(t, Resolved{Limit: 1, LogConcurrentOutput: true}, g.Options.Resolve())
}

func TestParse_HCLErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "syntax", content: `group "x" {`},
		{name: "unknown block", content: `bogus {}`},
		{name: "missing tasks", content: `group "x" {}`},
		{name: "duplicate group", content: "group \"x\" {\n tasks = []\n}\ngroup \"x\" {\n tasks = []\n}\n"},
		{name: "unknown variable", content: "group \"x\" {\n tasks = [var.nope]\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("concur.hcl", []byte(tt.content))
			require.ErrorIs(t, err, ErrInvalidHcl)
		})
	}
}

func TestCtyToAny(t *testing.T) {
	tests := []struct {
		name     string
		in       cty.Value
		expected any
	}{
		{name: "null", in: cty.NullVal(cty.String), expected: nil},
		{name: "string", in: cty.StringVal("x"), expected: "x"},
		{name: "int", in: cty.NumberIntVal(3), expected: 3},
		{name: "float", in: cty.NumberFloatVal(1.5), expected: 1.5},
		{name: "bool", in: cty.True, expected: true},
		{
			name:     "tuple",
			in:       cty.TupleVal([]cty.Value{cty.StringVal("a"), cty.ListVal([]cty.Value{cty.StringVal("b")})}),
			expected: []any{"a", []any{"b"}},
		},
		{
			name:     "object",
			in:       cty.ObjectVal(map[string]cty.Value{"name": cty.StringVal("a")}),
			expected: map[string]any{"name": "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ctyToAny(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	_, err := ctyToAny(cty.UnknownVal(cty.String))
	require.Error(t, err)
}
