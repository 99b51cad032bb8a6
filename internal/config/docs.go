// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"github.com/matt-FFFFFF/concur/internal/schema"
)

// SchemaTitle heads the generated documentation.
const SchemaTitle = "concur configuration"

// ExampleYAML is a complete YAML configuration.
const ExampleYAML = `runner:
  exec: grunt
  args: ["--gruntfile", "Gruntfile.js"]

tasks:
  build:
    exec: make
    args: [all]
  greet:
    command_line: echo hello "$@"

options:
  limit: 4

groups:
  default:
    - lint
    - [build, test]
    - name: deploy
      env:
        STAGE: prod
  serial:
    tasks: [lint, greet]
    options:
      limit: 1
      logConcurrentOutput: true
`

// ExampleHCL is ExampleYAML written in HCL.
const ExampleHCL = `runner {
  exec = "grunt"
  args = ["--gruntfile", "Gruntfile.js"]
}

task "build" {
  exec = "make"
  args = ["all"]
}

task "greet" {
  command_line = "echo hello \"$@\""
}

options {
  limit = 4
}

group "default" {
  tasks = ["lint", ["build", "test"], { name = "deploy", env = { STAGE = "prod" } }]
}

group "serial" {
  tasks = ["lint", "greet"]

  options {
    limit                 = 1
    log_concurrent_output = true
  }
}
`

// Sections documents the configuration file format.
func Sections() ([]schema.Section, error) {
	refs := map[string]string{
		"Runner":  "runner",
		"TaskDef": "task",
		"Options": "options",
	}

	defs := []struct {
		name, desc string
		def        any
	}{
		{"file", "Top level of a concur.yaml, concur.yml or concur.hcl file.", File{}},
		{"runner", "The host runner. A task without a definition runs as 'exec args... <task> <flags...>'.", Runner{}},
		{"task", "How one named task is run. Set exec, or command_line to run through the shell.", TaskDef{}},
		{"options", "Scheduler options, at the top level or per group.", Options{}},
	}

	out := make([]schema.Section, 0, len(defs))

	for _, d := range defs {
		s, err := schema.NewSection(d.name, d.desc, d.def, refs)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		out = append(out, s)
	}

	return out, nil
}
