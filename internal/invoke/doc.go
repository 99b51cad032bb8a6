// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package invoke turns a task name and passthrough flags into an unstarted
// *exec.Cmd. How a name maps to a process is configuration: an explicit
// executable, a shell command line, or a host runner that receives the task
// name as an argument.
package invoke
