// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads concur configuration files.
//
// A file declares how task names are run (a host runner and optional per-task
// definitions), default options, and named groups of task references.
// YAML (.yaml, .yml) and HCL (.hcl) are supported; both produce the same File.
package config
