// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !windows && !linux

package procreg

import "syscall"

func setParentDeathSignal(_ *syscall.SysProcAttr) {}
