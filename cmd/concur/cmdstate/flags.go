// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdstate

import (
	"context"
	"slices"
)

const passthroughSeparator = "--"

type flagsKey struct{}

// SplitArgs splits the process arguments at the first "--". The head is
// parsed by the CLI; the tail is passed to every child unchanged.
func SplitArgs(args []string) ([]string, []string) {
	i := slices.Index(args, passthroughSeparator)
	if i < 0 {
		return args, nil
	}

	return args[:i], args[i+1:]
}

// WithFlags returns a copy of ctx carrying the passthrough flags.
func WithFlags(ctx context.Context, flags []string) context.Context {
	return context.WithValue(ctx, flagsKey{}, flags)
}

// Flags returns the passthrough flags in ctx.
func Flags(ctx context.Context) []string {
	flags, _ := ctx.Value(flagsKey{}).([]string)
	return flags
}
