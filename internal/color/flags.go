// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"slices"
	"strings"
)

// FlagColor is appended to the flags forwarded to child tasks so that their
// colour detection does not switch off just because stdout is a pipe.
const FlagColor = "--color"

var disablingFlags = []string{
	"--no-color",
	"--no-colors",
	"--color=false",
}

// NormalizeFlags returns a copy of flags with FlagColor appended, unless the
// caller already disabled color or pinned it to a value.
func NormalizeFlags(flags []string) []string {
	out := slices.Clone(flags)
	if out == nil {
		out = []string{}
	}

	for _, f := range flags {
		if slices.Contains(disablingFlags, f) {
			return out
		}

		if f == FlagColor || strings.HasPrefix(f, FlagColor+"=") {
			return out
		}
	}

	return append(out, FlagColor)
}
