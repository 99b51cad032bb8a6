// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package output

import (
	"strings"
)

// Margin is the number of spaces child output is indented by.
const Margin = 4

// Pad is Margin spaces.
var Pad = strings.Repeat(" ", Margin)

// Indent prefixes every line of s that is not blank with n spaces.
// Blank lines are left as they are so the output gains no trailing spaces.
func Indent(s string, n int) string {
	if n <= 0 || s == "" {
		return s
	}

	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")

	sb := strings.Builder{}
	sb.Grow(len(s) + len(lines)*n)

	for i, line := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}

		if strings.TrimSpace(line) != "" {
			sb.WriteString(pad)
		}

		sb.WriteString(line)
	}

	return sb.String()
}
