// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"

	escPrefix = "\033["
	escSuffix = "m"
	escReset  = "\033[0m"
)

// Code is an SGR parameter, e.g. 31 for a red foreground.
type Code int

// Text attributes.
const (
	Reset Code = 0
	Bold  Code = 1
	Faint Code = 2
)

// Foreground colors.
const (
	FgRed Code = iota + 31
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Hi-intensity foreground colors.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

var enabled = isColorEnabled()

// Enabled reports whether concur writes ANSI sequences to its own output.
func Enabled() bool {
	return enabled
}

// ControlString renders the escape sequence for the codes without any text.
// It is returned even when color is disabled; callers that care use Colorize.
func ControlString(codes ...Code) string {
	sb := strings.Builder{}
	sb.WriteString(escPrefix)
	writeCodes(&sb, codes)
	sb.WriteString(escSuffix)

	return sb.String()
}

// Colorize wraps str in the given codes followed by a reset.
// It returns str unchanged when color output is disabled.
func Colorize(str string, codes ...Code) string {
	if !enabled || len(codes) == 0 {
		return str
	}

	sb := strings.Builder{}
	sb.Grow(len(str) + len(escPrefix) + len(escSuffix) + len(escReset) + 4*len(codes))
	sb.WriteString(escPrefix)
	writeCodes(&sb, codes)
	sb.WriteString(escSuffix)
	sb.WriteString(str)
	sb.WriteString(escReset)

	return sb.String()
}

// Strip removes ANSI SGR sequences from s.
func Strip(s string) string {
	return sgrPattern.ReplaceAllString(s, "")
}

var sgrPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

func writeCodes(sb *strings.Builder, codes []Code) {
	for i, c := range codes {
		if i > 0 {
			sb.WriteByte(';')
		}

		sb.WriteString(strconv.Itoa(int(c)))
	}
}

func isColorEnabled() bool {
	if os.Getenv(NoColor) != "" {
		return false
	}

	if os.Getenv(ForceColor) != "" {
		return true
	}

	return term.IsTerminal(int(os.Stdout.Fd()))
}
