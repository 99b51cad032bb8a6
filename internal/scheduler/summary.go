// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package scheduler

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/matt-FFFFFF/concur/internal/color"
)

// SummaryOptions controls what WriteSummary includes.
type SummaryOptions struct {
	IncludeStdOut      bool // Include captured stdout of failed leaves.
	IncludeStdErr      bool // Include captured stderr of failed leaves.
	ShowSuccessDetails bool // Include output of successful leaves too.
	ShowDuration       bool // Append the run time of each item.
}

// DefaultSummaryOptions returns the options used when nil is passed to WriteSummary.
func DefaultSummaryOptions() *SummaryOptions {
	return &SummaryOptions{
		IncludeStdErr: true,
	}
}

// WriteSummary writes a status tree of results to w.
func (r Results) WriteSummary(w io.Writer, opts *SummaryOptions) error {
	if opts == nil {
		opts = DefaultSummaryOptions()
	}

	for _, res := range r {
		if err := writeResult(w, res, "", opts); err != nil {
			return err
		}
	}

	return nil
}

func writeResult(w io.Writer, r *Result, indent string, opts *SummaryOptions) error {
	var marker, labelColour string

	switch r.Status {
	case StatusSuccess:
		marker = color.Colorize("✓", color.FgGreen)
		labelColour = control(color.Bold, color.FgGreen)
	case StatusFailed:
		marker = color.Colorize("✗", color.FgRed)
		labelColour = control(color.Bold, color.FgRed)
	case StatusNotStarted:
		marker = color.Colorize("~", color.FgYellow)
		labelColour = control(color.FgYellow)
	default:
		marker = color.Colorize("?", color.FgWhite)
	}

	sb := strings.Builder{}

	fmt.Fprintf(&sb, "%s%s %s%s%s", indent, marker, labelColour, r.Label, control(color.Reset))

	if r.Status == StatusNotStarted {
		sb.WriteString(" (not started)")
	}

	if r.ExitCode > 0 {
		fmt.Fprintf(&sb, " (exit code: %d)", r.ExitCode)
	}

	if opts.ShowDuration && r.Status != StatusNotStarted {
		fmt.Fprintf(&sb, " [%s]", r.Duration.Round(time.Millisecond))
	}

	sb.WriteByte('\n')

	// A failed sequence repeats the error of its failing child, which is printed below it.
	if r.Error != nil && len(r.Children) == 0 {
		fmt.Fprintf(&sb, "%s  %s %s\n", indent, color.Colorize("➜ Error:", color.FgRed), r.Error)
	}

	showDetails := (r.Status == StatusFailed || opts.ShowSuccessDetails) && len(r.Children) == 0

	if showDetails && opts.IncludeStdOut && len(r.StdOut) > 0 {
		fmt.Fprintf(&sb, "%s  ➜ Output:\n", indent)
		sb.WriteString(formatOutput(r.StdOut, indent+"     "))
	}

	if showDetails && opts.IncludeStdErr && len(r.StdErr) > 0 {
		fmt.Fprintf(&sb, "%s  %s\n", indent, color.Colorize("➜ Error Output:", color.FgHiRed))
		sb.WriteString(formatOutput(r.StdErr, indent+"     "))
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	for _, child := range r.Children {
		if err := writeResult(w, child, indent+"  ", opts); err != nil {
			return err
		}
	}

	return nil
}

func control(codes ...color.Code) string {
	if !color.Enabled() {
		return ""
	}

	return color.ControlString(codes...)
}

// formatOutput indents every line of output, dropping a trailing empty line.
func formatOutput(output []byte, indent string) string {
	lines := strings.Split(strings.TrimRight(string(output), "\n"), "\n")

	sb := strings.Builder{}
	sb.Grow(len(output) + len(lines)*(len(indent)+1))

	for _, line := range lines {
		if line != "" {
			sb.WriteString(indent)
			sb.WriteString(line)
		}

		sb.WriteByte('\n')
	}

	return sb.String()
}
