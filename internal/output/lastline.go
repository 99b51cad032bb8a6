// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"strings"
	"sync"
)

// LastLine is a writer that tracks the last complete, non-blank line written
// to it, for progress display. It is safe for concurrent use, so one LastLine
// can observe both streams of a child.
type LastLine struct {
	mu      sync.Mutex
	last    string
	partial []byte
	onLine  func(line string)
}

// NewLastLine returns a LastLine that calls onLine, if not nil, each time the
// last line changes. onLine is called without the lock held.
func NewLastLine(onLine func(line string)) *LastLine {
	return &LastLine{onLine: onLine}
}

// Write implements io.Writer. It never fails.
func (l *LastLine) Write(p []byte) (int, error) {
	l.mu.Lock()

	l.partial = append(l.partial, p...)

	i := bytes.LastIndexByte(l.partial, '\n')
	if i < 0 {
		if len(l.partial) > maxPartialLine {
			l.partial = l.partial[len(l.partial)-maxPartialLine:]
		}

		l.mu.Unlock()

		return len(p), nil
	}

	line, ok := lastNonBlank(l.partial[:i])
	l.partial = append([]byte(nil), l.partial[i+1:]...)

	if ok {
		l.last = line
	}

	l.mu.Unlock()

	if ok && l.onLine != nil {
		l.onLine(line)
	}

	return len(p), nil
}

// Line returns the last complete line, trimmed of surrounding white space.
func (l *LastLine) Line() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.last
}

func lastNonBlank(b []byte) (string, bool) {
	lines := strings.Split(string(b), "\n")

	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line, true
		}
	}

	return "", false
}
