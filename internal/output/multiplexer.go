// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// MaxCapture is the most output kept per stream of one child in buffered mode.
const MaxCapture = 8 * 1024 * 1024

// Mode selects how child output reaches the parent.
type Mode int

const (
	// ModeBuffered captures output and writes one indented block per child.
	ModeBuffered Mode = iota
	// ModeInterleaved streams padded lines as they arrive.
	ModeInterleaved
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == ModeInterleaved {
		return "interleaved"
	}

	return "buffered"
}

// ModeFor maps the logConcurrentOutput option to a Mode.
func ModeFor(logConcurrentOutput bool) Mode {
	if logConcurrentOutput {
		return ModeInterleaved
	}

	return ModeBuffered
}

// Multiplexer hands out one Sink per child process.
type Multiplexer struct {
	mode   Mode
	stdout io.Writer
	stderr io.Writer
	mu     sync.Mutex
}

// New returns a Multiplexer writing to the parent's stdout and stderr.
func New(mode Mode, stdout, stderr io.Writer) *Multiplexer {
	if stdout == nil {
		stdout = io.Discard
	}

	if stderr == nil {
		stderr = io.Discard
	}

	return &Multiplexer{
		mode:   mode,
		stdout: stdout,
		stderr: stderr,
	}
}

// Mode returns the multiplexer mode.
func (m *Multiplexer) Mode() Mode {
	return m.mode
}

// Attach returns the sink for one child. Close it once the child has exited
// and its streams are drained.
func (m *Multiplexer) Attach(label string) *Sink {
	s := &Sink{m: m, label: label}

	switch m.mode {
	case ModeInterleaved:
		s.padOut = NewPadWriter(m.stdout, Pad, &m.mu)
		s.padErr = NewPadWriter(m.stderr, Pad, &m.mu)
	default:
		s.out = &capture{limit: MaxCapture}
		s.err = &capture{limit: MaxCapture}
	}

	return s
}

// Sink receives the streams of one child.
type Sink struct {
	m      *Multiplexer
	label  string
	out    *capture
	err    *capture
	padOut *PadWriter
	padErr *PadWriter
	once   sync.Once
}

// Stdout is the writer for the child's stdout.
func (s *Sink) Stdout() io.Writer {
	if s.padOut != nil {
		return s.padOut
	}

	return s.out
}

// Stderr is the writer for the child's stderr.
func (s *Sink) Stderr() io.Writer {
	if s.padErr != nil {
		return s.padErr
	}

	return s.err
}

// StdOut returns the captured stdout. It is nil in interleaved mode.
func (s *Sink) StdOut() []byte {
	if s.out == nil {
		return nil
	}

	return s.out.Bytes()
}

// StdErr returns the captured stderr. It is nil in interleaved mode.
func (s *Sink) StdErr() []byte {
	if s.err == nil {
		return nil
	}

	return s.err.Bytes()
}

// Close publishes what the sink holds. In buffered mode that is a blank line
// followed by the indented stdout and stderr, written in a single call.
// Calling Close more than once has no further effect.
func (s *Sink) Close() error {
	var err error

	s.once.Do(func() {
		if s.padOut != nil {
			err = s.padOut.Flush()
			if ferr := s.padErr.Flush(); err == nil {
				err = ferr
			}

			return
		}

		combined := string(s.out.Bytes()) + string(s.err.Bytes())
		block := "\n" + Indent(combined, Margin) + "\n"

		s.m.mu.Lock()
		defer s.m.mu.Unlock()

		if _, werr := io.WriteString(s.m.stdout, block); werr != nil {
			err = fmt.Errorf("writing output of %s: %w", s.label, werr)
		}
	})

	return err
}

// capture is a bounded buffer. Writes past the limit are counted but dropped,
// and never fail, so the child is not broken by a full buffer.
type capture struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	limit   int
	dropped int
}

func (c *capture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room := c.limit - c.buf.Len()
	if room >= len(p) {
		c.buf.Write(p)
		return len(p), nil
	}

	if room > 0 {
		c.buf.Write(p[:room])
	}

	c.dropped += len(p) - max(room, 0)

	return len(p), nil
}

func (c *capture) Bytes() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	b := bytes.Clone(c.buf.Bytes())
	if c.dropped > 0 {
		b = append(b, fmt.Sprintf("\n[output truncated, %d bytes dropped]\n", c.dropped)...)
	}

	return b
}
