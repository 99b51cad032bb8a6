// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"io"
	"sync"
)

// maxPartialLine bounds how much of an unterminated line is held back.
const maxPartialLine = 64 * 1024

// PadWriter writes complete lines to an underlying writer, each prefixed with
// a pad. Bytes after the last newline are held until the line completes or
// Flush is called. Writes to the destination are serialised with mu, which
// is shared by every PadWriter writing to the same parent streams.
type PadWriter struct {
	w       io.Writer
	pad     []byte
	mu      *sync.Mutex
	partial []byte
}

// NewPadWriter returns a PadWriter. A nil mu gets a private mutex.
func NewPadWriter(w io.Writer, pad string, mu *sync.Mutex) *PadWriter {
	if mu == nil {
		mu = &sync.Mutex{}
	}

	return &PadWriter{
		w:   w,
		pad: []byte(pad),
		mu:  mu,
	}
}

// Write implements io.Writer.
func (p *PadWriter) Write(b []byte) (int, error) {
	p.partial = append(p.partial, b...)

	end := bytes.LastIndexByte(p.partial, '\n')
	if end < 0 {
		if len(p.partial) < maxPartialLine {
			return len(b), nil
		}

		// Very long line without a newline: emit what we have as a line.
		p.partial = append(p.partial, '\n')
		end = len(p.partial) - 1
	}

	out := p.padLines(p.partial[:end+1])
	p.partial = append(p.partial[:0], p.partial[end+1:]...)

	if err := p.emit(out); err != nil {
		return 0, err
	}

	return len(b), nil
}

// Flush writes any held partial line, terminated with a newline.
func (p *PadWriter) Flush() error {
	if len(p.partial) == 0 {
		return nil
	}

	out := p.padLines(append(p.partial, '\n'))
	p.partial = p.partial[:0]

	return p.emit(out)
}

// padLines pads each non-empty line of b, which must end with a newline.
func (p *PadWriter) padLines(b []byte) []byte {
	out := make([]byte, 0, len(b)+len(p.pad)*bytes.Count(b, []byte{'\n'}))

	for len(b) > 0 {
		i := bytes.IndexByte(b, '\n')
		line := b[:i]

		if len(bytes.TrimSpace(line)) > 0 {
			out = append(out, p.pad...)
		}

		out = append(out, line...)
		out = append(out, '\n')
		b = b[i+1:]
	}

	return out
}

func (p *PadWriter) emit(b []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, err := p.w.Write(b)

	return err //nolint:wrapcheck
}
