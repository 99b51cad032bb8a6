// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModeFor(t *testing.T) {
	assert.Equal(t, ModeBuffered, ModeFor(false))
	assert.Equal(t, ModeInterleaved, ModeFor(true))
	assert.Equal(t, "buffered", ModeBuffered.String())
	assert.Equal(t, "interleaved", ModeInterleaved.String())
}

func TestSink_BufferedBlock(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	m := New(ModeBuffered, stdout, stderr)

	s := m.Attach("lint")
	fmt.Fprint(s.Stdout(), "out line\n")
	fmt.Fprint(s.Stderr(), "err line\n")

	assert.Empty(t, stdout.String(), "nothing is written before close")

	require.NoError(t, s.Close())
	assert.Equal(t, "\n    out line\n    err line\n\n", stdout.String())
	assert.Empty(t, stderr.String())
	assert.Equal(t, "out line\n", string(s.StdOut()))
	assert.Equal(t, "err line\n", string(s.StdErr()))

	require.NoError(t, s.Close())
	assert.Equal(t, "\n    out line\n    err line\n\n", stdout.String())
}

func TestSink_BufferedBlocksDoNotInterleave(t *testing.T) {
	stdout := &bytes.Buffer{}
	m := New(ModeBuffered, stdout, nil)

	const children = 8

	const lines = 50

	wg := sync.WaitGroup{}

	for c := range children {
		wg.Add(1)

		go func() {
			defer wg.Done()

			s := m.Attach(fmt.Sprintf("child%d", c))
			for l := range lines {
				fmt.Fprintf(s.Stdout(), "c%d-l%d\n", c, l)
			}

			assert.NoError(t, s.Close())
		}()
	}

	wg.Wait()

	blocks := strings.Split(strings.Trim(stdout.String(), "\n"), "\n\n\n")
	require.Len(t, blocks, children)

	for _, block := range blocks {
		blockLines := strings.Split(block, "\n")
		require.Len(t, blockLines, lines)

		prefix := strings.SplitN(strings.TrimSpace(blockLines[0]), "-", 2)[0]
		for l, line := range blockLines {
			assert.Equal(t, fmt.Sprintf("    %s-l%d", prefix, l), line)
		}
	}
}

func TestSink_Interleaved(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	m := New(ModeInterleaved, stdout, stderr)

	a := m.Attach("a")
	b := m.Attach("b")

	fmt.Fprint(a.Stdout(), "a1\n")
	fmt.Fprint(b.Stdout(), "b1\n")
	fmt.Fprint(a.Stdout(), "a2")
	fmt.Fprint(b.Stderr(), "b-err\n")

	assert.Equal(t, "    a1\n    b1\n", stdout.String())
	assert.Equal(t, "    b-err\n", stderr.String())

	require.NoError(t, a.Close())
	require.NoError(t, b.Close())
	assert.Equal(t, "    a1\n    b1\n    a2\n", stdout.String())
	assert.Nil(t, a.StdOut())
	assert.Nil(t, a.StdErr())
}

func TestCapture_Truncates(t *testing.T) {
	c := &capture{limit: 4}

	n, err := c.Write([]byte("abcdef"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = c.Write([]byte("gh"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, "abcd\n[output truncated, 4 bytes dropped]\n", string(c.Bytes()))
}
