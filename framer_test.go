/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFramerSingleLine(t *testing.T) {
	var f Framer
	f.Feed([]byte("NICK alice\r\n"))

	lines := f.Lines()
	assert.Equal(t, []string{"NICK alice"}, lines)
	assert.Equal(t, 0, f.Buffered())
}

func TestFramerMultipleLinesOneFeed(t *testing.T) {
	var f Framer
	f.Feed([]byte("NICK alice\r\nUSER alice 0 * :Alice\r\n"))

	lines := f.Lines()
	assert.Equal(t, []string{"NICK alice", "USER alice 0 * :Alice"}, lines)
}

func TestFramerPartialLineBuffered(t *testing.T) {
	var f Framer
	f.Feed([]byte("NICK al"))

	assert.Empty(t, f.Lines())
	assert.Equal(t, 7, f.Buffered())

	f.Feed([]byte("ice\r\n"))
	assert.Equal(t, []string{"NICK alice"}, f.Lines())
	assert.Equal(t, 0, f.Buffered())
}

func TestFramerSplitAcrossCRLFBoundary(t *testing.T) {
	var f Framer
	f.Feed([]byte("NICK alice\r"))
	assert.Empty(t, f.Lines())

	f.Feed([]byte("\nUSER"))
	lines := f.Lines()
	assert.Equal(t, []string{"NICK alice"}, lines)
	assert.Equal(t, 4, f.Buffered())
}

func TestFramerOversizeLineNotTruncated(t *testing.T) {
	var f Framer
	long := make([]byte, MaxMsgLength*2)
	for i := range long {
		long[i] = 'a'
	}

	f.Feed(long)
	f.Feed([]byte("\r\n"))

	lines := f.Lines()
	assert.Len(t, lines, 1)
	assert.Len(t, lines[0], len(long))
}
