/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

import "bytes"

// Framer accumulates a per-connection byte stream and peels off complete
// CRLF-delimited lines (§4.1). It holds no knowledge of the protocol beyond
// "where does a line end" — tokenizing the line is Parse's job.
//
// A Framer is not safe for concurrent use; each Client owns exactly one,
// fed only from that connection's read goroutine.
type Framer struct {
	buf bytes.Buffer
}

// Feed appends newly read bytes to the framer's buffer.
func (f *Framer) Feed(data []byte) {
	f.buf.Write(data)
}

// Lines repeatedly cuts complete CRLF-terminated lines out of the buffer
// and returns them, most-recently-fed line last. Trailing partial content
// (no CRLF yet observed) remains buffered for the next Feed. Lines are
// returned without their terminating CRLF. Oversized lines are never
// truncated — they are handed to the caller exactly as received, per
// spec: the 512-byte figure is a recommendation, not an enforced cap.
func (f *Framer) Lines() []string {
	var lines []string

	for {
		raw := f.buf.Bytes()
		idx := bytes.Index(raw, []byte(crlf))
		if idx < 0 {
			break
		}

		line := make([]byte, idx)
		copy(line, raw[:idx])
		lines = append(lines, string(line))

		f.buf.Next(idx + len(crlf))
	}

	return lines
}

// Buffered reports how many unterminated bytes remain in the framer.
func (f *Framer) Buffered() int {
	return f.buf.Len()
}
