/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/btnmasher/ircrelay/shared/itempool"
)

// String constants for constructing the wire form of a message.
const (
	space  = " "
	crlf   = "\r\n"
	colon  = ":"
	padnum = "%03d"
)

// Message represents one line of the wire protocol (§6):
//
//	[:<prefix> ] <command> [<param>]* [ :<trailing>]
//
// A Message either carries a textual Command (NICK, JOIN, ...) or a
// numeric Code (001, 433, ...); never both at once on render.
type Message struct {
	Sender  string   // source prefix, omitted from the line if empty
	Command string   // textual command, ignored if Code is set
	Code    uint16   // numeric reply code, 0 means "use Command instead"
	Params  []string // positional parameters
	Text    string   // trailing parameter
	hasText bool     // Text was explicitly set, even if empty ("foo :")
}

// Scrub resets a Message to its zero value so it is safe to return to the
// pool. Satisfies itempool.ScrubbableItem.
func (msg *Message) Scrub() {
	msg.Sender = ""
	msg.Command = ""
	msg.Code = 0
	msg.Params = nil
	msg.Text = ""
	msg.hasText = false
}

// SetText sets the trailing parameter, marking it present even when empty.
func (msg *Message) SetText(text string) {
	msg.Text = text
	msg.hasText = true
}

// HasText reports whether a trailing parameter was present on the line,
// distinguishing "no trailing field" from "trailing field present but empty".
func (msg *Message) HasText() bool {
	return msg.hasText
}

// msgPool holds a reference to the global Message object pool, used for
// zero-garbage message construction on the hot path.
var msgPool = itempool.New[*Message](MessagePoolMax, func() *Message { return &Message{} })

// bufPool holds a reference to the global bytes.Buffer object pool used
// when rendering messages to their wire form.
var bufPool = newBufferPool(BufferPoolMax)

// String returns the IRC-formatted string version of a message object.
func (msg *Message) String() string {
	return msg.Render()
}

// RenderBuffer returns the IRC-formatted byte buffer version of a message.
// The buffer comes from bufPool; the caller returns it with bufPool.Recycle
// when done (render in fanout.go copies the bytes out and recycles it).
func (msg *Message) RenderBuffer() *bytes.Buffer {
	buffer := bufPool.New()

	if msg.Sender != "" {
		buffer.WriteString(colon)
		buffer.WriteString(msg.Sender)
		buffer.WriteString(space)
	}

	if msg.Code > 0 {
		buffer.WriteString(fmt.Sprintf(padnum, msg.Code))
	} else {
		buffer.WriteString(msg.Command)
	}

	if len(msg.Params) > 0 {
		buffer.WriteString(space)
		buffer.WriteString(strings.Join(msg.Params, space))
	}

	if msg.hasText {
		buffer.WriteString(space)
		buffer.WriteString(colon)
		buffer.WriteString(msg.Text)
	}

	buffer.WriteString(crlf)

	return buffer
}

// Render returns the IRC-formatted string version of a message object.
func (msg *Message) Render() string {
	return msg.RenderBuffer().String()
}

// newNumeric builds a pooled numeric reply addressed to the given nickname
// (or "*" pre-registration), e.g. ":ircd.local 433 alice :Nickname is already in use".
func newNumeric(sender string, code uint16, nick string, params []string, text string) *Message {
	msg := msgPool.New()
	msg.Sender = sender
	msg.Code = code

	if nick == "" {
		nick = "*"
	}

	msg.Params = append([]string{nick}, params...)
	msg.SetText(text)
	return msg
}
