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

func TestMessageRenderWithSenderParamsAndText(t *testing.T) {
	msg := &Message{
		Sender:  "irc.localhost.net",
		Command: "PRIVMSG",
		Params:  []string{"#general"},
	}
	msg.SetText("hello there")

	assert.Equal(t, ":irc.localhost.net PRIVMSG #general :hello there\r\n", msg.Render())
}

func TestMessageRenderNoSender(t *testing.T) {
	msg := &Message{Command: "PING"}
	msg.SetText("token123")

	assert.Equal(t, "PING :token123\r\n", msg.Render())
}

func TestMessageRenderNumericCode(t *testing.T) {
	msg := newNumeric("irc.localhost.net", 1, "alice", nil, "Welcome to the network, alice")
	defer msgPool.Recycle(msg)

	assert.Equal(t, ":irc.localhost.net 001 alice :Welcome to the network, alice\r\n", msg.Render())
}

func TestMessageRenderNoTrailingFieldWhenTextNeverSet(t *testing.T) {
	msg := &Message{Command: "JOIN", Params: []string{"#general"}}
	assert.Equal(t, "JOIN #general\r\n", msg.Render())
}

func TestMessageRenderEmptyTrailingFieldStillEmitsColon(t *testing.T) {
	msg := &Message{Command: "TOPIC", Params: []string{"#general"}}
	msg.SetText("")
	assert.Equal(t, "TOPIC #general :\r\n", msg.Render())
}

func TestMessageScrubResetsEverything(t *testing.T) {
	msg := &Message{
		Sender:  "irc.localhost.net",
		Command: "PRIVMSG",
		Code:    1,
		Params:  []string{"#general"},
	}
	msg.SetText("hi")

	msg.Scrub()

	assert.Empty(t, msg.Sender)
	assert.Empty(t, msg.Command)
	assert.Zero(t, msg.Code)
	assert.Nil(t, msg.Params)
	assert.Empty(t, msg.Text)
	assert.False(t, msg.HasText())
}

func TestNewNumericDefaultsUnregisteredNickToStar(t *testing.T) {
	msg := newNumeric("irc.localhost.net", 433, "", []string{"alice"}, "Nickname is already in use")
	defer msgPool.Recycle(msg)

	assert.Equal(t, []string{"*", "alice"}, msg.Params)
	assert.Equal(t, ":irc.localhost.net 433 * alice :Nickname is already in use\r\n", msg.Render())
}
