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
	"github.com/stretchr/testify/require"
)

func TestParseBasic(t *testing.T) {
	msg, err := Parse("JOIN #general")
	require.NoError(t, err)
	assert.Equal(t, "JOIN", msg.Command)
	assert.Equal(t, []string{"#general"}, msg.Params)
	assert.False(t, msg.HasText())
}

func TestParseUppercasesCommand(t *testing.T) {
	msg, err := Parse("join #general")
	require.NoError(t, err)
	assert.Equal(t, "JOIN", msg.Command)
}

func TestParseTrailingParam(t *testing.T) {
	msg, err := Parse("PRIVMSG #general :hello there, world")
	require.NoError(t, err)
	assert.Equal(t, "PRIVMSG", msg.Command)
	assert.Equal(t, []string{"#general"}, msg.Params)
	assert.True(t, msg.HasText())
	assert.Equal(t, "hello there, world", msg.Text)
}

func TestParseEmptyTrailingIsStillPresent(t *testing.T) {
	msg, err := Parse("TOPIC #general :")
	require.NoError(t, err)
	assert.True(t, msg.HasText())
	assert.Equal(t, "", msg.Text)
}

func TestParseNoTrailingFieldAtAll(t *testing.T) {
	msg, err := Parse("TOPIC #general")
	require.NoError(t, err)
	assert.False(t, msg.HasText())
}

func TestParseSkipsSourcePrefix(t *testing.T) {
	msg, err := Parse(":alice!a@host PRIVMSG #general :hi")
	require.NoError(t, err)
	assert.Equal(t, "PRIVMSG", msg.Command)
	assert.Equal(t, []string{"#general"}, msg.Params)
	assert.Equal(t, "hi", msg.Text)
}

func TestParseTrailingColonInMiddleOfWordNotTreatedAsTrailing(t *testing.T) {
	// A bare ":" only introduces the trailing field when preceded by a
	// space; a colon stuck to a param is just part of that param.
	msg, err := Parse("PRIVMSG #general:off-topic hello")
	require.NoError(t, err)
	assert.Equal(t, []string{"#general:off-topic", "hello"}, msg.Params)
	assert.False(t, msg.HasText())
}

func TestParseEmptyLine(t *testing.T) {
	_, err := Parse("")
	assert.ErrorIs(t, err, ErrNotEnoughData)
}

func TestParseWhitespaceOnlyLine(t *testing.T) {
	_, err := Parse("   ")
	assert.ErrorIs(t, err, ErrWhitespace)
}

func TestParsePrefixOnlyNoCommand(t *testing.T) {
	_, err := Parse(":alice!a@host")
	assert.ErrorIs(t, err, ErrNotEnoughData)
}

func TestParseMultipleSpacesBetweenParams(t *testing.T) {
	msg, err := Parse("JOIN   #a   #b")
	require.NoError(t, err)
	assert.Equal(t, []string{"#a", "#b"}, msg.Params)
}
