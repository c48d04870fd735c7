/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

import (
	"strings"

	"github.com/btnmasher/util"
)

// Numeric reply helpers. Each renders and writes a single numeric line to
// the originating client, per the wire format (§4.2):
//
//	:<serverName> <3-digit code> <clientNickOrStar> <message>\r\n

func (srv *Server) numeric(c *Client, code uint16, params []string, text string) {
	msg := newNumeric(srv.Hostname(), code, c.Nick(), params, text)
	defer msgPool.Recycle(msg)
	srv.deliver(c, msg)
}

func (srv *Server) replyWelcome(c *Client) {
	srv.numeric(c, ReplyWelcome, nil, "Welcome to "+srv.Network()+", "+c.Hostmask())
}

// replyISupport sends the server's advertised parameter set (005), chunked
// to stay under the line-length soft cap the same way NAMES replies are.
func (srv *Server) replyISupport(c *Client) {
	pairs := make([]string, 0, srv.support.Length())
	srv.support.ForEach(func(name, value string) {
		pairs = append(pairs, strings.ToUpper(name)+"="+value)
	})

	for _, chunk := range util.ChunkJoinStrings(pairs, MaxMsgLength-64, " ") {
		srv.numeric(c, ReplyISupport, strings.Fields(chunk), "are supported by this server")
	}
}

func (srv *Server) replyNeedMoreParams(c *Client, cmd string) {
	srv.numeric(c, ErrNeedMoreParams, []string{cmd}, ErrMissingParams.Error())
}

func (srv *Server) replyAlreadyRegistered(c *Client) {
	srv.numeric(c, ErrAlreadyRegisteredNum, nil, ErrAlreadyRegistered.Error())
}

func (srv *Server) replyPasswdMismatch(c *Client) {
	srv.numeric(c, ErrPasswdMismatch, nil, ErrPasswordMismatch.Error())
}

func (srv *Server) replyNoNicknameGiven(c *Client) {
	srv.numeric(c, ErrNoNicknameGiven, nil, ErrNoNickGiven.Error())
}

func (srv *Server) replyErroneousNickname(c *Client, nick string) {
	srv.numeric(c, ErrErroneousNickname, []string{nick}, ErrNickInvalid.Error())
}

func (srv *Server) replyNicknameInUse(c *Client, nick string) {
	srv.numeric(c, ErrNicknameInUse, []string{nick}, ErrNickInUse.Error())
}

func (srv *Server) replyNotRegistered(c *Client) {
	srv.numeric(c, ErrNotRegisteredNum, nil, ErrNotRegistered.Error())
}

func (srv *Server) replyNoSuchNick(c *Client, target string) {
	srv.numeric(c, ErrNoSuchNickNum, []string{target}, ErrNoSuchNick.Error())
}

func (srv *Server) replyNoSuchChannel(c *Client, target string) {
	srv.numeric(c, ErrNoSuchChannelNum, []string{target}, ErrNoSuchChan.Error())
}

func (srv *Server) replyCannotSendToChan(c *Client, target string) {
	srv.numeric(c, ErrCannotSendToChan, []string{target}, "Cannot send to channel")
}

func (srv *Server) replyNotOnChannel(c *Client, target string) {
	srv.numeric(c, ErrNotOnChannelNum, []string{target}, ErrNotOnChannel.Error())
}

func (srv *Server) replyUserNotInChannel(c *Client, nick, target string) {
	srv.numeric(c, ErrUserNotInChannel, []string{nick, target}, ErrUserNotInChan.Error())
}

func (srv *Server) replyChanOPrivsNeeded(c *Client, target string) {
	srv.numeric(c, ErrChanOPrivsNeeded, []string{target}, ErrInsuffPerms.Error())
}

func (srv *Server) replyInviteOnlyChan(c *Client, target string) {
	srv.numeric(c, ErrInviteOnlyChan, []string{target}, ErrInviteOnly.Error())
}

func (srv *Server) replyBadChannelKey(c *Client, target string) {
	srv.numeric(c, ErrBadChannelKey, []string{target}, ErrBadChanKey.Error())
}

func (srv *Server) replyChannelIsFull(c *Client, target string) {
	srv.numeric(c, ErrChannelIsFull, []string{target}, ErrChannelFull.Error())
}

func (srv *Server) replyUnknownCommand(c *Client, cmd string) {
	srv.numeric(c, ErrUnknownCommandNum, []string{cmd}, ErrUnknownCommand.Error())
}

func (srv *Server) replyNoTopic(c *Client, chanName string) {
	srv.numeric(c, ReplyNoTopic, []string{chanName}, "No topic is set")
}

func (srv *Server) replyTopic(c *Client, chanName, topic string) {
	srv.numeric(c, ReplyTopic, []string{chanName}, topic)
}

func (srv *Server) replyChannelModeIs(c *Client, chanName, letters string, args []string) {
	params := append([]string{chanName, letters}, args...)
	srv.numeric(c, ReplyChannelModeIs, params, "")
}

func (srv *Server) replyInviting(c *Client, target, chanName string) {
	srv.numeric(c, ReplyInviting, []string{target, chanName}, "")
}

func (srv *Server) replyChannelNames(c *Client, ch *Channel) {
	names := srv.namesList(ch)
	chanName := ch.Name()

	for _, chunk := range util.ChunkJoinStrings(names, MaxMsgLength-64, " ") {
		srv.numeric(c, ReplyNames, []string{"=", chanName}, chunk)
	}

	srv.numeric(c, ReplyEndOfNames, []string{chanName}, "End of /NAMES list")
}

// namesList renders each member's nick, prefixed with '@' for operators.
func (srv *Server) namesList(ch *Channel) []string {
	var out []string

	for _, handle := range ch.Members() {
		client, ok := srv.Clients.Get(handle)
		if !ok {
			continue
		}

		nick := client.Nick()
		if ch.IsOperator(lowerASCII(nick)) {
			out = append(out, "@"+nick)
		} else {
			out = append(out, nick)
		}
	}

	return out
}

// genericError reports a resource/filesystem failure (§7) as numeric 400.
func (srv *Server) genericError(c *Client, reason string) {
	srv.numeric(c, ErrGeneric, nil, reason)
}

func hostOf(remoteAddr string) string {
	if idx := strings.LastIndexByte(remoteAddr, ':'); idx >= 0 {
		return remoteAddr[:idx]
	}
	return remoteAddr
}
