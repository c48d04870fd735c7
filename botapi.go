/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

// BotReply sends text from fromNick to target, which may be a channel or a
// nick, using the same fanout path any client message uses (§4.5: "it sends
// messages by invoking the same broadcast path as any client"). Reports
// whether the target was found.
func (srv *Server) BotReply(target, fromNick, text string) bool {
	if validChannel(target) {
		ch, ok := srv.Channels.Get(lowerASCII(target))
		if !ok {
			return false
		}
		srv.broadcastChannel(ch, "", CmdPrivmsg, nil, text, fromNick)
		return true
	}

	recipient, ok := srv.Nicks.Get(lowerASCII(target))
	if !ok {
		return false
	}

	msg := msgPool.New()
	msg.Sender = fromNick
	msg.Command = CmdPrivmsg
	msg.Params = []string{target}
	msg.SetText(text)
	srv.deliver(recipient, msg)
	msgPool.Recycle(msg)
	return true
}

// BotAnnounceJoin emits a synthetic "<botNick> JOIN <chan>" without adding
// the bot as a member (§12: presence-only channel-creation greeting).
func (srv *Server) BotAnnounceJoin(chanName, botNick string) {
	ch, ok := srv.Channels.Get(lowerASCII(chanName))
	if !ok {
		return
	}
	srv.broadcastChannel(ch, "", CmdJoin, nil, "", botNick)
}

// InjectCommand runs command as if c had sent it (§4.5: privileged bot
// actions reuse the ordinary permission checks). Only safe to call from
// within the dispatch goroutine, which is always true of a BotHook
// callback since it is invoked synchronously from PRIVMSG dispatch.
func (srv *Server) InjectCommand(c *Client, command string, params []string, text string) {
	msg := msgPool.New()
	msg.Command = command
	msg.Params = params
	if text != "" {
		msg.SetText(text)
	}
	srv.engine.router.RouteCommand(srv, c, msg)
	msgPool.Recycle(msg)
}

// ChannelOperator reports whether nick (compared ASCII-lowercased) is an
// operator of the named channel, for bot permission gating ahead of
// InjectCommand.
func (srv *Server) ChannelOperator(chanName, nick string) bool {
	ch, ok := srv.Channels.Get(lowerASCII(chanName))
	if !ok {
		return false
	}
	return ch.IsOperator(lowerASCII(nick))
}
