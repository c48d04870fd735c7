/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

import "strings"

// handlePass implements PASS <pw> (§3, §4.2).
func handlePass(ctx *Context) {
	srv, c, msg := ctx.Server, ctx.Client, ctx.Msg

	if len(msg.Params) < 1 {
		srv.replyNeedMoreParams(c, CmdPass)
		return
	}

	if c.State() == StateRegistered {
		srv.replyAlreadyRegistered(c)
		return
	}

	if !srv.checkPassword(msg.Params[0]) {
		srv.replyPasswdMismatch(c)
		return
	}

	c.setState(StatePassOK)
}

// handleNick implements NICK <nick> (§3, §4.2).
func handleNick(ctx *Context) {
	srv, c, msg := ctx.Server, ctx.Client, ctx.Msg

	if c.State() < StatePassOK {
		srv.replyNotRegistered(c)
		return
	}

	if len(msg.Params) < 1 || msg.Params[0] == "" {
		srv.replyNoNicknameGiven(c)
		return
	}

	nick := msg.Params[0]
	if !validNick(nick) {
		srv.replyErroneousNickname(c, nick)
		return
	}

	lower := lowerASCII(nick)
	if existing, ok := srv.Nicks.Get(lower); ok && existing != c {
		srv.replyNicknameInUse(c, nick)
		return
	}

	oldNick := c.Nick()

	if oldNick == "" {
		srv.Nicks.Add(lower, c)
	} else if lowerASCII(oldNick) != lower {
		srv.Nicks.Rename(lowerASCII(oldNick), lower)
	}

	c.SetNick(nick)
	if c.State() == StatePassOK {
		c.setState(StateNickOK)
	}

	if oldNick != "" {
		for _, lowerName := range c.JoinedChannels() {
			if ch, ok := srv.Channels.Get(lowerName); ok {
				srv.broadcastChannel(ch, "", CmdNick, nil, nick, oldNick)
			}
		}
	}

	tryRegister(srv, c)
}

// handleUser implements USER <user> <mode> <unused> :<real> (§3, §4.2).
func handleUser(ctx *Context) {
	srv, c, msg := ctx.Server, ctx.Client, ctx.Msg

	if c.State() < StatePassOK || c.Nick() == "" {
		srv.replyNotRegistered(c)
		return
	}

	if len(msg.Params) < 3 || !msg.HasText() {
		srv.replyNeedMoreParams(c, CmdUser)
		return
	}

	c.SetUser(msg.Params[0])
	c.SetRealname(msg.Text)

	tryRegister(srv, c)
}

// tryRegister finalizes registration once PASS, NICK, and USER have each
// succeeded (§3), sending the welcome numeric exactly once.
func tryRegister(srv *Server, c *Client) {
	if c.State() == StateRegistered {
		return
	}
	if c.State() >= StateNickOK && c.User() != "" {
		c.setState(StateRegistered)
		srv.replyWelcome(c)
		srv.replyISupport(c)
	}
}

// handlePing implements PING <token> (§4.2).
func handlePing(ctx *Context) {
	srv, c, msg := ctx.Server, ctx.Client, ctx.Msg

	token := ""
	switch {
	case msg.HasText():
		token = msg.Text
	case len(msg.Params) > 0:
		token = msg.Params[0]
	}

	reply := msgPool.New()
	reply.Sender = srv.Hostname()
	reply.Command = CmdPong
	reply.Params = []string{srv.Hostname()}
	reply.SetText(token)
	srv.deliver(c, reply)
	msgPool.Recycle(reply)
}

// handlePong implements PONG <token>: records the echoed heartbeat token
// so heartbeatLoop can tell a live connection from a stale one.
func handlePong(ctx *Context) {
	c, msg := ctx.Client, ctx.Msg

	token := ""
	switch {
	case msg.HasText():
		token = msg.Text
	case len(msg.Params) > 0:
		token = msg.Params[0]
	}

	c.recordPong(token)
}

// handleQuit implements QUIT [:<reason>] (§4.2, §4.3).
func handleQuit(ctx *Context) {
	srv, c, msg := ctx.Server, ctx.Client, ctx.Msg

	reason := "Client Quit"
	if msg.HasText() {
		reason = msg.Text
	}

	if c.Registered() {
		for _, lowerName := range c.JoinedChannels() {
			ch, ok := srv.Channels.Get(lowerName)
			if !ok {
				continue
			}
			srv.broadcastChannel(ch, "", CmdQuit, nil, reason, c.Hostmask())
			srv.leaveChannel(ch, c)
		}
		srv.Nicks.Del(lowerASCII(c.Nick()))
	}

	srv.Clients.Del(c.Handle())
	c.terminate()
}

// handlePrivmsg implements PRIVMSG <targets> :<text> (§4.2, §4.5).
func handlePrivmsg(ctx *Context) {
	srv, c, msg := ctx.Server, ctx.Client, ctx.Msg

	if len(msg.Params) < 1 {
		srv.replyNeedMoreParams(c, CmdPrivmsg)
		return
	}

	text := msg.Text
	targets := strings.Split(msg.Params[0], ",")

	for _, target := range targets {
		if target == "" {
			continue
		}

		if validChannel(target) {
			lower := lowerASCII(target)
			ch, ok := srv.Channels.Get(lower)
			if !ok {
				srv.replyNoSuchChannel(c, target)
				continue
			}
			if !ch.HasMember(c.Handle()) {
				srv.replyNotOnChannel(c, target)
				continue
			}
			srv.broadcastChannel(ch, c.Nick(), CmdPrivmsg, nil, text, c.Hostmask())
			srv.notifyMessage(c, target, text)
			continue
		}

		lowerNick := lowerASCII(target)
		recipient, ok := srv.Nicks.Get(lowerNick)
		if !ok {
			srv.replyNoSuchNick(c, target)
			continue
		}

		reply := msgPool.New()
		reply.Sender = c.Hostmask()
		reply.Command = CmdPrivmsg
		reply.Params = []string{target}
		reply.SetText(text)
		srv.deliver(recipient, reply)
		msgPool.Recycle(reply)

		srv.notifyMessage(c, target, text)
	}
}
