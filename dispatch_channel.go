/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

import "strings"

// handleJoin implements JOIN <chan>[ <key>] (§4.2, §4.3).
func handleJoin(ctx *Context) {
	srv, c, msg := ctx.Server, ctx.Client, ctx.Msg

	if len(msg.Params) < 1 {
		srv.replyNeedMoreParams(c, CmdJoin)
		return
	}

	chanName := msg.Params[0]
	if !validChannel(chanName) {
		srv.replyNoSuchChannel(c, chanName)
		return
	}

	key := ""
	if len(msg.Params) > 1 {
		key = msg.Params[1]
	}

	lower := lowerASCII(chanName)
	ch, existed := srv.Channels.Get(lower)

	created := false
	if !existed {
		ch = NewChannel(chanName)
		srv.Channels.Add(lower, ch)
		created = true
	}

	if ch.Has(ModeKeyed) && ch.Key() != key {
		srv.replyBadChannelKey(c, chanName)
		return
	}

	lowerNick := lowerASCII(c.Nick())
	if ch.Has(ModeInviteOnly) && !ch.IsInvited(lowerNick) {
		srv.replyInviteOnlyChan(c, chanName)
		return
	}

	if ch.Has(ModeLimited) && ch.Limit() > 0 && ch.MemberCount() >= ch.Limit() {
		srv.replyChannelIsFull(c, chanName)
		return
	}

	ch.consumeInvite(lowerNick)
	srv.joinChannel(ch, c)
	srv.broadcastChannel(ch, "", CmdJoin, nil, "", c.Hostmask())

	if ch.Topic() != "" {
		srv.replyTopic(c, chanName, ch.Topic())
	}
	srv.replyChannelNames(c, ch)

	if created {
		srv.notifyChannelCreated(chanName)
	}
}

// handlePart implements PART <chan> [:<reason>] (§4.2, §4.3).
func handlePart(ctx *Context) {
	srv, c, msg := ctx.Server, ctx.Client, ctx.Msg

	if len(msg.Params) < 1 {
		srv.replyNeedMoreParams(c, CmdPart)
		return
	}

	chanName := msg.Params[0]
	reason := ""
	if msg.HasText() {
		reason = msg.Text
	}

	if !validChannel(chanName) {
		srv.replyNoSuchChannel(c, chanName)
		return
	}

	lower := lowerASCII(chanName)
	ch, ok := srv.Channels.Get(lower)
	if !ok {
		srv.replyNoSuchChannel(c, chanName)
		return
	}

	if !ch.HasMember(c.Handle()) {
		srv.replyNotOnChannel(c, chanName)
		return
	}

	srv.broadcastChannel(ch, "", CmdPart, nil, reason, c.Hostmask())
	srv.leaveChannel(ch, c)
}

// handleTopic implements TOPIC <chan> [:<topic>] (§4.2).
func handleTopic(ctx *Context) {
	srv, c, msg := ctx.Server, ctx.Client, ctx.Msg

	if len(msg.Params) < 1 {
		srv.replyNeedMoreParams(c, CmdTopic)
		return
	}

	chanName := msg.Params[0]
	if !validChannel(chanName) {
		srv.replyNoSuchChannel(c, chanName)
		return
	}

	lower := lowerASCII(chanName)
	ch, ok := srv.Channels.Get(lower)
	if !ok {
		srv.replyNoSuchChannel(c, chanName)
		return
	}

	if !ch.HasMember(c.Handle()) {
		srv.replyNotOnChannel(c, chanName)
		return
	}

	if !msg.HasText() {
		if ch.Topic() == "" {
			srv.replyNoTopic(c, chanName)
		} else {
			srv.replyTopic(c, chanName, ch.Topic())
		}
		return
	}

	if ch.Has(ModeTopicOps) && !ch.IsOperator(lowerASCII(c.Nick())) {
		srv.replyChanOPrivsNeeded(c, chanName)
		return
	}

	ch.SetTopic(msg.Text)
	srv.broadcastChannel(ch, "", CmdTopic, nil, msg.Text, c.Hostmask())
}

// handleMode implements MODE <chan>[ <flags>[ <args>...]] (§4.2).
func handleMode(ctx *Context) {
	srv, c, msg := ctx.Server, ctx.Client, ctx.Msg

	if len(msg.Params) < 1 {
		srv.replyNeedMoreParams(c, CmdMode)
		return
	}

	chanName := msg.Params[0]
	if !validChannel(chanName) {
		srv.replyNoSuchChannel(c, chanName)
		return
	}

	lower := lowerASCII(chanName)
	ch, ok := srv.Channels.Get(lower)
	if !ok {
		srv.replyNoSuchChannel(c, chanName)
		return
	}

	if !ch.HasMember(c.Handle()) {
		srv.replyNotOnChannel(c, chanName)
		return
	}

	if len(msg.Params) < 2 {
		letters, args := ch.modeString()
		srv.replyChannelModeIs(c, chanName, letters, args)
		return
	}

	if !ch.IsOperator(lowerASCII(c.Nick())) {
		srv.replyChanOPrivsNeeded(c, chanName)
		return
	}

	flags := msg.Params[1]
	args := msg.Params[2:]
	argIdx := 0

	adding := true
	var out strings.Builder
	var outArgs []string
	var outSign byte

	appendChange := func(letter byte, arg string, hasArg bool) {
		sign := byte('+')
		if !adding {
			sign = '-'
		}
		if outSign != sign {
			out.WriteByte(sign)
			outSign = sign
		}
		out.WriteByte(letter)
		if hasArg {
			outArgs = append(outArgs, arg)
		}
	}

	for _, f := range flags {
		switch f {
		case '+':
			adding = true
		case '-':
			adding = false
		case 'i':
			if adding {
				ch.set(ModeInviteOnly)
			} else {
				ch.clear(ModeInviteOnly)
			}
			appendChange('i', "", false)
		case 't':
			if adding {
				ch.set(ModeTopicOps)
			} else {
				ch.clear(ModeTopicOps)
			}
			appendChange('t', "", false)
		case 'k':
			if adding {
				if argIdx >= len(args) {
					srv.replyNeedMoreParams(c, CmdMode)
					return
				}
				key := args[argIdx]
				argIdx++
				ch.setKey(key)
				ch.set(ModeKeyed)
				appendChange('k', key, true)
			} else {
				ch.clearKey()
				ch.clear(ModeKeyed)
				appendChange('k', "", false)
			}
		case 'o':
			if argIdx >= len(args) {
				srv.replyNeedMoreParams(c, CmdMode)
				return
			}
			targetNick := args[argIdx]
			argIdx++
			lowerTarget := lowerASCII(targetNick)
			if adding {
				ch.addOperator(lowerTarget)
			} else {
				ch.removeOperator(lowerTarget)
			}
			appendChange('o', targetNick, true)
		case 'l':
			if adding {
				if argIdx >= len(args) {
					srv.replyNeedMoreParams(c, CmdMode)
					return
				}
				n, valid := atoiNonNeg(args[argIdx])
				argIdx++
				if !valid {
					n = 0
				}
				ch.setLimit(n)
				ch.set(ModeLimited)
				appendChange('l', itoa(n), true)
			} else {
				ch.clearLimit()
				ch.clear(ModeLimited)
				appendChange('l', "", false)
			}
		default:
			// unknown flags are ignored (§4.2)
		}
	}

	if out.Len() > 0 {
		params := append([]string{out.String()}, outArgs...)
		srv.broadcastChannel(ch, "", CmdMode, params, "", c.Hostmask())
	}
}

// handleInvite implements INVITE <nick> <chan> (§4.2).
func handleInvite(ctx *Context) {
	srv, c, msg := ctx.Server, ctx.Client, ctx.Msg

	if len(msg.Params) < 2 {
		srv.replyNeedMoreParams(c, CmdInvite)
		return
	}

	targetNick := msg.Params[0]
	chanName := msg.Params[1]

	if !validChannel(chanName) {
		srv.replyNoSuchChannel(c, chanName)
		return
	}

	lower := lowerASCII(chanName)
	ch, ok := srv.Channels.Get(lower)
	if !ok {
		srv.replyNoSuchChannel(c, chanName)
		return
	}

	if !ch.HasMember(c.Handle()) {
		srv.replyNotOnChannel(c, chanName)
		return
	}

	if !ch.IsOperator(lowerASCII(c.Nick())) {
		srv.replyChanOPrivsNeeded(c, chanName)
		return
	}

	lowerTarget := lowerASCII(targetNick)
	target, ok := srv.Nicks.Get(lowerTarget)
	if !ok {
		srv.replyNoSuchNick(c, targetNick)
		return
	}

	ch.addInvite(lowerTarget)

	invite := msgPool.New()
	invite.Sender = c.Hostmask()
	invite.Command = CmdInvite
	invite.Params = []string{targetNick, chanName}
	srv.deliver(target, invite)
	msgPool.Recycle(invite)

	srv.replyInviting(c, targetNick, chanName)
}

// handleKick implements KICK <chan> <nick> [:<reason>] (§4.2, §4.3).
func handleKick(ctx *Context) {
	srv, c, msg := ctx.Server, ctx.Client, ctx.Msg

	if len(msg.Params) < 2 {
		srv.replyNeedMoreParams(c, CmdKick)
		return
	}

	chanName := msg.Params[0]
	victimNick := msg.Params[1]
	reason := "Kicked"
	if msg.HasText() {
		reason = msg.Text
	}

	if !validChannel(chanName) {
		srv.replyNoSuchChannel(c, chanName)
		return
	}

	lower := lowerASCII(chanName)
	ch, ok := srv.Channels.Get(lower)
	if !ok {
		srv.replyNoSuchChannel(c, chanName)
		return
	}

	if !ch.HasMember(c.Handle()) {
		srv.replyNotOnChannel(c, chanName)
		return
	}

	if !ch.IsOperator(lowerASCII(c.Nick())) {
		srv.replyChanOPrivsNeeded(c, chanName)
		return
	}

	if lowerASCII(victimNick) == lowerASCII(c.Nick()) {
		srv.replyChanOPrivsNeeded(c, chanName)
		return
	}

	victim, ok := srv.Nicks.Get(lowerASCII(victimNick))
	if !ok || !ch.HasMember(victim.Handle()) {
		srv.replyUserNotInChannel(c, victimNick, chanName)
		return
	}

	srv.broadcastChannel(ch, "", CmdKick, []string{victimNick}, reason, c.Hostmask())
	srv.leaveChannel(ch, victim)
}
