/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

// registerRoutes wires every supported command to its handler, gated by
// the registration middleware (§3, §4.2): any command other than
// PASS/NICK/USER/PING/PONG/QUIT is refused with 451 before REGISTERED.
func registerRoutes(r *Router) {
	r.Use(requireRegistration)

	r.Handle(CmdPass, handlePass)
	r.Handle(CmdNick, handleNick)
	r.Handle(CmdUser, handleUser)
	r.Handle(CmdPing, handlePing)
	r.Handle(CmdPong, handlePong)
	r.Handle(CmdQuit, handleQuit)

	r.Handle(CmdJoin, handleJoin)
	r.Handle(CmdPart, handlePart)
	r.Handle(CmdPrivmsg, handlePrivmsg)
	r.Handle(CmdTopic, handleTopic)
	r.Handle(CmdMode, handleMode)
	r.Handle(CmdInvite, handleInvite)
	r.Handle(CmdKick, handleKick)

	r.Handle(CmdFileSend, handleFileSend)
	r.Handle(CmdFileAccept, handleFileAccept)
	r.Handle(CmdFileData, handleFileData)
	r.Handle(CmdFileDone, handleFileDone)
	r.Handle(CmdFileCancel, handleFileCancel)
}

// requireRegistration is the router's sole piece of global middleware: a
// command not in the registration-exempt set is refused with 451 until the
// client reaches StateRegistered (§3).
func requireRegistration(ctx *Context) {
	if registrationExempt[ctx.Msg.Command] {
		return
	}
	if !ctx.Client.Registered() {
		ctx.Server.replyNotRegistered(ctx.Client)
		ctx.Abort()
	}
}
