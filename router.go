/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

import "fmt"

// Context carries one dispatched command through its handler chain. It is
// the dispatcher's "pure function over (client, parsed command)" working
// set (§4.2): handlers read and mutate the shared model through Server and
// enqueue output on zero or more client outbound buffers via Client.Write.
type Context struct {
	Server *Server
	Client *Client
	Msg    *Message

	handled bool
	err     error
}

// Abort stops the handler chain for this command without running any
// handlers registered after the current one.
func (ctx *Context) Abort() { ctx.handled = true }

// AbortWithError stops the chain and records an error for logging. Never
// surfaced to the wire directly — the handler that calls this is expected
// to have already sent the appropriate numeric.
func (ctx *Context) AbortWithError(err error) {
	ctx.handled = true
	ctx.err = err
}

// HandlerFunc processes one command (or acts as middleware in front of
// one).
type HandlerFunc func(*Context)

// HandlersChain is an ordered list of handlers run for one command; the
// last entry is the command's "real" handler, any before it are shared
// middleware (e.g. the registration gate).
type HandlersChain []HandlerFunc

// Router maps command names to handler chains, gin-router style.
type Router struct {
	global   HandlersChain
	handlers map[string]HandlersChain
}

func newRouter() *Router {
	return &Router{handlers: make(map[string]HandlersChain)}
}

// Use attaches middleware run ahead of every registered command's handler.
func (r *Router) Use(mw ...HandlerFunc) {
	r.global = append(r.global, mw...)
}

// Handle registers the real handler for a command, implicitly prefixed by
// the router's global middleware chain.
func (r *Router) Handle(command string, handler HandlerFunc) {
	if _, exists := r.handlers[command]; exists {
		panic(fmt.Sprintf("ircrelay: handler already registered for command: %s", command))
	}

	chain := make(HandlersChain, 0, len(r.global)+1)
	chain = append(chain, r.global...)
	chain = append(chain, handler)
	r.handlers[command] = chain
}

// RouteCommand looks up the handler chain for msg.Command and runs it.
// Unknown commands get numeric 421; everything else about error reporting
// is left to the handlers themselves.
func (r *Router) RouteCommand(srv *Server, c *Client, msg *Message) {
	chain, exists := r.handlers[msg.Command]
	if !exists {
		srv.replyUnknownCommand(c, msg.Command)
		return
	}

	ctx := &Context{Server: srv, Client: c, Msg: msg}

	for _, handler := range chain {
		handler(ctx)
		if ctx.handled {
			if ctx.err != nil {
				log.WithField("command", msg.Command).Debug(ctx.err)
			}
			return
		}
	}
}
