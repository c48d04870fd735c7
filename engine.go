/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

// Engine is the single logical execution context that mutates Client,
// Channel, and Transfer state (§5). Every per-connection read goroutine
// funnels through its inbox; exactly one goroutine drains it, so dispatch
// never needs to lock the channel/client directories against itself.
// Bot-originated synthetic commands (Server.InjectCommand) do not pass
// through the inbox: the bot hook already runs on the dispatch goroutine,
// so they are routed directly through the same router from there.
//
// Lines from a single client are processed in arrival order, and all
// outbound bytes from one dispatched command are appended to their
// recipients' buffers before the next event is taken off the inbox —
// the ordering guarantees named in §5 fall out of this being a plain
// sequential consumer of a single channel.
type Engine struct {
	server *Server
	router *Router
	inbox  chan engineEvent
}

type eventKind uint8

const (
	eventLine eventKind = iota
	eventDisconnect
)

type engineEvent struct {
	kind   eventKind
	client *Client
	line   string
}

func newEngine(srv *Server) *Engine {
	return &Engine{
		server: srv,
		router: newRouter(),
		inbox:  make(chan engineEvent, EventQueueLength),
	}
}

// submitLine enqueues one raw protocol line read from c's socket.
func (e *Engine) submitLine(c *Client, line string) {
	e.inbox <- engineEvent{kind: eventLine, client: c, line: line}
}

// submitDisconnect enqueues full teardown for c (§5).
func (e *Engine) submitDisconnect(c *Client) {
	e.inbox <- engineEvent{kind: eventDisconnect, client: c}
}

// run drains the inbox until it is closed. Intended to be the body of the
// server's single dispatch goroutine.
func (e *Engine) run() {
	for ev := range e.inbox {
		switch ev.kind {
		case eventLine:
			e.dispatchLine(ev.client, ev.line)
		case eventDisconnect:
			e.server.disconnectClient(ev.client)
		}
	}
}

func (e *Engine) dispatchLine(c *Client, line string) {
	msg, err := Parse(line)
	if err != nil {
		log.Debugf("ircrelay: parse error from [%s]: %s", c.remoteAddr, err)
		return
	}
	defer msgPool.Recycle(msg)

	e.router.RouteCommand(e.server, c, msg)
}
