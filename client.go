/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

import (
	"net"
	"runtime"
	"sync"
	"time"

	"github.com/btnmasher/random"
)

// RegState is the registration state machine for a Client (§3):
//
//	NEW --PASS ok--> PASS_OK --NICK valid--> NICK_OK --USER valid--> REGISTERED
type RegState uint8

const (
	StateNew RegState = iota
	StatePassOK
	StateNickOK
	StateRegistered
)

// Client is the server-side record of one connected participant (§3). The
// event loop owns every Client exclusively; the channel model only ever
// holds it by handle or by nickname.
type Client struct {
	mu sync.RWMutex

	handle uint64 // stable connection handle, assigned at accept
	server *Server
	sock   net.Conn

	remoteAddr string

	state RegState
	nick  string
	user  string
	real  string

	channels map[string]struct{} // lowercased channel keys this client has joined

	framer Framer

	outQueue chan []byte
	kill     chan struct{}
	killOnce sync.Once

	heartbeat    *time.Timer
	lastPingSent string
	lastPingRecv string
}

// newClient wraps an accepted socket in a Client record. The handle is
// assigned by the caller (Server.accept), which owns the monotonic counter.
func newClient(srv *Server, handle uint64, sock net.Conn) *Client {
	return &Client{
		handle:     handle,
		server:     srv,
		sock:       sock,
		remoteAddr: sock.RemoteAddr().String(),
		channels:   make(map[string]struct{}),
		outQueue:   make(chan []byte, WriteQueueLength),
		kill:       make(chan struct{}),
		heartbeat:  time.NewTimer(PingInterval),
	}
}

// Handle returns the client's stable connection handle.
func (c *Client) Handle() uint64 { return c.handle }

// State returns the client's current registration state.
func (c *Client) State() RegState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Registered reports whether the client has completed PASS+NICK+USER.
func (c *Client) Registered() bool {
	return c.State() == StateRegistered
}

func (c *Client) setState(s RegState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s > c.state {
		c.state = s
	}
}

// Nick returns the client's current nickname (possibly empty pre-registration).
func (c *Client) Nick() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nick
}

// SetNick sets the client's nickname.
func (c *Client) SetNick(nick string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nick = nick
}

// User returns the client's user identity (USER's first parameter).
func (c *Client) User() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// SetUser sets the client's user identity.
func (c *Client) SetUser(user string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = user
}

// Realname returns the client's declared real name.
func (c *Client) Realname() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.real
}

// SetRealname sets the client's declared real name.
func (c *Client) SetRealname(real string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.real = real
}

// Hostmask returns "<nick>!<user>@<host>", the conventional message source.
func (c *Client) Hostmask() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	host := c.remoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	return c.nick + "!" + c.user + "@" + host
}

// JoinedChannels returns a snapshot of the lowercased channel keys this
// client currently belongs to.
func (c *Client) JoinedChannels() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.channels))
	for k := range c.channels {
		out = append(out, k)
	}
	return out
}

func (c *Client) addChannel(lowerName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.channels[lowerName] = struct{}{}
}

func (c *Client) removeChannel(lowerName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.channels, lowerName)
}

func (c *Client) inChannel(lowerName string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.channels[lowerName]
	return ok
}

// Write enqueues a rendered line for delivery. data is treated as
// immutable and may be shared across many clients in a single fanout
// (broadcastChannel calls render, which copies out of the render buffer
// exactly once per event, §5). The outbound queue holds WriteQueueLength
// lines; if it is full the write is dropped rather than blocking the
// dispatch goroutine, and the dropped line is not resent — a slow reader
// eventually times out on its keepalive deadline and is disconnected.
func (c *Client) Write(data []byte) {
	select {
	case c.outQueue <- data:
	default:
		log.Warnf("ircrelay: write queue full for [%s], dropping message", c.remoteAddr)
	}
}

// serve drives one accepted connection: a read loop that feeds the
// engine's single dispatch queue, and a write loop that drains outQueue.
// Both goroutines exit when Client.kill is closed.
func serve(c *Client) {
	defer c.cleanup()

	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			log.Errorf("ircrelay: panic serving [%s]: %v\n%s", c.remoteAddr, r, buf)
		}
		c.sock.Close()
	}()

	go c.writeLoop()
	go c.heartbeatLoop()
	c.readLoop()
}

// recordPong notes a PONG token from the client so heartbeatLoop can tell
// it apart from a stale or missing reply.
func (c *Client) recordPong(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastPingRecv = token
}

// heartbeatLoop sends a periodic server-originated PING carrying a random
// token and disconnects the client if the previous one was never echoed
// back via PONG.
func (c *Client) heartbeatLoop() {
	defer c.heartbeat.Stop()

	for {
		select {
		case <-c.kill:
			return
		case <-c.heartbeat.C:
			c.mu.Lock()
			stale := c.lastPingSent != "" && c.lastPingRecv != c.lastPingSent
			c.mu.Unlock()

			if stale {
				log.Debugf("ircrelay: ping timeout for [%s]", c.remoteAddr)
				c.server.engine.submitDisconnect(c)
				return
			}

			token := random.String(10)
			c.mu.Lock()
			c.lastPingSent = token
			c.mu.Unlock()

			msg := msgPool.New()
			msg.Sender = c.server.Hostname()
			msg.Command = CmdPing
			msg.SetText(token)
			c.Write(render(msg))
			msgPool.Recycle(msg)

			c.heartbeat.Reset(PingInterval)
		}
	}
}

func (c *Client) readLoop() {
	buf := make([]byte, 4096)

	for {
		c.setReadDeadline()

		n, err := c.sock.Read(buf)
		if n > 0 {
			c.framer.Feed(buf[:n])
			for _, line := range c.framer.Lines() {
				c.server.engine.submitLine(c, line)
			}
		}

		if err != nil {
			c.server.engine.submitDisconnect(c)
			return
		}
	}
}

func (c *Client) writeLoop() {
	for {
		select {
		case <-c.kill:
			return
		case buf, ok := <-c.outQueue:
			if !ok {
				return
			}
			c.flush(buf)
		}
	}
}

func (c *Client) flush(data []byte) {
	if WriteTimeout != 0 {
		c.sock.SetWriteDeadline(time.Now().Add(WriteTimeout))
	}

	if _, err := c.sock.Write(data); err != nil {
		log.Debugf("ircrelay: write error for [%s]: %s", c.remoteAddr, err)
		c.terminate()
	}
}

func (c *Client) setReadDeadline() {
	if KeepAliveTimeout != 0 {
		c.sock.SetReadDeadline(time.Now().Add(KeepAliveTimeout))
	}
}

// terminate signals both goroutines to stop. Safe to call more than once
// and from either goroutine.
func (c *Client) terminate() {
	c.killOnce.Do(func() { close(c.kill) })
	c.sock.Close()
}

func (c *Client) cleanup() {
	c.terminate()
}
