/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/btnmasher/ircrelay/filetransfer"
	"github.com/btnmasher/util"
)

// ErrServerClosed is returned by Serve/ListenAndServe after a graceful
// shutdown triggered by the context passed to WithGracefulShutdown.
var ErrServerClosed = errors.New("ircrelay: server closed")

// log is the package-level structured logger: logrus's standard logger
// unless replaced by a WithLogger option before the server starts
// accepting connections.
var log = logrus.StandardLogger()

// Server holds all process-wide state of one chat relay instance: the
// client/nick/channel directories, the single dispatch engine, the bot,
// and the file-transfer session table (§2).
type Server struct {
	mu sync.RWMutex

	hostname string
	network  string
	password string

	listenAddr string
	listener   net.Listener

	nextHandle uint64

	Clients  *ClientMap
	Nicks    *NickMap
	Channels *ChannelMap

	engine *Engine

	shutdownCtx context.Context
	shutdownFn  context.CancelFunc
	closing     atomic.Bool

	bot        BotHook
	uploadsDir string
	ft         *filetransfer.Manager

	// support backs the ISUPPORT (005) reply sent at registration: a set
	// of server parameter name/value pairs advertised to every client.
	support *util.ConcurrentMapString
}

// BotHook is the callback surface the bot package implements to sit on top
// of the server without the root package importing it (§4.5). The server
// calls into it from the dispatch goroutine, so implementations never need
// their own locking around server state.
type BotHook interface {
	// OnMessage runs after a PRIVMSG has been delivered to target (a
	// channel or nick), carrying the raw text. srv is passed explicitly so
	// the hook can be constructed before the server that will call it.
	OnMessage(srv *Server, c *Client, target, text string)
	// OnChannelCreated runs once, the moment a channel is created by its
	// first JOIN.
	OnChannelCreated(srv *Server, chanName string)
}

func (srv *Server) notifyMessage(c *Client, target, text string) {
	if srv.bot != nil {
		srv.bot.OnMessage(srv, c, target, text)
	}
}

func (srv *Server) notifyChannelCreated(chanName string) {
	if srv.bot != nil {
		srv.bot.OnChannelCreated(srv, chanName)
	}
}

// UploadsDir returns the directory the file-transfer engine saves
// completed uploads into.
func (srv *Server) UploadsDir() string {
	srv.mu.RLock()
	defer srv.mu.RUnlock()
	if srv.uploadsDir != "" {
		return srv.uploadsDir
	}
	return UploadsDir
}

// Option configures a Server at construction time, the functional-options
// idiom used by cmd/ircrelay/main.go.
type Option func(*Server)

// WithHostname sets the server's advertised hostname.
func WithHostname(host string) Option {
	return func(s *Server) { s.hostname = host }
}

// WithNetwork sets the server's advertised network name.
func WithNetwork(network string) Option {
	return func(s *Server) { s.network = network }
}

// WithPassword sets the shared connection password required by PASS.
func WithPassword(password string) Option {
	return func(s *Server) { s.password = password }
}

// WithListenAddr sets the TCP address Serve listens on.
func WithListenAddr(addr string) Option {
	return func(s *Server) { s.listenAddr = addr }
}

// WithLogger installs a preconfigured logrus logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(s *Server) { log = logger }
}

// WithLogLevel sets the installed logger's level.
func WithLogLevel(level logrus.Level) Option {
	return func(s *Server) { log.SetLevel(level) }
}

// WithBot installs the bot hook (§4.5); omitted, the server runs without a bot.
func WithBot(hook BotHook) Option {
	return func(s *Server) { s.bot = hook }
}

// WithUploadsDir overrides where completed file transfers are saved.
func WithUploadsDir(dir string) Option {
	return func(s *Server) { s.uploadsDir = dir }
}

// WithGracefulShutdown ties the server's lifetime to ctx: when ctx is
// cancelled, Serve closes the listener and returns ErrServerClosed. Open
// connections are neither closed nor waited for, and the duration
// argument is not used.
func WithGracefulShutdown(ctx context.Context, _ time.Duration) Option {
	return func(s *Server) {
		s.shutdownCtx, s.shutdownFn = context.WithCancel(ctx)
	}
}

// NewServer constructs a Server ready to Serve once options are applied.
func NewServer(opts ...Option) *Server {
	srv := &Server{
		Clients:  NewClientMap(),
		Nicks:    NewNickMap(),
		Channels: NewChannelMap(),
		support:  util.NewConcurrentMapString(),
	}

	for _, opt := range opts {
		opt(srv)
	}

	srv.support.Add("casemapping", "ascii")
	srv.support.Add("chanmodes", "itkl")
	srv.support.Add("chanlimit", fmt.Sprintf("#:%d", MaxJoinedChans))
	srv.support.Add("nicklen", fmt.Sprint(MaxNickLength))
	srv.support.Add("topiclen", fmt.Sprint(MaxTopicLength))
	srv.support.Add("kicklen", fmt.Sprint(MaxKickLength))
	srv.support.Add("chanlen", fmt.Sprint(MaxChanLength))
	srv.support.Add("network", srv.Network())

	if srv.shutdownCtx == nil {
		srv.shutdownCtx, srv.shutdownFn = context.WithCancel(context.Background())
	}

	srv.ft = filetransfer.NewManager(srv.UploadsDir())

	srv.engine = newEngine(srv)
	registerRoutes(srv.engine.router)

	return srv
}

// Hostname returns the server's advertised hostname, falling back to the
// listener's local address if unset.
func (srv *Server) Hostname() string {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	if srv.hostname != "" {
		return srv.hostname
	}
	if srv.listener != nil {
		return srv.listener.Addr().String()
	}
	return "ircrelay"
}

// Network returns the server's advertised network name.
func (srv *Server) Network() string {
	srv.mu.RLock()
	defer srv.mu.RUnlock()
	if srv.network != "" {
		return srv.network
	}
	return srv.Hostname()
}

func (srv *Server) checkPassword(given string) bool {
	srv.mu.RLock()
	defer srv.mu.RUnlock()
	if srv.password == "" {
		return true
	}
	return given == srv.password
}

// ListenAndServe listens on the configured address (default ":6667") and
// serves connections until the graceful-shutdown context is cancelled.
func (srv *Server) ListenAndServe() error {
	addr := srv.listenAddr
	if addr == "" {
		addr = ":6667"
	}

	listen, err := net.Listen("tcp4", addr)
	if err != nil {
		return err
	}

	return srv.Serve(listen)
}

// Serve runs the accept loop plus the engine's single dispatch goroutine.
// It blocks until the listener closes (graceful shutdown) or a permanent
// accept error occurs.
func (srv *Server) Serve(listen net.Listener) error {
	srv.mu.Lock()
	srv.listener = listen
	srv.mu.Unlock()

	go srv.engine.run()

	go func() {
		<-srv.shutdownCtx.Done()
		srv.closing.Store(true)
		listen.Close()
	}()

	log.Infof("ircrelay: listening on [%s]", listen.Addr())

	var tempDelay time.Duration

	for {
		sock, err := listen.Accept()
		if err != nil {
			if srv.closing.Load() {
				return ErrServerClosed
			}

			if neterr, ok := err.(net.Error); ok && neterr.Timeout() {
				if tempDelay == 0 {
					tempDelay = 5 * time.Millisecond
				} else {
					tempDelay *= 2
				}
				if max := time.Second; tempDelay > max {
					tempDelay = max
				}
				log.Errorf("ircrelay: accept error: %v; retrying in %s", err, tempDelay)
				time.Sleep(tempDelay)
				continue
			}

			return err
		}

		tempDelay = 0
		handle := atomic.AddUint64(&srv.nextHandle, 1)
		client := newClient(srv, handle, sock)
		srv.Clients.Add(handle, client)

		log.Debugf("ircrelay: accepted connection [%s] as handle %d", client.remoteAddr, handle)

		go serve(client)
	}
}

// disconnectClient performs full resource reclamation for a closed
// connection (§5): it leaves every channel the client had joined (running
// the post-leave promotion/deletion rule per channel), removes it from
// the nick and client directories, and stops its goroutines.
func (srv *Server) disconnectClient(c *Client) {
	if c.Registered() {
		nick := c.Nick()
		reason := "Connection reset by peer"

		for _, lowerName := range c.JoinedChannels() {
			ch, ok := srv.Channels.Get(lowerName)
			if !ok {
				continue
			}
			srv.broadcastChannel(ch, "", CmdQuit, nil, reason, nick+"!"+c.User()+"@"+hostOf(c.remoteAddr))
			srv.leaveChannel(ch, c)
		}

		srv.Nicks.Del(lowerASCII(nick))
	}

	srv.Clients.Del(c.Handle())
	c.terminate()
}
