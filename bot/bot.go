/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

// Package bot implements the channel assistant described in §4.5: small
// talk, a table of "!"-prefixed commands, reminders, and channel polls. It
// has no connection of its own — it sits on top of ircrelay.Server via the
// BotHook interface and speaks through Server.BotReply.
package bot

import (
	"strings"
	"sync"
	"time"

	"github.com/btnmasher/ircrelay"
)

// Bot implements ircrelay.BotHook.
type Bot struct {
	nick      string
	admins    map[string]bool
	startedAt time.Time

	mu        sync.Mutex
	lastSeen  map[string]map[string]time.Time // chan(lower) -> nick(lower) -> time
	reminders []reminder

	nextPollID uint64
	polls      map[uint64]*poll // global poll-id -> poll (§3)
}

// Option configures a Bot at construction time.
type Option func(*Bot)

// WithAdmins sets the fixed allowlist permitted to invoke privileged
// commands (op/deop/kick/topic), lowercased for comparison (§12).
func WithAdmins(nicks ...string) Option {
	return func(b *Bot) {
		for _, n := range nicks {
			b.admins[strings.ToLower(n)] = true
		}
	}
}

// New creates a Bot known on the wire as nick.
func New(nick string, opts ...Option) *Bot {
	b := &Bot{
		nick:      nick,
		admins:    make(map[string]bool),
		startedAt: time.Now(),
		lastSeen:  make(map[string]map[string]time.Time),
		polls:     make(map[uint64]*poll),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func isChannel(s string) bool {
	return len(s) > 0 && (s[0] == '#' || s[0] == '&')
}

// OnChannelCreated implements ircrelay.BotHook (§12).
func (b *Bot) OnChannelCreated(srv *ircrelay.Server, chanName string) {
	srv.BotAnnounceJoin(chanName, b.nick)
	srv.BotReply(chanName, b.nick, "Hello! I'm "+b.nick+". Say \"!help\" for a list of commands.")
}

// OnMessage implements ircrelay.BotHook (§4.5).
func (b *Bot) OnMessage(srv *ircrelay.Server, c *ircrelay.Client, target, text string) {
	b.deliverDueReminders(srv)

	if isChannel(target) {
		b.markSeen(target, c.Nick())
	}

	if !strings.HasPrefix(text, "!") {
		b.smallTalk(srv, c, target, text)
		return
	}

	rest := strings.TrimPrefix(text, "!")
	cmd, arg, _ := strings.Cut(rest, " ")
	cmd = strings.ToLower(cmd)

	handler, ok := commandTable[cmd]
	if !ok {
		return
	}
	handler(b, srv, c, target, strings.TrimSpace(arg))
}

func (b *Bot) markSeen(chanName, nick string) {
	lowerChan := strings.ToLower(chanName)
	lowerNick := strings.ToLower(nick)

	b.mu.Lock()
	defer b.mu.Unlock()

	byNick, ok := b.lastSeen[lowerChan]
	if !ok {
		byNick = make(map[string]time.Time)
		b.lastSeen[lowerChan] = byNick
	}
	byNick[lowerNick] = time.Now()
}

func (b *Bot) seenAt(chanName, nick string) (time.Time, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	byNick, ok := b.lastSeen[strings.ToLower(chanName)]
	if !ok {
		return time.Time{}, false
	}
	t, ok := byNick[strings.ToLower(nick)]
	return t, ok
}

// smallTalk replies if text mentions the bot's nick or a greeting/thanks
// keyword (§4.5.3).
func (b *Bot) smallTalk(srv *ircrelay.Server, c *ircrelay.Client, target, text string) {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, strings.ToLower(b.nick)):
		srv.BotReply(target, b.nick, "Yes, "+c.Nick()+"?")
	case containsAny(lower, "hello", "hi ", "hey"):
		srv.BotReply(target, b.nick, "Hello, "+c.Nick()+"!")
	case containsAny(lower, "thanks", "thank you", "ty"):
		srv.BotReply(target, b.nick, "You're welcome, "+c.Nick()+"!")
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func isAdmin(b *Bot, nick string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.admins[strings.ToLower(nick)]
}
