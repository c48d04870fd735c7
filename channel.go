/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

import (
	"sort"
	"sync"
)

// Channel mode bits (§3). Only four modes are modeled; MODE also handles
// 'o' (operator grant/revoke) and silently ignores any other flag letter.
type chanMode uint8

const (
	ModeInviteOnly chanMode = 1 << iota // i
	ModeTopicOps                        // t
	ModeKeyed                           // k
	ModeLimited                         // l
)

// Channel represents an IRC channel: a named multicast group of clients
// with mode/operator/member/invite state (§3).
type Channel struct {
	mu sync.RWMutex

	name  string // display name, as first created
	topic string

	modes chanMode
	key   string
	limit int

	members   map[uint64]struct{} // client handles
	operators map[string]struct{} // lowercased nicks
	invited   map[string]struct{} // lowercased nicks, one-shot
}

// NewChannel creates an empty channel with the given display name.
// Membership is established by the caller (dispatch's JOIN handler),
// which also performs first-member operator promotion (§4.2).
func NewChannel(name string) *Channel {
	return &Channel{
		name:      name,
		members:   make(map[uint64]struct{}),
		operators: make(map[string]struct{}),
		invited:   make(map[string]struct{}),
	}
}

// Name returns the channel's display name.
func (c *Channel) Name() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name
}

// Topic returns the channel's topic, possibly empty.
func (c *Channel) Topic() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.topic
}

// SetTopic sets the channel's topic.
func (c *Channel) SetTopic(topic string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topic = topic
}

// Has reports whether the given mode bit is set.
func (c *Channel) Has(m chanMode) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.modes&m != 0
}

// set/clear mutate the mode bitmask. Unexported: only dispatch's MODE
// handler (holding the single dispatch context) calls these.
func (c *Channel) set(m chanMode)   { c.modes |= m }
func (c *Channel) clear(m chanMode) { c.modes &^= m }

// Key returns the channel key (only meaningful when ModeKeyed is set).
func (c *Channel) Key() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.key
}

func (c *Channel) setKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = key
}

func (c *Channel) clearKey() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = ""
}

// Limit returns the member limit (only meaningful when ModeLimited is set).
func (c *Channel) Limit() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.limit
}

func (c *Channel) setLimit(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.limit = n
}

func (c *Channel) clearLimit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.limit = 0
}

// MemberCount returns the number of joined members.
func (c *Channel) MemberCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.members)
}

// HasMember reports whether the given client handle is joined.
func (c *Channel) HasMember(handle uint64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.members[handle]
	return ok
}

// addMember adds a handle to the member set. Not exported: membership
// changes flow only through the dispatch path so JOIN/PART/KICK/QUIT can
// enforce the post-leave invariant (§4.3) in the same breath.
func (c *Channel) addMember(handle uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.members[handle] = struct{}{}
}

func (c *Channel) removeMember(handle uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.members, handle)
}

// Members returns a stable-ordered snapshot of joined handles, ascending
// by handle value. Stable ordering is what the post-leave auto-promotion
// rule (§4.3) promotes "the first member" from.
func (c *Channel) Members() []uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]uint64, 0, len(c.members))
	for h := range c.members {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsOperator reports whether the (already-lowercased) nick is a channel
// operator.
func (c *Channel) IsOperator(lowerNick string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.operators[lowerNick]
	return ok
}

func (c *Channel) addOperator(lowerNick string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.operators[lowerNick] = struct{}{}
}

func (c *Channel) removeOperator(lowerNick string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.operators, lowerNick)
}

// OperatorCount returns the number of flagged operators.
func (c *Channel) OperatorCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.operators)
}

// IsInvited reports whether the (already-lowercased) nick holds a
// still-unconsumed invite.
func (c *Channel) IsInvited(lowerNick string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.invited[lowerNick]
	return ok
}

func (c *Channel) addInvite(lowerNick string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invited[lowerNick] = struct{}{}
}

// consumeInvite removes a one-shot invite, reporting whether one existed.
func (c *Channel) consumeInvite(lowerNick string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.invited[lowerNick]
	delete(c.invited, lowerNick)
	return ok
}

// modeString renders the channel's current mode letters and any arguments,
// for the 324 reply (§4.2): "+itk <key>" style, in the fixed i, t, k, l order.
func (c *Channel) modeString() (letters string, args []string) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	flags := "+"
	if c.modes&ModeInviteOnly != 0 {
		flags += "i"
	}
	if c.modes&ModeTopicOps != 0 {
		flags += "t"
	}
	if c.modes&ModeKeyed != 0 {
		flags += "k"
		args = append(args, c.key)
	}
	if c.modes&ModeLimited != 0 {
		flags += "l"
		args = append(args, itoa(c.limit))
	}
	return flags, args
}
