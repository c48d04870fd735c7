/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

// render copies a Message's wire bytes out of the pooled render buffer and
// immediately recycles the buffer. The returned slice is then safe to hand
// to any number of recipients without further copying or pool bookkeeping
// — it is never mutated after this point.
func render(msg *Message) []byte {
	buf := msg.RenderBuffer()
	data := make([]byte, buf.Len())
	copy(data, buf.Bytes())
	bufPool.Recycle(buf)
	return data
}

// deliver sends msg to a single client.
func (srv *Server) deliver(c *Client, msg *Message) {
	c.Write(render(msg))
}

// broadcastChannel renders one event message and fans it out to every
// current member of ch except the (optional) excluded nick, giving every
// recipient a consistent snapshot of the event with no interleaving from
// a later event (§5: channel broadcast ordering guarantee). This is the
// event loop's fanout step — the single dispatch goroutine is the only
// caller, so the snapshot-consistency guarantee falls out of the fact
// that no other event is being processed concurrently.
func (srv *Server) broadcastChannel(ch *Channel, excludeNick, command string, params []string, text string, sender string) {
	msg := msgPool.New()
	msg.Sender = sender
	msg.Command = command
	msg.Params = append([]string{ch.Name()}, params...)
	if text != "" {
		msg.SetText(text)
	}
	data := render(msg)
	msgPool.Recycle(msg)

	excludeLower := lowerASCII(excludeNick)

	for _, handle := range ch.Members() {
		client, ok := srv.Clients.Get(handle)
		if !ok {
			continue
		}
		if excludeNick != "" && lowerASCII(client.Nick()) == excludeLower {
			continue
		}
		client.Write(data)
	}
}

// joinChannel adds client to ch's member set and, if this is the first
// member, promotes it to operator (§4.2 JOIN contract).
func (srv *Server) joinChannel(ch *Channel, c *Client) {
	firstMember := ch.MemberCount() == 0

	ch.addMember(c.Handle())
	c.addChannel(lowerASCII(ch.Name()))

	if firstMember {
		ch.addOperator(lowerASCII(c.Nick()))
	}
}

// leaveChannel removes client from ch's member set and applies the
// post-leave rules (§4.3): if membership remains non-empty and no
// operator remains, promote the first member (stable handle order) and
// broadcast the promotion; if membership became empty, delete the
// channel from the directory entirely.
func (srv *Server) leaveChannel(ch *Channel, c *Client) {
	ch.removeMember(c.Handle())
	ch.removeOperator(lowerASCII(c.Nick()))
	c.removeChannel(lowerASCII(ch.Name()))

	members := ch.Members()

	if len(members) == 0 {
		srv.Channels.Del(lowerASCII(ch.Name()))
		return
	}

	if ch.OperatorCount() == 0 {
		promoted, ok := srv.Clients.Get(members[0])
		if ok {
			ch.addOperator(lowerASCII(promoted.Nick()))
			srv.broadcastChannel(ch, "", CmdMode, []string{"+o", promoted.Nick()}, "", srv.Hostname())
		}
	}
}
