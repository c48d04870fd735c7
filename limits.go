/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

import "time"

// KeepAliveTimeout sets the connection timeout duration on client IRC connections.
const KeepAliveTimeout time.Duration = 2 * time.Minute

// PingInterval sets how often the server sends an unsolicited keepalive
// PING down every connection, whether idle or not, and how long it waits for the PONG before
// treating the previous one as unanswered.
const PingInterval time.Duration = 90 * time.Second

// WriteTimeout sets the write timeout duration on client IRC connections.
const WriteTimeout time.Duration = 5 * time.Second

// MessagePoolMax sets the Message object pool buffer length.
const MessagePoolMax = 1000

// BufferPoolMax sets the bytes.Buffer pool length.
const BufferPoolMax = 1000

// WriteQueueLength sets the length of each connection's write queue channel.
const WriteQueueLength = 10

// EventQueueLength sets the length of the engine's single dispatch inbox.
const EventQueueLength = 256

// MaxMsgLength is the recommended soft cap on an incoming line, per the
// wire protocol's framer. Oversize lines are still delivered, never
// silently truncated.
const MaxMsgLength = 512

// MaxNickLength is the advertised (not enforced) maximum nickname length,
// reported via ISUPPORT.
const MaxNickLength = 32

// MaxChanLength is the advertised (not enforced) maximum channel name
// length, reported via ISUPPORT.
const MaxChanLength = 64

// MaxJoinedChans is the advertised (not enforced) limit on channels a
// single client may join at once, reported via ISUPPORT.
const MaxJoinedChans = 50

// MaxTopicLength is the advertised (not enforced) maximum topic length,
// reported via ISUPPORT.
const MaxTopicLength = 390

// MaxKickLength is the advertised (not enforced) maximum KICK reason
// length, reported via ISUPPORT.
const MaxKickLength = 255

// FileChunkSize is the maximum number of raw bytes read per file-transfer chunk.
const FileChunkSize = 450

// UploadsDir is the default directory name created under the process
// working directory to hold server-side transfer copies.
const UploadsDir = "uploads"
