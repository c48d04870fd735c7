/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

import "strings"

// Parse takes one CRLF-stripped line of wire text and tokenizes it into a
// Message (§4.1):
//
//	[:<prefix> ] <command> [<param>]* [ :<trailing>]
//
// An optional source prefix is skipped (never stored as Sender — clients
// don't get to forge one); the remaining head is split on the first
// occurrence of " :", the portion before being space-split into the
// command token and positional params, the portion after (if any)
// preserved verbatim as the trailing field.
func Parse(line string) (*Message, error) {
	if len(line) < 1 {
		return nil, ErrNotEnoughData
	}

	if len(strings.TrimSpace(line)) == 0 {
		return nil, ErrWhitespace
	}

	if line[0] == ':' {
		if sp := strings.IndexByte(line, ' '); sp >= 0 {
			line = line[sp+1:]
		} else {
			line = ""
		}
	}

	head := line
	var trailing string
	hasTrailing := false

	if idx := strings.Index(line, " :"); idx >= 0 {
		head = line[:idx]
		trailing = line[idx+2:]
		hasTrailing = true
	} else if strings.HasPrefix(line, ":") {
		head = ""
		trailing = line[1:]
		hasTrailing = true
	}

	fields := strings.Fields(head)
	if len(fields) == 0 {
		return nil, ErrNotEnoughData
	}

	msg := msgPool.New()
	msg.Command = strings.ToUpper(fields[0])
	msg.Params = fields[1:]

	if hasTrailing {
		msg.SetText(trailing)
	}

	return msg, nil
}
