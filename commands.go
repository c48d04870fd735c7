/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

// Command name constants for the subset of the protocol this server
// implements. Command matching itself is case-insensitive (§4.1); these
// constants are always upper case so comparisons are a simple string match
// after the parser folds the incoming command token.
const (
	CmdPass    = "PASS"
	CmdNick    = "NICK"
	CmdUser    = "USER"
	CmdPing    = "PING"
	CmdPong    = "PONG"
	CmdQuit    = "QUIT"
	CmdJoin    = "JOIN"
	CmdPart    = "PART"
	CmdPrivmsg = "PRIVMSG"
	CmdTopic   = "TOPIC"
	CmdMode    = "MODE"
	CmdInvite  = "INVITE"
	CmdKick    = "KICK"

	CmdFileSend   = "FILESEND"
	CmdFileAccept = "FILEACCEPT"
	CmdFileData   = "FILEDATA"
	CmdFileDone   = "FILEDONE"
	CmdFileCancel = "FILECANCEL"
)

// registrationExempt holds the commands a client may issue before reaching
// REGISTERED state (§3, §4.2).
var registrationExempt = map[string]bool{
	CmdPass: true,
	CmdNick: true,
	CmdUser: true,
	CmdPing: true,
	CmdPong: true,
	CmdQuit: true,
}
