/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

// Error is a workaround to allow for immutable error strings which satisfy
// the error interface.
type Error string

func (err Error) Error() string {
	return string(err)
}

func (err Error) String() string {
	return string(err)
}

// Immutable error strings used internally. The reply helpers in replies.go
// send the matching string as the text of the corresponding numeric reply.
const (
	ErrNotEnoughData  Error = "did not receive enough data from the client"
	ErrDataTooLong    Error = "received data from the client is too long"
	ErrWhitespace     Error = "all whitespace"
	ErrMissingParams  Error = "missing parameters"
	ErrTooManyParams  Error = "too many parameters"
	ErrNickInUse      Error = "this nickname is currently in use"
	ErrNickInvalid    Error = "erroneous nickname"
	ErrNotRegistered  Error = "you must register first"
	ErrAlreadyRegistered Error = "you may not reregister"
	ErrPasswordMismatch  Error = "password incorrect"
	ErrNoNickGiven    Error = "no nickname given"
	ErrNoSuchNick     Error = "no such nick/channel"
	ErrNoSuchChan     Error = "no such channel"
	ErrNotOnChannel   Error = "you're not on that channel"
	ErrUserNotInChan  Error = "they aren't on that channel"
	ErrInsuffPerms    Error = "you're not channel operator"
	ErrBadChanKey     Error = "cannot join channel (+k)"
	ErrInviteOnly     Error = "cannot join channel (+i)"
	ErrChannelFull    Error = "cannot join channel (+l)"
	ErrUnknownCommand Error = "unknown command"
	ErrCantKickSelf   Error = "you cannot kick yourself"

	// File-transfer domain errors.
	ErrTransferNotFound  Error = "unknown transfer id"
	ErrTransferInactive  Error = "transfer is not active"
	ErrTransferForbidden Error = "not a party to this transfer"
	ErrSourceFileOpen    Error = "could not open source file"
	ErrDestFileOpen      Error = "could not create destination file"
)
