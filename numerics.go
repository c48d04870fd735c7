/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

// RFC 1459/2812 numerics used by this server, plus the custom file-transfer
// numerics described in the wire protocol (§6).
const (
	ReplyWelcome   uint16 = 001
	ReplyISupport  uint16 = 005

	ReplyNoTopic      uint16 = 331
	ReplyTopic        uint16 = 332
	ReplyInviting     uint16 = 341
	ReplyNames        uint16 = 353
	ReplyEndOfNames   uint16 = 366
	ReplyChannelModeIs uint16 = 324

	ErrNoSuchNickNum      uint16 = 401
	ErrNoSuchChannelNum   uint16 = 403
	ErrCannotSendToChan   uint16 = 404
	ErrNicknameInUse      uint16 = 433
	ErrUserNotInChannel   uint16 = 441
	ErrNotOnChannelNum    uint16 = 442
	ErrNeedMoreParams     uint16 = 461
	ErrAlreadyRegisteredNum uint16 = 462
	ErrPasswdMismatch     uint16 = 464
	ErrChannelIsFull      uint16 = 471
	ErrInviteOnlyChan     uint16 = 473
	ErrBadChannelKey      uint16 = 475
	ErrChanOPrivsNeeded   uint16 = 482
	ErrNotRegisteredNum   uint16 = 451
	ErrNoNicknameGiven    uint16 = 431
	ErrErroneousNickname  uint16 = 432
	ErrUnknownCommandNum  uint16 = 421

	// Custom file-transfer numerics (spec §6). Not part of any RFC.
	ReplyFileOfferReceived uint16 = 738 // sent to the receiver when an offer is created
	ReplyFileOfferSent     uint16 = 739 // sent to the sender confirming the offer
	ReplyFileData          uint16 = 740 // one base64-encoded chunk
	ReplyFileDone          uint16 = 741 // transfer finished
	ReplyFileAccepted      uint16 = 742 // receiver accepted the offer
	ReplyFileCancelled     uint16 = 743 // either party cancelled
	ReplyFileSavedPath     uint16 = 744 // server-side saved path + size pair
	ReplyFileHash          uint16 = 745 // CRC32 of the transferred bytes
	ReplyFileStreamBegin   uint16 = 746 // streaming is about to start

	// Generic error numeric used for resource/filesystem failures (§7).
	ErrGeneric uint16 = 400
)
