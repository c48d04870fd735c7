/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

import (
	"fmt"
	"strconv"
)

func formatID(id uint64) string { return strconv.FormatUint(id, 10) }

func parseID(s string) (uint64, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// handleFileSend implements FILESEND <receiver> <size> :<filename> (§4.4,
// spec.md §8 scenario 6).
func handleFileSend(ctx *Context) {
	srv, c, msg := ctx.Server, ctx.Client, ctx.Msg

	if len(msg.Params) < 2 || !msg.HasText() {
		srv.replyNeedMoreParams(c, CmdFileSend)
		return
	}

	receiverNick, sizeStr, filename := msg.Params[0], msg.Params[1], msg.Text

	receiver, ok := srv.Nicks.Get(lowerASCII(receiverNick))
	if !ok {
		srv.replyNoSuchNick(c, receiverNick)
		return
	}

	size, _ := strconv.ParseInt(sizeStr, 10, 64)

	session, err := srv.ft.CreateOffer(c.Handle(), receiver.Handle(), filename, size)
	if err != nil {
		srv.genericError(c, err.Error())
		return
	}

	idStr := formatID(session.ID)
	srv.numeric(c, ReplyFileOfferSent, []string{idStr}, filename)
	srv.numeric(receiver, ReplyFileOfferReceived, []string{idStr}, filename)
}

// handleFileAccept implements FILEACCEPT <id>: the receiver consents and
// the server streams the source file to it in base64 chunks (§4.4).
func handleFileAccept(ctx *Context) {
	srv, c, msg := ctx.Server, ctx.Client, ctx.Msg

	if len(msg.Params) < 1 {
		srv.replyNeedMoreParams(c, CmdFileAccept)
		return
	}

	id, ok := parseID(msg.Params[0])
	if !ok {
		srv.genericError(c, "invalid transfer id")
		return
	}

	session, src, err := srv.ft.Accept(id, c.Handle())
	if err != nil {
		srv.genericError(c, err.Error())
		return
	}

	idStr := formatID(id)
	sender, senderOnline := srv.Clients.Get(session.SenderHandle)

	srv.numeric(c, ReplyFileAccepted, []string{idStr}, "accepted")
	srv.numeric(c, ReplyFileStreamBegin, []string{idStr}, "")
	if senderOnline {
		srv.numeric(sender, ReplyFileStreamBegin, []string{idStr}, "")
	}

	summary, err := srv.ft.Stream(session, src, func(encoded string) {
		srv.numeric(c, ReplyFileData, []string{idStr}, encoded)
	})
	if err != nil {
		srv.genericError(c, err.Error())
		return
	}

	srv.numeric(c, ReplyFileDone, []string{idStr}, "")
	if senderOnline {
		srv.numeric(sender, ReplyFileDone, []string{idStr}, "")
	}

	sizePair := fmt.Sprintf("%s (%d/%d)", summary.SavedPath, summary.Seen, summary.Total)
	srv.numeric(c, ReplyFileSavedPath, []string{idStr}, sizePair)

	if summary.HasCRC {
		crcHex := fmt.Sprintf("%08X", summary.CRC)
		srv.numeric(c, ReplyFileHash, []string{idStr}, crcHex)
		if senderOnline {
			srv.numeric(sender, ReplyFileHash, []string{idStr}, crcHex)
		}
	}
}

// handleFileData implements the legacy manual-push path, FILEDATA
// <id> <base64chunk> (§4.4).
func handleFileData(ctx *Context) {
	srv, c, msg := ctx.Server, ctx.Client, ctx.Msg

	if len(msg.Params) < 2 {
		srv.replyNeedMoreParams(c, CmdFileData)
		return
	}

	id, ok := parseID(msg.Params[0])
	if !ok {
		srv.genericError(c, "invalid transfer id")
		return
	}

	if _, err := srv.ft.PushData(id, c.Handle(), msg.Params[1]); err != nil {
		srv.genericError(c, err.Error())
		return
	}

	session, ok := srv.ft.Get(id)
	if !ok {
		return
	}

	if receiver, ok := srv.Clients.Get(session.ReceiverHandle); ok {
		srv.numeric(receiver, ReplyFileData, []string{formatID(id)}, msg.Params[1])
	}
}

// handleFileDone implements the legacy manual-push finalization, FILEDONE
// <id> (§4.4: "without CRC in the legacy path").
func handleFileDone(ctx *Context) {
	srv, c, msg := ctx.Server, ctx.Client, ctx.Msg

	if len(msg.Params) < 1 {
		srv.replyNeedMoreParams(c, CmdFileDone)
		return
	}

	id, ok := parseID(msg.Params[0])
	if !ok {
		srv.genericError(c, "invalid transfer id")
		return
	}

	session, found := srv.ft.Get(id)
	if !found {
		srv.genericError(c, "unknown transfer id")
		return
	}

	summary, err := srv.ft.Done(id, c.Handle())
	if err != nil {
		srv.genericError(c, err.Error())
		return
	}

	idStr := formatID(id)
	srv.numeric(c, ReplyFileDone, []string{idStr}, "")

	if receiver, ok := srv.Clients.Get(session.ReceiverHandle); ok {
		srv.numeric(receiver, ReplyFileDone, []string{idStr}, "")
	}

	sizePair := fmt.Sprintf("%s (%d/%d)", summary.SavedPath, summary.Seen, summary.Total)
	srv.numeric(c, ReplyFileSavedPath, []string{idStr}, sizePair)
}

// handleFileCancel implements FILECANCEL <id> (§4.4).
func handleFileCancel(ctx *Context) {
	srv, c, msg := ctx.Server, ctx.Client, ctx.Msg

	if len(msg.Params) < 1 {
		srv.replyNeedMoreParams(c, CmdFileCancel)
		return
	}

	id, ok := parseID(msg.Params[0])
	if !ok {
		srv.genericError(c, "invalid transfer id")
		return
	}

	session, found := srv.ft.Get(id)
	if !found {
		srv.genericError(c, "unknown transfer id")
		return
	}

	reason, err := srv.ft.Cancel(id, c.Handle())
	if err != nil {
		srv.genericError(c, err.Error())
		return
	}

	idStr := formatID(id)
	srv.numeric(c, ReplyFileCancelled, []string{idStr}, reason)

	otherHandle := session.ReceiverHandle
	if c.Handle() == session.ReceiverHandle {
		otherHandle = session.SenderHandle
	}
	if other, ok := srv.Clients.Get(otherHandle); ok {
		srv.numeric(other, ReplyFileCancelled, []string{idStr}, reason)
	}
}
