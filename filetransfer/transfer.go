/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

// Package filetransfer implements the server-mediated file push described
// in §4.4: a sender offers a file, a receiver accepts, and the server reads
// the sender-named source off its own filesystem and streams it to the
// receiver in base64-encoded chunks while mirroring the raw bytes to a
// server-side copy under the uploads directory.
package filetransfer

import (
	"errors"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ChunkSize is the maximum number of raw bytes streamed per chunk (§4.4).
const ChunkSize = 450

// Sentinel errors. Their text doubles as the short reason reported on the
// wire via numeric 400 — callers report err.Error() directly.
var (
	ErrNotFound   = errors.New("unknown transfer id")
	ErrInactive   = errors.New("transfer is not active")
	ErrForbidden  = errors.New("not a party to this transfer")
	ErrSourceOpen = errors.New("could not open source file")
	ErrDestOpen   = errors.New("could not create destination file")
)

// Session is one file-transfer offer (§4.4). SenderHandle/ReceiverHandle
// are the caller's own client identifiers (server connection handles); this
// package has no notion of an IRC client beyond that.
type Session struct {
	ID             uint64
	SenderHandle   uint64
	ReceiverHandle uint64
	Filename       string // sanitized, used both as the dest basename and the source path
	SizeTotal      int64

	mu       sync.Mutex
	active   bool
	accepted bool
	seen     int64
	savedPath string
	dest     *os.File
	crc      uint32
	crcValid bool // false on the legacy no-CRC path
}

// Active reports whether the session has not yet been terminated.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Seen returns the number of raw bytes written to the server-side copy so far.
func (s *Session) Seen() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seen
}

// Summary is returned when a transfer finalizes (accept-stream completion,
// or legacy Done).
type Summary struct {
	SavedPath string
	Seen      int64
	Total     int64
	CRC       uint32
	HasCRC    bool
}

// Manager owns the id space and session table for one server.
type Manager struct {
	mu         sync.Mutex
	uploadsDir string
	nextID     uint64
	sessions   map[uint64]*Session
}

// NewManager creates a Manager saving server-side copies under uploadsDir.
func NewManager(uploadsDir string) *Manager {
	return &Manager{
		uploadsDir: uploadsDir,
		sessions:   make(map[uint64]*Session),
	}
}

// SanitizeFilename strips path components and replaces any character
// outside [A-Za-z0-9._-] with '_'; an empty result becomes "file" (§4.4).
func SanitizeFilename(name string) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		base = ""
	}

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}

// CreateOffer allocates a new session id, sanitizes filename, and creates
// (truncating) the server-side destination file (§4.4).
func (m *Manager) CreateOffer(senderHandle, receiverHandle uint64, filename string, sizeTotal int64) (*Session, error) {
	safeName := SanitizeFilename(filename)

	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.mu.Unlock()

	savedPath := filepath.Join(m.uploadsDir, fmt.Sprintf("%d_%s", id, safeName))

	if err := os.MkdirAll(m.uploadsDir, 0o755); err != nil {
		return nil, ErrDestOpen
	}

	dest, err := os.Create(savedPath)
	if err != nil {
		return nil, ErrDestOpen
	}

	session := &Session{
		ID:             id,
		SenderHandle:   senderHandle,
		ReceiverHandle: receiverHandle,
		Filename:       safeName,
		SizeTotal:      sizeTotal,
		active:         true,
		savedPath:      savedPath,
		dest:           dest,
	}

	m.mu.Lock()
	m.sessions[id] = session
	m.mu.Unlock()

	return session, nil
}

// Get returns the session for id, if any.
func (m *Manager) Get(id uint64) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Accept validates the receiver's acceptance and opens the sender-named
// source file relative to the server's working directory (§4.4). It does
// not stream the file itself — call Stream next.
func (m *Manager) Accept(id, receiverHandle uint64) (*Session, *os.File, error) {
	session, ok := m.Get(id)
	if !ok {
		return nil, nil, ErrNotFound
	}

	session.mu.Lock()
	active := session.active
	matches := session.ReceiverHandle == receiverHandle
	session.mu.Unlock()

	if !active {
		return nil, nil, ErrInactive
	}
	if !matches {
		return nil, nil, ErrForbidden
	}

	src, err := os.Open(session.Filename)
	if err != nil {
		return nil, nil, ErrSourceOpen
	}

	session.mu.Lock()
	session.accepted = true
	session.mu.Unlock()

	return session, src, nil
}

// Stream reads src in ChunkSize pieces, appending each raw chunk to the
// session's server-side copy, folding it into a running CRC32, and handing
// the base64-encoded chunk to onChunk for delivery. It finalizes the
// session on EOF or on the first read/write error.
func (m *Manager) Stream(session *Session, src *os.File, onChunk func(encoded string)) (Summary, error) {
	defer src.Close()

	hasher := crc32.NewIEEE()
	buf := make([]byte, ChunkSize)

	for {
		n, err := src.Read(buf)
		if n > 0 {
			chunk := buf[:n]

			if _, werr := session.dest.Write(chunk); werr != nil {
				m.finalize(session)
				return Summary{}, ErrDestOpen
			}

			hasher.Write(chunk)

			session.mu.Lock()
			session.seen += int64(n)
			session.mu.Unlock()

			onChunk(encode(chunk))
		}

		if err != nil {
			break
		}
	}

	session.mu.Lock()
	session.crc = hasher.Sum32()
	session.crcValid = true
	session.mu.Unlock()

	return m.finalize(session), nil
}

// PushData implements the legacy manual path: decode base64 and append the
// raw bytes to the server-side copy, without CRC tracking (§4.4). Returns
// the decoded bytes so the caller can forward the same base64 chunk on.
func (m *Manager) PushData(id, senderHandle uint64, b64 string) ([]byte, error) {
	session, ok := m.Get(id)
	if !ok {
		return nil, ErrNotFound
	}

	session.mu.Lock()
	active := session.active
	matches := session.SenderHandle == senderHandle
	session.mu.Unlock()

	if !active {
		return nil, ErrInactive
	}
	if !matches {
		return nil, ErrForbidden
	}

	raw := decode(b64)

	if _, err := session.dest.Write(raw); err != nil {
		return nil, ErrDestOpen
	}

	session.mu.Lock()
	session.seen += int64(len(raw))
	session.mu.Unlock()

	return raw, nil
}

// Done finalizes a legacy-mode session (no CRC, §4.4).
func (m *Manager) Done(id, senderHandle uint64) (Summary, error) {
	session, ok := m.Get(id)
	if !ok {
		return Summary{}, ErrNotFound
	}

	session.mu.Lock()
	active := session.active
	matches := session.SenderHandle == senderHandle
	session.mu.Unlock()

	if !active {
		return Summary{}, ErrInactive
	}
	if !matches {
		return Summary{}, ErrForbidden
	}

	return m.finalize(session), nil
}

// Cancel terminates an active session on behalf of either party (§4.4).
func (m *Manager) Cancel(id, whoHandle uint64) (reason string, err error) {
	session, ok := m.Get(id)
	if !ok {
		return "", ErrNotFound
	}

	session.mu.Lock()
	active := session.active
	isSender := session.SenderHandle == whoHandle
	isReceiver := session.ReceiverHandle == whoHandle
	session.mu.Unlock()

	if !active {
		return "", ErrInactive
	}
	if !isSender && !isReceiver {
		return "", ErrForbidden
	}

	m.finalize(session)

	if isSender {
		return "Sender cancelled", nil
	}
	return "Receiver cancelled", nil
}

// finalize marks the session inactive, closes its destination file, and
// builds the completion summary. Safe to call more than once.
func (m *Manager) finalize(session *Session) Summary {
	session.mu.Lock()
	defer session.mu.Unlock()

	if !session.active {
		return Summary{
			SavedPath: session.savedPath,
			Seen:      session.seen,
			Total:     session.SizeTotal,
			CRC:       session.crc,
			HasCRC:    session.crcValid,
		}
	}

	session.active = false
	if session.dest != nil {
		session.dest.Close()
	}

	return Summary{
		SavedPath: session.savedPath,
		Seen:      session.seen,
		Total:     session.SizeTotal,
		CRC:       session.crc,
		HasCRC:    session.crcValid,
	}
}
