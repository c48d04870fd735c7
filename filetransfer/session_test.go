/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package filetransfer

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("base64 wire codec", func() {
	It("round-trips arbitrary bytes", func() {
		data := []byte("the quick brown fox jumps over the lazy dog")
		Expect(decode(encode(data))).To(Equal(data))
	})

	It("pads single and double byte remainders correctly", func() {
		Expect(encode([]byte("a"))).To(Equal("YQ=="))
		Expect(encode([]byte("ab"))).To(Equal("YWI="))
		Expect(encode([]byte("abc"))).To(Equal("YWJj"))
	})

	It("tolerates embedded whitespace mid-stream", func() {
		clean := encode([]byte("hello"))
		noisy := clean[:2] + "\n " + clean[2:]
		Expect(decode(noisy)).To(Equal([]byte("hello")))
	})

	It("stops decoding at the first padding byte", func() {
		Expect(decode("YQ==YWI=")).To(Equal([]byte("a")))
	})
})

var _ = Describe("SanitizeFilename", func() {
	It("strips directory components", func() {
		Expect(SanitizeFilename("/etc/passwd")).To(Equal("passwd"))
		Expect(SanitizeFilename("../../secret.txt")).To(Equal("secret.txt"))
	})

	It("replaces disallowed characters with underscores", func() {
		Expect(SanitizeFilename("my file (1).txt")).To(Equal("my_file__1_.txt"))
	})

	It("falls back to \"file\" when nothing survives", func() {
		Expect(SanitizeFilename("///")).To(Equal("file"))
	})
})

var _ = Describe("Manager transfer lifecycle", func() {
	var (
		mgr       *Manager
		uploadDir string
		workDir   string
		origDir   string
	)

	BeforeEach(func() {
		uploadDir = GinkgoT().TempDir()
		workDir = GinkgoT().TempDir()
		mgr = NewManager(uploadDir)

		var err error
		origDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())
		Expect(os.Chdir(workDir)).To(Succeed())
	})

	AfterEach(func() {
		Expect(os.Chdir(origDir)).To(Succeed())
	})

	It("allocates monotonically increasing ids across offers", func() {
		s1, err := mgr.CreateOffer(1, 2, "a.txt", 10)
		Expect(err).NotTo(HaveOccurred())
		s2, err := mgr.CreateOffer(1, 2, "b.txt", 10)
		Expect(err).NotTo(HaveOccurred())
		Expect(s2.ID).To(Equal(s1.ID + 1))
	})

	It("rejects Accept from a handle other than the named receiver", func() {
		session, err := mgr.CreateOffer(1, 2, "hello.txt", 5)
		Expect(err).NotTo(HaveOccurred())

		_, _, err = mgr.Accept(session.ID, 99)
		Expect(err).To(MatchError(ErrForbidden))
	})

	It("reports ErrNotFound for an unknown id", func() {
		_, _, err := mgr.Accept(12345, 1)
		Expect(err).To(MatchError(ErrNotFound))
	})

	It("streams a source file to completion with a valid CRC32 and a byte-identical server copy", func() {
		content := []byte("hello, this is the file payload")
		session, err := mgr.CreateOffer(1, 2, "hello.txt", int64(len(content)))
		Expect(err).NotTo(HaveOccurred())

		Expect(os.WriteFile(filepath.Join(workDir, session.Filename), content, 0o644)).To(Succeed())

		session, src, err := mgr.Accept(session.ID, 2)
		Expect(err).NotTo(HaveOccurred())

		var chunks []string
		summary, err := mgr.Stream(session, src, func(encoded string) {
			chunks = append(chunks, encoded)
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.HasCRC).To(BeTrue())
		Expect(summary.Seen).To(Equal(int64(len(content))))
		Expect(summary.Total).To(Equal(int64(len(content))))

		var rebuilt []byte
		for _, c := range chunks {
			rebuilt = append(rebuilt, decode(c)...)
		}
		Expect(rebuilt).To(Equal(content))

		saved, err := os.ReadFile(summary.SavedPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(saved).To(Equal(content))

		Expect(session.Active()).To(BeFalse())
	})

	It("rejects PushData and Done from a handle other than the sender", func() {
		session, err := mgr.CreateOffer(1, 2, "legacy.bin", 3)
		Expect(err).NotTo(HaveOccurred())

		_, err = mgr.PushData(session.ID, 99, encode([]byte("hi")))
		Expect(err).To(MatchError(ErrForbidden))

		_, err = mgr.Done(session.ID, 99)
		Expect(err).To(MatchError(ErrForbidden))
	})

	It("accumulates legacy PushData chunks without a CRC, finalized by Done", func() {
		session, err := mgr.CreateOffer(1, 2, "legacy.bin", 5)
		Expect(err).NotTo(HaveOccurred())

		raw1, err := mgr.PushData(session.ID, 1, encode([]byte("hel")))
		Expect(err).NotTo(HaveOccurred())
		Expect(raw1).To(Equal([]byte("hel")))

		_, err = mgr.PushData(session.ID, 1, encode([]byte("lo")))
		Expect(err).NotTo(HaveOccurred())

		summary, err := mgr.Done(session.ID, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(summary.HasCRC).To(BeFalse())
		Expect(summary.Seen).To(Equal(int64(5)))

		saved, err := os.ReadFile(summary.SavedPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(saved).To(Equal([]byte("hello")))
	})

	It("lets either party cancel an active transfer exactly once", func() {
		session, err := mgr.CreateOffer(1, 2, "cancel.bin", 100)
		Expect(err).NotTo(HaveOccurred())

		reason, err := mgr.Cancel(session.ID, 2)
		Expect(err).NotTo(HaveOccurred())
		Expect(reason).To(Equal("Receiver cancelled"))
		Expect(session.Active()).To(BeFalse())

		_, err = mgr.Cancel(session.ID, 1)
		Expect(err).To(MatchError(ErrInactive))
	})

	It("refuses to cancel on behalf of an unrelated handle", func() {
		session, err := mgr.CreateOffer(1, 2, "x.bin", 1)
		Expect(err).NotTo(HaveOccurred())

		_, err = mgr.Cancel(session.ID, 77)
		Expect(err).To(MatchError(ErrForbidden))
	})
})
