/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Channel mode state machine", func() {
	var ch *Channel

	BeforeEach(func() {
		ch = NewChannel("#general")
	})

	Describe("mode bits", func() {
		It("starts with no modes set", func() {
			Expect(ch.Has(ModeInviteOnly)).To(BeFalse())
			Expect(ch.Has(ModeTopicOps)).To(BeFalse())
			Expect(ch.Has(ModeKeyed)).To(BeFalse())
			Expect(ch.Has(ModeLimited)).To(BeFalse())
		})

		It("sets and clears a single bit without disturbing the others", func() {
			ch.set(ModeInviteOnly)
			ch.set(ModeTopicOps)
			Expect(ch.Has(ModeInviteOnly)).To(BeTrue())
			Expect(ch.Has(ModeTopicOps)).To(BeTrue())

			ch.clear(ModeInviteOnly)
			Expect(ch.Has(ModeInviteOnly)).To(BeFalse())
			Expect(ch.Has(ModeTopicOps)).To(BeTrue())
		})
	})

	Describe("key and limit", func() {
		It("sets and clears a key independently of the ModeKeyed bit", func() {
			ch.setKey("hunter2")
			Expect(ch.Key()).To(Equal("hunter2"))
			ch.clearKey()
			Expect(ch.Key()).To(Equal(""))
		})

		It("tracks a member limit independently of the key", func() {
			ch.setLimit(10)
			Expect(ch.Limit()).To(Equal(10))
			ch.clearLimit()
			Expect(ch.Limit()).To(Equal(0))
		})
	})

	Describe("modeString", func() {
		It("renders a bare +", func() {
			letters, args := ch.modeString()
			Expect(letters).To(Equal("+"))
			Expect(args).To(BeEmpty())
		})

		It("renders flags in fixed i,t,k,l order regardless of set order", func() {
			ch.set(ModeLimited)
			ch.setLimit(5)
			ch.set(ModeInviteOnly)
			ch.set(ModeKeyed)
			ch.setKey("secret")
			ch.set(ModeTopicOps)

			letters, args := ch.modeString()
			Expect(letters).To(Equal("+itkl"))
			Expect(args).To(Equal([]string{"secret", "5"}))
		})
	})

	Describe("membership and operators", func() {
		It("adds and removes members", func() {
			Expect(ch.MemberCount()).To(Equal(0))
			ch.addMember(1)
			ch.addMember(2)
			Expect(ch.MemberCount()).To(Equal(2))
			Expect(ch.HasMember(1)).To(BeTrue())

			ch.removeMember(1)
			Expect(ch.HasMember(1)).To(BeFalse())
			Expect(ch.MemberCount()).To(Equal(1))
		})

		It("returns members in ascending handle order", func() {
			ch.addMember(30)
			ch.addMember(10)
			ch.addMember(20)
			Expect(ch.Members()).To(Equal([]uint64{10, 20, 30}))
		})

		It("tracks operator status independently of membership", func() {
			Expect(ch.IsOperator("alice")).To(BeFalse())
			ch.addOperator("alice")
			Expect(ch.IsOperator("alice")).To(BeTrue())
			Expect(ch.OperatorCount()).To(Equal(1))

			ch.removeOperator("alice")
			Expect(ch.IsOperator("alice")).To(BeFalse())
			Expect(ch.OperatorCount()).To(Equal(0))
		})
	})

	Describe("one-shot invites", func() {
		It("reports an invite as present until it is consumed", func() {
			Expect(ch.IsInvited("bob")).To(BeFalse())
			ch.addInvite("bob")
			Expect(ch.IsInvited("bob")).To(BeTrue())

			consumed := ch.consumeInvite("bob")
			Expect(consumed).To(BeTrue())
			Expect(ch.IsInvited("bob")).To(BeFalse())
		})

		It("reports false when consuming an invite that was never granted", func() {
			Expect(ch.consumeInvite("nobody")).To(BeFalse())
		})
	})
})
