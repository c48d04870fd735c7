/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestIRCRelay(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ircrelay behavior specs")
}
