/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package filetransfer

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestFileTransfer(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "filetransfer behavior specs")
}
