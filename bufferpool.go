/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

import (
	"github.com/btnmasher/util"
)

// newBufferPool wraps util's bytes.Buffer pool, used to render outgoing
// messages without an allocation per line.
func newBufferPool(max int) *util.BufferPool {
	return util.NewBufferPool(max)
}
