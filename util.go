/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

import "strconv"

// itoa and atoiNonNeg are thin strconv wrappers. strconv is the standard
// idiom for integer/string conversion in this corpus; no third-party
// numeric-formatting library is warranted for a handful of call sites.
func itoa(n int) string {
	return strconv.Itoa(n)
}

func atoiNonNeg(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
