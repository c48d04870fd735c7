/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package ircrelay

import "strings"

// validNick reports whether s is a non-empty sequence of ASCII letters,
// digits, '-', or '_' (§4.3, §6). Case-insensitive uniqueness is enforced
// elsewhere, by the NICK handler's lookup in the nickname directory.
func validNick(s string) bool {
	if len(s) == 0 {
		return false
	}

	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}

	return true
}

// validChannel reports whether s starts with '#' or '&' and contains no
// CR, LF, space, or comma (§4.3, §6).
func validChannel(s string) bool {
	if len(s) == 0 {
		return false
	}

	if s[0] != '#' && s[0] != '&' {
		return false
	}

	return !strings.ContainsAny(s, "\r\n ,")
}

// lowerASCII lowercases only ASCII letters, matching the server's
// casemapping=ascii ISUPPORT token: no multibyte case folding (§1).
func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
