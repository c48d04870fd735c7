/*
   Copyright (c) 2023, btnmasher
   All rights reserved.
   Use of this source code is governed by a BSD-style
   license that can be found in the LICENSE file.
*/

package filetransfer

// Standard base64 alphabet. The wire codec below is intentionally hand
// rolled rather than wrapping encoding/base64: the decoder must silently
// skip any byte outside the alphabet and stop at the first '=' instead of
// erroring, which encoding/base64's StdEncoding has no mode for.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var decodeTable [256]int8

func init() {
	for i := range decodeTable {
		decodeTable[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		decodeTable[alphabet[i]] = int8(i)
	}
}

// encode renders data as standard base64 with canonical '=' padding.
func encode(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	out := make([]byte, 0, (len(data)+2)/3*4)

	for i := 0; i < len(data); i += 3 {
		var chunk [3]byte
		n := copy(chunk[:], data[i:])

		b0 := chunk[0] >> 2
		b1 := (chunk[0]&0x03)<<4 | chunk[1]>>4
		b2 := (chunk[1]&0x0f)<<2 | chunk[2]>>6
		b3 := chunk[2] & 0x3f

		out = append(out, alphabet[b0], alphabet[b1])

		switch n {
		case 1:
			out = append(out, '=', '=')
		case 2:
			out = append(out, alphabet[b2], '=')
		default:
			out = append(out, alphabet[b2], alphabet[b3])
		}
	}

	return string(out)
}

// decode tolerantly decodes a base64 string: any byte not in the alphabet
// is skipped, and decoding stops entirely at the first '=' (§4.4).
func decode(s string) []byte {
	var group [4]byte
	n := 0
	out := make([]byte, 0, len(s)*3/4+3)

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == '=' {
			break
		}

		v := decodeTable[ch]
		if v < 0 {
			continue
		}

		group[n] = byte(v)
		n++

		if n == 4 {
			out = append(out,
				group[0]<<2|group[1]>>4,
				group[1]<<4|group[2]>>2,
				group[2]<<6|group[3],
			)
			n = 0
		}
	}

	switch n {
	case 2:
		out = append(out, group[0]<<2|group[1]>>4)
	case 3:
		out = append(out,
			group[0]<<2|group[1]>>4,
			group[1]<<4|group[2]>>2,
		)
	}

	return out
}
