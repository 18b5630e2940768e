// Package boundary finds places where UTF-8 text can be cut without
// splitting an encoded code point.
package boundary

// zwj is the encoding of U+200D ZERO WIDTH JOINER.
const zwj = "\u200d"

func isContinuation(b byte) bool { return b&0b1100_0000 == 0b1000_0000 }

// Width returns the number of bytes in the encoding that the leader byte b
// starts, or 0 if b is a continuation byte or can never start an encoding.
func Width(b byte) int {
	switch {
	case b&0b1000_0000 == 0b0000_0000:
		return 1
	case b&0b1110_0000 == 0b1100_0000:
		return 2
	case b&0b1111_0000 == 0b1110_0000:
		return 3
	case b&0b1111_1000 == 0b1111_0000:
		return 4
	}
	return 0
}

// Cut returns the largest n <= k such that p[:n] does not end inside an
// encoded code point. It only looks at the bytes of the code point that
// straddles k, so the cost does not depend on len(p).
func Cut(p []byte, k int) int {
	if k >= len(p) {
		return len(p)
	}
	for k > 0 && isContinuation(p[k]) {
		k--
	}
	return k
}

// End returns the length of the longest prefix of p that does not end in
// an incomplete encoding. p must be valid UTF-8 except possibly for a
// truncated final code point.
func End(p []byte) int {
	pos := len(p)
	for pos > 0 {
		pos--
		if w := Width(p[pos]); w > 0 {
			if pos+w <= len(p) {
				pos += w
			}
			break
		}
	}
	return pos
}

// TrimJoiners returns the length of p without any trailing zero width
// joiners.
func TrimJoiners(p []byte) int {
	n := len(p)
	for n >= len(zwj) && string(p[n-len(zwj):n]) == zwj {
		n -= len(zwj)
	}
	return n
}
