package hexx

import (
	"github.com/zeebo/errs/v2"
)

// Put8 returns the two upper case hex digits of x. The digit for the high
// nibble is in the high byte.
func Put8(x uint8) (v uint16) {
	v = uint16(x)
	v = (v & 0x000F) | ((v & 0x00F0) << 4)
	return v + 0x3030 + 7*((v+0x0606)>>4&0x0101)
}

// Get8 is the inverse of Put8. Both bytes of x must be hex digits of either
// case.
func Get8(x uint16) (v uint8) {
	x = 9*(x&0x4040>>6) + (x & 0x0f0f)
	return uint8(x | x>>4)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

// Append appends src to dst as space separated pairs of hex digits.
func Append(dst, src []byte) []byte {
	for i, b := range src {
		if i > 0 {
			dst = append(dst, ' ')
		}
		v := Put8(b)
		dst = append(dst, byte(v>>8), byte(v))
	}
	return dst
}

// Decode appends the bytes described by src to dst. Whitespace between
// pairs of digits is ignored.
func Decode(dst, src []byte) ([]byte, error) {
	for i := 0; i < len(src); {
		switch src[i] {
		case ' ', '\t', '\n', '\r':
			i++
			continue
		}
		if i+1 >= len(src) {
			return dst, errs.Errorf("odd number of hex digits")
		} else if !isDigit(src[i]) || !isDigit(src[i+1]) {
			return dst, errs.Errorf("invalid hex digits %q at offset %d", src[i:i+2], i)
		}
		dst = append(dst, Get8(uint16(src[i])<<8|uint16(src[i+1])))
		i += 2
	}
	return dst, nil
}
