package buffer

import (
	"unsafe"
)

type ptr = unsafe.Pointer

//
// fixed region support
//

// T is a window over caller owned memory: a base pointer, a write position,
// a limit and a capacity, with 0 <= pos <= lim <= cap. It never grows and
// never allocates. Methods take and return T by value; the memory behind
// base is shared by every copy, so only one copy may be written at a time.
type T struct {
	base ptr
	pos  int
	lim  int
	cap  int
}

// Of returns a T over the length of n with the limit at the end.
func Of(n []byte) T {
	return T{
		base: ptr(unsafe.SliceData(n)),
		pos:  0,
		lim:  len(n),
		cap:  len(n),
	}
}

func (buf T) Pos() int { return buf.pos }
func (buf T) Lim() int { return buf.lim }
func (buf T) Cap() int { return buf.cap }

func (buf T) Remaining() int {
	return buf.lim - buf.pos
}

// Limit sets the limit to lim, which must be in [pos, cap].
func (buf T) Limit(lim int) T {
	buf.lim = lim
	return buf
}

// Unlimit moves the limit to the capacity.
func (buf T) Unlimit() T {
	buf.lim = buf.cap
	return buf
}

func (buf T) Advance(n int) T {
	buf.pos += n
	return buf
}

// Retreat moves the position back by n, which must be at most pos.
func (buf T) Retreat(n int) T {
	buf.pos -= n
	return buf
}

func (buf T) Index(n int) *byte {
	return (*byte)(unsafe.Add(buf.base, n))
}

// Prefix is the written bytes [0, pos).
func (buf T) Prefix() []byte {
	if buf.pos == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(buf.base), buf.pos)
}

// Suffix is the writable bytes [pos, lim).
func (buf T) Suffix() []byte {
	if buf.pos == buf.lim {
		return nil
	}
	return unsafe.Slice(buf.Index(buf.pos), buf.lim-buf.pos)
}

// String is Prefix without a copy. The caller asserts the prefix is valid
// UTF-8 and is not modified while the string is live.
func (buf T) String() string {
	if buf.pos == 0 {
		return ""
	}
	return unsafe.String((*byte)(buf.base), buf.pos)
}

// Append copies p to the position and advances past it. p must fit in
// Remaining.
func (buf T) Append(p []byte) T {
	return buf.Advance(copy(buf.Suffix(), p))
}
