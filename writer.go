// Package fmtbuf writes formatted text into fixed size caller buffers.
//
// A Writer copies fragments into the buffer until it is full and then
// truncates on a code point boundary, so the written prefix is always valid
// UTF-8. A reserve at the end of the buffer can hold back room for a
// terminator (a NUL, an ellipsis) that is written by FinishWith or
// FinishWithOr. Writing and finishing never allocate.
//
//	var mem [64]byte
//	w := fmtbuf.New(mem[:])
//	fmt.Fprintf(&w, "some data: %d", 0x01a4)
//	n, err := w.Finish() // n == 14, err == nil
//
// The writer holds the only mutable view of the buffer until it is
// finished, and it does no locking.
package fmtbuf

import (
	"unicode/utf8"
	"unsafe"

	"github.com/zeebo/errs/v2"

	"github.com/histdb/fmtbuf/boundary"
	"github.com/histdb/fmtbuf/buffer"
)

type Writer struct {
	buf       buffer.T
	mode      Mode
	truncated bool
	sealed    bool
}

// New returns a Writer over buf with no reserve.
func New(buf []byte) Writer {
	return Writer{buf: buffer.Of(buf)}
}

// WithReserve returns a Writer over buf that keeps the last reserve bytes
// free for the terminator passed to FinishWith or FinishWithOr.
func WithReserve(buf []byte, reserve int) (w Writer, err error) {
	err = w.Init(buf, reserve)
	return w, err
}

// Init resets w to write into buf with the given reserve. The mode is kept.
func (w *Writer) Init(buf []byte, reserve int) error {
	if reserve < 0 || reserve > len(buf) {
		return errs.Errorf("reserve %d with buffer of %d bytes: %w", reserve, len(buf), ErrReserve)
	}
	*w = Writer{
		buf:  buffer.Of(buf).Limit(len(buf) - reserve),
		mode: w.mode,
	}
	return nil
}

func (w *Writer) SetMode(m Mode) { w.mode = m }
func (w *Writer) Mode() Mode     { return w.mode }

// Len is the number of bytes written so far, including a terminator once
// finished.
func (w *Writer) Len() int { return w.buf.Pos() }

// Cap is the size of the whole buffer, including the reserve.
func (w *Writer) Cap() int { return w.buf.Cap() }

func (w *Writer) Reserve() int {
	if w.sealed {
		return 0
	}
	return w.buf.Cap() - w.buf.Lim()
}

// Available is the number of bytes ordinary writes can still use.
func (w *Writer) Available() int {
	if w.truncated || w.sealed {
		return 0
	}
	return w.buf.Remaining()
}

// Truncated reports if any input has been dropped. It never goes back to
// false.
func (w *Writer) Truncated() bool { return w.truncated }

// Bytes returns the written prefix of the buffer. It aliases the buffer.
func (w *Writer) Bytes() []byte { return w.buf.Prefix() }

// String returns the written prefix without copying or validating it. The
// string is only valid until the buffer is next modified.
func (w *Writer) String() string { return w.buf.String() }

//
// appending
//

// Write appends as much of p as fits. If all of p fits it returns
// len(p), nil. Otherwise it writes the longest prefix of p that ends on a
// code point boundary (and, in Graphemes mode, not on a zero width joiner)
// and returns its length with ErrTruncated. Once truncated every later
// write returns 0, ErrTruncated.
//
// p must be valid UTF-8. Invalid input may be cut anywhere but never
// changes bytes that were already written.
func (w *Writer) Write(p []byte) (n int, err error) {
	if w.sealed {
		return 0, ErrSealed
	} else if w.truncated {
		return 0, ErrTruncated
	}

	if rem := w.buf.Remaining(); len(p) > rem {
		return w.truncate(p, rem), ErrTruncated
	}

	w.buf = w.buf.Append(p)
	return len(p), nil
}

func (w *Writer) WriteString(s string) (n int, err error) {
	return w.Write(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// WriteByte appends a single byte, which should be ASCII.
func (w *Writer) WriteByte(c byte) error {
	tmp := [1]byte{c}
	_, err := w.Write(tmp[:])
	return err
}

func (w *Writer) WriteRune(r rune) (n int, err error) {
	var tmp [utf8.UTFMax]byte
	return w.Write(tmp[:utf8.EncodeRune(tmp[:], r)])
}

//go:noinline
func (w *Writer) truncate(p []byte, rem int) int {
	n := w.cut(p, rem)
	w.buf = w.buf.Append(p[:n])
	w.truncated = true
	return n
}

// cut returns how many bytes of p can be kept when only k of them fit.
func (w *Writer) cut(p []byte, k int) int {
	n := boundary.Cut(p, k)
	if w.mode == Graphemes {
		n = boundary.TrimJoiners(p[:n])
	}
	return n
}
