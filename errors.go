package fmtbuf

import (
	"github.com/zeebo/errs/v2"
)

var (
	// ErrTruncated is returned when input did not fit. It is returned
	// unwrapped so that reporting it never allocates.
	ErrTruncated = errs.Errorf("fmtbuf: truncated")

	// ErrReserve matches errors from constructing a writer with a reserve
	// larger than its buffer.
	ErrReserve = errs.Errorf("fmtbuf: reserve exceeds buffer")

	// ErrTerminator matches errors from finishing with a terminator larger
	// than the whole buffer.
	ErrTerminator = errs.Errorf("fmtbuf: terminator exceeds buffer")

	// ErrSealed is returned by writes after a finish call.
	ErrSealed = errs.Errorf("fmtbuf: write after finish")

	// ErrMode matches errors from parsing an unknown mode name.
	ErrMode = errs.Errorf("fmtbuf: unknown mode")
)
