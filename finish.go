package fmtbuf

import (
	"github.com/zeebo/errs/v2"
)

//
// finishing
//

// The finish methods seal the writer and return the number of bytes
// written, terminator included. The error is nil or ErrTruncated; the
// length is meaningful in both cases. Calling any finish method again
// returns the same result without touching the buffer.

func (w *Writer) Finish() (int, error) {
	w.sealed = true
	return w.result()
}

// FinishWith seals the writer and writes term after the content, using the
// reserve and any unused space. If term does not fit, content is dropped
// from the end, on the same boundaries Write would cut on, until it does;
// the writer is then reported as truncated.
//
// A term longer than the whole buffer is an error that wraps
// ErrTerminator. The writer is left unchanged and unsealed in that case.
func (w *Writer) FinishWith(term []byte) (int, error) {
	if w.sealed {
		return w.result()
	} else if len(term) > w.buf.Cap() {
		return w.buf.Pos(), errs.Errorf("terminator of %d bytes with buffer of %d bytes: %w",
			len(term), w.buf.Cap(), ErrTerminator)
	}

	w.terminate(term)
	return w.result()
}

// FinishWithOr finishes with truncated if the writer is truncated or if
// normal no longer fits after the content, and with normal otherwise. When
// normal has to shrink the content but truncated is longer than the whole
// buffer, it finishes with normal instead.
//
//	n, err := w.FinishWithOr([]byte("\x00"), []byte("...\x00"))
func (w *Writer) FinishWithOr(normal, truncated []byte) (int, error) {
	if w.sealed {
		return w.result()
	}

	term := normal
	if w.truncated || len(normal) > w.buf.Cap()-w.buf.Pos() {
		term = truncated
		if !w.truncated && len(truncated) > w.buf.Cap() && len(normal) <= w.buf.Cap() {
			term = normal
		}
	}
	if len(term) > w.buf.Cap() {
		return w.buf.Pos(), errs.Errorf("terminator of %d bytes with buffer of %d bytes: %w",
			len(term), w.buf.Cap(), ErrTerminator)
	}

	if len(normal) > w.buf.Cap()-w.buf.Pos() {
		w.truncated = true
	}
	w.terminate(term)
	return w.result()
}

func (w *Writer) terminate(term []byte) {
	if room := w.buf.Cap() - len(term); w.buf.Pos() > room {
		p := w.buf.Prefix()
		w.buf = w.buf.Retreat(len(p) - w.cut(p, room))
		w.truncated = true
	}
	w.buf = w.buf.Unlimit().Append(term)
	w.sealed = true
}

func (w *Writer) result() (int, error) {
	if w.truncated {
		return w.buf.Pos(), ErrTruncated
	}
	return w.buf.Pos(), nil
}
