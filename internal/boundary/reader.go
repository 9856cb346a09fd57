package boundary

import (
	"bytes"
	"io"
)

// DefaultBufferSize is used when the caller doesn't specify a capacity.
const DefaultBufferSize = 64 * 1024

// terminatorLen accounts for the two bytes following a delimiter: CRLF after
// an ordinary occurrence, a double dash after the one closing the stream.
const terminatorLen = 2

type outcome uint8

const (
	mismatched outcome = iota
	matched
	pending
)

// Reader presents src as a stream that logically ends at every delimiter
// occurrence. Read yields bytes strictly preceding the next occurrence and
// io.EOF once it is reached; ConsumeBoundary steps over the occurrence,
// opening up the following segment. An occurrence is the delimiter followed
// either by CRLF or by a double dash (the closing form).
//
// The whole stream passes through a single fixed-size buffer, compacted in
// place, therefore memory stays bounded no matter how long segments are.
type Reader struct {
	src   io.Reader
	delim []byte
	buf   []byte
	// length is the number of occupied bytes; cursor marks how far the
	// occupied region is known to be delimiter-free
	length, cursor int
	found          bool
	exhausted      bool
}

// New creates a Reader with the given buffer capacity, or DefaultBufferSize
// if it isn't positive. The capacity is raised silently when the requested
// one cannot fit a few delimiters.
func New(src io.Reader, delim []byte, size int) *Reader {
	if size <= 0 {
		size = DefaultBufferSize
	}

	if least := 4 * len(delim); size < least {
		size = least
	}

	return &Reader{
		src:   src,
		delim: delim,
		buf:   make([]byte, size),
	}
}

// Read fills p with bytes guaranteed to not overlap any delimiter
// occurrence. Once the next occurrence (or the end of the source)
// immediately follows the read position, io.EOF is reported until
// ConsumeBoundary is called.
func (r *Reader) Read(p []byte) (n int, err error) {
	window, err := r.Peek()
	if err != nil {
		return 0, err
	}

	n = copy(p, window)
	r.Discard(n)

	return n, nil
}

// Peek returns all the buffered bytes known to precede the next delimiter
// occurrence, topping the buffer up from the source first so the window is
// always as wide as the buffered data allows. Refilling also settles a
// delimiter candidate cut off by the previous fill, therefore the returned
// window never ends at an undecided candidate unless the buffer is full.
// io.EOF signals that the occurrence, or the end of the source, starts
// exactly at the current position. The window stays valid until the next
// call on the Reader.
func (r *Reader) Peek() ([]byte, error) {
	if !r.found && !r.exhausted && r.length < len(r.buf) {
		if err := r.fill(); err != nil {
			return nil, err
		}
	}

	r.scan()

	if r.length == 0 || (r.found && r.cursor == 0) {
		return nil, io.EOF
	}

	return r.buf[:r.cursor], nil
}

// Delimited reports whether the current Peek window ends exactly at a
// located delimiter occurrence rather than at the edge of buffered data.
func (r *Reader) Delimited() bool {
	return r.found
}

// Discard drops the first n bytes of the Peek window, shifting the rest of
// the buffer to its start. n must not exceed the window length.
func (r *Reader) Discard(n int) {
	if n <= 0 {
		return
	}

	copy(r.buf, r.buf[n:r.length])
	r.length -= n
	r.cursor -= n
}

// ConsumeBoundary discards everything up to and including the next delimiter
// occurrence and resets the scan state, so that reading continues from the
// segment behind it. At the very beginning of a session it simply skips the
// opening delimiter. io.EOF is returned when the source ends before any
// further occurrence, or when the occurrence found is the closing one;
// either way the stream is over.
func (r *Reader) ConsumeBoundary() error {
	for !r.found {
		if err := r.fill(); err != nil {
			return err
		}

		if r.length == 0 {
			return io.EOF
		}

		r.scan()

		// whatever precedes the occurrence is an unread leftover of the
		// current segment and goes away
		r.Discard(r.cursor)
	}

	closing := r.buf[r.cursor+len(r.delim)] == '-'

	n := r.cursor + len(r.delim) + terminatorLen
	copy(r.buf, r.buf[n:r.length])
	r.length -= n
	r.cursor = 0
	r.found = false

	if closing {
		return io.EOF
	}

	return nil
}

// fill tops the buffer up to its capacity, or up to the end of the source.
func (r *Reader) fill() error {
	for r.length < len(r.buf) && !r.exhausted {
		n, err := r.src.Read(r.buf[r.length:])
		r.length += n

		switch err {
		case nil:
		case io.EOF:
			r.exhausted = true
		default:
			return err
		}
	}

	return nil
}

// scan advances the cursor until a delimiter occurrence is located, the
// occupied region is covered completely, or a candidate is cut off by the
// edge of buffered data and needs a refill to be settled. In the latter case
// the cursor parks right at the candidate, so that no byte possibly
// belonging to a delimiter is ever given away.
func (r *Reader) scan() {
	for !r.found && r.cursor < r.length {
		window := r.buf[r.cursor:r.length]

		i := bytes.IndexByte(window, r.delim[0])
		if i < 0 {
			r.cursor = r.length
			return
		}

		r.cursor += i

		switch r.settle(r.buf[r.cursor:r.length]) {
		case matched:
			r.found = true
			return
		case pending:
			if r.exhausted {
				// nothing will ever complete the candidate
				r.cursor = r.length
			}

			return
		case mismatched:
			r.cursor++
		}
	}
}

// settle decides whether tail, which begins with the delimiter's first byte,
// holds a complete occurrence, cannot possibly hold one, or is cut off by
// the end of the buffered data.
func (r *Reader) settle(tail []byte) outcome {
	if len(tail) >= len(r.delim)+terminatorLen {
		if !bytes.Equal(tail[:len(r.delim)], r.delim) {
			return mismatched
		}

		t0, t1 := tail[len(r.delim)], tail[len(r.delim)+1]
		if (t0 == '\r' && t1 == '\n') || (t0 == '-' && t1 == '-') {
			return matched
		}

		return mismatched
	}

	if len(tail) > len(r.delim) {
		if !bytes.Equal(tail[:len(r.delim)], r.delim) {
			return mismatched
		}

		if c := tail[len(r.delim)]; c == '\r' || c == '-' {
			return pending
		}

		return mismatched
	}

	if bytes.Equal(tail, r.delim[:len(tail)]) {
		return pending
	}

	return mismatched
}
