package chunked

import (
	"io"

	"github.com/indigo-web/chunkedbody"
)

// Reader de-chunks a Transfer-Encoding: chunked stream, exposing the payload
// as a plain io.Reader. Wrap a chunk-encoded upload with it before handing
// the body over to the multipart decoder.
type Reader struct {
	src     io.Reader
	parser  *chunkedbody.Parser
	buf     []byte
	pending []byte
	chunk   []byte
	trailer bool
	done    bool
}

// NewReader wraps src. trailer tells whether the stream ends with trailer
// fields after the last chunk.
func NewReader(src io.Reader, trailer bool) *Reader {
	return &Reader{
		src:     src,
		parser:  chunkedbody.NewParser(chunkedbody.DefaultSettings()),
		buf:     make([]byte, 4*1024),
		trailer: trailer,
	}
}

func (r *Reader) Read(p []byte) (int, error) {
	for len(r.chunk) == 0 {
		if r.done {
			return 0, io.EOF
		}

		if len(r.pending) == 0 {
			n, err := r.src.Read(r.buf)
			if n == 0 {
				if err == nil {
					continue
				}

				return 0, err
			}

			r.pending = r.buf[:n]
		}

		chunk, extra, err := r.parser.Parse(r.pending, r.trailer)
		r.pending = extra

		switch err {
		case nil:
		case io.EOF:
			r.done = true
		default:
			return 0, err
		}

		r.chunk = chunk
	}

	n := copy(p, r.chunk)
	r.chunk = r.chunk[n:]

	return n, nil
}
