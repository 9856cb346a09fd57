package multipart

import (
	"io"
	"strings"

	"github.com/indigo-web/multipart/internal/boundary"
	"github.com/indigo-web/multipart/mime"
)

// Part is a single decoded entry of a multipart body. Inline text arrives
// fully materialized in Value; file parts are recognized via IsFile and
// consumed lazily through Body.
type Part struct {
	// Name is the form field name, always present.
	Name string
	// Filename is the client-declared file name, if any.
	Filename string
	// Type is the declared content type. Inline text parts, which declare
	// none, get config.Form.DefaultContentType.
	Type mime.MIME
	// Charset is the charset parameter of the Content-Type line, defaulted
	// via config.Form.DefaultCharset.
	Charset mime.Charset
	// Value is the inline text. Empty for file parts.
	Value string

	body *fileBody
}

// IsFile reports whether the part declared a content type and must
// therefore be consumed through Body.
func (p Part) IsFile() bool {
	return p.body != nil
}

// Body streams the part's payload. For inline text it simply wraps Value.
// A file part's stream is backed directly by the decode session: it stays
// valid only until the next NextPart call, and closing it without draining
// is allowed; the rest of the payload is then discarded on the next advance.
func (p Part) Body() io.ReadCloser {
	if p.body == nil {
		return io.NopCloser(strings.NewReader(p.Value))
	}

	return p.body
}

func (p Part) release() {
	if p.body != nil {
		p.body.released = true
	}
}

const framingLen = len("\r\n")

// fileBody streams a file part's payload off the boundary scanner. The CRLF
// preceding the next boundary belongs to the wire framing, not to the file,
// so the tail of every window is held back until the framing is located.
type fileBody struct {
	src      *boundary.Reader
	released bool
}

func (f *fileBody) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	for {
		window, err := f.src.Peek()
		switch err {
		case nil:
		case io.EOF:
			f.released = true
			return 0, io.EOF
		default:
			return 0, err
		}

		usable := len(window)
		switch {
		case f.src.Delimited():
			// the window is final: its last two bytes are the framing CRLF
			usable -= framingLen
			if usable <= 0 {
				f.src.Discard(len(window))
				continue
			}
		case usable > framingLen:
			usable -= framingLen
		default:
			// such a short window cannot grow anymore: the source ended
			// without a final boundary, so the tail is ordinary payload
		}

		n := copy(p, window[:usable])
		f.src.Discard(n)

		return n, nil
	}
}

// Close releases the part without draining it. The decoder discards
// whatever was left unread once it advances.
func (f *fileBody) Close() error {
	f.released = true
	return nil
}
