package multipart

import (
	"bytes"
	"io"

	"github.com/indigo-web/multipart/config"
	"github.com/indigo-web/multipart/internal/boundary"
	"github.com/indigo-web/multipart/internal/strutil"
	"github.com/indigo-web/multipart/mime"
	"github.com/indigo-web/utils/uf"
)

// Reader decodes a multipart/form-data body part by part, as the bytes
// arrive from the source. Parts are strictly ordered and self-delimiting
// only in the forward direction, so decoding is inherently sequential: a
// Reader is driven from a single goroutine and never revisits a consumed
// part.
type Reader struct {
	cfg  *config.Config
	src  *boundary.Reader
	open *fileBody
}

// NewReader wraps src, which must be positioned at the very beginning of a
// multipart body encoded with the given boundary token. The token is passed
// bare, without the leading dashes, and must be non-empty. A nil cfg picks
// config.Default().
func NewReader(src io.Reader, token string, cfg *config.Config) *Reader {
	if cfg == nil {
		cfg = config.Default()
	}

	delim := make([]byte, 0, len(token)+2)
	delim = append(delim, '-', '-')
	delim = append(delim, token...)

	return &Reader{
		cfg: cfg,
		src: boundary.New(src, delim, cfg.Scanner.BufferSize),
	}
}

// NextPart advances to the next part and returns it. io.EOF signals that the
// body ended; it is the normal termination, not a failure. Unread remains of
// the previous part are discarded on the way. A previously returned file
// part must be drained or closed first, otherwise ErrPartOpen is returned
// and the session stays where it was.
func (r *Reader) NextPart() (Part, error) {
	if r.open != nil && !r.open.released {
		return Part{}, ErrPartOpen
	}

	r.open = nil

	if err := r.src.ConsumeBoundary(); err != nil {
		return Part{}, err
	}

	hdr, err := r.parseDisposition()
	if err != nil {
		return Part{}, err
	}

	part := Part{
		Name:     hdr.Name,
		Filename: hdr.Filename,
		Type:     r.cfg.Form.DefaultContentType,
		Charset:  r.cfg.Form.DefaultCharset,
	}

	line, err := r.readLine()
	if err != nil {
		return Part{}, err
	}

	ctype, charset, ok := parseContentType(line)
	if !ok {
		// the line just read was the header/body separator, meaning the part
		// declares no Content-Type and is thereby inline text
		part.Value, err = r.readValue()
		return part, err
	}

	part.Type = ctype
	if len(charset) > 0 {
		part.Charset = charset
	}

	// the separator line follows Content-Type
	if _, err = r.readLine(); err != nil {
		return Part{}, err
	}

	r.open = &fileBody{src: r.src}
	part.body = r.open

	return part, nil
}

// ForEach feeds every remaining part to fn, stopping silently once the body
// ends. A file part's payload is accessible only inside fn: the body is
// closed as fn returns, discarding whatever was left unread.
func (r *Reader) ForEach(fn func(Part) error) error {
	for {
		part, err := r.NextPart()
		switch err {
		case nil:
		case io.EOF:
			return nil
		default:
			return err
		}

		err = fn(part)
		part.release()

		if err != nil {
			return err
		}
	}
}

// readLine pulls a single line off the scanner, returning it without the
// trailing line break.
func (r *Reader) readLine() (string, error) {
	window, err := r.src.Peek()
	if err != nil {
		return "", err
	}

	nl := bytes.IndexByte(window, '\n')
	if nl == -1 {
		return "", &HeaderError{Reason: "header line is not terminated", Line: string(window)}
	}

	// the window aliases the scanner's buffer, so copy before discarding
	line := string(window[:nl])
	r.src.Discard(nl + 1)

	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}

	return line, nil
}

// readValue drains the rest of the current part into memory, stripping the
// CRLF separating the value from the next boundary.
func (r *Reader) readValue() (string, error) {
	value := make([]byte, 0, r.cfg.Form.ValuePrealloc)

	for {
		window, err := r.src.Peek()
		switch err {
		case nil:
		case io.EOF:
			return uf.B2S(rstripCRLF(value)), nil
		default:
			return "", err
		}

		value = append(value, window...)
		r.src.Discard(len(window))
	}
}

// ParseBoundary extracts the boundary token from a multipart/form-data
// Content-Type header value. ok is false when the media type differs, the
// parameter is missing, or it occurs more than once.
func ParseBoundary(contentType string) (token string, ok bool) {
	if !mime.Complies(mime.Multipart, contentType) {
		return "", false
	}

	for key, value := range strutil.WalkKV(strutil.CutParams(contentType)) {
		if key == "boundary" {
			if len(token) != 0 {
				return "", false
			}

			token = value
		}
	}

	return token, len(token) != 0
}
