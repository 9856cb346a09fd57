package multipart

import (
	"strconv"

	"github.com/indigo-web/multipart/internal/strutil"
	"github.com/indigo-web/multipart/mime"
)

const (
	contentDisposition = "Content-Disposition:"
	contentType        = "Content-Type:"
)

type header struct {
	Name, Filename string
}

// parseDisposition reads and picks apart the Content-Disposition line, which
// opens every part and is the only mandatory header.
func (r *Reader) parseDisposition() (header, error) {
	line, err := r.readLine()
	if err != nil {
		return header{}, err
	}

	rest, ok := strutil.CutPrefixFold(line, contentDisposition)
	if !ok {
		return header{}, &HeaderError{Reason: "Content-Disposition header is missing", Line: line}
	}

	disposition, params := strutil.CutHeader(strutil.LStripWS(rest))
	if len(params) == 0 {
		return header{}, &HeaderError{Reason: "Content-Disposition carries no parameters", Line: line}
	}

	if disposition = strutil.RStripWS(disposition); disposition != "form-data" {
		return header{}, &HeaderError{
			Reason: "unexpected Content-Disposition " + strconv.Quote(disposition),
			Line:   line,
		}
	}

	var hdr header
	for key, value := range strutil.WalkKV(params) {
		switch key {
		case "name":
			hdr.Name = value
		case "filename":
			hdr.Filename = value
		}
	}

	if len(hdr.Name) == 0 {
		return header{}, &HeaderError{Reason: "field name is missing", Line: line}
	}

	return hdr, nil
}

// parseContentType interprets the line following Content-Disposition. ok is
// false when the line carries no Content-Type, i.e. it was already the
// header/body separator of an inline text part.
func parseContentType(line string) (ctype mime.MIME, charset mime.Charset, ok bool) {
	rest, ok := strutil.CutPrefixFold(line, contentType)
	if !ok {
		return "", "", false
	}

	value, params := strutil.CutHeader(strutil.LStripWS(rest))
	for key, param := range strutil.WalkKV(params) {
		if key == "charset" {
			charset = param
		}
	}

	return strutil.RStripWS(value), charset, true
}

func rstripCRLF(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\n' {
		b = b[:len(b)-1]

		if len(b) > 0 && b[len(b)-1] == '\r' {
			b = b[:len(b)-1]
		}
	}

	return b
}
