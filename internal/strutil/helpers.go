package strutil

import "strings"

func LStripWS(str string) string {
	for i, c := range str {
		switch c {
		case ' ', '\t':
		default:
			return str[i:]
		}
	}

	return ""
}

func RStripWS(str string) string {
	for i := len(str); i > 0; i-- {
		switch str[i-1] {
		case ' ', '\t':
		default:
			return str[:i]
		}
	}

	return ""
}

// CutHeader splits a header value from its parameters, stripping the
// whitespace in between. Absent parameters result in empty params.
func CutHeader(header string) (value, params string) {
	sep := strings.IndexByte(header, ';')
	if sep == -1 {
		return header, ""
	}

	return header[:sep], LStripWS(header[sep+1:])
}

// CutParams returns just the parameter list of a header value.
func CutParams(header string) (params string) {
	_, params = CutHeader(header)
	return params
}

func Unquote(str string) string {
	if len(str) > 1 && str[0] == '"' && str[len(str)-1] == '"' {
		return str[1 : len(str)-1]
	}

	return str
}

// CmpFold reports case-insensitive equality of two ASCII strings.
func CmpFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := 0; i < len(a); i++ {
		if a[i]|0x20 != b[i]|0x20 {
			return false
		}
	}

	return true
}

// CutPrefixFold strips prefix off str case-insensitively.
func CutPrefixFold(str, prefix string) (rest string, ok bool) {
	if len(str) < len(prefix) || !CmpFold(str[:len(prefix)], prefix) {
		return str, false
	}

	return str[len(prefix):], true
}
