package strutil

import (
	"iter"
	"strings"
)

// WalkKV iterates over a semicolon-separated parameter list of the form
// key=value; key="quoted". Quotes around a value are dropped, keys are left
// as-is. A parameter carrying no equals sign is yielded with an empty value.
//
// Note: a quoted value containing a semicolon splits anyway. Escaped quotes
// are not a thing browsers produce, so they aren't a thing here either.
func WalkKV(params string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for len(params) > 0 {
			var param string
			if sep := strings.IndexByte(params, ';'); sep != -1 {
				param, params = params[:sep], LStripWS(params[sep+1:])
			} else {
				param, params = params, ""
			}

			key, value, found := strings.Cut(param, "=")
			if !found {
				if !yield(RStripWS(key), "") {
					return
				}

				continue
			}

			if !yield(key, Unquote(value)) {
				return
			}
		}
	}
}
