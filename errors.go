package multipart

import (
	"errors"
	"fmt"
)

// ErrPartOpen is returned by NextPart while the previous part's file body
// has neither been drained nor closed.
var ErrPartOpen = errors.New("multipart: the previous file part is still open")

// HeaderError describes a malformed part header. Line carries the offending
// line verbatim for diagnostics.
type HeaderError struct {
	Reason string
	Line   string
}

func (h *HeaderError) Error() string {
	return fmt.Sprintf("multipart: %s (line: %q)", h.Reason, h.Line)
}

// StorageError wraps a failure to persist a file part during Collect.
type StorageError struct {
	Path string
	Err  error
}

func (s *StorageError) Error() string {
	return fmt.Sprintf("multipart: saving %s: %s", s.Path, s.Err)
}

func (s *StorageError) Unwrap() error {
	return s.Err
}
