package boundary

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const stream = "preamble\r\n" +
	"--boundary\r\n" +
	"first segment\r\n" +
	"--boundary\r\n" +
	"second segment\r\n" +
	"--boundary--\r\n"

// chunkedSource delivers the data in portions of at most step bytes,
// simulating a socket that never has everything at once.
type chunkedSource struct {
	data string
	step int
}

func (c *chunkedSource) Read(p []byte) (int, error) {
	if len(c.data) == 0 {
		return 0, io.EOF
	}

	n := c.step
	if n > len(c.data) {
		n = len(c.data)
	}
	if n > len(p) {
		n = len(p)
	}

	n = copy(p, c.data[:n])
	c.data = c.data[n:]

	return n, nil
}

type failingSource struct {
	err error
}

func (f failingSource) Read([]byte) (int, error) {
	return 0, f.err
}

func newReader(data string, size int) *Reader {
	return New(strings.NewReader(data), []byte("--boundary"), size)
}

func readSegment(t *testing.T, r *Reader) string {
	data, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(data)
}

func requireSegments(t *testing.T, r *Reader) {
	require.Equal(t, "preamble\r\n", readSegment(t, r))
	require.NoError(t, r.ConsumeBoundary())
	require.Equal(t, "first segment\r\n", readSegment(t, r))
	require.NoError(t, r.ConsumeBoundary())
	require.Equal(t, "second segment\r\n", readSegment(t, r))
	require.Equal(t, io.EOF, r.ConsumeBoundary())
}

func TestReader(t *testing.T) {
	t.Run("segments are delivered byte-exact", func(t *testing.T) {
		requireSegments(t, newReader(stream, 0))
	})

	t.Run("read at the delimiter keeps reporting EOF", func(t *testing.T) {
		r := newReader(stream, 0)
		require.Equal(t, "preamble\r\n", readSegment(t, r))

		buf := make([]byte, 8)
		for i := 0; i < 3; i++ {
			n, err := r.Read(buf)
			require.Zero(t, n)
			require.Equal(t, io.EOF, err)
		}

		require.NoError(t, r.ConsumeBoundary())
		require.Equal(t, "first segment\r\n", readSegment(t, r))
	})

	t.Run("delimiter straddles refills", func(t *testing.T) {
		// sweeping the buffer size moves the compaction points across every
		// possible split of the delimiter; small source steps make refills
		// land mid-delimiter as often as possible
		for size := 40; size <= 96; size++ {
			for _, step := range []int{1, 2, 3, 7, 1 << 10} {
				src := &chunkedSource{data: stream, step: step}
				requireSegments(t, New(src, []byte("--boundary"), size))
			}
		}
	})

	t.Run("skipping an unread segment", func(t *testing.T) {
		r := newReader(stream, 0)
		require.NoError(t, r.ConsumeBoundary())

		buf := make([]byte, 5)
		n, err := r.Read(buf)
		require.NoError(t, err)
		require.Equal(t, "first", string(buf[:n]))

		require.NoError(t, r.ConsumeBoundary())
		require.Equal(t, "second segment\r\n", readSegment(t, r))
	})

	t.Run("no delimiter at all", func(t *testing.T) {
		r := newReader("no delimiters here", 0)
		require.Equal(t, io.EOF, r.ConsumeBoundary())

		r = newReader("tail without a delimiter", 0)
		require.Equal(t, "tail without a delimiter", readSegment(t, r))
		require.Equal(t, io.EOF, r.ConsumeBoundary())
	})

	t.Run("delimiter without a terminator is data", func(t *testing.T) {
		r := newReader("a--boundaryzz--boundaryb\r\n--boundary--\r\n", 0)
		require.Equal(t, "a--boundaryzz--boundaryb\r\n", readSegment(t, r))
		require.Equal(t, io.EOF, r.ConsumeBoundary())
	})

	t.Run("empty segment", func(t *testing.T) {
		r := newReader("--boundary\r\n\r\n--boundary--\r\n", 0)
		require.NoError(t, r.ConsumeBoundary())
		require.Equal(t, "\r\n", readSegment(t, r))
		require.Equal(t, io.EOF, r.ConsumeBoundary())
	})

	t.Run("peek window widens after a partial discard", func(t *testing.T) {
		r := New(
			strings.NewReader("--boundary\r\n"+strings.Repeat("a", 100)+"\r\n--boundary--\r\n"),
			[]byte("--boundary"), 40,
		)
		require.NoError(t, r.ConsumeBoundary())

		window, err := r.Peek()
		require.NoError(t, err)
		require.Len(t, window, 40)

		// the leftover alone is not the whole window: a refill must widen it
		r.Discard(3)

		window, err = r.Peek()
		require.NoError(t, err)
		require.Len(t, window, 40)
	})

	t.Run("segment much larger than the buffer", func(t *testing.T) {
		payload := strings.Repeat("-x-y", 8*1024)
		r := New(
			strings.NewReader("--boundary\r\n"+payload+"\r\n--boundary--\r\n"),
			[]byte("--boundary"), 64,
		)
		require.NoError(t, r.ConsumeBoundary())
		require.Equal(t, payload+"\r\n", readSegment(t, r))
		require.Equal(t, io.EOF, r.ConsumeBoundary())
	})

	t.Run("source errors pass through verbatim", func(t *testing.T) {
		boom := errors.New("connection reset")
		r := New(failingSource{boom}, []byte("--boundary"), 0)

		_, err := io.ReadAll(r)
		require.ErrorIs(t, err, boom)
		require.ErrorIs(t, r.ConsumeBoundary(), boom)
	})
}
