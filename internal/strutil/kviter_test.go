package strutil

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/require"
)

type strpair struct {
	K, V string
}

func collect(i iter.Seq2[string, string]) (pairs []strpair) {
	for k, v := range i {
		pairs = append(pairs, strpair{k, v})
	}

	return pairs
}

func TestWalkKV(t *testing.T) {
	t.Run("single flag", func(t *testing.T) {
		require.Equal(t, []strpair{{"abc", ""}}, collect(WalkKV("abc")))
	})

	t.Run("single pair", func(t *testing.T) {
		require.Equal(t, []strpair{{"abc", "cba"}}, collect(WalkKV("abc=cba")))
	})

	t.Run("multiple pairs", func(t *testing.T) {
		require.Equal(t,
			[]strpair{{"abc", "cba"}, {"hello", "world"}},
			collect(WalkKV("abc=cba; hello=world")),
		)
	})

	t.Run("quoted values", func(t *testing.T) {
		require.Equal(t,
			[]strpair{{"name", "field"}, {"filename", "my file.txt"}},
			collect(WalkKV(`name="field"; filename="my file.txt"`)),
		)
	})

	t.Run("empty input", func(t *testing.T) {
		require.Empty(t, collect(WalkKV("")))
	})

	t.Run("early stop", func(t *testing.T) {
		for range WalkKV("a=1; b=2; c=3") {
			break
		}
	})
}
