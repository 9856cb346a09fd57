package mime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComplies(t *testing.T) {
	for _, tc := range []string{"", Multipart, Multipart + ";", Multipart + "; boundary=xyz"} {
		require.True(t, Complies(Multipart, tc))
	}

	require.False(t, Complies(Multipart, FormUrlencoded))
}
