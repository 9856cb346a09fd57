package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Positive(t, cfg.Scanner.BufferSize)
	require.Positive(t, cfg.Form.ValuePrealloc)
	require.NotEmpty(t, cfg.Form.DefaultCharset)
	require.NotEmpty(t, cfg.Form.DefaultContentType)
	require.Positive(t, cfg.Save.NameLength)
}
