package config

import (
	"os"

	"github.com/indigo-web/multipart/mime"
)

type (
	Scanner struct {
		// BufferSize caps the amount of memory the boundary scanner occupies
		// at once. Parts of any length stream through it; only a single
		// header line has to fit, so the setting mostly trades syscall
		// frequency for memory.
		BufferSize int
	}

	Form struct {
		// ValuePrealloc is the initial capacity of the buffer an inline text
		// value is drained into.
		ValuePrealloc int
		// DefaultCharset is assumed for parts not declaring one explicitly.
		DefaultCharset mime.Charset
		// DefaultContentType is attributed to inline text parts, as those
		// carry no Content-Type line of their own.
		DefaultContentType mime.MIME
	}

	Save struct {
		// DirMode and FileMode apply to everything Collect creates.
		DirMode  os.FileMode
		FileMode os.FileMode
		// NameLength is the length of generated random names, used for the
		// destination directory and for files uploaded without a filename.
		NameLength int
	}
)

// Config holds settings used across the decoder, mainly restrictions,
// pre-allocations and defaults.
//
// Modify defaults (returned via Default()) instead of initializing the
// structure manually, otherwise zero limits will render the decoder useless.
type Config struct {
	Scanner Scanner
	Form    Form
	Save    Save
}

// Default returns default config. Those are initially well-balanced and
// rarely need adjustments.
func Default() *Config {
	return &Config{
		Scanner: Scanner{
			// boundaries straddling refills are reassembled transparently,
			// so the buffer doesn't need to fit anything in particular
			BufferSize: 64 * 1024,
		},
		Form: Form{
			ValuePrealloc:      1024,
			DefaultCharset:     mime.UTF8,
			DefaultContentType: mime.Plain,
		},
		Save: Save{
			DirMode:    0o700,
			FileMode:   0o600,
			NameLength: 10,
		},
	}
}
