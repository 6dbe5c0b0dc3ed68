// Package textconv converts host text buffers to ProDOS TEXT conventions:
// CR line endings and 7-bit ASCII content. All functions are pure byte
// transforms with no I/O.
package textconv

import (
	"bytes"

	"github.com/arthur-debert/p8prep/pkg/errors"
)

// Mode selects how non-ASCII bytes are handled during conversion.
type Mode int

const (
	// Strict rejects any byte >= 0x80 with an encoding error.
	Strict Mode = iota
	// Lossy replaces any byte >= 0x80 with '?'.
	Lossy
)

// String returns the mode name for logging
func (m Mode) String() string {
	if m == Lossy {
		return "lossy"
	}
	return "strict"
}

// NormalizeLineEndings converts line endings to ProDOS CR.
// CRLF pairs collapse to a single CR first, then remaining lone LFs
// become CR. A CR already present is left untouched and never doubled,
// so the function is idempotent.
func NormalizeLineEndings(data []byte) []byte {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\r"))
	data = bytes.ReplaceAll(data, []byte("\n"), []byte("\r"))
	return data
}

// ConvertToASCII enforces 7-bit ASCII content. 0x7F is the highest byte
// accepted as ASCII. In Strict mode the first byte >= 0x80 aborts the
// conversion with an ENCODING error and no partial result. In Lossy mode
// every such byte is replaced with '?', preserving length.
func ConvertToASCII(data []byte, mode Mode) ([]byte, error) {
	idx := -1
	for i, b := range data {
		if b >= 0x80 {
			idx = i
			break
		}
	}

	if idx < 0 {
		return data, nil
	}

	if mode == Strict {
		return nil, errors.Newf(errors.ErrEncoding,
			"input contains non-ASCII byte 0x%02x at offset %d", data[idx], idx)
	}

	result := make([]byte, len(data))
	copy(result, data)
	for i := idx; i < len(result); i++ {
		if result[i] >= 0x80 {
			result[i] = '?'
		}
	}
	return result, nil
}
