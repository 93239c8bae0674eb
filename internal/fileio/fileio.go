// Package fileio reads EDL text files, tolerating the encodings legacy NLE
// exports actually ship with.
package fileio

import (
	"bytes"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/snorkem/cutlist/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadText reads path and returns its content as UTF-8 text. A UTF-8 BOM is
// stripped. Content that is not valid UTF-8 is decoded as Windows-1252,
// which covers the 8-bit exports older edit systems produce.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewIOError("failed to read file", err)
	}
	return DecodeText(data), nil
}

// DecodeText converts raw file bytes to UTF-8 text.
func DecodeText(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		// Windows-1252 maps every byte; this is unreachable in practice.
		return string(data)
	}
	return string(decoded)
}
