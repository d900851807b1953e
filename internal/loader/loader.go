// Package loader reads files fully into memory, normalizing text encodings
// and flagging binary content so callers can skip it.
package loader

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultMaxSize is the largest file the loader will read when no explicit
// limit is configured.
const DefaultMaxSize = 512 << 20

// binaryProbeSize is how much decoded content the NUL-byte heuristic
// inspects.
const binaryProbeSize = 4096

// ErrTooLarge reports a file exceeding the configured single-buffer limit.
// Callers treat it as a skip-with-warning, not a fatal failure.
var ErrTooLarge = errors.New("file exceeds size limit")

// View is the decoded content of one file. When Text is false the content
// could not be treated as text (binary data or a malformed encoding) and
// line counting should be skipped.
type View struct {
	Data []byte
	Text bool
}

// Load reads the file at path and returns its decoded view. A 3-byte UTF-8
// BOM is skipped; a 2-byte UTF-16 BOM (either endianness) triggers
// transcoding to UTF-8. Structurally invalid UTF-16 and NUL-bearing content
// yield a non-text view rather than an error. maxSize <= 0 selects
// DefaultMaxSize.
func Load(path string, maxSize int64) (View, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	info, err := os.Stat(path)
	if err != nil {
		return View{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > maxSize {
		return View{}, fmt.Errorf("%s (%d bytes): %w", path, info.Size(), ErrTooLarge)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return View{}, fmt.Errorf("read %s: %w", path, err)
	}

	if len(raw) == 0 {
		return View{Text: true}, nil
	}

	switch {
	case len(raw) >= 3 && raw[0] == 0xEF && raw[1] == 0xBB && raw[2] == 0xBF:
		raw = raw[3:]
	case len(raw) >= 2 && raw[0] == 0xFF && raw[1] == 0xFE:
		return decodeUTF16(raw[2:], unicode.LittleEndian)
	case len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF:
		return decodeUTF16(raw[2:], unicode.BigEndian)
	}

	if looksBinary(raw) {
		return View{Data: raw, Text: false}, nil
	}
	return View{Data: raw, Text: true}, nil
}

// decodeUTF16 transcodes a UTF-16 payload (BOM already stripped) to UTF-8.
// An odd byte count or a decode failure marks the view non-text instead of
// failing the file.
func decodeUTF16(payload []byte, endian unicode.Endianness) (View, error) {
	if len(payload)%2 != 0 {
		return View{Text: false}, nil
	}
	if len(payload) == 0 {
		return View{Text: true}, nil
	}

	dec := unicode.UTF16(endian, unicode.IgnoreBOM).NewDecoder()
	out, _, err := transform.Bytes(dec, payload)
	if err != nil {
		return View{Text: false}, nil
	}
	if looksBinary(out) {
		return View{Data: out, Text: false}, nil
	}
	return View{Data: out, Text: true}, nil
}

// looksBinary reports whether the first 4 KiB of content contains a NUL
// byte.
func looksBinary(data []byte) bool {
	probe := data
	if len(probe) > binaryProbeSize {
		probe = probe[:binaryProbeSize]
	}
	for _, b := range probe {
		if b == 0 {
			return true
		}
	}
	return false
}
