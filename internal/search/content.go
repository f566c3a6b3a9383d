package search

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"file-indexer/internal/filesystem"
)

// errNotText marks content that still contains NUL characters once decoded.
var errNotText = errors.New("content is not text")

// ContentReader returns up to maxChars characters of text from the start of
// the file at path.
type ContentReader interface {
	ReadPreview(path string, maxChars int) (string, error)
}

// FileContentReader reads previews from the local filesystem. UTF-8 is
// assumed unless a byte order mark, or the NUL pattern of ASCII-range
// UTF-16, says otherwise; invalid bytes decode to U+FFFD.
type FileContentReader struct {
	Retry filesystem.RetryConfig
}

var _ ContentReader = FileContentReader{}

// sniffLen is how much of the file is inspected to pick a decoder.
const sniffLen = 8 << 10

// ReadPreview implements ContentReader.
func (r FileContentReader) ReadPreview(path string, maxChars int) (string, error) {
	f, err := filesystem.OpenWithRetry(path, r.Retry)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// A rune is at most 4 bytes; the extra 4 cover a byte order mark.
	limited := bufio.NewReaderSize(io.LimitReader(f, int64(4*maxChars+4)), sniffLen)
	head, err := limited.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return "", err
	}

	br := bufio.NewReader(transform.NewReader(limited, decoderFor(head)))

	var sb strings.Builder
	for n := 0; n < maxChars; n++ {
		ch, _, err := br.ReadRune()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if ch == 0 {
			return "", errNotText
		}
		sb.WriteRune(ch)
	}
	return sb.String(), nil
}

// decoderFor picks the decoder for a file starting with head.
func decoderFor(head []byte) transform.Transformer {
	if hasBOM(head) {
		return unicode.BOMOverride(unicode.UTF8.NewDecoder())
	}
	if order, ok := utf16Order(head); ok {
		return unicode.UTF16(order, unicode.IgnoreBOM).NewDecoder()
	}
	return unicode.UTF8.NewDecoder()
}

func hasBOM(head []byte) bool {
	switch {
	case len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF:
		return true
	case len(head) >= 2 && head[0] == 0xFF && head[1] == 0xFE:
		return true
	case len(head) >= 2 && head[0] == 0xFE && head[1] == 0xFF:
		return true
	}
	return false
}

// utf16Order recognizes BOM-less UTF-16 by its zero bytes: mostly-ASCII
// text has a NUL in nearly every code unit, always on the same side.
func utf16Order(head []byte) (unicode.Endianness, bool) {
	units := len(head) / 2
	var even, odd int
	for i := 0; i+1 < len(head); i += 2 {
		if head[i] == 0 {
			even++
		}
		if head[i+1] == 0 {
			odd++
		}
	}
	threshold := max(2, units/2)
	switch {
	case odd >= threshold && even*10 <= odd:
		return unicode.LittleEndian, true
	case even >= threshold && odd*10 <= even:
		return unicode.BigEndian, true
	}
	return false, false
}
