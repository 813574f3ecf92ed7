// Package encoding normalizes the charset of uploaded bank statements.
// Banks export CSVs in whatever their backoffice produces: UTF-8 with or
// without BOM, UTF-16, or a legacy 8-bit codepage.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// peekSize is enough for BOM detection and charset heuristics.
const peekSize = 4096

type bom struct {
	prefix  []byte
	decoder *encoding.Decoder // nil means strip and pass through
}

var boms = []bom{
	{prefix: []byte{0xEF, 0xBB, 0xBF}},
	{prefix: []byte{0xFF, 0xFE}, decoder: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()},
	{prefix: []byte{0xFE, 0xFF}, decoder: unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()},
}

// NewUTF8Reader wraps r so that its content reads as UTF-8 regardless of the
// source charset. Detection order: BOM, UTF-8 validation, chardet heuristics,
// Windows-1252 fallback.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	buf, err := br.Peek(peekSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	for _, b := range boms {
		if !bytes.HasPrefix(buf, b.prefix) {
			continue
		}

		if b.decoder == nil {
			_, _ = br.Discard(len(b.prefix))
			return br, nil
		}

		return transform.NewReader(br, b.decoder), nil
	}

	if utf8.Valid(buf) {
		return br, nil
	}

	return transform.NewReader(br, legacyDecoder(buf)), nil
}

// legacyDecoder picks an 8-bit decoder for content that is not valid UTF-8.
func legacyDecoder(buf []byte) *encoding.Decoder {
	detector := chardet.NewTextDetector()

	result, err := detector.DetectBest(buf)
	if err != nil {
		return charmap.Windows1252.NewDecoder()
	}

	switch result.Charset {
	case "ISO-8859-9":
		return charmap.ISO8859_9.NewDecoder()
	case "ISO-8859-15":
		return charmap.ISO8859_15.NewDecoder()
	default:
		// Windows-1252 is a superset of ISO-8859-1 and the most common
		// legacy charset in bank exports.
		return charmap.Windows1252.NewDecoder()
	}
}
