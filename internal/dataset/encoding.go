package dataset

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText converts raw delimited-text bytes to UTF-8.
//
// The byte encoding is detected statistically. UTF-8 (with or without BOM)
// passes through; anything else is decoded with the matching x/text
// decoder. A charset that cannot be decoded is a descriptive error naming
// the detected encoding. Returns the decoded bytes and the charset name.
func decodeText(data []byte) ([]byte, string, error) {
	if len(data) == 0 {
		return data, "UTF-8", nil
	}

	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil {
		// Nothing matched statistically; valid UTF-8 is still fine.
		if utf8.Valid(data) {
			return bytes.TrimPrefix(data, utf8BOM), "UTF-8", nil
		}
		return nil, "", fmt.Errorf("detect text encoding: %w", err)
	}

	charset := result.Charset
	if strings.EqualFold(charset, "UTF-8") || strings.EqualFold(charset, "ASCII") {
		return bytes.TrimPrefix(data, utf8BOM), charset, nil
	}

	enc, err := htmlindex.Get(charsetLabel(charset))
	if err != nil {
		return nil, charset, fmt.Errorf("unable to decode the file with detected encoding %s: %w", charset, err)
	}
	if enc == encoding.Replacement {
		// Labels like ISO-2022-KR map to a decoder that turns any input
		// into a single U+FFFD.
		return nil, charset, fmt.Errorf("unable to decode the file with detected encoding %s: its decoder yields only replacement characters", charset)
	}
	decoded, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, charset, fmt.Errorf("unable to decode the file with detected encoding %s: %w", charset, err)
	}
	return bytes.TrimPrefix(decoded, utf8BOM), charset, nil
}

// charsetLabel maps detector charset names onto WHATWG encoding labels
// where they differ.
func charsetLabel(charset string) string {
	switch strings.ToLower(charset) {
	case "gb-18030":
		return "gb18030"
	default:
		return charset
	}
}
