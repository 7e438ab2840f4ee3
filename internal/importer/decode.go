package importer

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DecodeText converts raw export bytes to a string. BOM-marked UTF-8/UTF-16
// is honored; other input that is not valid UTF-8 is read as Windows-1252,
// which older internet-banking exports still use.
func DecodeText(data []byte) (string, error) {
	hasBOM := bytes.HasPrefix(data, bomUTF8) || bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE)
	if !hasBOM && !utf8.Valid(data) {
		out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return "", fmt.Errorf("decoding windows-1252: %w", err)
		}
		return string(out), nil
	}

	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", fmt.Errorf("decoding statement text: %w", err)
	}
	return string(out), nil
}
