package parser

import (
	"bytes"
	"errors"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

var errNotText = errors.New("content is not text")

// decodeText accepts UTF-8 (with or without BOM), BOM-marked UTF-16 and
// Shift_JIS. Anything else is rejected as binary.
func decodeText(data []byte) (string, error) {
	var text string

	switch {
	case bytes.HasPrefix(data, bomUTF8):
		data = data[len(bomUTF8):]
		if !utf8.Valid(data) {
			return "", errNotText
		}
		text = string(data)
	case bytes.HasPrefix(data, bomUTF16BE), bytes.HasPrefix(data, bomUTF16LE):
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		if err != nil {
			return "", err
		}
		text = string(out)
	case utf8.Valid(data):
		text = string(data)
	default:
		out, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), data)
		if err != nil {
			return "", err
		}
		text = string(out)
	}

	if strings.ContainsRune(text, 0) || strings.ContainsRune(text, utf8.RuneError) {
		return "", errNotText
	}
	return strings.ReplaceAll(text, "\r\n", "\n"), nil
}
