package textenc

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"imfdata/internal/feeds"
)

// Decode converts raw payload bytes to a UTF-8 string. The declared label,
// when the transport supplied one, is consulted first; an unknown declared
// label is treated as absent rather than fatal because upstream servers have
// sent junk labels before. An unknown label inside the payload's own XML
// declaration is fatal: decoding past an explicit declaration would be a
// guess.
func Decode(raw []byte, declared string) (string, error) {
	if enc := lookup(declared); enc != nil {
		return decodeWith(enc, raw)
	}
	if enc, ok := sniffBOM(raw); ok {
		return decodeWith(enc, raw)
	}
	if label, ok := xmlDeclaredEncoding(raw); ok {
		enc := lookup(label)
		if enc == nil {
			return "", feeds.Wrap(feeds.ErrUnexpectedFile, "", "decode payload",
				fmt.Sprintf("unsupported declared encoding %q", label), nil)
		}
		return decodeWith(enc, raw)
	}
	if utf8.Valid(raw) {
		return trimBOM(string(raw)), nil
	}
	return "", feeds.Wrap(feeds.ErrUnexpectedFile, "", "decode payload",
		"character encoding could not be established", nil)
}

func lookup(label string) encoding.Encoding {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil
	}
	enc, _ := charset.Lookup(label)
	return enc
}

func sniffBOM(raw []byte) (encoding.Encoding, bool) {
	switch {
	case bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}):
		return unicode.UTF8BOM, true
	case bytes.HasPrefix(raw, []byte{0xFF, 0xFE}):
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), true
	case bytes.HasPrefix(raw, []byte{0xFE, 0xFF}):
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), true
	}
	return nil, false
}

// xmlDeclaredEncoding extracts the encoding pseudo-attribute from an XML
// declaration at the start of the payload.
func xmlDeclaredEncoding(raw []byte) (string, bool) {
	head := raw
	if len(head) > 256 {
		head = head[:256]
	}
	text := string(head)
	if !strings.HasPrefix(text, "<?xml") {
		return "", false
	}
	end := strings.Index(text, "?>")
	if end < 0 {
		return "", false
	}
	decl := text[:end]
	idx := strings.Index(decl, "encoding=")
	if idx < 0 {
		return "", false
	}
	rest := decl[idx+len("encoding="):]
	if len(rest) < 2 {
		return "", false
	}
	quote := rest[0]
	if quote != '"' && quote != '\'' {
		return "", false
	}
	closing := strings.IndexByte(rest[1:], quote)
	if closing < 0 {
		return "", false
	}
	return rest[1 : 1+closing], true
}

func decodeWith(enc encoding.Encoding, raw []byte) (string, error) {
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", feeds.Wrap(feeds.ErrUnexpectedFile, "", "decode payload", "decoder failed", err)
	}
	return trimBOM(string(decoded)), nil
}

func trimBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
