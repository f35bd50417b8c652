package textenc

import (
	"errors"
	"testing"

	"imfdata/internal/feeds"
)

func TestDecodeDeclaredCharset(t *testing.T) {
	raw := []byte{'c', 'a', 'f', 0xE9}
	got, err := Decode(raw, "windows-1252")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != "café" {
		t.Fatalf("unexpected decode result %q", got)
	}
}

func TestDecodeUnknownDeclaredLabelFallsThrough(t *testing.T) {
	got, err := Decode([]byte("plain ascii"), "not-a-charset")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != "plain ascii" {
		t.Fatalf("unexpected decode result %q", got)
	}
}

func TestDecodeStripsUTF8BOM(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("<?xml version=\"1.0\"?>")...)
	got, err := Decode(raw, "")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != `<?xml version="1.0"?>` {
		t.Fatalf("expected BOM to be stripped, got %q", got)
	}
}

func TestDecodeUTF16LittleEndian(t *testing.T) {
	raw := []byte{0xFF, 0xFE, 'H', 0x00, 'i', 0x00}
	got, err := Decode(raw, "")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != "Hi" {
		t.Fatalf("unexpected decode result %q", got)
	}
}

func TestDecodeHonorsXMLDeclaration(t *testing.T) {
	prefix := `<?xml version="1.0" encoding="ISO-8859-1"?><v>`
	raw := append([]byte(prefix), 0xE9, '<', '/', 'v', '>')
	got, err := Decode(raw, "")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := `<?xml version="1.0" encoding="ISO-8859-1"?><v>é</v>`
	if got != want {
		t.Fatalf("unexpected decode result %q", got)
	}
}

func TestDecodeRejectsUnknownXMLDeclaration(t *testing.T) {
	raw := []byte(`<?xml version="1.0" encoding="x-mystery"?><v/>`)
	_, err := Decode(raw, "")
	if !errors.Is(err, feeds.ErrUnexpectedFile) {
		t.Fatalf("expected unexpected-file error, got %v", err)
	}
}

func TestDecodePlainUTF8(t *testing.T) {
	got, err := Decode([]byte("naïve ✓"), "")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != "naïve ✓" {
		t.Fatalf("unexpected decode result %q", got)
	}
}

func TestDecodeRejectsUndecidableBytes(t *testing.T) {
	_, err := Decode([]byte{0x80, 0x81, 0xFE}, "")
	if !errors.Is(err, feeds.ErrUnexpectedFile) {
		t.Fatalf("expected unexpected-file error, got %v", err)
	}
}

func TestXMLDeclaredEncoding(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"double quoted", `<?xml version="1.0" encoding="UTF-8"?>`, "UTF-8", true},
		{"single quoted", `<?xml version='1.0' encoding='ISO-8859-1'?>`, "ISO-8859-1", true},
		{"no encoding attr", `<?xml version="1.0"?>`, "", false},
		{"not xml", `<html></html>`, "", false},
		{"unterminated", `<?xml version="1.0" encoding="UTF-8"`, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := xmlDeclaredEncoding([]byte(tc.raw))
			if ok != tc.ok || got != tc.want {
				t.Fatalf("xmlDeclaredEncoding(%q) = %q %v, want %q %v", tc.raw, got, ok, tc.want, tc.ok)
			}
		})
	}
}
