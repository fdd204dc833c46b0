package fixtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuessBytes(t *testing.T) {
	cases := []struct {
		name     string
		in       []byte
		text     string
		encoding string
	}{
		{"empty", nil, "", "utf-8"},
		{"ascii", []byte("plain"), "plain", "utf-8"},
		{"utf8", []byte("caf\xc3\xa9"), "café", "utf-8"},
		{"utf8 bom", []byte("\xef\xbb\xbfcaf\xc3\xa9"), "café", "utf-8-sig"},
		{"cesu8", []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x8D}, "\U0001F60D", "utf-8"},
		{"java null", []byte{0x6E, 0xC0, 0x80}, "n\x00", "utf-8"},
		{"utf16le", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "hi", "utf-16le"},
		{"utf16be", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "hi", "utf-16be"},
		{"latin1", []byte("caf\xe9"), "café", "latin-1"},
		{"windows1252", []byte("\x93hi\x94"), "“hi”", "sloppy-windows-1252"},
	}
	for _, c := range cases {
		text, encoding := GuessBytes(c.in)
		assert.Equal(t, c.text, text, c.name)
		assert.Equal(t, c.encoding, encoding, c.name)
	}
}

func TestGuessBytesNeverEmptyHanded(t *testing.T) {
	// Whatever the bytes, something decodes.
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	text, encoding := GuessBytes(all)
	assert.NotEmpty(t, text)
	assert.NotEmpty(t, encoding)
}

func TestGuessBytesThenFix(t *testing.T) {
	// The intended pipeline: guess the bytes, then repair the text.
	raw := []byte("caf\xc3\xa9") // UTF-8 already, decoded as such
	text, _ := GuessBytes(raw)
	fixed, err := FixEncoding(text)
	assert.NoError(t, err)
	assert.Equal(t, "café", fixed)
}
