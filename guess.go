package fixtext

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
)

// Last-resort decoding of bytes whose encoding is unknown. The repair
// engine itself refuses raw bytes; GuessBytes is the separate, explicitly
// heuristic front door for callers that have nothing better than a byte
// slice. It is deliberately simple: byte-order marks, then UTF-8 (with
// variants), then the Latin-1 versus Windows-1252 coin toss decided by
// whether the C1 range is in use.

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// GuessBytes decodes b using the most plausible encoding it can find and
// reports which one it used. It never fails; in the worst case every byte
// decodes through a sloppy charmap. The result has usually not been
// repaired: feed it to FixEncoding next.
func GuessBytes(b []byte) (text string, encoding string) {
	reg := DefaultRegistry()

	if bytes.HasPrefix(b, bomUTF16BE) || bytes.HasPrefix(b, bomUTF16LE) {
		endian := unicode.BigEndian
		name := "utf-16be"
		if b[0] == 0xFF {
			endian = unicode.LittleEndian
			name = "utf-16le"
		}
		dec := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
		if decoded, err := dec.Bytes(b); err == nil {
			return string(decoded), name
		}
		// Bogus UTF-16; fall through to the single-byte guesses.
	}

	utf8Input := b
	sawBOM := false
	if bytes.HasPrefix(utf8Input, bomUTF8) {
		utf8Input = utf8Input[len(bomUTF8):]
		sawBOM = true
	}
	utf8var, _ := reg.Lookup("utf-8-variants")
	if decoded, err := utf8var.Decode(utf8Input, ModeStrict); err == nil {
		name := "utf-8"
		if sawBOM {
			name = "utf-8-sig"
		}
		return decoded, name
	}

	// A byte in 0x80-0x9F used as a character is a Windows-1252 tell;
	// real Latin-1 text has no use for the C1 controls.
	name := "latin-1"
	for _, c := range b {
		if c >= 0x80 && c <= 0x9F {
			name = "sloppy-windows-1252"
			break
		}
	}
	cm, _ := reg.sloppy(name)
	text, _ = cm.Decode(b, ModeStrict)
	return text, name
}
