package fixtext

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// "Sloppy" single-byte codecs. Each is a legacy charmap with its undefined
// byte values filled in with the codepoint of the same number, the way
// careless decoders (and the Repair Engine, deliberately) read them. With
// the holes filled, decoding any byte sequence always succeeds, which is
// what lets the engine test a legacy encoding against text the real codec
// would refuse.

// An EncodeError reports a character a charmap codec cannot represent.
type EncodeError struct {
	Rune     rune
	Encoding string
}

func (e *EncodeError) Error() string {
	return "fixtext: cannot encode " + string(e.Rune) + " in " + e.Encoding
}

// A SloppyCharmap is a single-byte codec whose decode side is total over
// all 256 byte values. Immutable once built; safe for concurrent use.
type SloppyCharmap struct {
	name     string
	toRune   [256]rune
	fromRune map[rune]byte
}

// newSloppyCharmap fills the undefined positions of cm with identity
// mappings and builds the inverse table in the same pass.
func newSloppyCharmap(name string, cm *charmap.Charmap) *SloppyCharmap {
	s := &SloppyCharmap{
		name:     name,
		fromRune: make(map[rune]byte, 256),
	}
	for i := 0; i < 256; i++ {
		r := cm.DecodeByte(byte(i))
		if r == utf8.RuneError {
			// Undefined in the legacy table; fall back to the
			// identically-numbered codepoint.
			r = rune(i)
		}
		s.toRune[i] = r
		if _, taken := s.fromRune[r]; !taken {
			s.fromRune[r] = byte(i)
		}
	}
	return s
}

func (s *SloppyCharmap) Name() string { return s.name }

// DecodeByte returns the codepoint for b. It is total: every byte value
// decodes to something.
func (s *SloppyCharmap) DecodeByte(b byte) rune { return s.toRune[b] }

// Contains reports whether r is one of the 256 codepoints this encoding
// can represent.
func (s *SloppyCharmap) Contains(r rune) bool {
	_, ok := s.fromRune[r]
	return ok
}

// Decode converts b to text. It never fails, whatever the error mode.
func (s *SloppyCharmap) Decode(b []byte, mode ErrorMode) (string, error) {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		out = utf8.AppendRune(out, s.toRune[c])
	}
	return string(out), nil
}

// Encode converts text to bytes. Characters outside the table follow the
// error mode: an EncodeError in strict mode, '?' in replace mode, dropped
// in ignore mode.
func (s *SloppyCharmap) Encode(text string, mode ErrorMode) ([]byte, error) {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		b, ok := s.fromRune[r]
		if !ok {
			switch mode {
			case ModeReplace:
				b = '?'
			case ModeIgnore:
				continue
			default:
				return nil, &EncodeError{Rune: r, Encoding: s.name}
			}
		}
		out = append(out, b)
	}
	return out, nil
}

// NewDecoder returns an incremental decoder. Single-byte decoding carries
// no state between chunks, so the transformer only has to mind buffer
// space.
func (s *SloppyCharmap) NewDecoder() transform.Transformer {
	return sloppyDecoder{s}
}

type sloppyDecoder struct {
	m *SloppyCharmap
}

func (sloppyDecoder) Reset() {}

func (d sloppyDecoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		r := d.m.toRune[src[nSrc]]
		if nDst+utf8.RuneLen(r) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc++
	}
	return nDst, nSrc, nil
}
