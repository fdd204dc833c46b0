package fixtext

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// Decoder for UTF-8 as actually found in the wild: standard UTF-8, plus
// CESU-8 surrogate pairs (an astral codepoint written as two 3-byte
// sequences derived from its UTF-16 form) and the two-byte encoding of NUL
// that Java's "modified UTF-8" produces. Both variant forms begin with a
// byte (0xED with a surrogate trailer, or 0xC0) that cannot occur inside a
// well-formed standard sequence, so the decoder scans for those bytes and
// treats everything between them as plain UTF-8.
//
// Encoding is not symmetrical: text is always encoded as standard UTF-8.
// The variant forms are errors we tolerate, not formats we produce.

// An ErrorMode selects what a codec does with undecodable or unencodable
// input.
type ErrorMode int

const (
	ModeStrict  ErrorMode = iota // surface an error
	ModeReplace                  // substitute U+FFFD (or '?' when encoding)
	ModeIgnore                   // drop the offending input
)

// A DecodeError reports a byte sequence that could not be decoded even
// under the relaxed variant rules.
type DecodeError struct {
	Offset int  // position of the bad byte in the input stream
	Byte   byte // the byte found there
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("fixtext: invalid byte %#02x at offset %d", e.Byte, e.Offset)
}

// A VariantDecoder converts variant UTF-8 to standard UTF-8. It implements
// transform.Transformer, so it can decode a stream in chunks split at
// arbitrary boundaries; the output is the same wherever the splits fall.
// A VariantDecoder must not be shared between concurrent decodes.
type VariantDecoder struct {
	Mode ErrorMode

	off int // bytes consumed in previous Transform calls
}

// Reset implements transform.Transformer.
func (d *VariantDecoder) Reset() { d.off = 0 }

func (d *VariantDecoder) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	defer func() { d.off += nSrc }()

	for nSrc < len(src) {
		p := nSrc + specialIndex(src[nSrc:])

		// Everything up to the next special byte is standard UTF-8,
		// and is complete: the special bytes can never be trailing
		// bytes of an ordinary sequence, so a sequence straddling p
		// would be invalid regardless of what follows.
		for nSrc < p {
			r, size := utf8.DecodeRune(src[nSrc:p])
			if r == utf8.RuneError && size == 1 {
				if !atEOF && p == len(src) && !utf8.FullRune(src[nSrc:]) {
					return nDst, nSrc, transform.ErrShortSrc
				}
				var n int
				n, err = d.badInput(dst[nDst:], src[nSrc], nSrc)
				if err != nil {
					return nDst, nSrc, err
				}
				nDst += n
				nSrc++
				continue
			}
			if nDst+size > len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
			nSrc += size
		}
		if nSrc == len(src) {
			break
		}

		switch src[p] {
		case 0xC0:
			if p+2 > len(src) {
				if !atEOF {
					return nDst, nSrc, transform.ErrShortSrc
				}
				// Truncated final chunk: a lone 0xC0 is plain
				// bad UTF-8.
				n, err := d.badInput(dst[nDst:], src[p], p)
				if err != nil {
					return nDst, nSrc, err
				}
				nDst += n
				nSrc++
				continue
			}
			if src[p+1] == 0x80 {
				if nDst+1 > len(dst) {
					return nDst, nSrc, transform.ErrShortDst
				}
				dst[nDst] = 0
				nDst++
				nSrc += 2
				continue
			}
			// 0xC0 followed by anything else is an overlong
			// encoding; reject the lead byte and rescan.
			n, err := d.badInput(dst[nDst:], src[p], p)
			if err != nil {
				return nDst, nSrc, err
			}
			nDst += n
			nSrc++

		case 0xED:
			switch surrogatePairAt(src[p:]) {
			case pairIncomplete:
				if !atEOF {
					return nDst, nSrc, transform.ErrShortSrc
				}
				fallthrough
			case pairNo:
				// Not a CESU-8 pair. Let standard UTF-8 have
				// it: 0xED also begins the ordinary encodings
				// of U+D000..U+D7FF.
				r, size := utf8.DecodeRune(src[p:])
				if r == utf8.RuneError && size <= 1 {
					if !atEOF && !utf8.FullRune(src[p:]) {
						return nDst, nSrc, transform.ErrShortSrc
					}
					n, err := d.badInput(dst[nDst:], src[p], p)
					if err != nil {
						return nDst, nSrc, err
					}
					nDst += n
					nSrc++
					continue
				}
				if nDst+size > len(dst) {
					return nDst, nSrc, transform.ErrShortDst
				}
				nDst += copy(dst[nDst:], src[p:p+size])
				nSrc += size
			case pairYes:
				high := rune(src[p+1]&0x0F)<<6 | rune(src[p+2]&0x3F)
				low := rune(src[p+4]&0x0F)<<6 | rune(src[p+5]&0x3F)
				r := 0x10000 + high<<10 + low
				if nDst+utf8.RuneLen(r) > len(dst) {
					return nDst, nSrc, transform.ErrShortDst
				}
				nDst += utf8.EncodeRune(dst[nDst:], r)
				nSrc += 6
			}
		}
	}
	return nDst, nSrc, nil
}

// badInput handles an undecodable byte at offset pos according to the
// decoder's error mode, returning the number of bytes written to dst.
func (d *VariantDecoder) badInput(dst []byte, b byte, pos int) (int, error) {
	switch d.Mode {
	case ModeReplace:
		if utf8.RuneLen(utf8.RuneError) > len(dst) {
			return 0, transform.ErrShortDst
		}
		return utf8.EncodeRune(dst, utf8.RuneError), nil
	case ModeIgnore:
		return 0, nil
	default:
		return 0, &DecodeError{Offset: d.off + pos, Byte: b}
	}
}

// specialIndex returns the index of the first byte in b that may start a
// variant sequence, or len(b) if there is none.
func specialIndex(b []byte) int {
	for i, c := range b {
		if c == 0xC0 || c == 0xED {
			return i
		}
	}
	return len(b)
}

type pairMatch int

const (
	pairNo         pairMatch = iota // definitely not a CESU-8 pair
	pairIncomplete                  // could be, but b is too short to tell
	pairYes
)

// surrogatePairAt reports whether b begins with a full six-byte CESU-8
// surrogate pair: ED A0-AF 80-BF ED B0-BF 80-BF.
func surrogatePairAt(b []byte) pairMatch {
	checks := [6]func(byte) bool{
		func(c byte) bool { return c == 0xED },
		func(c byte) bool { return c >= 0xA0 && c <= 0xAF },
		func(c byte) bool { return c >= 0x80 && c <= 0xBF },
		func(c byte) bool { return c == 0xED },
		func(c byte) bool { return c >= 0xB0 && c <= 0xBF },
		func(c byte) bool { return c >= 0x80 && c <= 0xBF },
	}
	for i, ok := range checks {
		if i >= len(b) {
			return pairIncomplete
		}
		if !ok(b[i]) {
			return pairNo
		}
	}
	return pairYes
}

// variantCodec exposes the variant decoder through the Codec interface.
type variantCodec struct{}

func (variantCodec) Name() string { return "utf-8-variants" }

func (variantCodec) Decode(b []byte, mode ErrorMode) (string, error) {
	out, _, err := transform.Bytes(&VariantDecoder{Mode: mode}, b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Encode produces standard UTF-8. In strict mode it rejects strings that
// are not valid UTF-8 (raw bytes smuggled in a string); in replace mode
// such bytes become U+FFFD, matching Go's string-to-rune conversion.
func (variantCodec) Encode(s string, mode ErrorMode) ([]byte, error) {
	if utf8.ValidString(s) {
		return []byte(s), nil
	}
	switch mode {
	case ModeReplace:
		return []byte(string([]rune(s))), nil
	case ModeIgnore:
		// Drop only the invalid bytes, which decode as RuneError with
		// size 1. A legitimate U+FFFD character decodes with size 3 and
		// is kept.
		out := make([]byte, 0, len(s))
		for i := 0; i < len(s); {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r != utf8.RuneError || size != 1 {
				out = utf8.AppendRune(out, r)
			}
			i += size
		}
		return out, nil
	default:
		return nil, ErrBytesInput
	}
}

func (variantCodec) NewDecoder() transform.Transformer {
	return &VariantDecoder{Mode: ModeStrict}
}
