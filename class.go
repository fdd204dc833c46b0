package fixtext

import (
	"sync"
	"unicode"
)

// A Class is a coarse bucket for a Unicode codepoint, used to spot
// suspicious character sequences. Every codepoint from 0 to unicode.MaxRune
// has exactly one Class.
type Class uint8

const (
	ClassOther Class = iota // punctuation, digits, format characters
	ClassLatinUpper
	ClassLatinLower
	ClassOtherUpper // uppercase or titlecase letters outside the Latin script
	ClassOtherLower
	ClassCaselessLetter // ideographs and other letters with no case
	ClassLetterModifier
	ClassMark
	ClassNumberOther
	ClassSymbolMath
	ClassSymbolCurrency
	ClassSymbolModifier
	ClassSymbolOther
	ClassControl
	ClassSurrogate
	ClassPrivateUse
	ClassWhitespace
	ClassUnassigned

	numClasses
)

var classNames = [numClasses]string{
	"other", "latin-upper", "latin-lower", "other-upper", "other-lower",
	"caseless-letter", "letter-modifier", "mark", "number-other",
	"symbol-math", "symbol-currency", "symbol-modifier", "symbol-other",
	"control", "surrogate", "private-use", "whitespace", "unassigned",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "invalid"
}

// tableUnicodeVersion is the Unicode release the classification table is
// built from. Persisted blobs record it so that repair results stay stable
// across runs; it must match unicode.Version for the running toolchain.
const tableUnicodeVersion = unicode.Version

// Unassigned codepoints inside this window are classified as symbols rather
// than unassigned, on the theory that they are emoji allocated after the
// table's Unicode release. The bounds track the blocks Unicode has been
// filling with emoji (Mahjong Tiles through Symbols for Legacy Computing)
// and are tuned for tableUnicodeVersion, not derived.
const (
	emojiFutureLo = 0x1F000
	emojiFutureHi = 0x1FBFF
)

var (
	classOnce  sync.Once
	classTable []Class // indexed by codepoint, len unicode.MaxRune+1
)

// Classify returns the Class of r. It never fails; out-of-range values
// count as unassigned.
func Classify(r rune) Class {
	if r < 0 || r > unicode.MaxRune {
		return ClassUnassigned
	}
	return classes()[r]
}

func classes() []Class {
	classOnce.Do(func() {
		classTable = buildClassTable()
	})
	return classTable
}

// categoryClasses drives the bulk of the table build. Order matters only in
// that later entries would overwrite earlier ones; the general categories
// are disjoint.
var categoryClasses = []struct {
	table *unicode.RangeTable
	class Class
}{
	{unicode.Lu, ClassOtherUpper},
	{unicode.Ll, ClassOtherLower},
	{unicode.Lt, ClassOtherUpper},
	{unicode.Lo, ClassCaselessLetter},
	{unicode.Lm, ClassLetterModifier},
	{unicode.Mn, ClassMark},
	{unicode.Mc, ClassMark},
	{unicode.Me, ClassMark},
	{unicode.Nd, ClassOther},
	{unicode.Nl, ClassNumberOther},
	{unicode.No, ClassNumberOther},
	{unicode.Pc, ClassOther},
	{unicode.Pd, ClassOther},
	{unicode.Ps, ClassOther},
	{unicode.Pe, ClassOther},
	{unicode.Pi, ClassOther},
	{unicode.Pf, ClassOther},
	{unicode.Po, ClassOther},
	{unicode.Sm, ClassSymbolMath},
	{unicode.Sc, ClassSymbolCurrency},
	{unicode.Sk, ClassSymbolModifier},
	{unicode.So, ClassSymbolOther},
	{unicode.Cc, ClassControl},
	{unicode.Cf, ClassOther},
	{unicode.Co, ClassPrivateUse},
	{unicode.Cs, ClassSurrogate},
	{unicode.Zs, ClassWhitespace},
	{unicode.Zl, ClassWhitespace},
	{unicode.Zp, ClassWhitespace},
}

// Codepoints that nominally belong to a symbol or letter category but
// behave like ordinary punctuation in running text: caret, backtick, tilde,
// acute accent, and their fullwidth forms.
var punctuationOverrides = []rune{
	'^', '`', '~', '´',
	'＾', '｀', '～',
}

func buildClassTable() []Class {
	t := make([]Class, unicode.MaxRune+1)
	for i := range t {
		t[i] = ClassUnassigned
	}

	for _, cc := range categoryClasses {
		fillRangeTable(t, cc.table, cc.class)
	}

	// Split the cased letter categories by script.
	splitLatin(t, unicode.Lu, ClassLatinUpper)
	splitLatin(t, unicode.Lt, ClassLatinUpper)
	splitLatin(t, unicode.Ll, ClassLatinLower)

	// Whitespace controls (tab, newline, NEL, etc.) count as whitespace,
	// not as the control characters they technically are.
	for r := rune(0); r < 0x100; r++ {
		if unicode.IsSpace(r) {
			t[r] = ClassWhitespace
		}
	}

	// The IPA Extensions block is full of letters that almost never occur
	// in ordinary prose, so treat them like modifier letters. The schwa is
	// the exception: it shows up in real orthographies (e.g. Azerbaijani).
	for r := rune(0x0250); r <= 0x02AF; r++ {
		if r != 'ə' {
			t[r] = ClassLetterModifier
		}
	}

	// Variation selectors and skin-tone modifiers act as symbols glued to
	// the preceding emoji, whatever their nominal category says.
	for r := rune(0x180B); r <= 0x180D; r++ {
		t[r] = ClassSymbolOther
	}
	for r := rune(0xFE00); r <= 0xFE0F; r++ {
		t[r] = ClassSymbolOther
	}
	for r := rune(0xE0100); r <= 0xE01EF; r++ {
		t[r] = ClassSymbolOther
	}
	for r := rune(0x1F3FB); r <= 0x1F3FF; r++ {
		t[r] = ClassSymbolOther
	}

	for _, r := range punctuationOverrides {
		t[r] = ClassOther
	}

	// Optimistically assume unassigned codepoints in the active emoji
	// blocks are emoji from a newer Unicode release than ours.
	for r := rune(emojiFutureLo); r <= emojiFutureHi; r++ {
		if t[r] == ClassUnassigned {
			t[r] = ClassSymbolOther
		}
	}

	return t
}

func fillRangeTable(t []Class, rt *unicode.RangeTable, class Class) {
	for _, r := range rt.R16 {
		for c := rune(r.Lo); c <= rune(r.Hi); c += rune(r.Stride) {
			t[c] = class
		}
	}
	for _, r := range rt.R32 {
		for c := rune(r.Lo); c <= rune(r.Hi); c += rune(r.Stride) {
			t[c] = class
		}
	}
}

// splitLatin reassigns the members of rt that are in the Latin script from
// their generic cased class to the given Latin-specific one.
func splitLatin(t []Class, rt *unicode.RangeTable, class Class) {
	for _, r := range rt.R16 {
		for c := rune(r.Lo); c <= rune(r.Hi); c += rune(r.Stride) {
			if unicode.Is(unicode.Latin, c) {
				t[c] = class
			}
		}
	}
	for _, r := range rt.R32 {
		for c := rune(r.Lo); c <= rune(r.Hi); c += rune(r.Stride) {
			if unicode.Is(unicode.Latin, c) {
				t[c] = class
			}
		}
	}
}
