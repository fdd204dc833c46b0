package fixtext

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		r    rune
		want Class
	}{
		{'A', ClassLatinUpper},
		{'z', ClassLatinLower},
		{'é', ClassLatinLower},
		{'Ÿ', ClassLatinUpper},
		{'Ж', ClassOtherUpper},
		{'ж', ClassOtherLower},
		{'ǅ', ClassLatinUpper}, // titlecase digraph counts as upper
		{'日', ClassCaselessLetter},
		{'א', ClassCaselessLetter},
		{'ʰ', ClassLetterModifier},
		{'́', ClassMark}, // combining acute
		{'½', ClassNumberOther},
		{'7', ClassOther},
		{'+', ClassSymbolMath},
		{'¬', ClassSymbolMath},
		{'€', ClassSymbolCurrency},
		{'¥', ClassSymbolCurrency},
		{'¨', ClassSymbolModifier},
		{'©', ClassSymbolOther},
		{'😍', ClassSymbolOther},
		{',', ClassOther},
		{'‍', ClassOther}, // ZWJ, format
		{0x07, ClassControl},
		{0x9F, ClassControl},
		{' ', ClassWhitespace},
		{'\t', ClassWhitespace},
		{'', ClassWhitespace}, // NEL is whitespace, not control
		{0xD800, ClassSurrogate},
		{0xE000, ClassPrivateUse},
		{0x0378, ClassUnassigned},
		{-1, ClassUnassigned},
		{0x110000, ClassUnassigned},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Classify(c.r), "Classify(%#x %q)", c.r, string(c.r))
	}
}

func TestClassifyOverrides(t *testing.T) {
	// Punctuation-in-practice characters are declassed from their
	// nominal symbol categories.
	for _, r := range []rune{'^', '`', '~', '´', '＾', '｀', '～'} {
		assert.Equal(t, ClassOther, Classify(r), "%q", string(r))
	}

	// IPA letters read as unusual, except the schwa.
	assert.Equal(t, ClassLetterModifier, Classify('ɕ'))
	assert.Equal(t, ClassLetterModifier, Classify('ɸ'))
	assert.Equal(t, ClassLatinLower, Classify('ə'))

	// Variation selectors and skin tones act like the symbols they
	// attach to.
	assert.Equal(t, ClassSymbolOther, Classify('️'))
	assert.Equal(t, ClassSymbolOther, Classify(0xE0100))
	assert.Equal(t, ClassSymbolOther, Classify(0x1F3FB))

	// Unassigned codepoints in the emoji expansion window read as
	// symbols, not as unassigned.
	assert.Equal(t, ClassSymbolOther, Classify(0x1F7EC))
}

func TestClassifyTotal(t *testing.T) {
	// Spot-check block boundaries: every codepoint has some valid class.
	for _, r := range []rune{0, 0x7F, 0x80, 0xFF, 0xD7FF, 0xDFFF, 0xFFFD, 0xFFFF, 0x10000, 0x10FFFF} {
		c := Classify(r)
		assert.Less(t, uint8(c), uint8(numClasses), "rune %#x", r)
	}
}

func TestClassTableBlob(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteClassTable(&buf))
	require.NotZero(t, buf.Len())

	// WriteClassTable forced the build above, so a load must now be
	// rejected rather than silently swapping tables mid-process.
	err := ReadClassTable(bytes.NewReader(buf.Bytes()))
	require.ErrorIs(t, err, errTableInitialized)
}

func TestReadClassTableGarbage(t *testing.T) {
	err := ReadClassTable(bytes.NewReader([]byte("not gzip at all")))
	require.Error(t, err)
}
