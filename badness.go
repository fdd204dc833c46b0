package fixtext

import "unicode/utf8"

// Scoring for how much a string looks like mojibake. The score is a plain
// count of anomalous characters and adjacent-class pairs; it is only ever
// compared against the score of a candidate reinterpretation of the same
// text, never used as an absolute judgment.
//
// The pattern set and the weighting in cost were tuned against real-world
// corrupted text. Don't adjust them without re-running that comparison:
// repaired output is expected to be stable across releases.

// weirdAlone lists classes that are suspicious wherever they appear.
var weirdAlone = [numClasses]bool{
	ClassControl:    true,
	ClassSurrogate:  true,
	ClassPrivateUse: true,
	ClassUnassigned: true,
}

// exclusive symbol subtypes: two different ones in a row almost never
// happen in clean text, but are common in UTF-8 read as a legacy charmap.
var exclusiveSymbols = []Class{ClassSymbolMath, ClassSymbolCurrency, ClassSymbolModifier}

var weirdPairs [numClasses][numClasses]bool

func init() {
	// A lowercase Latin letter running straight into an uppercase or
	// titlecase letter of some other script is the classic signature of
	// UTF-8 lead bytes decoded as Latin-1 relatives.
	weirdPairs[ClassLatinLower][ClassOtherUpper] = true

	for _, a := range exclusiveSymbols {
		for _, b := range exclusiveSymbols {
			if a != b {
				weirdPairs[a][b] = true
			}
		}
	}

	// A combining mark needs a base character; following whitespace or a
	// control character it has nothing to combine with.
	weirdPairs[ClassWhitespace][ClassMark] = true
	weirdPairs[ClassControl][ClassMark] = true
}

// Badness counts the suspicious characters and adjacent-class pairs in s.
// Zero means s shows none of the signatures of mis-decoded text.
func Badness(s string) int {
	n := 0
	prev := ClassWhitespace // start of text: a leading mark is baseless
	for _, r := range s {
		c := Classify(r)
		if weirdAlone[c] {
			n++
		}
		if weirdPairs[prev][c] {
			n++
		}
		prev = c
	}
	return n
}

// IsSuspicious reports whether s is worth running through FixEncoding.
// It can return true for unusual but correct text; it exists so that bulk
// callers can skip the candidate search for the common clean case.
func IsSuspicious(s string) bool {
	return Badness(s) > 0
}

// cost ranks a string against candidate reinterpretations of itself.
// Weirdness dominates, but the length term keeps near-empty decodings from
// winning on zero weirdness alone.
func cost(s string) int {
	return 2*Badness(s) + utf8.RuneCountInString(s)
}
