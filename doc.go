// Package fixtext repairs text mangled by encoding mix-ups (mojibake):
// UTF-8 that was decoded as Latin-1, Windows-1252, MacRoman, and friends,
// possibly several times over, plus the nonstandard UTF-8 dialects (CESU-8,
// Java's modified UTF-8) that produce such text in the first place.
//
// The entry points are FixEncoding and FixEncodingAndExplain, which take
// decoded text, never bytes. Repairs are conservative: when two
// interpretations are equally plausible the text comes back unchanged,
// because an unfixed string is recoverable and a wrongly "fixed" one is
// not. Every repair comes with a replayable Plan, and ApplyPlan reproduces
// it deterministically.
//
// The package also exposes its lower layers: Classify and Badness for
// scoring how mojibake-like a string is, the sloppy single-byte codecs and
// the variant UTF-8 decoder through a codec Registry, and GuessBytes as a
// last-resort decoder for byte slices of unknown encoding.
package fixtext
