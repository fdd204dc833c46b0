package fixtext

import (
	"errors"
	"unicode/utf8"
)

// ErrBytesInput is returned when a repair function is handed a string that
// is not valid UTF-8, which means it holds raw undecoded bytes. The engine
// refuses to work on bytes: guessing a decoding here would reintroduce the
// class of bug it exists to repair. Decode the bytes first (GuessBytes can
// help as a last resort).
var ErrBytesInput = errors.New("fixtext: input is undecoded bytes, not text")

// defaultMaxPasses bounds the fixed-point iteration. Each productive pass
// strictly lowers the cost of the text, so the bound should never be hit;
// if it is, the engine records a give-up rather than looping.
const defaultMaxPasses = 8

// FixEncoding repairs mojibake in text, peeling away as many layers of
// encode/decode mix-ups as it can confidently identify. Text it cannot
// confidently repair is returned unchanged.
func FixEncoding(text string) (string, error) {
	fixed, _, err := FixEncodingAndExplain(text)
	return fixed, err
}

// FixEncodingAndExplain is FixEncoding plus a replayable record of the
// transformation steps taken. An empty plan means the text was judged
// already correct; a plan ending in a give-up step means the engine found
// problems it declined to guess about.
func FixEncodingAndExplain(text string) (string, Plan, error) {
	return fixAndExplain(DefaultRegistry(), defaultCandidates, defaultMaxPasses, text)
}

func fixAndExplain(reg *Registry, candidates []string, maxPasses int, text string) (string, Plan, error) {
	if !utf8.ValidString(text) {
		return "", nil, ErrBytesInput
	}

	var plan Plan
	cur := text
	for pass := 0; pass < maxPasses; pass++ {
		next, steps := fixOneStep(reg, candidates, cur)
		plan = append(plan, steps...)
		if next == cur {
			return cur, plan, nil
		}
		cur = next
	}
	// Out of passes with the text still changing. Stop guessing.
	return cur, append(plan, Step{Action: ActionGiveUp}), nil
}

// fixOneStep performs one round of the repair algorithm: find the best
// single reinterpretation of text, or decide that none can be trusted.
// It returns the (possibly unchanged) text and the steps that produced it.
func fixOneStep(reg *Registry, candidates []string, text string) (string, Plan) {
	if text == "" || allASCII(text) {
		return text, nil
	}

	utf8var, ok := reg.Lookup("utf-8-variants")
	if !ok {
		return text, nil
	}

	// Which single-byte encodings could have produced this text? No
	// decoding yet, just membership of every character in each table.
	var consistent []*SloppyCharmap
	for _, name := range candidates {
		cm, ok := reg.sloppy(name)
		if ok && representable(cm, text) {
			consistent = append(consistent, cm)
		}
	}

	// Undo a UTF-8 decode mix-up: push the text back through each
	// consistent charmap and re-decode the bytes as (variant) UTF-8.
	// Keep the cheapest strict improvement; candidate order breaks ties.
	curCost := cost(text)
	var best string
	var bestVia *SloppyCharmap
	bestCost := curCost
	for _, cm := range consistent {
		raw, err := cm.Encode(text, ModeStrict)
		if err != nil {
			continue
		}
		decoded, err := utf8var.Decode(raw, ModeStrict)
		if err != nil || decoded == text {
			continue
		}
		if c := cost(decoded); c < bestCost {
			best, bestVia, bestCost = decoded, cm, c
		}
	}
	if bestVia != nil {
		return best, Plan{
			{Action: ActionReinterpret, Encoding: bestVia.Name()},
			{Action: ActionDecode, Encoding: utf8var.Name()},
		}
	}

	latin1 := containsCodec(consistent, "latin-1")
	win1252 := containsCodec(consistent, "sloppy-windows-1252")

	switch {
	case latin1 && win1252:
		// The text fits in the large Latin-1/Windows-1252 overlap.
		// That is ambiguous in the safest possible way: call it
		// already correct.
		return text, nil

	case latin1:
		// Latin-1 but not Windows-1252 means the text contains C1
		// control codepoints, which mean nothing on their own: the
		// bytes were really Windows-1252 all along.
		lat, _ := reg.sloppy("latin-1")
		win, ok := reg.sloppy("sloppy-windows-1252")
		if !ok {
			return text, nil
		}
		raw, err := lat.Encode(text, ModeStrict)
		if err != nil {
			return text, nil
		}
		redone, _ := win.Decode(raw, ModeStrict)
		if redone == text {
			return text, nil
		}
		return redone, Plan{
			{Action: ActionReinterpret, Encoding: lat.Name()},
			{Action: ActionDecode, Encoding: win.Name()},
		}

	case len(consistent) >= 2:
		// Plausible under two or more unrelated single-byte
		// encodings and not Latin-1: inherently ambiguous without
		// real language detection, so refuse to guess.
		return text, Plan{{Action: ActionGiveUp}}

	default:
		return text, nil
	}
}

func allASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// representable reports whether every character of text is in cm's table.
func representable(cm *SloppyCharmap, text string) bool {
	for _, r := range text {
		if !cm.Contains(r) {
			return false
		}
	}
	return true
}

func containsCodec(cms []*SloppyCharmap, name string) bool {
	for _, cm := range cms {
		if cm.Name() == name {
			return true
		}
	}
	return false
}
