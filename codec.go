package fixtext

import (
	"strings"
	"sync"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// A Codec converts between byte sequences and text. Decode and Encode work
// on whole buffers; NewDecoder returns a fresh incremental decoder for
// chunked input, owned by a single decode operation.
type Codec interface {
	Name() string
	Decode(b []byte, mode ErrorMode) (string, error)
	Encode(text string, mode ErrorMode) ([]byte, error)
	NewDecoder() transform.Transformer
}

// A Registry maps encoding names to Codecs. Lookup is insensitive to case
// and to hyphen, underscore, and space variation, so "CESU-8", "cesu_8",
// and "cesu8" all find the same codec. Build a Registry once, at startup;
// it is safe for concurrent lookups but not for concurrent registration.
type Registry struct {
	byName map[string]Codec
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Codec)}
}

// Register adds c under its own name plus any aliases.
func (reg *Registry) Register(c Codec, aliases ...string) {
	reg.byName[normalizeName(c.Name())] = c
	for _, a := range aliases {
		reg.byName[normalizeName(a)] = c
	}
}

// Lookup finds the codec registered under name, if any.
func (reg *Registry) Lookup(name string) (Codec, bool) {
	c, ok := reg.byName[normalizeName(name)]
	return c, ok
}

// normalizeName reduces an encoding label to its canonical lookup form.
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch r {
		case '-', '_', ' ':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// The candidate single-byte encodings the repair engine tries, most likely
// first. The order is load-bearing: it breaks ties between candidate fixes
// with equal cost.
var defaultCandidates = []string{
	"sloppy-windows-1252",
	"latin-1",
	"macroman",
	"cp437",
	"sloppy-windows-1251",
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the process-wide registry holding the variant
// UTF-8 codec and the sloppy single-byte codecs. It is built on first use
// and must be treated as read-only.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		reg := NewRegistry()
		reg.Register(variantCodec{}, "utf-8-var", "cesu-8", "cesu8", "java-utf-8", "mutf-8")
		reg.Register(newSloppyCharmap("sloppy-windows-1252", charmap.Windows1252),
			"windows-1252", "cp1252")
		reg.Register(newSloppyCharmap("latin-1", charmap.ISO8859_1),
			"iso-8859-1", "iso8859-1", "8859", "latin1", "l1")
		reg.Register(newSloppyCharmap("macroman", charmap.Macintosh),
			"mac-roman", "macintosh", "mac")
		reg.Register(newSloppyCharmap("cp437", charmap.CodePage437),
			"cp-437", "ibm437", "437")
		reg.Register(newSloppyCharmap("sloppy-windows-1251", charmap.Windows1251),
			"windows-1251", "cp1251")
		defaultRegistry = reg
	})
	return defaultRegistry
}

// sloppy returns the registered sloppy charmap with the given name.
func (reg *Registry) sloppy(name string) (*SloppyCharmap, bool) {
	c, ok := reg.Lookup(name)
	if !ok {
		return nil, false
	}
	s, ok := c.(*SloppyCharmap)
	return s, ok
}
