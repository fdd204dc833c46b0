package fixtext

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
	"github.com/zeebo/xxh3"
)

// A Fixer runs the repair engine with a fixed configuration and memoizes
// results. Callers feeding line streams hit the same strings over and over
// (log prefixes, boilerplate), and the engine's candidate search is the
// expensive part, so a small cache pays for itself quickly.
//
// A Fixer is safe for concurrent use.
type Fixer struct {
	reg        *Registry
	candidates []string
	maxPasses  int
	cache      *ristretto.Cache
}

// cacheEntry keeps the input alongside the output so that a 64-bit hash
// collision degrades to a cache miss instead of a wrong answer.
type cacheEntry struct {
	in, out string
}

// NewFixer builds a Fixer from cfg, validating it against the default
// codec registry.
func NewFixer(cfg Config) (*Fixer, error) {
	return NewFixerWithRegistry(DefaultRegistry(), cfg)
}

// NewFixerWithRegistry is NewFixer with an explicit codec registry, for
// callers that assemble their own codecs.
func NewFixerWithRegistry(reg *Registry, cfg Config) (*Fixer, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(reg); err != nil {
		return nil, err
	}

	f := &Fixer{
		reg:        reg,
		candidates: cfg.Encodings,
		maxPasses:  cfg.MaxPasses,
	}
	if cfg.CacheEntries > 0 {
		cache, err := ristretto.NewCache(&ristretto.Config{
			NumCounters: cfg.CacheEntries * 10,
			MaxCost:     cfg.CacheEntries,
			BufferItems: 64,
		})
		if err != nil {
			return nil, fmt.Errorf("fixtext: creating result cache: %w", err)
		}
		f.cache = cache
	}
	return f, nil
}

// Fix repairs text the same way FixEncoding does, consulting the result
// cache first.
func (f *Fixer) Fix(text string) (string, error) {
	var key uint64
	if f.cache != nil {
		key = xxh3.HashString(text)
		if v, ok := f.cache.Get(key); ok {
			if e, ok := v.(cacheEntry); ok && e.in == text {
				return e.out, nil
			}
		}
	}

	fixed, _, err := fixAndExplain(f.reg, f.candidates, f.maxPasses, text)
	if err != nil {
		return "", err
	}

	if f.cache != nil {
		f.cache.Set(key, cacheEntry{in: text, out: fixed}, 1)
	}
	return fixed, nil
}

// FixAndExplain is the uncached explaining variant; plans are per-call
// values and are not memoized.
func (f *Fixer) FixAndExplain(text string) (string, Plan, error) {
	return fixAndExplain(f.reg, f.candidates, f.maxPasses, text)
}

// ApplyPlan replays p against text using the Fixer's registry.
func (f *Fixer) ApplyPlan(text string, p Plan) (string, error) {
	return applyPlan(f.reg, text, p)
}
