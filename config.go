package fixtext

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Configuration for a Fixer. The zero value is usable: every field falls
// back to the engine defaults.
type Config struct {
	// Encodings is the ordered list of candidate single-byte encodings
	// to try, most likely first. The order breaks ties between equally
	// plausible repairs, so changing it changes results.
	Encodings []string `yaml:"encodings"`

	// MaxPasses caps the fixed-point iteration of the repair loop.
	MaxPasses int `yaml:"max_passes"`

	// CacheEntries sizes the Fixer's result cache. Zero disables it.
	CacheEntries int64 `yaml:"cache_entries"`
}

// DefaultConfig returns the engine defaults: the standard candidate list,
// the standard pass cap, and no cache.
func DefaultConfig() Config {
	return Config{
		Encodings: append([]string(nil), defaultCandidates...),
		MaxPasses: defaultMaxPasses,
	}
}

// LoadConfig reads a YAML configuration file. Missing fields keep their
// defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("fixtext: reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("fixtext: parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if len(c.Encodings) == 0 {
		c.Encodings = d.Encodings
	}
	if c.MaxPasses <= 0 {
		c.MaxPasses = d.MaxPasses
	}
	return c
}

// validate checks that every configured encoding resolves to a single-byte
// codec in reg.
func (c Config) validate(reg *Registry) error {
	for _, name := range c.Encodings {
		if _, ok := reg.sloppy(name); !ok {
			return fmt.Errorf("fixtext: config names unknown single-byte encoding %q", name)
		}
	}
	if c.CacheEntries < 0 {
		return fmt.Errorf("fixtext: negative cache size %d", c.CacheEntries)
	}
	return nil
}
