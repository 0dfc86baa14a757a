package config

import (
	"sort"

	"github.com/san-kum/digirain/internal/rng"
)

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"drizzle": withRain(DefaultConfig(), func(c *Config) {
		c.Rain.ContentVelocity = rng.Range{Min: 40, Max: 160}
		c.Rain.GlyphCount = rng.Range{Min: 1, Max: 6}
		c.Rain.InitialMin = 0.1
		c.Rain.InitialMax = 0.3
	}),
	"storm": withRain(DefaultConfig(), func(c *Config) {
		c.FPS = 60
		c.Rain.ContentVelocity = rng.Range{Min: 2, Max: 12}
		c.Rain.EraserVelocity = rng.Range{Min: 2, Max: 20}
		c.Rain.FollowVelocity = rng.Range{Min: 2, Max: 10}
		c.Rain.Flicker = rng.Range{Min: 2, Max: 8}
		c.Rain.InitialMin = 0.5
		c.Rain.InitialMax = 1.5
	}),
	"binary": withRain(DefaultConfig(), func(c *Config) {
		c.Charset = "binary"
		c.Theme = "cyber"
	}),
	"kana": withRain(DefaultConfig(), func(c *Config) {
		c.Charset = "kana"
		c.Rain.GlyphCount = rng.Range{Min: 8, Max: 30}
	}),
}

func withRain(c *Config, f func(*Config)) *Config {
	f(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
