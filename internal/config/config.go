package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/digirain/internal/glyph"
	"github.com/san-kum/digirain/internal/rain"
	"github.com/san-kum/digirain/internal/rng"
)

const (
	DefaultSize  = 38
	DefaultFPS   = 30
	DefaultTicks = 1000
	DefaultTheme = "matrix"
	MaxFPS       = 120
)

type Config struct {
	Size    int        `yaml:"size"`
	Seed    int64      `yaml:"seed"`
	FPS     int        `yaml:"fps"`
	Ticks   int        `yaml:"ticks"`
	Charset string     `yaml:"charset"`
	Theme   string     `yaml:"theme"`
	Rain    RainConfig `yaml:"rain"`
}

type RainConfig struct {
	ContentVelocity rng.Range `yaml:"content_velocity"`
	EraserVelocity  rng.Range `yaml:"eraser_velocity"`
	FollowVelocity  rng.Range `yaml:"follow_velocity"`
	GlyphCount      rng.Range `yaml:"glyph_count"`
	Flicker         rng.Range `yaml:"flicker"`
	InitialMin      float64   `yaml:"initial_min"`
	InitialMax      float64   `yaml:"initial_max"`
}

func DefaultConfig() *Config {
	p := rain.DefaultParams()
	return &Config{
		Size:    DefaultSize,
		FPS:     DefaultFPS,
		Ticks:   DefaultTicks,
		Charset: glyph.DefaultName,
		Theme:   DefaultTheme,
		Rain: RainConfig{
			ContentVelocity: p.ContentVelocity,
			EraserVelocity:  p.EraserVelocity,
			FollowVelocity:  p.FollowVelocity,
			GlyphCount:      p.GlyphCount,
			Flicker:         p.Flicker,
			InitialMin:      p.InitialMin,
			InitialMax:      p.InitialMax,
		},
	}
}

// Load reads a config file over the defaults.
func Load(path string) (*Config, error) {
	return LoadInto(path, DefaultConfig())
}

// LoadInto reads a config file over a copy of base, so keys missing from the
// file keep base's values. base itself is not modified.
func LoadInto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the host-level settings and the engine parameters.
func (c *Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: got %d", rain.ErrInvalidSize, c.Size)
	}
	if c.FPS < 1 || c.FPS > MaxFPS {
		return fmt.Errorf("fps must be in 1-%d, got %d", MaxFPS, c.FPS)
	}
	if c.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", c.Ticks)
	}
	_, err := c.EngineParams()
	return err
}

// EngineParams resolves the charset and converts the rain section into
// engine parameters.
func (c *Config) EngineParams() (rain.Params, error) {
	cs, err := glyph.Resolve(c.Charset)
	if err != nil {
		return rain.Params{}, err
	}
	p := rain.Params{
		Charset:         cs,
		ContentVelocity: c.Rain.ContentVelocity,
		EraserVelocity:  c.Rain.EraserVelocity,
		FollowVelocity:  c.Rain.FollowVelocity,
		GlyphCount:      c.Rain.GlyphCount,
		Flicker:         c.Rain.Flicker,
		InitialMin:      c.Rain.InitialMin,
		InitialMax:      c.Rain.InitialMax,
	}
	if err := p.Validate(); err != nil {
		return rain.Params{}, err
	}
	return p, nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
