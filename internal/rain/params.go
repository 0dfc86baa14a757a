package rain

import (
	"fmt"

	"github.com/san-kum/digirain/internal/glyph"
	"github.com/san-kum/digirain/internal/rng"
)

// Params holds the ranges the engine draws from when it creates drips. All
// ranges are half-open.
type Params struct {
	Charset glyph.Charset

	ContentVelocity rng.Range
	EraserVelocity  rng.Range
	FollowVelocity  rng.Range
	GlyphCount      rng.Range
	Flicker         rng.Range

	// Initial population is drawn from [Size*InitialMin, Size*InitialMax).
	InitialMin float64
	InitialMax float64
}

// DefaultParams returns the classic look: fast content drips, slower erasers
// and a flicker period between 5 and 29 frames.
func DefaultParams() Params {
	return Params{
		Charset:         glyph.Default(),
		ContentVelocity: rng.Range{Min: 10, Max: 100},
		EraserVelocity:  rng.Range{Min: 5, Max: 50},
		FollowVelocity:  rng.Range{Min: 5, Max: 25},
		GlyphCount:      rng.Range{Min: 1, Max: 21},
		Flicker:         rng.Range{Min: 5, Max: 30},
		InitialMin:      0.25,
		InitialMax:      1.0,
	}
}

// Validate checks that every range can produce a positive value.
func (p Params) Validate() error {
	if len(p.Charset) == 0 {
		return ErrEmptyCharset
	}
	ranges := []struct {
		name string
		r    rng.Range
	}{
		{"content velocity", p.ContentVelocity},
		{"eraser velocity", p.EraserVelocity},
		{"follow velocity", p.FollowVelocity},
		{"glyph count", p.GlyphCount},
		{"flicker", p.Flicker},
	}
	for _, rr := range ranges {
		if rr.r.Min < 1 || rr.r.Max < rr.r.Min {
			return fmt.Errorf("%w: %s [%d, %d)", ErrInvalidRange, rr.name, rr.r.Min, rr.r.Max)
		}
	}
	if p.InitialMin < 0 || p.InitialMax < p.InitialMin {
		return fmt.Errorf("%w: initial population [%g, %g)", ErrInvalidRange, p.InitialMin, p.InitialMax)
	}
	return nil
}

// initialPopulation returns the range of content drips seeded for size.
func (p Params) initialPopulation(size int) rng.Range {
	return rng.Range{
		Min: int(float64(size) * p.InitialMin),
		Max: int(float64(size) * p.InitialMax),
	}
}
