package rain

import (
	"fmt"

	"github.com/san-kum/digirain/internal/glyph"
)

// Drip is one animated column segment. Row is the leading edge; a drip whose
// Row equals the grid size has expired.
type Drip struct {
	Column    int
	Row       int
	Velocity  int
	Glyphs    []string
	CreatedAt int64
}

// IsEraser reports whether the drip only ever paints blanks.
func (d Drip) IsEraser() bool {
	return glyph.IsBlankPool(d.Glyphs)
}

// Expired reports whether the drip has walked off a grid of the given size.
func (d Drip) Expired(size int) bool {
	return d.Row >= size
}

// validate checks that the drip sits on a grid of the given size. Row may
// equal size, which marks the drip expired.
func (d Drip) validate(size int) error {
	if d.Column < 0 || d.Column >= size {
		return fmt.Errorf("%w: drip column %d outside [0, %d)", ErrInvalidRange, d.Column, size)
	}
	if d.Row < 0 || d.Row > size {
		return fmt.Errorf("%w: drip row %d outside [0, %d]", ErrInvalidRange, d.Row, size)
	}
	return nil
}

func (d Drip) clone() Drip {
	c := d
	c.Glyphs = append([]string(nil), d.Glyphs...)
	return c
}
