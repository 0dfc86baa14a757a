package rain

import (
	"errors"

	"github.com/san-kum/digirain/internal/glyph"
)

// Domain errors for engine construction. Runtime operations never fail.
var (
	// ErrInvalidSize indicates a grid size that is not positive.
	ErrInvalidSize = errors.New("rain: grid size must be positive")

	// ErrInvalidRange indicates a malformed parameter range.
	ErrInvalidRange = errors.New("rain: invalid parameter range")

	// ErrEmptyCharset indicates engine params without any glyphs to draw.
	ErrEmptyCharset = glyph.ErrEmptyCharset
)
