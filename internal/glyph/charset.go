// Package glyph holds the alphabets rain drips draw from and the sampler
// that picks glyphs out of them.
package glyph

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/san-kum/digirain/internal/rng"
)

// Blank is the glyph of an empty cell and the sole glyph of an eraser drip.
const Blank = " "

var (
	// ErrEmptyCharset indicates a charset without any usable glyph.
	ErrEmptyCharset = errors.New("glyph: charset has no glyphs")

	// ErrWideGlyph indicates a glyph that cannot fit in a single grid cell.
	ErrWideGlyph = errors.New("glyph: glyph is wider than one cell")

	// ErrUnknownCharset indicates a lookup for a name that is not registered.
	ErrUnknownCharset = errors.New("glyph: unknown charset")
)

// Charset is an ordered alphabet of single-cell glyphs. The order is stable
// so a seeded sampler reproduces the same glyphs.
type Charset []string

const (
	matrixGlyphs  = "'`,-_0123456789<>?ABCDEFGHIJKLMNOPQRSTUVWXYZ｡｢｣､･ｦｧｨｩｪｫｬｭｮｯｰｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜ"
	asciiGlyphs   = "!\"#$%&'`()*+,-_./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^abcdefghijklmnopqrstuvwxyz{|}~"
	kanaGlyphs    = "｡｢｣､･ｦｧｨｩｪｫｬｭｮｯｰｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝﾞﾟ"
	binaryGlyphs  = "01"
	symbolsGlyphs = "!@#$%^&*()_+-=[]{}|;':\",./<>?"
)

// DefaultName is the charset used when none is configured.
const DefaultName = "matrix"

var registry = map[string]Charset{
	"matrix":  mustParse(matrixGlyphs),
	"ascii":   mustParse(asciiGlyphs),
	"kana":    mustParse(kanaGlyphs),
	"binary":  mustParse(binaryGlyphs),
	"symbols": mustParse(symbolsGlyphs),
}

// Default returns the matrix charset.
func Default() Charset { return registry[DefaultName] }

// Lookup returns the registered charset with the given name.
func Lookup(name string) (Charset, error) {
	cs, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
	}
	return cs, nil
}

// Names lists the registered charsets in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the registered charset called value, or parses value as a
// literal alphabet when no such name exists.
func Resolve(value string) (Charset, error) {
	if value == "" {
		return Default(), nil
	}
	if cs, ok := registry[value]; ok {
		return cs, nil
	}
	return Parse(value)
}

// Parse builds a charset from the runes of s. Input is composed to NFC so a
// base letter and its combining mark form one glyph, full-width forms are
// narrowed to their half-width equivalents, and blanks and duplicates are
// dropped.
func Parse(s string) (Charset, error) {
	narrowed := width.Narrow.String(norm.NFC.String(s))
	seen := make(map[rune]bool)
	cs := make(Charset, 0, len(narrowed))
	for _, r := range narrowed {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || seen[r] {
			continue
		}
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			return nil, fmt.Errorf("%w: %q", ErrWideGlyph, r)
		}
		seen[r] = true
		cs = append(cs, string(r))
	}
	if len(cs) == 0 {
		return nil, ErrEmptyCharset
	}
	return cs, nil
}

func mustParse(s string) Charset {
	cs, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return cs
}

// Contains reports whether g is one of the charset's glyphs.
func (c Charset) Contains(g string) bool {
	for _, x := range c {
		if x == g {
			return true
		}
	}
	return false
}

// Sample returns one glyph chosen uniformly at random. An empty charset
// yields Blank.
func (c Charset) Sample(r rng.Rand) string {
	if len(c) == 0 {
		return Blank
	}
	return c[r.IntN(len(c))]
}

// SampleSequence returns n independently sampled glyphs. Callers must ask for
// at least one glyph; n < 1 returns the blank singleton so the result is
// never empty.
func (c Charset) SampleSequence(r rng.Rand, n int) []string {
	if n < 1 {
		return []string{Blank}
	}
	out := make([]string, n)
	for i := range out {
		out[i] = c.Sample(r)
	}
	return out
}

// Choose picks one glyph from pool uniformly, or Blank when pool is empty.
func Choose(r rng.Rand, pool []string) string {
	if len(pool) == 0 {
		return Blank
	}
	return pool[r.IntN(len(pool))]
}

// IsBlankPool reports whether pool is exactly the blank singleton.
func IsBlankPool(pool []string) bool {
	return len(pool) == 1 && pool[0] == Blank
}
