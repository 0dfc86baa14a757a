// Package theme defines the color schemes shared by every render host.
package theme

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme is a palette of hex colors.
type Theme struct {
	Name       string
	Head       string // glyph a content drip just reached
	Glyph      string // trail glyphs
	Background string
	Text       string
	Muted      string
	Accent     string
}

// Available themes
var (
	Matrix = Theme{
		Name:       "matrix",
		Head:       "#d8ffd8",
		Glyph:      "#00ff41", // Green phosphor
		Background: "#000000",
		Text:       "#00cc33",
		Muted:      "#005500",
		Accent:     "#88ff88",
	}

	Amber = Theme{
		Name:       "amber",
		Head:       "#fff2cc",
		Glyph:      "#ffbf00",
		Background: "#0d0800",
		Text:       "#ffcc44",
		Muted:      "#664400",
		Accent:     "#ffe08a",
	}

	Cyber = Theme{
		Name:       "cyber",
		Head:       "#ffffff",
		Glyph:      "#ff00ff", // Magenta
		Background: "#0a0a0a",
		Text:       "#00ffff",
		Muted:      "#666666",
		Accent:     "#ffff00",
	}

	Ice = Theme{
		Name:       "ice",
		Head:       "#f0ffff",
		Glyph:      "#00a8cc",
		Background: "#001a33",
		Text:       "#e0f0ff",
		Muted:      "#4488aa",
		Accent:     "#9be7ff",
	}

	Mono = Theme{
		Name:       "mono",
		Head:       "#ffffff",
		Glyph:      "#aaaaaa",
		Background: "#000000",
		Text:       "#ffffff",
		Muted:      "#555555",
		Accent:     "#dddddd",
	}

	// All available themes, in cycling order
	Themes = []Theme{Matrix, Amber, Cyber, Ice, Mono}
)

// Get returns a theme by name, falling back to Matrix.
func Get(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Matrix
}

// Index returns the position of name in Themes, or 0.
func Index(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

// Names returns the theme names in cycling order.
func Names() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Blend mixes two hex colors in Lab space; t=0 is a, t=1 is b. Invalid hex
// input yields white.
func Blend(a, b string, t float64) string {
	ca, err := colorful.Hex(a)
	if err != nil {
		return "#ffffff"
	}
	cb, err := colorful.Hex(b)
	if err != nil {
		return "#ffffff"
	}
	return ca.BlendLab(cb, t).Clamped().Hex()
}

// RGBA converts a hex color for image-based hosts. Invalid input yields
// opaque white.
func RGBA(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{255, 255, 255, 255}
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
