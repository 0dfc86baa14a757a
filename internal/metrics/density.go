package metrics

import "github.com/san-kum/digirain/internal/rain"

// Density is the mean fraction of grid cells showing a glyph.
type Density struct {
	name    string
	total   float64
	samples int
}

func NewDensity() *Density {
	return &Density{name: "density"}
}

func (d *Density) Name() string { return d.name }

func (d *Density) Observe(stats rain.TickStats, g *rain.Grid) {
	if g == nil || g.Size() == 0 {
		return
	}
	cells := g.Size() * g.Size()
	d.total += float64(g.Filled()) / float64(cells)
	d.samples++
}

func (d *Density) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return d.total / float64(d.samples)
}

func (d *Density) Reset() {
	d.total = 0
	d.samples = 0
}
