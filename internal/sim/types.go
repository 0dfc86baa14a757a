package sim

import "github.com/san-kum/digirain/internal/rain"

type Config struct {
	Size  int
	Ticks int
	Seed  int64
}

type Result struct {
	Seed    int64
	Size    int
	Series  []rain.TickStats
	Metrics map[string]float64
	Grid    *rain.Grid
	Frames  int64
}

// Population returns the active drip count of every recorded tick.
func (r *Result) Population() []float64 {
	out := make([]float64, len(r.Series))
	for i, s := range r.Series {
		out[i] = float64(s.Active)
	}
	return out
}
