package metrics

import "github.com/san-kum/digirain/internal/rain"

// Metric reduces the per-tick engine counters to one number.
type Metric interface {
	Name() string
	Observe(stats rain.TickStats, g *rain.Grid)
	Value() float64
	Reset()
}

// Defaults returns one fresh instance of every metric.
func Defaults() []Metric {
	return []Metric{
		NewPopulation(),
		NewPeakPopulation(),
		NewDensity(),
		NewSpawnRate(),
	}
}
