package metrics

import "github.com/san-kum/digirain/internal/rain"

// Population is the mean number of active drips per tick.
type Population struct {
	name    string
	total   float64
	samples int
}

func NewPopulation() *Population {
	return &Population{name: "population"}
}

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(stats rain.TickStats, g *rain.Grid) {
	p.total += float64(stats.Active)
	p.samples++
}

func (p *Population) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return p.total / float64(p.samples)
}

func (p *Population) Reset() {
	p.total = 0
	p.samples = 0
}

// PeakPopulation is the largest active drip count seen.
type PeakPopulation struct {
	name string
	peak int
}

func NewPeakPopulation() *PeakPopulation {
	return &PeakPopulation{name: "peak_population"}
}

func (p *PeakPopulation) Name() string { return p.name }

func (p *PeakPopulation) Observe(stats rain.TickStats, g *rain.Grid) {
	if stats.Active > p.peak {
		p.peak = stats.Active
	}
}

func (p *PeakPopulation) Value() float64 { return float64(p.peak) }

func (p *PeakPopulation) Reset() { p.peak = 0 }

// SpawnRate is the mean number of drips spawned per tick.
type SpawnRate struct {
	name    string
	spawned int
	samples int
}

func NewSpawnRate() *SpawnRate {
	return &SpawnRate{name: "spawn_rate"}
}

func (s *SpawnRate) Name() string { return s.name }

func (s *SpawnRate) Observe(stats rain.TickStats, g *rain.Grid) {
	s.spawned += stats.Spawned
	s.samples++
}

func (s *SpawnRate) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.spawned) / float64(s.samples)
}

func (s *SpawnRate) Reset() {
	s.spawned = 0
	s.samples = 0
}
