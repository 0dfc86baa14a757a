package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/digirain/internal/rain"
	"github.com/san-kum/digirain/internal/rng"
)

func TestPopulation(t *testing.T) {
	m := NewPopulation()
	if m.Value() != 0 {
		t.Error("empty metric should be 0")
	}

	m.Observe(rain.TickStats{Active: 4}, nil)
	m.Observe(rain.TickStats{Active: 8}, nil)
	if m.Value() != 6 {
		t.Errorf("expected mean 6, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("reset should clear samples")
	}
}

func TestPeakPopulation(t *testing.T) {
	m := NewPeakPopulation()
	for _, n := range []int{3, 9, 2} {
		m.Observe(rain.TickStats{Active: n}, nil)
	}
	if m.Value() != 9 {
		t.Errorf("expected peak 9, got %f", m.Value())
	}
}

func TestSpawnRate(t *testing.T) {
	m := NewSpawnRate()
	m.Observe(rain.TickStats{Spawned: 3}, nil)
	m.Observe(rain.TickStats{}, nil)
	m.Observe(rain.TickStats{Spawned: 6}, nil)
	if m.Value() != 3 {
		t.Errorf("expected 3 per tick, got %f", m.Value())
	}
}

func TestDensityFromEngine(t *testing.T) {
	e, err := rain.New(4, rain.DefaultParams(), rng.New(1), rain.WithDrips(rain.Drip{
		Column:   1,
		Velocity: 1,
		Glyphs:   []string{"Q"},
	}))
	if err != nil {
		t.Fatal(err)
	}

	m := NewDensity()
	e.AddObserver(rain.ObserverFunc(m.Observe))
	e.Tick()
	e.Tick()

	// one then two of sixteen cells filled
	expected := (1.0/16 + 2.0/16) / 2
	if math.Abs(m.Value()-expected) > 1e-9 {
		t.Errorf("expected density %f, got %f", expected, m.Value())
	}

	m.Observe(rain.TickStats{}, nil)
	if math.Abs(m.Value()-expected) > 1e-9 {
		t.Error("nil grid should be ignored")
	}
}

func TestDefaults(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Defaults() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
	}
	if len(seen) != 4 {
		t.Errorf("expected 4 metrics, got %d", len(seen))
	}
}
