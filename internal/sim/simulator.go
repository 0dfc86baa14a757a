package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/digirain/internal/metrics"
	"github.com/san-kum/digirain/internal/rain"
	"github.com/san-kum/digirain/internal/rng"
)

// Simulator drives a rain engine without a display.
type Simulator struct {
	params    rain.Params
	metrics   []metrics.Metric
	observers []rain.Observer
}

func New(params rain.Params) *Simulator {
	return &Simulator{
		params:    params,
		metrics:   make([]metrics.Metric, 0),
		observers: make([]rain.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m metrics.Metric)  { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o rain.Observer) { s.observers = append(s.observers, o) }

// Run ticks a fresh engine cfg.Ticks times. When ctx is cancelled the
// partial result is returned together with ctx.Err().
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{
		Seed:    cfg.Seed,
		Size:    cfg.Size,
		Series:  make([]rain.TickStats, 0, cfg.Ticks),
		Metrics: make(map[string]float64),
	}

	record := rain.ObserverFunc(func(stats rain.TickStats, g *rain.Grid) {
		result.Series = append(result.Series, stats)
		for _, m := range s.metrics {
			m.Observe(stats, g)
		}
	})
	opts := []rain.Option{rain.WithObserver(record)}
	for _, o := range s.observers {
		opts = append(opts, rain.WithObserver(o))
	}

	engine, err := rain.New(cfg.Size, s.params, rng.New(cfg.Seed), opts...)
	if err != nil {
		return nil, err
	}

	var runErr error
	for i := 0; i < cfg.Ticks; i++ {
		if runErr = ctx.Err(); runErr != nil {
			break
		}
		engine.Tick()
	}

	result.Frames = engine.Frame()
	result.Grid = engine.Grid().Clone()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, runErr
}

// RunWithCallback ticks an engine until callback returns false, ctx is done,
// or cfg.Ticks is reached. Ticks == 0 runs until stopped.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(e *rain.Engine) bool) error {
	if cfg.Size <= 0 {
		return fmt.Errorf("%w: got %d", rain.ErrInvalidSize, cfg.Size)
	}
	if cfg.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", cfg.Ticks)
	}

	engine, err := rain.New(cfg.Size, s.params, rng.New(cfg.Seed))
	if err != nil {
		return err
	}
	for _, o := range s.observers {
		engine.AddObserver(o)
	}

	for cfg.Ticks == 0 || engine.Frame() < int64(cfg.Ticks) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		engine.Tick()
		if !callback(engine) {
			return nil
		}
	}
	return nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Size <= 0 {
		return fmt.Errorf("%w: got %d", rain.ErrInvalidSize, cfg.Size)
	}
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	return nil
}
