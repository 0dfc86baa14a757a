package sim

import (
	"context"
	"sync"

	"github.com/san-kum/digirain/internal/metrics"
	"github.com/san-kum/digirain/internal/rain"
)

// Ensemble runs the same configuration over consecutive seeds, one engine
// per goroutine.
type Ensemble struct {
	params    rain.Params
	numRuns   int
	seedStart int64

	// Metrics builds the metric set for each run. Metrics are stateful, so
	// every run gets its own instances.
	Metrics func() []metrics.Metric
}

func NewEnsemble(params rain.Params, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{
		params:    params,
		numRuns:   numRuns,
		seedStart: seedStart,
		Metrics:   metrics.Defaults,
	}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			s := New(e.params)
			if e.Metrics != nil {
				for _, m := range e.Metrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, cfgCopy)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
