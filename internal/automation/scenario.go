package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/digirain/internal/config"
	"github.com/san-kum/digirain/internal/metrics"
	"github.com/san-kum/digirain/internal/rain"
	"github.com/san-kum/digirain/internal/sim"
	"github.com/san-kum/digirain/internal/storage"
)

var ErrEmptyScenario = errors.New("scenario has no steps")

// Scenario defines a scripted sequence of headless runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run. Zero fields fall back to the preset, or to
// the defaults when no preset is named. A seed left at 0 uses the current
// time.
type ScenarioStep struct {
	Preset  string `yaml:"preset"`
	Charset string `yaml:"charset"`
	Size    int    `yaml:"size"`
	Seed    int64  `yaml:"seed"`
	Ticks   int    `yaml:"ticks"`
	Save    bool   `yaml:"save"`
}

// StepResult pairs a step with its run and, when saved, the stored run id.
type StepResult struct {
	Step   int
	RunID  string
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(scenario.Steps) == 0 {
		return nil, ErrEmptyScenario
	}
	return &scenario, nil
}

// Config resolves the step against its preset and validates the result.
func (st ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if st.Preset != "" {
		cfg = config.GetPreset(st.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", st.Preset)
		}
	}

	if st.Charset != "" {
		cfg.Charset = st.Charset
	}
	if st.Size != 0 {
		cfg.Size = st.Size
	}
	if st.Seed != 0 {
		cfg.Seed = st.Seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if st.Ticks != 0 {
		cfg.Ticks = st.Ticks
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario executes all steps in order. Steps marked save are written to
// store; a nil store skips saving.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		rain.Logger().Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "preset", step.Preset)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		params, err := cfg.EngineParams()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		s := sim.New(params)
		for _, m := range metrics.Defaults() {
			s.AddMetric(m)
		}

		result, err := s.Run(ctx, sim.Config{Size: cfg.Size, Ticks: cfg.Ticks, Seed: cfg.Seed})
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: i + 1, Result: result}
		if step.Save && store != nil {
			sr.RunID, err = store.Save(storage.RunMetadata{Preset: step.Preset, Charset: cfg.Charset}, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		results = append(results, sr)
	}

	return results, nil
}
