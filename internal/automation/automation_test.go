package automation

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/digirain/internal/config"
	"github.com/san-kum/digirain/internal/storage"
)

const scenarioYAML = `
name: smoke
description: two short runs
steps:
  - preset: drizzle
    size: 12
    seed: 7
    ticks: 50
    save: true
  - charset: "01"
    size: 8
    seed: 3
    ticks: 20
`

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "smoke" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario: %+v", sc)
	}
	if !sc.Steps[0].Save || sc.Steps[1].Save {
		t.Error("save flags not parsed")
	}

	if _, err := ParseScenario([]byte("name: empty\n")); !errors.Is(err, ErrEmptyScenario) {
		t.Errorf("expected ErrEmptyScenario, got %v", err)
	}
	if _, err := ParseScenario([]byte("steps: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestStepConfig(t *testing.T) {
	cfg, err := ScenarioStep{Preset: "storm", Size: 20}.Config()
	if err != nil {
		t.Fatal(err)
	}
	storm := config.GetPreset("storm")
	if cfg.Size != 20 {
		t.Errorf("size override lost: %d", cfg.Size)
	}
	if cfg.FPS != storm.FPS || cfg.Rain != storm.Rain {
		t.Error("preset values not kept")
	}

	cfg, err = ScenarioStep{Seed: 42}.Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 42 {
		t.Errorf("explicit seed lost: %d", cfg.Seed)
	}

	cfg, err = ScenarioStep{}.Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed == 0 {
		t.Error("a zero seed should be replaced by a time-based one")
	}

	if _, err := (ScenarioStep{Preset: "nope"}).Config(); err == nil {
		t.Error("expected unknown preset error")
	}
	if _, err := (ScenarioStep{Size: -1}).Config(); err == nil {
		t.Error("expected invalid size error")
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	store := storage.New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	results, err := RunScenario(context.Background(), sc, store)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].RunID == "" || results[1].RunID != "" {
		t.Errorf("only the first step should be saved: %q %q", results[0].RunID, results[1].RunID)
	}
	if len(results[0].Result.Series) != 50 || results[1].Result.Size != 8 {
		t.Error("step settings not applied")
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Preset != "drizzle" {
		t.Errorf("unexpected stored runs: %+v", runs)
	}
}

func TestSweepValues(t *testing.T) {
	tests := []struct {
		min, max, steps int
		want            []int
	}{
		{10, 40, 4, []int{10, 20, 30, 40}},
		{5, 5, 3, []int{5}},
		{1, 3, 5, []int{1, 2, 3}},
		{7, 20, 1, []int{7}},
	}

	for _, tt := range tests {
		sw := ParameterSweep{Min: tt.min, Max: tt.max, NumSteps: tt.steps}
		got := sw.Values()
		if len(got) != len(tt.want) {
			t.Errorf("Values(%d,%d,%d) = %v, want %v", tt.min, tt.max, tt.steps, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Values(%d,%d,%d) = %v, want %v", tt.min, tt.max, tt.steps, got, tt.want)
				break
			}
		}
	}
}

func TestRunSweep(t *testing.T) {
	base := config.DefaultConfig()
	base.Seed = 11
	base.Ticks = 100

	results, err := RunSweep(context.Background(), &ParameterSweep{
		Base:     base,
		Param:    "size",
		Min:      10,
		Max:      30,
		NumSteps: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []int{10, 20, 30} {
		if results[i].Value != want {
			t.Errorf("result %d value = %d, want %d", i, results[i].Value, want)
		}
		if results[i].MeanPopulation <= 0 || results[i].PeakPopulation < results[i].MeanPopulation {
			t.Errorf("implausible metrics at %d: %+v", want, results[i])
		}
		if results[i].Density < 0 || results[i].Density > 1 {
			t.Errorf("density out of range: %f", results[i].Density)
		}
	}
	if base.Size != config.DefaultSize {
		t.Error("sweep must not modify the base config")
	}
}

func TestRunSweepZeroSeedSharedAcrossPoints(t *testing.T) {
	base := config.DefaultConfig()
	base.Ticks = 50

	results, err := RunSweep(context.Background(), &ParameterSweep{
		Base:     base,
		Param:    "glyph_count",
		Min:      4,
		Max:      4,
		NumSteps: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Value != 4 {
		t.Fatalf("unexpected results: %+v", results)
	}
	if base.Seed != 0 {
		t.Error("sweep must not write the chosen seed into the base config")
	}
}

func TestRunSweepErrors(t *testing.T) {
	tests := []ParameterSweep{
		{Param: "gravity", Min: 1, Max: 2, NumSteps: 2},
		{Param: "size", Min: 1, Max: 2, NumSteps: 0},
		{Param: "size", Min: 5, Max: 2, NumSteps: 2},
		{Param: "content_velocity", Min: 0, Max: 2, NumSteps: 3},
	}
	for _, sw := range tests {
		if _, err := RunSweep(context.Background(), &sw); err == nil {
			t.Errorf("expected error for %+v", sw)
		}
	}
}
