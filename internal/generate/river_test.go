package generate

import (
	"testing"

	"mapforge/internal/analysis"
	"mapforge/internal/gamemap"

	"github.com/aquilax/go-perlin"
)

func TestRiverSingleRiverConnected(t *testing.T) {
	water := analysis.Is(gamemap.TileWater)
	for seed := int64(0); seed < 20; seed++ {
		env := NewEnv(seed)
		m := gamemap.New(60, 40)
		cfg := ProcessConfig{Generator: NameRiver, Initialize: true}
		if err := NewStage(River{}, cfg).Run(env, m); err != nil {
			t.Fatal(err)
		}
		if m.CountType(gamemap.TileWater) == 0 {
			t.Fatalf("seed=%d: no water", seed)
		}
		if regions := analysis.Regions(m, water); len(regions) != 1 {
			t.Errorf("seed=%d: river split into %d pieces:\n%s", seed, len(regions), m)
		}
		if !m.Committed() {
			t.Errorf("seed=%d: pending changes", seed)
		}
	}
}

func TestRiverStepsZeroStopsAfterOne(t *testing.T) {
	env := NewEnv(1)
	m := gamemap.New(30, 30)
	River{}.InitializeMap(env, m, ProcessConfig{})
	more, err := River{}.GenerateStep(env, m, 0, ProcessConfig{})
	if more || err != nil {
		t.Errorf("GenerateStep = %v, %v; want false, nil", more, err)
	}
}

func TestRiverBudgetedStepsContinue(t *testing.T) {
	env := NewEnv(1)
	m := gamemap.New(30, 30)
	cfg := ProcessConfig{Generator: NameRiver, Steps: 3, Initialize: true}
	s := NewStage(River{}, cfg)
	if err := s.Run(env, m); err != nil {
		t.Fatal(err)
	}
	if s.Steps() != 3 {
		t.Errorf("ran %d rivers, want 3", s.Steps())
	}
}

func TestRiverInitFillsStone(t *testing.T) {
	m := gamemap.New(8, 8)
	m.Fill(gamemap.TileAir)
	River{}.InitializeMap(NewEnv(1), m, ProcessConfig{})
	if m.CountType(gamemap.TileStone) != 64 || !m.Committed() {
		t.Error("InitializeMap did not fill both buffers with stone")
	}
}

func TestRiverLayersOverExistingMap(t *testing.T) {
	// Without initialization, only water is added.
	env := NewEnv(5)
	m := gamemap.New(30, 20)
	m.Fill(gamemap.TileAir)
	cfg := ProcessConfig{Generator: NameRiver, Initialize: false}
	if err := NewStage(River{}, cfg).Run(env, m); err != nil {
		t.Fatal(err)
	}
	if m.CountType(gamemap.TileStone) != 0 {
		t.Error("layered river added stone")
	}
	if m.CountType(gamemap.TileWater) == 0 {
		t.Error("layered river added no water")
	}
}

func TestRiverDeterministic(t *testing.T) {
	run := func() string {
		env := NewEnv(42)
		m := gamemap.New(40, 25)
		_ = NewStage(River{}, ProcessConfig{Steps: 2, Initialize: true}).Run(env, m)
		return m.String()
	}
	if a, b := run(), run(); a != b {
		t.Errorf("same seed produced different rivers:\n%s\n\n%s", a, b)
	}
}

func TestWalkRiverStopsAtLimit(t *testing.T) {
	for seed := int64(0); seed < 5; seed++ {
		m := gamemap.New(200, 200)
		noise := perlin.NewPerlin(riverNoiseAlpha, riverNoiseBeta, riverNoiseOctaves, seed)
		start := gamemap.Coords{X: 100, Y: 100}
		for _, sign := range []float64{1, -1} {
			// Each step moves at most one cell, so seven steps stay on the map.
			if n := walkRiver(m, noise, start, sign, 7); n != 7 {
				t.Errorf("seed=%d sign=%v: stamped %d cells, want 7", seed, sign, n)
			}
		}
	}
}
