package generate

import (
	"errors"
	"fmt"
	"math/rand"

	"mapforge/internal/gamemap"
)

// ErrNoDataSource is returned when a FromData stage runs without Env.Data.
var ErrNoDataSource = errors.New("no data source configured")

// FromData replaces the whole map with a stored description on its first
// step. Later steps do nothing.
type FromData struct{}

func (FromData) Name() string { return NameFromData }

func (FromData) InitializeMap(*Env, *gamemap.GameMap, ProcessConfig) {}

func (FromData) GenerateStep(env *Env, m *gamemap.GameMap, step int, cfg ProcessConfig) (bool, error) {
	if step > 0 {
		return false, nil
	}
	if env.Data == nil {
		return false, fmt.Errorf("%s %q: %w", NameFromData, cfg.Source, ErrNoDataSource)
	}
	desc, err := env.Data.Lookup(cfg.Source)
	if err != nil {
		return false, fmt.Errorf("%s: %w", NameFromData, err)
	}
	if err := m.Reinitialize(desc); err != nil {
		return false, fmt.Errorf("%s: %w", NameFromData, err)
	}
	env.logger().Debug("map loaded", "source", cfg.Source, "width", m.Width, "height", m.Height)
	return false, nil
}

func parseFromDataConfig(raw RawConfig, rng *rand.Rand) (ProcessConfig, error) {
	if raw.Source == "" {
		return ProcessConfig{}, fmt.Errorf("%s: %w", raw.Generator, ErrMissingSource)
	}
	return parseConfig(raw, rng, nil)
}

// sizeFromData reports the size of the description the stage loads.
func sizeFromData(raw RawConfig, env *Env) (int, int, bool) {
	if env == nil || env.Data == nil || raw.Source == "" {
		return 0, 0, false
	}
	desc, err := env.Data.Lookup(raw.Source)
	if err != nil {
		return 0, 0, false
	}
	w, h := desc.Size()
	return w, h, w > 0 && h > 0
}
