// Package generate holds the map-generation algorithms and the registry that
// resolves them by name. Stage drives one algorithm step by step, and
// FinalizeMap runs once after the last stage.
//
// Every algorithm writes into the pending buffer of the grid (Tile.ToBecome)
// while reading the live buffer (Tile.Type), and commits once at the end of
// the step. Neighbor counts within a step therefore always observe the
// pre-step snapshot.
package generate

import (
	"log/slog"
	"math/rand"

	"mapforge/internal/gamemap"
)

// Generator is one map-generation algorithm. Implementations carry no
// mutable state: everything a step needs comes from the map, the step index
// and the stage config.
type Generator interface {
	Name() string
	// InitializeMap prepares the map once, before the first step. Both
	// buffers must agree when it returns.
	InitializeMap(env *Env, m *gamemap.GameMap, cfg ProcessConfig)
	// GenerateStep performs one unit of work and commits it. It reports
	// whether it wants to be called again.
	GenerateStep(env *Env, m *gamemap.GameMap, step int, cfg ProcessConfig) (bool, error)
}

// Stalling is implemented by generators whose false return can mean "no
// progress this call" rather than "finished". Drivers may retry them.
type Stalling interface {
	CanStall() bool
}

// DoorPlacer creates a random door-type feature at a map position.
type DoorPlacer interface {
	PlaceDoor(m *gamemap.GameMap, c gamemap.Coords)
}

// DataSource resolves a named map description.
type DataSource interface {
	Lookup(name string) (gamemap.Description, error)
}

// FeatureRegistrar receives the features that survive finalization.
type FeatureRegistrar interface {
	RegisterFeature(c gamemap.Coords, f gamemap.Feature)
}

// Env carries the collaborators a generation run shares across stages. The
// random source is injected so runs are reproducible from a seed.
type Env struct {
	Rand  *rand.Rand
	Doors DoorPlacer
	Data  DataSource
	Log   *slog.Logger
}

// NewEnv returns an Env seeded with seed and no collaborators.
func NewEnv(seed int64) *Env {
	return &Env{Rand: rand.New(rand.NewSource(seed))}
}

func (e *Env) logger() *slog.Logger {
	if e.Log == nil {
		return slog.Default()
	}
	return e.Log
}

func (e *Env) placeDoor(m *gamemap.GameMap, c gamemap.Coords) {
	if e.Doors != nil {
		e.Doors.PlaceDoor(m, c)
		return
	}
	m.PlaceFeature(c, gamemap.Feature{Kind: gamemap.FeatureDoor, Name: "door", Glyph: "🚪", Rune: '+'})
}
