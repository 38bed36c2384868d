package generate

import "mapforge/internal/gamemap"

const (
	cellularAirChance   = 0.6
	cellularOpenSteps   = 4 // steps 0-3 also open up sparse areas
	cellularLastStep    = 8
	cellularWallNear    = 5 // stone neighbors (radius 1) that make stone
	cellularSparseStone = 2 // fewer stone within radius 2 makes air
)

// CellularAutomata grows caverns from random noise. The rule depends only
// on the absolute step index: steps 0-3 smooth and open, steps 4-8 smooth
// by majority. It is done after step 8.
type CellularAutomata struct{}

func (CellularAutomata) Name() string { return NameCellularAutomata }

// InitializeMap makes each cell air with a fixed probability, else stone.
func (CellularAutomata) InitializeMap(env *Env, m *gamemap.GameMap, _ ProcessConfig) {
	for i := range m.Tiles {
		t := gamemap.TileStone
		if env.Rand.Float64() < cellularAirChance {
			t = gamemap.TileAir
		}
		m.Tiles[i].Type = t
		m.Tiles[i].ToBecome = t
	}
}

// GenerateStep applies one automaton generation to the whole grid.
func (CellularAutomata) GenerateStep(_ *Env, m *gamemap.GameMap, step int, _ ProcessConfig) (bool, error) {
	if step > cellularLastStep {
		return false, nil
	}
	for i := range m.Tiles {
		c := m.CoordsOf(i)
		near := m.CountCircle(c, 1, gamemap.TileStone)
		next := m.Tiles[i].Type
		if step < cellularOpenSteps {
			if near >= cellularWallNear {
				next = gamemap.TileStone
			} else if m.CountCircle(c, 2, gamemap.TileStone) < cellularSparseStone {
				next = gamemap.TileAir
			}
		} else {
			next = gamemap.TileAir
			if near >= cellularWallNear {
				next = gamemap.TileStone
			}
		}
		m.Set(c, next)
	}
	m.Commit()
	return step < cellularLastStep, nil
}
