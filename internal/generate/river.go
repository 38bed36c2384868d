package generate

import (
	"math"

	"mapforge/internal/gamemap"

	"github.com/aquilax/go-perlin"
)

const (
	riverNoiseAlpha   = 2.0
	riverNoiseBeta    = 2.0
	riverNoiseOctaves = 3
	riverNoiseScale   = 0.05 // noise-space units per cell
	riverTurn         = 1.5  // heading turns per unit of noise
)

// River fills the map with stone and then cuts water channels through it.
// Each step carves one river that meanders along a noise field.
type River struct{}

func (River) Name() string { return NameRiver }

func (River) InitializeMap(_ *Env, m *gamemap.GameMap, _ ProcessConfig) {
	m.Fill(gamemap.TileStone)
}

// GenerateStep carves one river through a random cell. With no step budget
// the stage stops after a single river.
func (River) GenerateStep(env *Env, m *gamemap.GameMap, step int, cfg ProcessConfig) (bool, error) {
	if m.Width == 0 || m.Height == 0 {
		return false, nil
	}
	start := gamemap.Coords{X: env.Rand.Intn(m.Width), Y: env.Rand.Intn(m.Height)}
	noise := perlin.NewPerlin(riverNoiseAlpha, riverNoiseBeta, riverNoiseOctaves, env.Rand.Int63())
	// Noise can curl back on itself, so each walk is capped at a few map
	// perimeters.
	limit := 4 * (m.Width + m.Height)

	fwd := walkRiver(m, noise, start, 1, limit)
	back := walkRiver(m, noise, start, -1, limit)
	m.Commit()
	env.logger().Debug("river carved", "step", step, "start", start, "forward", fwd, "backward", back)
	return cfg.Steps != 0, nil
}

// walkRiver follows the noise heading from start, stamping water at every
// visited cell, until it leaves the map or takes limit steps. sign -1 walks
// against the heading. It returns the number of cells stamped.
func walkRiver(m *gamemap.GameMap, noise *perlin.Perlin, start gamemap.Coords, sign float64, limit int) int {
	x, y := float64(start.X)+0.5, float64(start.Y)+0.5
	n := 0
	for range limit {
		c := gamemap.Coords{X: int(math.Floor(x)), Y: int(math.Floor(y))}
		if !m.InBounds(c) {
			break
		}
		stampWater(m, c)
		n++
		angle := noise.Noise2D(x*riverNoiseScale, y*riverNoiseScale) * 2 * math.Pi * riverTurn
		x += sign * math.Cos(angle)
		y += sign * math.Sin(angle)
	}
	return n
}

// stampWater writes water over the in-bounds cells of the 3x3 block at c.
func stampWater(m *gamemap.GameMap, c gamemap.Coords) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			n := gamemap.Coords{X: c.X + dx, Y: c.Y + dy}
			if m.InBounds(n) {
				m.Set(n, gamemap.TileWater)
			}
		}
	}
}
