package component

import (
	"mapforge/internal/ecs"
	"mapforge/internal/gamemap"
)

const CPosition ecs.ComponentType = 1

// Position places an entity on a map cell.
type Position struct {
	X, Y int
}

func (Position) Type() ecs.ComponentType { return CPosition }

// At returns the position of cell c.
func At(c gamemap.Coords) Position {
	return Position{X: c.X, Y: c.Y}
}

// Coords returns the map cell the entity stands on.
func (p Position) Coords() gamemap.Coords {
	return gamemap.Coords{X: p.X, Y: p.Y}
}
