package component

import "mapforge/internal/ecs"

const CDoor ecs.ComponentType = 3

// Door is a doorway fixture carved by the dungeon generator.
type Door struct {
	Name   string
	Locked bool
	Open   bool
}

func (Door) Type() ecs.ComponentType { return CDoor }
