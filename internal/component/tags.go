package component

import "mapforge/internal/ecs"

const CTagBlocking ecs.ComponentType = 4

// TagBlocking marks an entity that occupies its tile (blocks movement).
type TagBlocking struct{}

func (TagBlocking) Type() ecs.ComponentType { return CTagBlocking }
