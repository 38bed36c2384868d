package ecs

import "slices"

// World owns the game entities a finished map hands over to play, and the
// components attached to them.
type World struct {
	nextID     EntityID
	alive      map[EntityID]bool
	components map[ComponentType]map[EntityID]Component
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		nextID:     1,
		alive:      make(map[EntityID]bool),
		components: make(map[ComponentType]map[EntityID]Component),
	}
}

// CreateEntity mints a new entity ID and marks it alive.
func (w *World) CreateEntity() EntityID {
	id := w.nextID
	w.nextID++
	w.alive[id] = true
	return id
}

// Spawn creates an entity carrying the given components.
func (w *World) Spawn(cs ...Component) EntityID {
	id := w.CreateEntity()
	for _, c := range cs {
		w.Add(id, c)
	}
	return id
}

// DestroyEntity removes the entity and all its components.
func (w *World) DestroyEntity(id EntityID) {
	if !w.alive[id] {
		return
	}
	delete(w.alive, id)
	for _, store := range w.components {
		delete(store, id)
	}
}

// Alive reports whether the entity exists.
func (w *World) Alive(id EntityID) bool {
	return w.alive[id]
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.alive)
}

// Add attaches a component to an entity, replacing one of the same type.
func (w *World) Add(id EntityID, c Component) {
	t := c.Type()
	if w.components[t] == nil {
		w.components[t] = make(map[EntityID]Component)
	}
	w.components[t][id] = c
}

// Get returns the component of the given type for entity id, or nil.
func (w *World) Get(id EntityID, t ComponentType) Component {
	return w.components[t][id]
}

// Remove detaches a component from an entity.
func (w *World) Remove(id EntityID, t ComponentType) {
	delete(w.components[t], id)
}

// Has reports whether entity id has a component of the given type.
func (w *World) Has(id EntityID, t ComponentType) bool {
	_, ok := w.components[t][id]
	return ok
}

// Query returns the live entities holding every listed component type, in
// creation order.
func (w *World) Query(types ...ComponentType) []EntityID {
	if len(types) == 0 {
		return nil
	}
	smallest := types[0]
	for _, t := range types[1:] {
		if len(w.components[t]) < len(w.components[smallest]) {
			smallest = t
		}
	}
	var result []EntityID
	for id := range w.components[smallest] {
		if !w.alive[id] {
			continue
		}
		match := true
		for _, t := range types {
			if t != smallest && !w.Has(id, t) {
				match = false
				break
			}
		}
		if match {
			result = append(result, id)
		}
	}
	slices.Sort(result)
	return result
}

// Clear removes every entity. IDs keep increasing across clears.
func (w *World) Clear() {
	clear(w.alive)
	clear(w.components)
}
