package factory

import (
	"math/rand"

	"mapforge/assets"
	"mapforge/internal/component"
	"mapforge/internal/ecs"
	"mapforge/internal/gamemap"

	"github.com/gdamore/tcell/v2"
)

// Doors places random door kinds drawn from a weighted table.
type Doors struct {
	Rand  *rand.Rand
	Kinds []assets.DoorDef
}

// NewDoors returns a door factory over the built-in door table.
func NewDoors(rng *rand.Rand) *Doors {
	return &Doors{Rand: rng, Kinds: assets.Doors}
}

// PlaceDoor puts a random door kind on cell c.
func (d *Doors) PlaceDoor(m *gamemap.GameMap, c gamemap.Coords) {
	k := d.pick()
	m.PlaceFeature(c, gamemap.Feature{
		Kind:  gamemap.FeatureDoor,
		Name:  k.Name,
		Glyph: k.Glyph,
		Rune:  k.Rune,
	})
}

func (d *Doors) pick() assets.DoorDef {
	total := 0
	for _, k := range d.Kinds {
		total += max(k.Weight, 0)
	}
	if total == 0 {
		return assets.DoorDef{Name: "Door", Glyph: assets.GlyphDoor, Rune: '+', Color: tcell.ColorWhite}
	}
	roll := d.Rand.Intn(total)
	for _, k := range d.Kinds {
		if roll < k.Weight {
			return k
		}
		roll -= max(k.Weight, 0)
	}
	return d.Kinds[len(d.Kinds)-1]
}

// Registrar turns the features of a finished map into entities.
type Registrar struct {
	World *ecs.World
}

// NewRegistrar returns a registrar that spawns into w.
func NewRegistrar(w *ecs.World) *Registrar {
	return &Registrar{World: w}
}

func (r *Registrar) RegisterFeature(c gamemap.Coords, f gamemap.Feature) {
	switch f.Kind {
	case gamemap.FeatureDoor:
		NewDoor(r.World, c, f)
	default:
		NewFixture(r.World, c, f)
	}
}

// NewDoor creates a door entity for a door feature at c.
func NewDoor(w *ecs.World, c gamemap.Coords, f gamemap.Feature) ecs.EntityID {
	def, ok := assets.DoorByName(f.Name)
	if !ok {
		def = assets.DoorDef{Name: f.Name, Glyph: f.Glyph, Color: tcell.ColorWhite}
	}
	glyph := f.Glyph
	if glyph == "" {
		glyph = assets.GlyphDoor
	}
	return w.Spawn(
		component.At(c),
		component.Renderable{
			Glyph:       glyph,
			ASCII:       f.Rune,
			FGColor:     def.Color,
			BGColor:     tcell.ColorDefault,
			RenderOrder: 1,
		},
		component.Door{Name: def.Name, Locked: def.Locked},
		component.TagBlocking{},
	)
}

// NewFixture creates a plain entity for any other feature at c.
func NewFixture(w *ecs.World, c gamemap.Coords, f gamemap.Feature) ecs.EntityID {
	glyph := f.Glyph
	if glyph == "" {
		glyph = string(f.Rune)
	}
	return w.Spawn(
		component.At(c),
		component.Renderable{
			Glyph:       glyph,
			ASCII:       f.Rune,
			FGColor:     tcell.ColorWhite,
			BGColor:     tcell.ColorDefault,
			RenderOrder: 1,
		},
	)
}
