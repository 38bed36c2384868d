package component

import (
	"mapforge/internal/ecs"

	"github.com/gdamore/tcell/v2"
)

const CRenderable ecs.ComponentType = 2

// Renderable is how an entity is drawn. ASCII replaces Glyph when the
// viewer runs with single-column cells.
type Renderable struct {
	Glyph       string
	ASCII       rune
	FGColor     tcell.Color
	BGColor     tcell.Color
	RenderOrder int
}

func (Renderable) Type() ecs.ComponentType { return CRenderable }
