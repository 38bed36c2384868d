package render

import (
	"sort"

	"mapforge/internal/component"
	"mapforge/internal/ecs"
	"mapforge/internal/gamemap"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUDRows is the number of rows reserved at the bottom of the screen.
const HUDRows = 5

// Renderer draws a map and its entities onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	theme  Theme
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen, theme Theme) *Renderer {
	r := &Renderer{screen: screen, theme: theme}
	r.Resize()
	return r
}

// Resize fits the viewport to the current screen size, keeping the offset.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	cam := NewCamera(r.theme.CellWidth, w, max(h-HUDRows, 0))
	if r.camera != nil {
		cam.OffsetX, cam.OffsetY = r.camera.OffsetX, r.camera.OffsetY
	}
	r.camera = cam
}

// Theme returns the active theme.
func (r *Renderer) Theme() Theme { return r.theme }

// SetTheme switches the theme and refits the viewport.
func (r *Renderer) SetTheme(t Theme) {
	r.theme = t
	r.Resize()
}

// Camera exposes the viewport.
func (r *Renderer) Camera() *Camera { return r.camera }

// CenterOn recenters the camera on cell c.
func (r *Renderer) CenterOn(c gamemap.Coords) { r.camera.Center(c) }

// DrawFrame renders tiles, placed features and entities. w may be nil
// while the map is still being generated.
func (r *Renderer) DrawFrame(m *gamemap.GameMap, w *ecs.World) {
	r.screen.Clear()
	r.camera.Clamp(m.Width, m.Height)
	r.drawMap(m)
	if w != nil {
		r.drawEntities(w, m)
	}
}

func (r *Renderer) drawMap(m *gamemap.GameMap) {
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c := gamemap.Coords{X: x, Y: y}
			sx, sy, onScreen := r.camera.WorldToScreen(c)
			if !onScreen {
				continue
			}
			tile := m.At(c)
			g := r.theme.Tile(*tile)
			style := tcell.StyleDefault.Foreground(g.FG).Background(tcell.ColorBlack)
			if f, ok := m.FeatureAt(c); ok && !tile.Hidden {
				r.putGlyph(sx, sy, r.glyphFor(f.Glyph, f.Rune), style.Foreground(tcell.ColorWhite))
				continue
			}
			r.putGlyph(sx, sy, g.Glyph, style)
		}
	}
}

type renderableEntity struct {
	order int
	pos   component.Position
	rend  component.Renderable
}

// drawEntities renders entities with Renderable and Position, ordered by
// RenderOrder.
func (r *Renderer) drawEntities(w *ecs.World, m *gamemap.GameMap) {
	ids := w.Query(component.CRenderable, component.CPosition)
	entities := make([]renderableEntity, 0, len(ids))
	for _, id := range ids {
		pos := w.Get(id, component.CPosition).(component.Position)
		rend := w.Get(id, component.CRenderable).(component.Renderable)
		if m.InBounds(pos.Coords()) && m.At(pos.Coords()).Hidden {
			continue
		}
		entities = append(entities, renderableEntity{order: rend.RenderOrder, pos: pos, rend: rend})
	}

	// Lower order is drawn first.
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].order < entities[j].order
	})

	for _, e := range entities {
		sx, sy, onScreen := r.camera.WorldToScreen(e.pos.Coords())
		if !onScreen {
			continue
		}
		style := tcell.StyleDefault.Foreground(e.rend.FGColor).Background(tcell.ColorBlack)
		r.putGlyph(sx, sy, r.glyphFor(e.rend.Glyph, e.rend.ASCII), style)
	}
}

// glyphFor falls back to the ASCII rune when the glyph is wider than a cell.
func (r *Renderer) glyphFor(glyph string, ascii rune) string {
	if glyph != "" && runewidth.StringWidth(glyph) <= r.theme.CellWidth {
		return glyph
	}
	if ascii != 0 {
		return string(ascii)
	}
	return "?"
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen
// position (x, y) and pads the rest of the cell.
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, runes[0], combc, style)
	for i := runewidth.StringWidth(glyph); i < r.theme.CellWidth; i++ {
		r.screen.SetContent(x+i, y, ' ', nil, style)
	}
}
