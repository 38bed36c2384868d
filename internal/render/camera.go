package render

import "mapforge/internal/gamemap"

// Camera translates between map cells and screen positions.
// CellWidth columns are used per map cell.
type Camera struct {
	OffsetX    int
	OffsetY    int
	CellWidth  int
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera looking at the top-left corner of the map.
func NewCamera(cellW, viewW, viewH int) *Camera {
	return &Camera{CellWidth: max(cellW, 1), ViewWidth: viewW, ViewHeight: viewH}
}

// Cols returns how many map cells fit across the view.
func (c *Camera) Cols() int { return c.ViewWidth / c.CellWidth }

// Center repositions the camera so that cell p is in the middle.
func (c *Camera) Center(p gamemap.Coords) {
	c.OffsetX = p.X - c.Cols()/2
	c.OffsetY = p.Y - c.ViewHeight/2
}

// Pan moves the view by dx, dy cells.
func (c *Camera) Pan(dx, dy int) {
	c.OffsetX += dx
	c.OffsetY += dy
}

// Clamp keeps the view over a mapW x mapH map. A map smaller than the view
// is pinned to the top-left.
func (c *Camera) Clamp(mapW, mapH int) {
	c.OffsetX = max(min(c.OffsetX, mapW-c.Cols()), 0)
	c.OffsetY = max(min(c.OffsetY, mapH-c.ViewHeight), 0)
}

// WorldToScreen converts cell p to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(p gamemap.Coords) (sx, sy int, visible bool) {
	sx = (p.X - c.OffsetX) * c.CellWidth
	sy = p.Y - c.OffsetY
	visible = sx >= 0 && sx+c.CellWidth <= c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to the cell drawn there.
func (c *Camera) ScreenToWorld(sx, sy int) gamemap.Coords {
	return gamemap.Coords{X: sx/c.CellWidth + c.OffsetX, Y: sy + c.OffsetY}
}
