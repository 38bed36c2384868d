package gamemap

import (
	"slices"
	"strings"
)

// Rect is an axis-aligned rectangle with inclusive edges used for rooms.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Coords {
	return Coords{(r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2}
}

// Width returns the number of columns covered by r.
func (r Rect) Width() int { return r.X2 - r.X1 + 1 }

// Height returns the number of rows covered by r.
func (r Rect) Height() int { return r.Y2 - r.Y1 + 1 }

// Contains reports whether c lies inside r.
func (r Rect) Contains(c Coords) bool {
	return c.X >= r.X1 && c.X <= r.X2 && c.Y >= r.Y1 && c.Y <= r.Y2
}

// Intersects reports whether r overlaps other (inclusive edges).
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// Grow returns r enlarged by n cells on every side.
func (r Rect) Grow(n int) Rect {
	return Rect{r.X1 - n, r.Y1 - n, r.X2 + n, r.Y2 + n}
}

// RectAround returns the rectangle spanning the two corners in any order.
func RectAround(a, b Coords) Rect {
	return Rect{min(a.X, b.X), min(a.Y, b.Y), max(a.X, b.X), max(a.Y, b.Y)}
}

// GameMap is a row-major grid of double-buffered tiles plus the features
// (doors) placed on it and the room rectangles carved into it. Its
// dimensions never change after New.
type GameMap struct {
	Width, Height int
	Tiles         []Tile
	Rooms         []Rect
	features      map[Coords]Feature
}

// New creates a GameMap filled with stone.
func New(width, height int) *GameMap {
	m := &GameMap{
		Width:    width,
		Height:   height,
		Tiles:    make([]Tile, width*height),
		features: make(map[Coords]Feature),
	}
	m.Fill(TileStone)
	return m
}

// InBounds reports whether c is within the map boundaries.
func (m *GameMap) InBounds(c Coords) bool {
	return c.X >= 0 && c.X < m.Width && c.Y >= 0 && c.Y < m.Height
}

// InInterior reports whether c is in bounds and not on the outermost ring.
func (m *GameMap) InInterior(c Coords) bool {
	return c.X >= 1 && c.X < m.Width-1 && c.Y >= 1 && c.Y < m.Height-1
}

// OnBorder reports whether c lies on the outermost ring of the map.
func (m *GameMap) OnBorder(c Coords) bool {
	return m.InBounds(c) && !m.InInterior(c)
}

// Index converts in-bounds coordinates to a tile index.
func (m *GameMap) Index(c Coords) int {
	return c.Y*m.Width + c.X
}

// CoordsOf converts a tile index back to coordinates.
func (m *GameMap) CoordsOf(i int) Coords {
	return Coords{i % m.Width, i / m.Width}
}

// At returns a pointer to the tile at c. Panics if out of bounds.
func (m *GameMap) At(c Coords) *Tile {
	return &m.Tiles[m.Index(c)]
}

// TypeAt returns the live tile type at c. Off-map cells read as stone, which
// keeps caverns and rooms from leaking past the edge.
func (m *GameMap) TypeAt(c Coords) TileType {
	if !m.InBounds(c) {
		return TileStone
	}
	return m.Tiles[m.Index(c)].Type
}

// Set writes t into the pending buffer at c. It becomes visible to queries
// on the next Commit.
func (m *GameMap) Set(c Coords, t TileType) {
	m.Tiles[m.Index(c)].ToBecome = t
}

// Fill sets every cell to t in both buffers.
func (m *GameMap) Fill(t TileType) {
	for i := range m.Tiles {
		m.Tiles[i].Type = t
		m.Tiles[i].ToBecome = t
	}
}

// Commit copies the pending buffer into the live buffer for every cell.
func (m *GameMap) Commit() {
	for i := range m.Tiles {
		m.Tiles[i].Type = m.Tiles[i].ToBecome
	}
}

// Neighbor returns the cell dist steps away from c in direction d, and
// whether it is on the map.
func (m *GameMap) Neighbor(c Coords, d Direction, dist int) (Coords, bool) {
	n := c.Add(d.Delta().Scale(dist))
	return n, m.InBounds(n)
}

// CountCircle counts cells of type t within a circular radius around c,
// excluding c itself. Radius 1 is the 8-cell Moore neighborhood; radius 2 is
// the 5x5 square minus its corners. Off-map cells count as stone.
func (m *GameMap) CountCircle(c Coords, radius int, t TileType) int {
	n := 0
	limit := radius*radius + radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 || dx*dx+dy*dy > limit {
				continue
			}
			if m.TypeAt(Coords{c.X + dx, c.Y + dy}) == t {
				n++
			}
		}
	}
	return n
}

// CountCross counts cells of type t along the four cardinal rays out to
// radius, excluding c itself. Off-map cells count as stone.
func (m *GameMap) CountCross(c Coords, radius int, t TileType) int {
	n := 0
	for _, d := range Cardinals {
		for dist := 1; dist <= radius; dist++ {
			nb := c.Add(d.Delta().Scale(dist))
			if m.TypeAt(nb) == t {
				n++
			}
		}
	}
	return n
}

// CountType returns how many cells currently hold type t.
func (m *GameMap) CountType(t TileType) int {
	n := 0
	for i := range m.Tiles {
		if m.Tiles[i].Type == t {
			n++
		}
	}
	return n
}

// Committed reports whether no cell has a pending change.
func (m *GameMap) Committed() bool {
	return !slices.ContainsFunc(m.Tiles, Tile.Pending)
}

// String renders the live buffer as ASCII, one row per line. Features are
// drawn with their rune.
func (m *GameMap) String() string {
	var sb strings.Builder
	sb.Grow((m.Width + 1) * m.Height)
	for y := 0; y < m.Height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < m.Width; x++ {
			c := Coords{x, y}
			if f, ok := m.features[c]; ok {
				sb.WriteRune(f.Rune)
				continue
			}
			sb.WriteRune(m.Tiles[m.Index(c)].Type.Rune())
		}
	}
	return sb.String()
}
