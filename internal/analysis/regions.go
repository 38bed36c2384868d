// Package analysis inspects finished or in-progress maps: connected regions
// of a tile class and reachability from a cell.
package analysis

import (
	"cmp"
	"slices"

	"mapforge/internal/gamemap"

	"codeberg.org/anaseto/gruid"
	"codeberg.org/anaseto/gruid/paths"
	"github.com/zyedidia/generic/mapset"
)

// Pass reports whether a tile type belongs to the class being analyzed.
type Pass func(gamemap.TileType) bool

// Is returns a Pass matching exactly the given types.
func Is(types ...gamemap.TileType) Pass {
	return func(t gamemap.TileType) bool {
		return slices.Contains(types, t)
	}
}

// Walkable matches open ground.
var Walkable = Is(gamemap.TileAir)

// Region is a cardinally connected set of cells, in row-major order.
type Region []gamemap.Coords

// tilePath implements paths.Pather over the live buffer of a map.
type tilePath struct {
	m    *gamemap.GameMap
	pass Pass
	nbs  paths.Neighbors
}

func (tp *tilePath) passable(p gruid.Point) bool {
	c := gamemap.Coords{X: p.X, Y: p.Y}
	return tp.m.InBounds(c) && tp.pass(tp.m.TypeAt(c))
}

func (tp *tilePath) Neighbors(p gruid.Point) []gruid.Point {
	if !tp.passable(p) {
		return nil
	}
	return tp.nbs.Cardinal(p, tp.passable)
}

// Analyzer computes connected components on one map. It reuses its search
// buffers between calls.
type Analyzer struct {
	m  *gamemap.GameMap
	pr *paths.PathRange
	tp *tilePath
}

// New returns an Analyzer for m.
func New(m *gamemap.GameMap, pass Pass) *Analyzer {
	return &Analyzer{
		m:  m,
		pr: paths.NewPathRange(gruid.NewRange(0, 0, m.Width, m.Height)),
		tp: &tilePath{m: m, pass: pass},
	}
}

// ConnectedTo returns the region containing start, or nil when start does
// not match the class.
func (a *Analyzer) ConnectedTo(start gamemap.Coords) Region {
	p := gruid.Point{X: start.X, Y: start.Y}
	if !a.tp.passable(p) {
		return nil
	}
	pts := a.pr.CCMap(a.tp, p)
	r := make(Region, 0, len(pts))
	for _, q := range pts {
		if a.tp.passable(q) {
			r = append(r, gamemap.Coords{X: q.X, Y: q.Y})
		}
	}
	slices.SortFunc(r, func(x, y gamemap.Coords) int {
		return a.m.Index(x) - a.m.Index(y)
	})
	return r
}

// Regions returns every region of the class, largest first. Regions of equal
// size keep row-major order of their first cell.
func (a *Analyzer) Regions() []Region {
	seen := mapset.New[gamemap.Coords]()
	var out []Region
	for i := range a.m.Tiles {
		c := a.m.CoordsOf(i)
		if seen.Has(c) || !a.tp.pass(a.m.Tiles[i].Type) {
			continue
		}
		r := a.ConnectedTo(c)
		for _, q := range r {
			seen.Put(q)
		}
		out = append(out, r)
	}
	slices.SortStableFunc(out, func(x, y Region) int {
		return cmp.Compare(len(y), len(x))
	})
	return out
}

// Regions returns the regions of m matching pass, largest first.
func Regions(m *gamemap.GameMap, pass Pass) []Region {
	return New(m, pass).Regions()
}

// ConnectedTo returns the region of m matching pass that contains start.
func ConnectedTo(m *gamemap.GameMap, start gamemap.Coords, pass Pass) Region {
	return New(m, pass).ConnectedTo(start)
}

// Connected reports whether all cells matching pass form at most one region.
func Connected(m *gamemap.GameMap, pass Pass) bool {
	return len(Regions(m, pass)) <= 1
}
