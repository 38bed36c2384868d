package generate

import (
	"mapforge/internal/gamemap"
)

// FinalizeStats summarizes one FinalizeMap pass.
type FinalizeStats struct {
	Sealed     int // border cells turned to stone
	Hidden     int // cells newly marked hidden
	Pruned     int // features discarded
	Registered int // features handed to the registrar
}

// FinalizeMap prepares a generated map for play. The outer ring becomes
// stone and cells buried in stone are hidden. Features standing in open
// ground (more than two air cross neighbors) are discarded; the rest are
// registered once. Running it again on the same map changes nothing.
func FinalizeMap(m *gamemap.GameMap, reg FeatureRegistrar) FinalizeStats {
	var st FinalizeStats
	for i := range m.Tiles {
		c := m.CoordsOf(i)
		if m.OnBorder(c) && m.Tiles[i].ToBecome != gamemap.TileStone {
			m.Set(c, gamemap.TileStone)
			st.Sealed++
		}
	}

	sealed := func(c gamemap.Coords) gamemap.TileType {
		if !m.InInterior(c) {
			return gamemap.TileStone
		}
		return m.At(c).ToBecome
	}

	for i := range m.Tiles {
		t := &m.Tiles[i]
		t.Visible = false
		t.Known = false
		if t.Hidden {
			continue
		}
		c := m.CoordsOf(i)
		buried := true
		for _, d := range gamemap.Directions {
			if sealed(c.Add(d.Delta())) != gamemap.TileStone {
				buried = false
				break
			}
		}
		if buried {
			t.Hidden = true
			st.Hidden++
		}
	}

	for _, c := range m.FeatureCoords() {
		f, _ := m.FeatureAt(c)
		open := 0
		for _, d := range gamemap.Cardinals {
			if sealed(c.Add(d.Delta())) == gamemap.TileAir {
				open++
			}
		}
		if open > 2 {
			m.RemoveFeature(c)
			st.Pruned++
			continue
		}
		if f.Registered {
			continue
		}
		if reg != nil {
			reg.RegisterFeature(c, f)
		}
		f.Registered = true
		m.PlaceFeature(c, f)
		st.Registered++
	}

	m.Commit()
	return st
}
