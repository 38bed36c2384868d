package gamemap

import (
	"errors"
	"fmt"
)

var (
	// ErrSizeMismatch is returned when a description does not fit the map.
	ErrSizeMismatch = errors.New("description size does not match map")
	// ErrBadTile is returned for a character with no tile type.
	ErrBadTile = errors.New("unknown tile character")
)

// Description is a raw map layout: one string per row using the tile runes
// ('.', '#', '~'), and optional visibility rows of '0'/'1' of the same shape.
type Description struct {
	Name       string
	Rows       []string
	Visibility []string
}

// Size returns the width and height of the description. Width is the length
// of the longest row.
func (d Description) Size() (int, int) {
	w := 0
	for _, row := range d.Rows {
		w = max(w, len([]rune(row)))
	}
	return w, len(d.Rows)
}

// Reinitialize replaces every cell from desc. Both buffers receive the
// description's tile, features and rooms are cleared, and visibility bits
// are applied when present. The description must match the map's size.
func (m *GameMap) Reinitialize(desc Description) error {
	w, h := desc.Size()
	if w != m.Width || h != m.Height {
		return fmt.Errorf("%s is %dx%d, map is %dx%d: %w", desc.Name, w, h, m.Width, m.Height, ErrSizeMismatch)
	}
	if len(desc.Visibility) != 0 && len(desc.Visibility) != h {
		return fmt.Errorf("%s has %d visibility rows, want %d: %w", desc.Name, len(desc.Visibility), h, ErrSizeMismatch)
	}
	tiles := make([]Tile, len(m.Tiles))
	for y, row := range desc.Rows {
		runes := []rune(row)
		if len(runes) != w {
			return fmt.Errorf("%s row %d has %d cells, want %d: %w", desc.Name, y, len(runes), w, ErrSizeMismatch)
		}
		var vis []rune
		if len(desc.Visibility) != 0 {
			vis = []rune(desc.Visibility[y])
			if len(vis) != w {
				return fmt.Errorf("%s visibility row %d has %d cells, want %d: %w", desc.Name, y, len(vis), w, ErrSizeMismatch)
			}
		}
		for x, r := range runes {
			t, ok := ParseTileRune(r)
			if !ok {
				return fmt.Errorf("%s (%d,%d) %q: %w", desc.Name, x, y, r, ErrBadTile)
			}
			tile := &tiles[y*w+x]
			tile.Type, tile.ToBecome = t, t
			if vis != nil && vis[x] == '1' {
				tile.Visible = true
				tile.Known = true
			}
		}
	}
	m.Tiles = tiles
	m.Rooms = nil
	clear(m.features)
	return nil
}
