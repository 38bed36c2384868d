package render

import (
	"mapforge/assets"
	"mapforge/internal/gamemap"

	"github.com/gdamore/tcell/v2"
)

// TileGlyph is how one kind of cell is drawn.
type TileGlyph struct {
	Glyph string
	FG    tcell.Color
}

// Theme holds the glyphs for every tile type. CellWidth is the number of
// terminal columns one map cell takes: emoji need two.
type Theme struct {
	Name      string
	CellWidth int
	Air       TileGlyph
	Stone     TileGlyph
	Water     TileGlyph
	Hidden    TileGlyph
	Invalid   TileGlyph
}

// EmojiTheme draws the map with wide emoji, matching the door glyphs.
var EmojiTheme = Theme{
	Name:      "emoji",
	CellWidth: 2,
	Air:       TileGlyph{assets.GlyphAir, tcell.ColorGray},
	Stone:     TileGlyph{assets.GlyphStone, tcell.ColorDarkGray},
	Water:     TileGlyph{assets.GlyphWater, tcell.ColorBlue},
	Hidden:    TileGlyph{assets.GlyphHidden, tcell.ColorBlack},
	Invalid:   TileGlyph{"❓", tcell.ColorRed},
}

// ASCIITheme uses the same characters as the map dump, one column per cell.
var ASCIITheme = Theme{
	Name:      "ascii",
	CellWidth: 1,
	Air:       TileGlyph{string(gamemap.TileAir.Rune()), tcell.ColorGray},
	Stone:     TileGlyph{string(gamemap.TileStone.Rune()), tcell.ColorSilver},
	Water:     TileGlyph{string(gamemap.TileWater.Rune()), tcell.ColorDodgerBlue},
	Hidden:    TileGlyph{" ", tcell.ColorBlack},
	Invalid:   TileGlyph{"?", tcell.ColorRed},
}

// Themes lists the selectable themes by name.
var Themes = map[string]Theme{
	EmojiTheme.Name: EmojiTheme,
	ASCIITheme.Name: ASCIITheme,
}

// Tile returns the glyph for a cell. Hidden cells draw blank regardless
// of their type.
func (t Theme) Tile(tile gamemap.Tile) TileGlyph {
	if tile.Hidden {
		return t.Hidden
	}
	switch tile.Type {
	case gamemap.TileAir:
		return t.Air
	case gamemap.TileStone:
		return t.Stone
	case gamemap.TileWater:
		return t.Water
	}
	return t.Invalid
}
