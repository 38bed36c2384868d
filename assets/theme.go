package assets

import "github.com/gdamore/tcell/v2"

// Glyphs used by the terminal viewer.
const (
	GlyphAir    = "·"
	GlyphStone  = "🪨"
	GlyphWater  = "🌊"
	GlyphHidden = " "
	GlyphDoor   = "🚪"
)

// DoorDef describes one kind of door the dungeon generator may place.
type DoorDef struct {
	Name   string
	Glyph  string // display glyph, may be a wide emoji
	Rune   rune   // ASCII fallback
	Color  tcell.Color
	Weight int // relative chance of being picked
	Locked bool
}

// Doors is the table of door kinds, most common first.
var Doors = []DoorDef{
	{Name: "Wooden Door", Glyph: GlyphDoor, Rune: '+', Color: tcell.ColorSaddleBrown, Weight: 10},
	{Name: "Iron Door", Glyph: "🔩", Rune: '+', Color: tcell.ColorSilver, Weight: 4},
	{Name: "Portcullis", Glyph: "⛩️", Rune: '=', Color: tcell.ColorDarkGray, Weight: 2},
	{Name: "Sealed Vault Door", Glyph: "🔒", Rune: '%', Color: tcell.ColorGold, Weight: 1, Locked: true},
}

// DoorByName returns the door kind with the given name.
func DoorByName(name string) (DoorDef, bool) {
	for _, d := range Doors {
		if d.Name == name {
			return d, true
		}
	}
	return DoorDef{}, false
}
