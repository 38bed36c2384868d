package gamemap

// TileType identifies the terrain of a map cell.
type TileType uint8

const (
	TileAir TileType = iota
	TileStone
	TileWater
	TileInvalid
)

// String returns a short lowercase name for the tile type.
func (t TileType) String() string {
	switch t {
	case TileAir:
		return "air"
	case TileStone:
		return "stone"
	case TileWater:
		return "water"
	}
	return "invalid"
}

// Rune returns the character used for the tile type in map descriptions
// and ASCII dumps.
func (t TileType) Rune() rune {
	switch t {
	case TileAir:
		return '.'
	case TileStone:
		return '#'
	case TileWater:
		return '~'
	}
	return '?'
}

// ParseTileRune maps a description character back to its tile type.
func ParseTileRune(r rune) (TileType, bool) {
	switch r {
	case '.':
		return TileAir, true
	case '#':
		return TileStone, true
	case '~':
		return TileWater, true
	}
	return TileInvalid, false
}

// Tile holds the double-buffered terrain and the per-cell flags for one map
// cell. Type is what every query observes; ToBecome is where the current
// generation step writes. GameMap.Commit copies ToBecome into Type.
type Tile struct {
	Type     TileType
	ToBecome TileType
	Visible  bool
	Known    bool
	Hidden   bool // never rendered or discoverable
	Occupied bool
}

// Passable reports whether the live tile type can be walked through.
func (t Tile) Passable() bool {
	return t.Type == TileAir
}

// Pending reports whether the tile has an uncommitted type change.
func (t Tile) Pending() bool {
	return t.Type != t.ToBecome
}
